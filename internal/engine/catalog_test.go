package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-meetingtime/internal/config"
	"github.com/tartampluch/go-meetingtime/internal/engine"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timezones.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCatalog_Default(t *testing.T) {
	zones, err := engine.LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, config.PopularTimezones, zones)

	// The returned slice must not alias the built-in list.
	zones[0] = "Changed/Zone"
	assert.NotEqual(t, "Changed/Zone", config.PopularTimezones[0])
}

func TestLoadCatalog_File(t *testing.T) {
	path := writeCatalog(t, `
timezones:
  - Europe/Lisbon
  - Not/AZone
  - Asia/Seoul
  - Europe/Lisbon
  - ""
`)

	zones, err := engine.LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Europe/Lisbon", "Asia/Seoul"}, zones)
}

func TestLoadCatalog_NoUsableZones(t *testing.T) {
	path := writeCatalog(t, "timezones: [Fake/One, Fake/Two]\n")

	zones, err := engine.LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, config.PopularTimezones, zones)
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := engine.LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, config.ErrCatalogRead)

	_, err = engine.LoadCatalog(writeCatalog(t, "timezones: [unterminated\n"))
	assert.ErrorContains(t, err, config.ErrCatalogParse)
}
