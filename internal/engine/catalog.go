package engine

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/tartampluch/go-meetingtime/internal/config"
	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML layout of a catalog override:
//
//	timezones:
//	  - Europe/Lisbon
//	  - Asia/Seoul
type catalogFile struct {
	Timezones []string `yaml:"timezones"`
}

// DefaultCatalog returns a copy of the built-in selectable timezones.
func DefaultCatalog() []string {
	return slices.Clone(config.PopularTimezones)
}

// LoadCatalog reads the list of selectable timezones from a YAML file.
// An empty path, or a file listing no usable zone, yields the built-in list.
// Entries unknown to the tz database are skipped.
func LoadCatalog(path string) ([]string, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCatalogRead, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCatalogParse, err)
	}

	zones := make([]string, 0, len(file.Timezones))
	for _, id := range file.Timezones {
		if _, err := LoadLocation(id); err != nil {
			slog.Warn(config.ErrCatalogEmptyZone,
				config.LogKeyComponent, config.CompCatalog,
				config.LogKeyTimezone, id,
				config.LogKeyError, err)
			continue
		}
		if !slices.Contains(zones, id) {
			zones = append(zones, id)
		}
	}

	if len(zones) == 0 {
		return DefaultCatalog(), nil
	}

	slog.Info(config.MsgCatalogLoaded,
		config.LogKeyComponent, config.CompCatalog,
		config.LogKeyFile, path,
		config.LogKeyCount, len(zones))
	return zones, nil
}
