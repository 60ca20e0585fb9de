package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-meetingtime/internal/config"
)

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in every locale JSON file.
func TestI18nIntegrity(t *testing.T) {
	definedKeys := make(map[string]bool)

	keysToCheck := []string{
		config.TKeyWinTitle,
		config.TKeyWinSettings,
		config.TKeyLblMeetingTime,
		config.TKeyLblTimezone,
		config.TKeyBtnNow,
		config.TKeyBtnAdd,
		config.TKeyBtnCopy,
		config.TKeyBtnClear,
		config.TKeyBtnRemove,
		config.TKeyBtnSettings,
		config.TKeyBtnSave,
		config.TKeyBtnCancel,
		config.TKeyPhSelect,
		config.TKeyEmptyList,
		config.TKeyBusinessHours,
		config.TKeyConfirmTitle,
		config.TKeyConfirmClear,
		config.TKeyLblLanguage,
		config.TKeyHelpLanguage,
		config.TKeyLblPort,
		config.TKeyHelpPort,
		config.TKeyToastSelect,
		config.TKeyToastDuplicate,
		config.TKeyToastCopyEmpty,
		config.TKeyToastCopied,
		config.TKeyToastCopyFail,
		config.TKeyToastCleared,
		config.TKeyToastBadTime,
		config.TKeyToastBadZone,
		config.TKeyErrPortReq,
		config.TKeyErrPortNum,
		config.TKeyErrPortRange,
	}

	for _, k := range keysToCheck {
		definedKeys[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			name := "active." + lang + ".json"

			// Adjust path if running test from internal/ui or root
			path := filepath.Join("locales", name)
			content, err := os.ReadFile(path)
			if os.IsNotExist(err) {
				path = filepath.Join("..", "..", "internal", "ui", "locales", name)
				content, err = os.ReadFile(path)
			}
			require.NoError(t, err, "Must load %s", name)

			var jsonMap map[string]interface{}
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for key := range definedKeys {
				value, exists := jsonMap[key]
				if assert.Truef(t, exists, "Key '%s' defined in config.go is missing in %s", key, name) {
					assert.NotEmpty(t, value, "Key '%s' is empty in %s", key, name)
				}
			}

			// Keys in JSON that no Go code references
			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				if !definedKeys[jsonKey] {
					t.Logf("Warning: Key '%s' exists in %s but is not checked in the test suite (might be unused)", jsonKey, name)
				}
			}
		})
	}
}
