package ui

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-meetingtime/internal/config"
	"github.com/tartampluch/go-meetingtime/internal/engine"
	"github.com/tartampluch/go-meetingtime/internal/server"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

// setupTestApp initializes a headless Fyne app with a built main window.
// The observer is in UTC on Wed, Jan 15 2025 at 10:42.
func setupTestApp(t *testing.T) *MeetingTimeApp {
	a := test.NewApp()
	t.Cleanup(a.Quit)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	clock := MockClock{CurrentTime: time.Date(2025, 1, 15, 10, 42, 0, 0, time.UTC)}

	srv := server.NewFeedServer("0")
	srv.Clock = clock

	app := NewMeetingTimeApp(a, ctx, srv, nil)
	app.Converter.Clock = clock
	app.Preferences.SetString(config.PrefLanguage, "en")

	// Run() is skipped: it blocks on the event loop.
	app.Init()
	app.Window = a.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window.SetContent(app.buildContent())
	app.render(app.Store.Snapshot())

	return app
}

// -----------------------------------------------------------------------------
// Localization Tests
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app := setupTestApp(t)

	assert.ElementsMatch(t, []string{"en", "fr"}, app.SupportedLanguages)
	assert.Equal(t, "Add", app.GetMsg(config.TKeyBtnAdd))

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "Ajouter", app.GetMsg(config.TKeyBtnAdd))
}

func TestLocalization_MissingKey(t *testing.T) {
	app := setupTestApp(t)
	assert.Equal(t, "no_such_key", app.GetMsg("no_such_key"))
}

// -----------------------------------------------------------------------------
// Selection Actions
// -----------------------------------------------------------------------------

func TestOnAdd_NothingSelected(t *testing.T) {
	app := setupTestApp(t)

	app.onAdd()

	assert.Equal(t, "Please select a timezone", app.lastToast)
	assert.Empty(t, app.Store.Snapshot().Timezones)
}

func TestOnAdd_AppendsAndResetsSelector(t *testing.T) {
	app := setupTestApp(t)

	app.zoneSelect.SetSelected("America/New York")
	app.onAdd()

	assert.Equal(t, []string{"America/New_York"}, app.Store.Snapshot().Timezones)
	assert.Empty(t, app.zoneSelect.Selected)
	require.Len(t, app.rows, 1)
	assert.Equal(t, "America/New_York", app.rows[0].ID)
}

func TestOnAdd_Duplicate(t *testing.T) {
	app := setupTestApp(t)

	app.zoneSelect.SetSelected("Asia/Tokyo")
	app.onAdd()
	app.zoneSelect.SetSelected("Asia/Tokyo")
	app.onAdd()

	assert.Equal(t, "Timezone already added", app.lastToast)
	assert.Len(t, app.Store.Snapshot().Timezones, 1)
}

func TestRender_RowsAndBusinessHours(t *testing.T) {
	app := setupTestApp(t)

	// Observer 14:00 UTC: New York 09:00 AM, Tokyo 11:00 PM.
	require.NoError(t, app.Store.AddTimezone("America/New_York"))
	require.NoError(t, app.Store.AddTimezone("Asia/Tokyo"))

	require.Len(t, app.rows, 2)

	assert.Equal(t, "09:00 AM", app.rows[0].Time)
	assert.Equal(t, "Wed, Jan 15", app.rows[0].Date)
	assert.True(t, app.rows[0].Business)

	assert.Equal(t, "11:00 PM", app.rows[1].Time)
	assert.False(t, app.rows[1].Business)

	assert.Len(t, app.zoneList.Objects, 2)
}

func TestRender_EmptyList(t *testing.T) {
	app := setupTestApp(t)

	assert.Empty(t, app.rows)
	require.Len(t, app.zoneList.Objects, 1, "Empty selection shows a hint label")
}

func TestRender_UnknownRestoredZone(t *testing.T) {
	app := setupTestApp(t)

	app.Preferences.SetString(config.PrefSelectionState, `{"version":1,"selectedTime":"14:00","timezones":["Mars/Olympus","Europe/Paris"]}`)
	require.NoError(t, app.Store.Restore())
	app.render(app.Store.Snapshot())

	require.Len(t, app.rows, 2)
	assert.True(t, app.rows[0].Failed)
	assert.False(t, app.rows[1].Failed)
	assert.Equal(t, "03:00 PM", app.rows[1].Time)
}

func TestRemoveButton_Tap(t *testing.T) {
	app := setupTestApp(t)
	require.NoError(t, app.Store.AddTimezone("Europe/London"))
	require.NoError(t, app.Store.AddTimezone("Asia/Kolkata"))

	require.Len(t, app.rows, 2)
	test.Tap(app.rows[0].Remove)

	assert.Equal(t, []string{"Asia/Kolkata"}, app.Store.Snapshot().Timezones)
	assert.Len(t, app.rows, 1)
}

func TestClearConfirmed(t *testing.T) {
	app := setupTestApp(t)
	require.NoError(t, app.Store.AddTimezone("Europe/London"))

	app.clearConfirmed()

	assert.Empty(t, app.Store.Snapshot().Timezones)
	assert.Equal(t, "All timezones cleared", app.lastToast)
	assert.Len(t, app.zoneList.Objects, 1)
}

// -----------------------------------------------------------------------------
// Reference Time
// -----------------------------------------------------------------------------

func TestTimeEntries_InitialValue(t *testing.T) {
	app := setupTestApp(t)

	assert.Equal(t, "14", app.hourEntry.Text)
	assert.Equal(t, "00", app.minuteEntry.Text)
}

func TestTimeEntries_Edit(t *testing.T) {
	app := setupTestApp(t)

	app.hourEntry.SetText("09")
	app.minuteEntry.SetText("30")

	assert.Equal(t, engine.ReferenceTime{Hour: 9, Minute: 30}, app.Store.Snapshot().ReferenceTime)
}

func TestTimeEntries_PartialEditIgnored(t *testing.T) {
	app := setupTestApp(t)

	app.hourEntry.SetText("")

	assert.Equal(t, engine.DefaultReferenceTime(), app.Store.Snapshot().ReferenceTime)
	assert.Empty(t, app.lastToast)
}

func TestTimeEntries_OutOfRange(t *testing.T) {
	app := setupTestApp(t)

	app.hourEntry.SetText("25")

	assert.Equal(t, "Invalid time", app.lastToast)
	assert.Equal(t, engine.DefaultReferenceTime(), app.Store.Snapshot().ReferenceTime)
}

func TestOnNow(t *testing.T) {
	app := setupTestApp(t)

	app.onNow()

	assert.Equal(t, "10", app.hourEntry.Text)
	assert.Equal(t, "42", app.minuteEntry.Text)
	assert.Equal(t, engine.ReferenceTime{Hour: 10, Minute: 42}, app.Store.Snapshot().ReferenceTime)
}

// -----------------------------------------------------------------------------
// Clipboard
// -----------------------------------------------------------------------------

func TestOnCopy_Empty(t *testing.T) {
	app := setupTestApp(t)

	app.onCopy()

	assert.Equal(t, "Add timezones first", app.lastToast)
}

func TestOnCopy_WritesSummary(t *testing.T) {
	app := setupTestApp(t)
	require.NoError(t, app.Store.AddTimezone("America/New_York"))
	require.NoError(t, app.Store.AddTimezone("Asia/Kolkata"))

	app.onCopy()

	expected := "Meeting Time:\n\n" +
		"America/New York: 09:00 AM (Wed, Jan 15)\n" +
		"Asia/Kolkata: 07:30 PM (Wed, Jan 15)\n"
	assert.Equal(t, expected, app.App.Clipboard().Content())
	assert.Equal(t, "✓ Copied to clipboard!", app.lastToast)
}

// -----------------------------------------------------------------------------
// Error Mapping
// -----------------------------------------------------------------------------

func TestErrorMessageKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"Empty", engine.ErrEmptySelection, config.TKeyToastSelect},
		{"Duplicate", &engine.AlreadySelectedError{ID: "Asia/Tokyo"}, config.TKeyToastDuplicate},
		{"NothingToCopy", engine.ErrNothingToCopy, config.TKeyToastCopyEmpty},
		{"Clipboard", engine.ErrClipboardWrite, config.TKeyToastCopyFail},
		{"InvalidTime", &engine.InvalidTimeError{Value: "25:00"}, config.TKeyToastBadTime},
		{"UnknownZone", &engine.UnknownTimezoneError{ID: "Mars/Olympus"}, config.TKeyToastBadZone},
		{"Other", errors.New("boom"), config.TKeyToastCopyFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessageKey(tt.err))
		})
	}
}

// -----------------------------------------------------------------------------
// Settings
// -----------------------------------------------------------------------------

func TestValidatePort(t *testing.T) {
	app := setupTestApp(t)

	assert.NoError(t, app.validatePort("8080"))
	assert.EqualError(t, app.validatePort(""), "Port is required")
	assert.EqualError(t, app.validatePort("0"), "Port must be between 1 and 65535")
	assert.EqualError(t, app.validatePort("70000"), "Port must be between 1 and 65535")
}

func TestSaveSettings_LanguageAndPort(t *testing.T) {
	app := setupTestApp(t)

	sw := app.newSettingsWidgets()
	assert.Equal(t, "en", sw.langSelect.Selected)
	assert.Equal(t, config.DefaultPort, sw.entryPort.Text)

	sw.langSelect.SetSelected("fr")
	sw.entryPort.SetText("18090")
	app.saveSettings(sw)

	assert.Equal(t, "fr", app.Preferences.String(config.PrefLanguage))
	assert.Equal(t, "18090", app.Preferences.String(config.PrefServerPort))
	assert.Equal(t, "Ajouter", app.GetMsg(config.TKeyBtnAdd))
	assert.Equal(t, "Heure de réunion", app.Window.Title())
}

// -----------------------------------------------------------------------------
// Persistence
// -----------------------------------------------------------------------------

func TestSelection_SurvivesRestart(t *testing.T) {
	app := setupTestApp(t)
	require.NoError(t, app.Store.AddTimezone("Europe/Paris"))
	require.NoError(t, app.Store.SetReferenceTime(8, 15))

	restarted := engine.NewSelectionStore(app.Preferences)
	require.NoError(t, restarted.Restore())

	assert.Equal(t, app.Store.Snapshot(), restarted.Snapshot())
}
