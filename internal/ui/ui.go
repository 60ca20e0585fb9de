package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-meetingtime/internal/config"
	"github.com/tartampluch/go-meetingtime/internal/engine"
	"github.com/tartampluch/go-meetingtime/internal/server"
)

// MeetingTimeApp renders store snapshots and turns user actions into store calls.
// It never mutates the selection directly.
type MeetingTimeApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Store     *engine.SelectionStore
	Converter engine.Converter
	Server    *server.FeedServer
	Catalog   []string

	SupportedLanguages []string

	// Widgets rebuilt by buildContent.
	hourEntry   *NumericalEntry
	minuteEntry *NumericalEntry
	zoneSelect  *widget.Select
	zoneList    *fyne.Container
	rows        []zoneRow

	// syncingTime suppresses entry change callbacks while the app writes the entries.
	syncingTime bool

	// lastToast records the most recent notification text.
	lastToast string
	toast     *widget.PopUp

	settingsWindow fyne.Window
}

// zoneRow keeps a rendered card's data and its remove button.
type zoneRow struct {
	ID       string
	Time     string
	Date     string
	Business bool
	Failed   bool
	Remove   *widget.Button
}

// NewMeetingTimeApp constructs the application and wires dependencies.
func NewMeetingTimeApp(a fyne.App, ctx context.Context, srv *server.FeedServer, catalog []string) *MeetingTimeApp {
	if len(catalog) == 0 {
		catalog = engine.DefaultCatalog()
	}

	return &MeetingTimeApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Store:              engine.NewSelectionStore(a.Preferences()),
		Converter:          engine.NewConverter(),
		Server:             srv,
		Catalog:            catalog,
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Init loads translations and the persisted selection, and subscribes the
// render step and the calendar feed to store changes.
func (app *MeetingTimeApp) Init() {
	app.SetupI18n()

	// A bad record has already been replaced by defaults; the error is only logged.
	_ = app.Store.Restore()

	app.Store.OnChange(app.render)
	if app.Server != nil {
		app.Store.OnChange(app.Server.Publish)
		app.Server.Publish(app.Store.Snapshot())
	}
}

// Run launches the feed server and the main window, blocking until it closes.
func (app *MeetingTimeApp) Run() {
	app.Init()

	if app.Server != nil {
		go func() {
			if err := app.Server.Start(app.Ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyError, err,
					config.LogKeyComponent, config.CompUI)

				app.App.SendNotification(fyne.NewNotification(
					config.TitleStartupError,
					fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
			}
		}()
	}

	app.Window = app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	app.Window.SetContent(app.buildContent())
	app.Window.SetMaster()

	app.render(app.Store.Snapshot())
	app.Window.ShowAndRun()
}

// buildContent assembles the main window from the current localizer.
func (app *MeetingTimeApp) buildContent() fyne.CanvasObject {
	state := app.Store.Snapshot()

	app.hourEntry = NewClockFieldEntry(config.MaxHour, app.GetMsg(config.TKeyToastBadTime))
	app.minuteEntry = NewClockFieldEntry(config.MaxMinute, app.GetMsg(config.TKeyToastBadTime))
	app.showReferenceTime(state.ReferenceTime)
	app.hourEntry.OnChanged = func(string) { app.onTimeEdited() }
	app.minuteEntry.OnChanged = func(string) { app.onTimeEdited() }

	nowBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnNow), theme.HistoryIcon(), app.onNow)

	timeRow := container.NewHBox(
		container.NewGridWrap(fyne.NewSize(config.TimeEntryWidth, app.hourEntry.MinSize().Height), app.hourEntry),
		widget.NewLabel(config.ReferenceTimeSep),
		container.NewGridWrap(fyne.NewSize(config.TimeEntryWidth, app.minuteEntry.MinSize().Height), app.minuteEntry),
		nowBtn,
	)

	app.zoneSelect = widget.NewSelect(displayOptions(app.Catalog), nil)
	app.zoneSelect.PlaceHolder = app.GetMsg(config.TKeyPhSelect)
	addBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnAdd), theme.ContentAddIcon(), app.onAdd)
	addBtn.Importance = widget.HighImportance

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblMeetingTime), timeRow),
		widget.NewFormItem(app.GetMsg(config.TKeyLblTimezone), container.NewBorder(nil, nil, nil, addBtn, app.zoneSelect)),
	)

	copyBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCopy), theme.ContentCopyIcon(), app.onCopy)
	clearBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnClear), theme.DeleteIcon(), app.onClear)
	clearBtn.Importance = widget.DangerImportance
	settingsBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)

	actions := container.NewBorder(nil, nil, nil, settingsBtn, container.NewGridWithColumns(2, copyBtn, clearBtn))

	app.zoneList = container.NewVBox()

	return container.NewBorder(
		container.NewVBox(form, widget.NewSeparator()),
		actions,
		nil, nil,
		container.NewVScroll(app.zoneList),
	)
}

// render rebuilds the card list from a snapshot. It is the store's change listener.
func (app *MeetingTimeApp) render(state engine.SelectionState) {
	views := app.Converter.Render(state)

	app.rows = app.rows[:0]
	for _, v := range views {
		app.rows = append(app.rows, zoneRow{
			ID:       v.ID,
			Time:     v.Info.FormattedTime,
			Date:     v.Info.FormattedDate,
			Business: v.Err == nil && v.Info.BusinessHours(),
			Failed:   v.Err != nil,
		})
	}

	if app.zoneList == nil {
		return
	}

	app.zoneList.RemoveAll()
	if len(views) == 0 {
		app.zoneList.Add(widget.NewLabelWithStyle(app.GetMsg(config.TKeyEmptyList), fyne.TextAlignCenter, fyne.TextStyle{Italic: true}))
	}
	for i, v := range views {
		app.zoneList.Add(app.zoneCard(v, &app.rows[i]))
	}
	app.zoneList.Refresh()
}

// zoneCard renders one timezone. The business-hours highlight is purely visual.
func (app *MeetingTimeApp) zoneCard(v engine.ZoneView, row *zoneRow) fyne.CanvasObject {
	id := v.ID
	row.Remove = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnRemove), theme.ContentRemoveIcon(), func() {
		app.onRemove(id)
	})

	details := container.NewVBox()
	if v.Err != nil {
		errLabel := widget.NewLabel(app.GetMsg(config.TKeyToastBadZone))
		errLabel.Importance = widget.DangerImportance
		details.Add(errLabel)
	} else {
		timeLabel := widget.NewLabelWithStyle(v.Info.FormattedTime, fyne.TextAlignLeading, fyne.TextStyle{Bold: true, Monospace: true})
		dateLabel := widget.NewLabel(v.Info.FormattedDate)
		if row.Business {
			timeLabel.Importance = widget.SuccessImportance
			details.Add(container.NewHBox(timeLabel, widget.NewLabel(app.GetMsg(config.TKeyBusinessHours))))
		} else {
			details.Add(timeLabel)
		}
		details.Add(dateLabel)
	}

	return widget.NewCard(v.Name, "", container.NewBorder(nil, nil, nil, row.Remove, details))
}

// -----------------------------------------------------------------------------
// User Actions
// -----------------------------------------------------------------------------

func (app *MeetingTimeApp) onAdd() {
	id := catalogID(app.Catalog, app.zoneSelect.Selected)
	if err := app.Store.AddTimezone(id); err != nil {
		app.showError(err)
		return
	}
	app.zoneSelect.ClearSelected()
}

func (app *MeetingTimeApp) onRemove(id string) {
	app.Store.RemoveTimezone(id)
}

// onTimeEdited applies the hour and minute fields once both hold a complete value.
func (app *MeetingTimeApp) onTimeEdited() {
	if app.syncingTime || app.hourEntry.Text == "" || app.minuteEntry.Text == "" {
		return
	}

	rt, err := engine.ParseReferenceTime(app.hourEntry.Text + config.ReferenceTimeSep + app.minuteEntry.Text)
	if err != nil {
		app.showError(err)
		return
	}
	if err := app.Store.SetReferenceTime(rt.Hour, rt.Minute); err != nil {
		app.showError(err)
	}
}

// onNow sets the reference time to the observer's current wall clock.
func (app *MeetingTimeApp) onNow() {
	rt := engine.ReferenceTimeOf(app.Converter.Clock.Now())
	app.showReferenceTime(rt)
	if err := app.Store.SetReferenceTime(rt.Hour, rt.Minute); err != nil {
		app.showError(err)
	}
}

func (app *MeetingTimeApp) onCopy() {
	if err := app.copySummary(); err != nil {
		app.showError(err)
		return
	}
	slog.Info(config.MsgCopied, config.LogKeyComponent, config.CompUI)
	app.notify(app.GetMsg(config.TKeyToastCopied))
}

// copySummary writes the summary of the current selection to the clipboard.
func (app *MeetingTimeApp) copySummary() error {
	text, err := engine.FormatSummary(app.Converter.Clock.Now(), app.Store.Snapshot())
	if err != nil {
		return err
	}

	clipboard := app.App.Clipboard()
	if clipboard == nil {
		return engine.ErrClipboardWrite
	}
	clipboard.SetContent(text)
	return nil
}

// onClear asks for confirmation before emptying a non-empty selection.
func (app *MeetingTimeApp) onClear() {
	if len(app.Store.Snapshot().Timezones) == 0 {
		return
	}
	dialog.ShowConfirm(
		app.GetMsg(config.TKeyConfirmTitle),
		app.GetMsg(config.TKeyConfirmClear),
		func(ok bool) {
			if ok {
				app.clearConfirmed()
			}
		},
		app.Window,
	)
}

func (app *MeetingTimeApp) clearConfirmed() {
	app.Store.ClearAll()
	app.notify(app.GetMsg(config.TKeyToastCleared))
}

// showReferenceTime writes rt into the entries without re-triggering onTimeEdited.
func (app *MeetingTimeApp) showReferenceTime(rt engine.ReferenceTime) {
	if app.hourEntry == nil || app.minuteEntry == nil {
		return
	}
	app.syncingTime = true
	defer func() { app.syncingTime = false }()

	app.hourEntry.SetText(fmt.Sprintf("%02d", rt.Hour))
	app.minuteEntry.SetText(fmt.Sprintf("%02d", rt.Minute))
}

// -----------------------------------------------------------------------------
// Notifications
// -----------------------------------------------------------------------------

// errorMessageKey maps an engine error to the translation key of its toast.
func errorMessageKey(err error) string {
	var (
		dup     *engine.AlreadySelectedError
		invalid *engine.InvalidTimeError
		unknown *engine.UnknownTimezoneError
	)

	switch {
	case errors.Is(err, engine.ErrEmptySelection):
		return config.TKeyToastSelect
	case errors.As(err, &dup):
		return config.TKeyToastDuplicate
	case errors.Is(err, engine.ErrNothingToCopy):
		return config.TKeyToastCopyEmpty
	case errors.Is(err, engine.ErrClipboardWrite):
		return config.TKeyToastCopyFail
	case errors.As(err, &invalid):
		return config.TKeyToastBadTime
	case errors.As(err, &unknown):
		return config.TKeyToastBadZone
	default:
		return config.TKeyToastCopyFail
	}
}

func (app *MeetingTimeApp) showError(err error) {
	slog.Debug(err.Error(), config.LogKeyComponent, config.CompUI)
	app.notify(app.GetMsg(errorMessageKey(err)))
}

// notify shows a transient message at the bottom of the main window.
func (app *MeetingTimeApp) notify(msg string) {
	app.lastToast = msg
	if app.Window == nil {
		return
	}

	if app.toast != nil {
		app.toast.Hide()
	}

	c := app.Window.Canvas()
	popup := widget.NewPopUp(widget.NewLabel(msg), c)
	size := popup.MinSize()
	popup.ShowAtPosition(fyne.NewPos(
		(c.Size().Width-size.Width)/2,
		c.Size().Height-size.Height-theme.Padding()*4,
	))
	app.toast = popup

	go func() {
		<-time.After(config.ToastDuration)
		fyne.Do(popup.Hide)
	}()
}

// -----------------------------------------------------------------------------
// Catalog Helpers
// -----------------------------------------------------------------------------

// displayOptions renders catalog identifiers for the selector.
func displayOptions(catalog []string) []string {
	options := make([]string, len(catalog))
	for i, id := range catalog {
		options[i] = engine.DisplayName(id)
	}
	return options
}

// catalogID maps a selector label back to its identifier. An empty label stays empty.
func catalogID(catalog []string, label string) string {
	for _, id := range catalog {
		if engine.DisplayName(id) == label {
			return id
		}
	}
	return label
}
