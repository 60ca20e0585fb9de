package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Meeting Time"
	AppID             = "com.github.tartampluch.go-meetingtime"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagCatalog      = "catalog"
	FlagPrint        = "print"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescCatalog  = "Path to a YAML file overriding the selectable timezone list"
	FlagDescPrint    = "Print the saved meeting times to the terminal and exit"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Preferences (Durable Storage)
// -----------------------------------------------------------------------------

const (
	// PrefSelectionState is the namespaced key holding the whole selection record.
	PrefSelectionState = "meeting_time.selection"

	PrefLanguage   = "language"
	PrefServerPort = "server_port"
	PrefLastRun    = "last_run_version"

	// StateSchemaVersion is written with every persisted record.
	StateSchemaVersion = 1

	// State record field names.
	FieldVersion      = "version"
	FieldSelectedTime = "selectedTime"
	FieldTimezones    = "timezones"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Timezone Catalog
// -----------------------------------------------------------------------------

// PopularTimezones is the built-in list offered by the timezone selector.
var PopularTimezones = []string{
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"America/Toronto",
	"America/Mexico_City",
	"America/Sao_Paulo",
	"Europe/London",
	"Europe/Paris",
	"Europe/Berlin",
	"Europe/Moscow",
	"Asia/Dubai",
	"Asia/Kolkata",
	"Asia/Singapore",
	"Asia/Tokyo",
	"Asia/Shanghai",
	"Asia/Hong_Kong",
	"Australia/Sydney",
	"Pacific/Auckland",
}

// LocationCacheSize bounds the number of loaded *time.Location values kept in memory.
const LocationCacheSize = 512

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultHour     = 14
	DefaultMinute   = 0
	DefaultPort     = "18081"
	DefaultLanguage = "en"

	// DefaultMeetingDuration is the length of the exported calendar event.
	DefaultMeetingDuration = 1 * time.Hour

	// Business hours: [BusinessHourStart, BusinessHourEnd) in the target zone.
	BusinessHourStart = 9
	BusinessHourEnd   = 17

	MinHour   = 0
	MaxHour   = 23
	MinMinute = 0
	MaxMinute = 59

	// ToastDuration is how long transient notifications stay on screen.
	ToastDuration = 3 * time.Second

	// UIDSalt keeps exported event UIDs stable across restarts.
	UIDSalt = "go-meetingtime-v1-"
)

// -----------------------------------------------------------------------------
// Display Formats
// -----------------------------------------------------------------------------

const (
	// TimeFormat12h renders "02:00 PM".
	TimeFormat12h = "03:04 PM"
	// DateFormatShort renders "Fri, Oct 17".
	DateFormatShort = "Mon, Jan 2"
	// ReferenceTimeFormat is the persisted "HH:MM" form.
	ReferenceTimeFormat = "%02d:%02d"
	ReferenceTimeSep    = ":"

	SummaryHeader     = "Meeting Time:\n\n"
	SummaryLineFormat = "%s: %s (%s)\n"
	PrintLineFormat   = "%-22s %s  %s\n"
	PrintHeaderFormat = "Meeting Time: %s (%s)\n\n"

	// LocalZoneName is rejected as a timezone identifier: it names no fixed zone.
	LocalZoneName = "Local"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Meeting Time//Engine//EN"
	ICalCalName = "Meeting Time"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gomeetingtime"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	ICalSummary = "Meeting"
	FormatUID   = "%s@%s"

	// StubVCalendar is the minimal valid iCalendar object used when no zone is selected.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"
	RouteFeed          = "/meeting.ics"
	AddrSeparator      = ":"

	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinSettings    = "win_settings_title"
	TKeyLblMeetingTime = "lbl_meeting_time"
	TKeyLblTimezone    = "lbl_timezone"
	TKeyBtnNow         = "btn_now"
	TKeyBtnAdd         = "btn_add"
	TKeyBtnCopy        = "btn_copy"
	TKeyBtnClear       = "btn_clear"
	TKeyBtnRemove      = "btn_remove"
	TKeyBtnSettings    = "btn_settings"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyPhSelect       = "placeholder_select"
	TKeyEmptyList      = "lbl_empty_list"
	TKeyBusinessHours  = "lbl_business_hours"
	TKeyConfirmTitle   = "confirm_clear_title"
	TKeyConfirmClear   = "confirm_clear_body"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"

	// Toasts
	TKeyToastSelect    = "toast_select_timezone"
	TKeyToastDuplicate = "toast_already_added"
	TKeyToastCopyEmpty = "toast_add_first"
	TKeyToastCopied    = "toast_copied"
	TKeyToastCopyFail  = "toast_copy_failed"
	TKeyToastCleared   = "toast_cleared"
	TKeyToastBadTime   = "toast_invalid_time"
	TKeyToastBadZone   = "toast_unknown_timezone"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrUnknownTimezone  = "unknown timezone"
	ErrAlreadySelected  = "timezone already selected"
	ErrEmptySelection   = "no timezone selected"
	ErrInvalidTime      = "invalid reference time"
	ErrStorageRead      = "malformed persisted selection"
	ErrClipboardWrite   = "clipboard unavailable"
	ErrNothingToCopy    = "no timezones to summarise"
	ErrStateEncode      = "failed to encode selection state"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrCatalogRead      = "failed to read timezone catalog"
	ErrCatalogParse     = "failed to parse timezone catalog"
	ErrCacheBuild       = "failed to build location cache"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrRenderZone       = "failed to render timezone"
	ErrCalendarBuild    = "failed to build calendar feed"
	ErrLocNotInit       = "localizer not initialized"
	ErrCatalogEmptyZone = "catalog entry is not a known timezone"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log Messages & Fallbacks
// -----------------------------------------------------------------------------

const (
	TitleStartupError = "Startup Error"
	MsgPortBusy       = "Port %s is busy or unavailable."

	MsgAppStop        = "Application stopped gracefully"
	MsgAppStarting    = "Starting application"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgStateRestored  = "Selection restored"
	MsgStateDefaults  = "No saved selection, using defaults"
	MsgStatePersisted = "Selection persisted"
	MsgZoneAdded      = "Timezone added"
	MsgZoneRemoved    = "Timezone removed"
	MsgZonesCleared   = "All timezones cleared"
	MsgTimeChanged    = "Reference time changed"
	MsgDroppedZone    = "Dropping invalid stored timezone"
	MsgCatalogLoaded  = "Timezone catalog loaded"
	MsgCopied         = "Summary copied to clipboard"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgOpenSettings   = "Opening settings window"
	MsgNoSelection    = "No timezones selected."

	FallbackNoSelection = "Add timezones to get started"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyTimezone  = "timezone"
	LogKeyTime      = "reference_time"
	LogKeyCount     = "count"
	LogKeyValue     = "value"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompStore   = "store"
	CompServer  = "server"
	CompCatalog = "catalog"
	CompMain    = "main"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 520
	MainWindowHeight    = 640
	SettingsWindowWidth = 420
	TimeEntryWidth      = 60
)
