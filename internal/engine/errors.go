package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-meetingtime/internal/config"
)

// Sentinel errors surfaced to the presentation layer.
var (
	// ErrEmptySelection is returned when the user tries to add without picking a zone.
	ErrEmptySelection = errors.New(config.ErrEmptySelection)

	// ErrClipboardWrite is returned when the host clipboard cannot be reached.
	ErrClipboardWrite = errors.New(config.ErrClipboardWrite)

	// ErrNothingToCopy is returned when a summary is requested for an empty selection.
	ErrNothingToCopy = errors.New(config.ErrNothingToCopy)
)

// UnknownTimezoneError reports an identifier missing from the timezone database.
type UnknownTimezoneError struct {
	ID  string
	Err error
}

func (e *UnknownTimezoneError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q: %v", config.ErrUnknownTimezone, e.ID, e.Err)
	}
	return fmt.Sprintf("%s %q", config.ErrUnknownTimezone, e.ID)
}

func (e *UnknownTimezoneError) Unwrap() error { return e.Err }

// AlreadySelectedError reports a duplicate add.
type AlreadySelectedError struct {
	ID string
}

func (e *AlreadySelectedError) Error() string {
	return fmt.Sprintf("%s: %q", config.ErrAlreadySelected, e.ID)
}

// InvalidTimeError reports an hour/minute pair outside the clock range,
// or a string that is not in HH:MM form.
type InvalidTimeError struct {
	Value string
	Err   error
}

func (e *InvalidTimeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q: %v", config.ErrInvalidTime, e.Value, e.Err)
	}
	return fmt.Sprintf("%s %q", config.ErrInvalidTime, e.Value)
}

func (e *InvalidTimeError) Unwrap() error { return e.Err }

// StorageReadError reports a persisted record that could not be fully decoded.
// The store has already fallen back to defaults when this is returned.
type StorageReadError struct {
	Err error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("%s: %v", config.ErrStorageRead, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }
