package ui

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts digits, up to MaxLen runes.
// It is used for the hour and minute fields and for the feed port.
type NumericalEntry struct {
	widget.Entry

	// MaxLen caps the typed length; zero means unlimited.
	MaxLen int
}

// NewNumericalEntry creates a digit-only entry with no length limit.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// NewClockFieldEntry creates a two-digit entry accepting values in [0, limit].
func NewClockFieldEntry(limit int, invalid string) *NumericalEntry {
	entry := NewNumericalEntry()
	entry.MaxLen = 2
	entry.Validator = func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 || v > limit {
			return errors.New(invalid)
		}
		return nil
	}
	return entry
}

// TypedRune drops non-digits and input beyond MaxLen.
// Pasted text bypasses this filter; the Validator catches it.
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	if e.MaxLen > 0 && utf8.RuneCountInString(e.Text) >= e.MaxLen && e.SelectedText() == "" {
		return
	}
	e.Entry.TypedRune(r)
}

// Keyboard shows a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
