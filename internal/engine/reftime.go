package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/go-meetingtime/internal/config"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ReferenceTime is a timezone-less hour:minute, interpreted in the observer's zone.
type ReferenceTime struct {
	Hour   int `validate:"gte=0,lte=23"`
	Minute int `validate:"gte=0,lte=59"`
}

// DefaultReferenceTime is used when nothing has been persisted yet.
func DefaultReferenceTime() ReferenceTime {
	return ReferenceTime{Hour: config.DefaultHour, Minute: config.DefaultMinute}
}

// NewReferenceTime builds a ReferenceTime, rejecting out-of-range values.
func NewReferenceTime(hour, minute int) (ReferenceTime, error) {
	rt := ReferenceTime{Hour: hour, Minute: minute}
	if err := rt.Validate(); err != nil {
		return ReferenceTime{}, err
	}
	return rt, nil
}

// ReferenceTimeOf captures the wall-clock hour and minute of t.
func ReferenceTimeOf(t time.Time) ReferenceTime {
	return ReferenceTime{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseReferenceTime parses the "HH:MM" form used in storage and text entry.
func ParseReferenceTime(s string) (ReferenceTime, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), config.ReferenceTimeSep)
	if !ok || !isClockField(hh) || !isClockField(mm) {
		return ReferenceTime{}, &InvalidTimeError{Value: s}
	}

	// isClockField guarantees one or two ASCII digits, so Atoi cannot fail.
	hour, _ := strconv.Atoi(hh)
	minute, _ := strconv.Atoi(mm)

	return NewReferenceTime(hour, minute)
}

// Validate checks the hour and minute ranges.
func (rt ReferenceTime) Validate() error {
	if err := validate.Struct(rt); err != nil {
		return &InvalidTimeError{Value: rt.String(), Err: err}
	}
	return nil
}

// String renders the zero-padded "HH:MM" form.
func (rt ReferenceTime) String() string {
	return fmt.Sprintf(config.ReferenceTimeFormat, rt.Hour, rt.Minute)
}

func isClockField(s string) bool {
	if len(s) == 0 || len(s) > 2 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
