package engine

import (
	"time"

	"github.com/maypok86/otter/v2"
	"github.com/tartampluch/go-meetingtime/internal/config"
)

// RenderedTimeInfo is the derived, per-render view of a reference time in one zone.
type RenderedTimeInfo struct {
	// FormattedTime is the 12-hour clock, e.g. "02:00 PM".
	FormattedTime string

	// FormattedDate is the target zone's calendar date, e.g. "Fri, Oct 17".
	FormattedDate string

	// HourOfDay is the 0-23 local hour used for business-hours highlighting.
	HourOfDay int

	// Zone is the abbreviation in effect at that instant (e.g. "JST").
	Zone string

	// Instant is the absolute moment the reference time denotes.
	Instant time.Time
}

// BusinessHours reports whether the rendered hour falls within working hours.
func (r RenderedTimeInfo) BusinessHours() bool {
	return IsBusinessHours(r.HourOfDay)
}

// IsBusinessHours applies the fixed [9,17) local-hour rule, regardless of weekday.
func IsBusinessHours(hour int) bool {
	return hour >= config.BusinessHourStart && hour < config.BusinessHourEnd
}

// locations memoises tz database lookups; LoadLocation reads zoneinfo from disk.
var locations = otter.Must(&otter.Options[string, *time.Location]{
	MaximumSize: config.LocationCacheSize,
})

// LoadLocation resolves a timezone identifier.
// Empty and "Local" are rejected: time.LoadLocation maps them to UTC and the
// host zone respectively, which would hide a bad selection.
func LoadLocation(id string) (*time.Location, error) {
	if id == "" || id == config.LocalZoneName {
		return nil, &UnknownTimezoneError{ID: id}
	}

	if loc, ok := locations.GetIfPresent(id); ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, &UnknownTimezoneError{ID: id, Err: err}
	}
	locations.Set(id, loc)
	return loc, nil
}

// ComputeLocalTime places ref on the calendar day of now, in now's location
// (the observer), and reprojects that instant into the target zone.
// The returned date is the target zone's date, which may differ from the observer's.
func ComputeLocalTime(now time.Time, ref ReferenceTime, tz string) (RenderedTimeInfo, error) {
	if err := ref.Validate(); err != nil {
		return RenderedTimeInfo{}, err
	}

	loc, err := LoadLocation(tz)
	if err != nil {
		return RenderedTimeInfo{}, err
	}

	instant := anchor(now, ref)
	local := instant.In(loc)
	zone, _ := local.Zone()

	return RenderedTimeInfo{
		FormattedTime: local.Format(config.TimeFormat12h),
		FormattedDate: local.Format(config.DateFormatShort),
		HourOfDay:     local.Hour(),
		Zone:          zone,
		Instant:       instant,
	}, nil
}

// anchor returns "today at ref" in the observer's location.
func anchor(now time.Time, ref ReferenceTime) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, ref.Hour, ref.Minute, 0, 0, now.Location())
}

// ZoneView is one rendered row of a selection.
// Err is set instead of Info when the zone could not be resolved.
type ZoneView struct {
	ID   string
	Name string
	Info RenderedTimeInfo
	Err  error
}

// Converter binds ComputeLocalTime to a Clock so callers need not pass "now".
type Converter struct {
	Clock Clock
}

// NewConverter returns a Converter driven by the real wall clock.
func NewConverter() Converter {
	return Converter{Clock: RealClock{}}
}

// LocalTime renders ref in tz for the current day.
func (c Converter) LocalTime(ref ReferenceTime, tz string) (RenderedTimeInfo, error) {
	return ComputeLocalTime(c.Clock.Now(), ref, tz)
}

// Render produces one ZoneView per selected timezone, in selection order.
func (c Converter) Render(state SelectionState) []ZoneView {
	now := c.Clock.Now()
	views := make([]ZoneView, 0, len(state.Timezones))
	for _, id := range state.Timezones {
		info, err := ComputeLocalTime(now, state.ReferenceTime, id)
		views = append(views, ZoneView{
			ID:   id,
			Name: DisplayName(id),
			Info: info,
			Err:  err,
		})
	}
	return views
}
