package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-meetingtime/internal/config"
)

// BuildCalendar exports the selection as an iCalendar object holding a single
// event at today's reference time. The description carries the per-zone summary.
// An empty selection yields a valid calendar with no events.
func BuildCalendar(now time.Time, state SelectionState, duration time.Duration) ([]byte, error) {
	if len(state.Timezones) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	description, err := FormatSummary(now, state)
	if err != nil {
		return nil, err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	start := anchor(now, state.ReferenceTime)

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, eventUID(start))
	event.Props.SetText(config.PropSummary, config.ICalSummary)
	event.Props.SetText(config.PropDescription, description)
	setDateTime(event, config.PropDTStamp, now.UTC())
	setDateTime(event, config.PropDTStart, start.UTC())
	setDateTime(event, config.PropDTEnd, start.Add(duration).UTC())

	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeySizeBytes, buf.Len())
	return buf.Bytes(), nil
}

func setDateTime(event *ical.Event, name string, t time.Time) {
	prop := ical.NewProp(name)
	prop.SetDateTime(t)
	event.Props.Set(prop)
}

// eventUID is derived from the start instant so that calendar clients
// update the same event instead of duplicating it on every refresh.
func eventUID(start time.Time) string {
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.UIDSalt+start.UTC().Format(time.RFC3339)))
	return fmt.Sprintf(config.FormatUID, id.String(), config.ICalDomain)
}
