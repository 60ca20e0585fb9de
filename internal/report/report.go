// Package report renders a selection as a colored terminal table.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/tartampluch/go-meetingtime/internal/config"
	"github.com/tartampluch/go-meetingtime/internal/engine"
)

var (
	businessColor = color.New(color.FgGreen, color.Bold)
	offHoursColor = color.New(color.FgHiBlack)
	errorColor    = color.New(color.FgRed)
)

// Print writes one line per selected timezone, with business hours in green.
// Unknown identifiers are reported inline and do not stop the listing.
func Print(w io.Writer, now time.Time, state engine.SelectionState) error {
	if len(state.Timezones) == 0 {
		_, err := fmt.Fprintln(w, config.MsgNoSelection)
		return err
	}

	if _, err := fmt.Fprintf(w, config.PrintHeaderFormat, state.ReferenceTime, now.Location()); err != nil {
		return err
	}

	conv := engine.Converter{Clock: fixedClock(now)}
	for _, v := range conv.Render(state) {
		var timeCol, dateCol string
		switch {
		case v.Err != nil:
			timeCol = errorColor.Sprint(config.ErrUnknownTimezone)
		case v.Info.BusinessHours():
			timeCol = businessColor.Sprint(v.Info.FormattedTime)
			dateCol = v.Info.FormattedDate
		default:
			timeCol = offHoursColor.Sprint(v.Info.FormattedTime)
			dateCol = v.Info.FormattedDate
		}

		if _, err := fmt.Fprintf(w, config.PrintLineFormat, v.Name, timeCol, dateCol); err != nil {
			return err
		}
	}
	return nil
}

// fixedClock pins Render to the instant the report was requested.
type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }
