package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-meetingtime/internal/config"
)

// DisplayName renders a timezone identifier for people: underscores become spaces.
func DisplayName(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}

// FormatSummary builds the multi-line text copied to the clipboard:
//
//	Meeting Time:
//
//	America/New York: 02:00 PM (Fri, Oct 17)
func FormatSummary(now time.Time, state SelectionState) (string, error) {
	if len(state.Timezones) == 0 {
		return "", ErrNothingToCopy
	}

	var b strings.Builder
	b.WriteString(config.SummaryHeader)

	for _, id := range state.Timezones {
		info, err := ComputeLocalTime(now, state.ReferenceTime, id)
		if err != nil {
			return "", fmt.Errorf("%s: %w", config.ErrRenderZone, err)
		}
		fmt.Fprintf(&b, config.SummaryLineFormat, DisplayName(id), info.FormattedTime, info.FormattedDate)
	}

	return b.String(), nil
}
