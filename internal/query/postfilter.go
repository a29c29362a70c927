package query

import (
	"strconv"
	"time"

	"github.com/okunev/nostrcal/internal/entity"
	"github.com/okunev/nostrcal/internal/record"
)

// FutureEvents keeps events whose start is strictly after now, using
// the kind's own time axis: Unix seconds for time-based events, a
// calendar date at local midnight for date-based ones. Events with an
// absent or unparseable start are kept rather than hidden.
func FutureEvents(events []entity.CalendarEvent, now time.Time) []entity.CalendarEvent {
	kept := make([]entity.CalendarEvent, 0, len(events))
	for _, e := range events {
		if startsAfter(e, now) {
			kept = append(kept, e)
		}
	}
	return kept
}

func startsAfter(e entity.CalendarEvent, now time.Time) bool {
	if e.Start == "" {
		return true
	}
	switch e.Kind {
	case record.KindTimeBasedEvent:
		sec, err := strconv.ParseInt(e.Start, 10, 64)
		if err != nil {
			return true
		}
		return time.Unix(sec, 0).After(now)
	case record.KindDateBasedEvent:
		day, err := time.ParseInLocation("2006-01-02", e.Start, now.Location())
		if err != nil {
			return true
		}
		return day.After(now)
	}
	return true
}
