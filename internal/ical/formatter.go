package ical

import (
	"strconv"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/okunev/nostrcal/internal/entity"
	"github.com/okunev/nostrcal/internal/record"
)

// Format renders decoded calendar events as an ICS feed. Time-based
// events become timed VEVENTs, date-based ones all-day VEVENTs.
// Events whose start cannot be parsed on their kind's axis are
// skipped; the feed stays fail-open for the rest.
func Format(name string, events []entity.CalendarEvent) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//nostrcal//EN")
	if name != "" {
		cal.SetName(name)
	}

	for _, e := range events {
		start, end, ok := eventTimes(e)
		if !ok {
			continue
		}

		ve := cal.AddEvent(e.ID)
		ve.SetSummary(e.Title)
		if e.Summary != "" {
			ve.SetDescription(e.Summary)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.Kind == record.KindDateBasedEvent {
			ve.SetAllDayStartAt(start)
			if !end.IsZero() {
				ve.SetAllDayEndAt(end)
			}
		} else {
			ve.SetStartAt(start)
			if !end.IsZero() {
				ve.SetEndAt(end)
			}
		}
	}
	return cal.Serialize()
}

func eventTimes(e entity.CalendarEvent) (start, end time.Time, ok bool) {
	switch e.Kind {
	case record.KindTimeBasedEvent:
		sec, err := strconv.ParseInt(e.Start, 10, 64)
		if err != nil {
			return start, end, false
		}
		start = time.Unix(sec, 0).UTC()
		if sec, err := strconv.ParseInt(e.End, 10, 64); err == nil {
			end = time.Unix(sec, 0).UTC()
		}
		return start, end, true
	case record.KindDateBasedEvent:
		day, err := time.Parse("2006-01-02", e.Start)
		if err != nil {
			return start, end, false
		}
		start = day
		if day, err := time.Parse("2006-01-02", e.End); err == nil {
			end = day
		}
		return start, end, true
	}
	return start, end, false
}
