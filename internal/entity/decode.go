package entity

import (
	"github.com/okunev/nostrcal/internal/record"
)

// The decoders are total: any raw record, including one with nil or
// malformed tags, decodes to an entity with every missing field at its
// documented default. Malformed tags are never an error.

// DecodeCalendarEvent decodes a 31922/31923 record.
func DecodeCalendarEvent(r record.Raw) CalendarEvent {
	tags := record.NewTagMap(r.Tags)

	e := CalendarEvent{
		ID:           r.ID,
		AuthorKey:    r.PubKey,
		CreatedAt:    r.CreatedAt,
		Kind:         r.Kind,
		SlotID:       tags.First("d"),
		Title:        tags.First("title"),
		Summary:      tags.First("summary"),
		Start:        tags.First("start"),
		End:          tags.First("end"),
		Location:     tags.First("location"),
		Image:        tags.First("image"),
		Hashtags:     []string{},
		Participants: []Participant{},
	}
	if e.Title == "" {
		e.Title = DefaultEventTitle
	}
	if e.Summary == "" {
		e.Summary = r.Content
	}

	for _, tuple := range tags.All("t") {
		if len(tuple) == 0 {
			continue
		}
		e.Hashtags = append(e.Hashtags, tuple[0])
	}

	for _, tuple := range tags.All("p") {
		if len(tuple) == 0 || tuple[0] == "" {
			continue
		}
		role := DefaultParticipantRole
		if len(tuple) >= 2 && tuple[1] != "" {
			role = tuple[1]
		}
		e.Participants = append(e.Participants, Participant{PubKey: tuple[0], Role: role})
	}
	return e
}

// DecodeCalendarList decodes a 31924 record.
func DecodeCalendarList(r record.Raw) CalendarList {
	tags := record.NewTagMap(r.Tags)

	c := CalendarList{
		ID:                r.ID,
		AuthorKey:         r.PubKey,
		CreatedAt:         r.CreatedAt,
		Kind:              r.Kind,
		SlotID:            tags.First("d"),
		Title:             tags.First("title"),
		MemberCoordinates: []string{},
	}
	if c.Title == "" {
		c.Title = DefaultCalendarTitle
	}

	for _, tuple := range tags.All("a") {
		if len(tuple) == 0 || tuple[0] == "" {
			continue
		}
		c.MemberCoordinates = append(c.MemberCoordinates, tuple[0])
	}
	return c
}

// DecodeRSVP decodes a 31925 record.
func DecodeRSVP(r record.Raw) RSVP {
	tags := record.NewTagMap(r.Tags)

	return RSVP{
		ID:             r.ID,
		AuthorKey:      r.PubKey,
		CreatedAt:      r.CreatedAt,
		Kind:           r.Kind,
		Content:        r.Content,
		EventID:        tags.First("e"),
		Coordinate:     tags.First("a"),
		SlotID:         tags.First("d"),
		Status:         tags.First("status"),
		FreeBusy:       tags.First("fb"),
		EventAuthorKey: tags.First("p"),
	}
}

// Decode dispatches on the record kind. The second return value is
// false for kinds outside the calendar set.
func Decode(r record.Raw) (Entity, bool) {
	switch r.Kind {
	case record.KindDateBasedEvent, record.KindTimeBasedEvent:
		return DecodeCalendarEvent(r), true
	case record.KindCalendarList:
		return DecodeCalendarList(r), true
	case record.KindRSVP:
		return DecodeRSVP(r), true
	default:
		return nil, false
	}
}
