package builder

import (
	"regexp"
	"testing"

	"github.com/okunev/nostrcal/internal/entity"
	"github.com/okunev/nostrcal/internal/record"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendarEvent(t *testing.T) {
	form := EventForm{
		AuthorKey: "author1",
		Kind:      record.KindTimeBasedEvent,
		Title:     "Bitcoin Meetup",
		Summary:   "monthly meetup",
		Location:  "Lisbon",
		Image:     "https://example.com/img.png",
		Hashtags:  []string{"bitcoin", "meetup"},
		Participants: []entity.Participant{
			{PubKey: "pk1", Role: "speaker"},
			{PubKey: "pk2"},
		},
		Start:    "1700003600",
		End:      "1700007200",
		TimeZone: "Europe/Lisbon",
	}

	r, err := BuildCalendarEvent(form)
	require.NoError(t, err)
	require.Equal(t, record.KindTimeBasedEvent, r.Kind)
	require.Equal(t, "monthly meetup", r.Content)
	require.Equal(t, record.ComputeID(r), r.ID)
	require.NotZero(t, r.CreatedAt)

	require.Equal(t, [][]string{
		{"title", "Bitcoin Meetup"},
		{"summary", "monthly meetup"},
		{"location", "Lisbon"},
		{"image", "https://example.com/img.png"},
		{"t", "bitcoin"},
		{"t", "meetup"},
		{"p", "pk1", "speaker"},
		{"p", "pk2", "attendee"},
		{"start", "1700003600"},
		{"end", "1700007200"},
		{"start_tzid", "Europe/Lisbon"},
		{"end_tzid", "Europe/Lisbon"},
	}, r.Tags[:len(r.Tags)-1])

	last := r.Tags[len(r.Tags)-1]
	require.Equal(t, "d", last[0])
	require.Regexp(t, regexp.MustCompile(`^[a-z0-9]{8}$`), last[1])
}

func TestBuildCalendarEventRoundTrip(t *testing.T) {
	form := EventForm{
		AuthorKey:    "author1",
		Kind:         record.KindDateBasedEvent,
		Title:        "Conference",
		Summary:      "two day conf",
		Location:     "Berlin",
		Hashtags:     []string{"conf", "go", "conf"},
		Participants: []entity.Participant{{PubKey: "pk1", Role: "organizer"}},
		Start:        "2026-10-01",
		End:          "2026-10-02",
	}

	r, err := BuildCalendarEvent(form)
	require.NoError(t, err)

	e := entity.DecodeCalendarEvent(r)
	require.Equal(t, form.Title, e.Title)
	require.Equal(t, form.Summary, e.Summary)
	require.Equal(t, form.Location, e.Location)
	require.Equal(t, form.Hashtags, e.Hashtags)
	require.Equal(t, form.Participants, e.Participants)
	require.Equal(t, form.Start, e.Start)
	require.Equal(t, form.End, e.End)
	require.Equal(t, form.AuthorKey, e.AuthorKey)
	require.Equal(t, form.Kind, e.Kind)
	require.NotEmpty(t, e.SlotID)
}

func TestBuildCalendarEventValidation(t *testing.T) {
	_, err := BuildCalendarEvent(EventForm{Kind: record.KindTimeBasedEvent})
	require.ErrorIs(t, err, ErrTitleRequired)

	_, err = BuildCalendarEvent(EventForm{Title: "x", Kind: record.KindRSVP})
	require.ErrorIs(t, err, ErrBadEventKind)
}

func TestBuildCalendarEventReusesSlot(t *testing.T) {
	form := EventForm{AuthorKey: "a", Kind: record.KindTimeBasedEvent, Title: "T", SlotID: "keepslot"}
	r, err := BuildCalendarEvent(form)
	require.NoError(t, err)
	require.Equal(t, "keepslot", entity.DecodeCalendarEvent(r).SlotID)
}

func TestBuildRSVP(t *testing.T) {
	event := entity.CalendarEvent{
		ID:        "event1",
		AuthorKey: "host",
		Kind:      record.KindTimeBasedEvent,
		SlotID:    "slot1",
	}

	r, err := BuildRSVP(RSVPForm{AuthorKey: "guest", Event: event, Status: entity.StatusAccepted, FreeBusy: "busy", Note: "see you"})
	require.NoError(t, err)
	require.Equal(t, record.KindRSVP, r.Kind)
	require.Equal(t, record.ComputeID(r), r.ID)

	v := entity.DecodeRSVP(r)
	require.Equal(t, "31923:host:slot1", v.Coordinate)
	require.Equal(t, "event1", v.EventID)
	require.Equal(t, "host", v.EventAuthorKey)
	require.Equal(t, entity.StatusAccepted, v.Status)
	require.Equal(t, "busy", v.FreeBusy)
	require.Equal(t, "see you", v.Content)
	require.NotEmpty(t, v.SlotID)
}

func TestBuildRSVPValidation(t *testing.T) {
	event := entity.CalendarEvent{ID: "e", AuthorKey: "h", Kind: record.KindTimeBasedEvent, SlotID: "s"}

	_, err := BuildRSVP(RSVPForm{AuthorKey: "g", Event: event, Status: "maybe"})
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = BuildRSVP(RSVPForm{AuthorKey: "g", Event: entity.CalendarEvent{ID: "e"}, Status: entity.StatusAccepted})
	require.ErrorIs(t, err, ErrEventNotSlotted)
}

func TestBuildCalendarList(t *testing.T) {
	events := []entity.CalendarEvent{
		{ID: "e1", AuthorKey: "a1", Kind: record.KindTimeBasedEvent, SlotID: "s1"},
		{ID: "e2", AuthorKey: "a2", Kind: record.KindDateBasedEvent, SlotID: "s2"},
		{ID: "e3", AuthorKey: "a3", Kind: record.KindTimeBasedEvent}, // no slot, skipped
	}

	r, err := BuildCalendarList(CalendarForm{AuthorKey: "curator", Title: "Conferences", Events: events})
	require.NoError(t, err)
	require.Equal(t, record.KindCalendarList, r.Kind)
	require.Equal(t, "", r.Content)

	c := entity.DecodeCalendarList(r)
	require.Equal(t, "Conferences", c.Title)
	require.Equal(t, []string{"31923:a1:s1", "31922:a2:s2"}, c.MemberCoordinates)
	require.NotEmpty(t, c.SlotID)
}

func TestBuildCalendarListValidation(t *testing.T) {
	_, err := BuildCalendarList(CalendarForm{AuthorKey: "c"})
	require.ErrorIs(t, err, ErrTitleRequired)

	_, err = BuildCalendarList(CalendarForm{AuthorKey: "c", Title: "T"})
	require.ErrorIs(t, err, ErrNoMemberEvents)

	_, err = BuildCalendarList(CalendarForm{AuthorKey: "c", Title: "T", Events: []entity.CalendarEvent{{ID: "e"}}})
	require.ErrorIs(t, err, ErrNoMemberEvents)
}

func TestNewSlotID(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := NewSlotID()
		require.Regexp(t, regexp.MustCompile(`^[a-z0-9]{8}$`), id)
		seen[id] = struct{}{}
	}
	require.Greater(t, len(seen), 90)
}
