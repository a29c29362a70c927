package builder

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/okunev/nostrcal/internal/entity"
	"github.com/okunev/nostrcal/internal/record"
)

// Validation errors, returned before any record is built or handed to
// the publish path.
var (
	ErrTitleRequired    = errors.New("title is required")
	ErrBadEventKind     = errors.New("kind must be a calendar-event kind")
	ErrInvalidStatus    = errors.New("status must be accepted, declined or tentative")
	ErrEventNotSlotted  = errors.New("referenced event has no slot identifier")
	ErrNoMemberEvents   = errors.New("calendar needs at least one member event")
)

// EventForm is the input for a new calendar event. Start and End use
// the kind's encoding: decimal Unix seconds for KindTimeBasedEvent,
// YYYY-MM-DD for KindDateBasedEvent. SlotID may carry a previous slot
// id to republish the same logical event; when empty a fresh one is
// generated.
type EventForm struct {
	AuthorKey    string               `json:"authorKey"`
	Kind         int                  `json:"kind"`
	Title        string               `json:"title"`
	Summary      string               `json:"summary"`
	Location     string               `json:"location"`
	Image        string               `json:"image"`
	Hashtags     []string             `json:"hashtags"`
	Participants []entity.Participant `json:"participants"`
	Start        string               `json:"start"`
	End          string               `json:"end"`
	TimeZone     string               `json:"timeZone"`
	SlotID       string               `json:"slotId"`
}

// BuildCalendarEvent produces the tag list and canonical record for a
// new calendar event. Tag order: descriptive single-valued fields
// first, then hashtags and participants in entry order, then dates,
// with the slot identifier last.
func BuildCalendarEvent(form EventForm) (record.Raw, error) {
	if form.Title == "" {
		return record.Raw{}, ErrTitleRequired
	}
	if form.Kind != record.KindDateBasedEvent && form.Kind != record.KindTimeBasedEvent {
		return record.Raw{}, fmt.Errorf("kind %d: %w", form.Kind, ErrBadEventKind)
	}

	tags := make([][]string, 0, 8+len(form.Hashtags)+len(form.Participants))
	tags = append(tags, []string{"title", form.Title})
	if form.Summary != "" {
		tags = append(tags, []string{"summary", form.Summary})
	}
	if form.Location != "" {
		tags = append(tags, []string{"location", form.Location})
	}
	if form.Image != "" {
		tags = append(tags, []string{"image", form.Image})
	}
	for _, h := range form.Hashtags {
		if h == "" {
			continue
		}
		tags = append(tags, []string{"t", h})
	}
	for _, p := range form.Participants {
		if p.PubKey == "" {
			continue
		}
		role := p.Role
		if role == "" {
			role = entity.DefaultParticipantRole
		}
		tags = append(tags, []string{"p", p.PubKey, role})
	}
	if form.Start != "" {
		tags = append(tags, []string{"start", form.Start})
	}
	if form.End != "" {
		tags = append(tags, []string{"end", form.End})
	}
	if form.Kind == record.KindTimeBasedEvent && form.TimeZone != "" {
		tags = append(tags, []string{"start_tzid", form.TimeZone})
		tags = append(tags, []string{"end_tzid", form.TimeZone})
	}
	slotID := form.SlotID
	if slotID == "" {
		slotID = NewSlotID()
	}
	tags = append(tags, []string{"d", slotID})

	return finalize(record.Raw{
		PubKey:  form.AuthorKey,
		Kind:    form.Kind,
		Content: form.Summary,
		Tags:    tags,
	}), nil
}

// RSVPForm is the input for a response to an already-decoded event.
type RSVPForm struct {
	AuthorKey string
	Event     entity.CalendarEvent
	Status    string
	FreeBusy  string
	Note      string
}

// BuildRSVP produces a 31925 record referencing the event both by
// coordinate and by its current id.
func BuildRSVP(form RSVPForm) (record.Raw, error) {
	if !entity.ValidStatus(form.Status) {
		return record.Raw{}, fmt.Errorf("status %q: %w", form.Status, ErrInvalidStatus)
	}
	if form.Event.SlotID == "" {
		return record.Raw{}, ErrEventNotSlotted
	}

	coordinate := record.FormatCoordinate(form.Event.Kind, form.Event.AuthorKey, form.Event.SlotID)
	tags := [][]string{
		{"a", coordinate},
		{"e", form.Event.ID},
		{"p", form.Event.AuthorKey},
		{"status", form.Status},
	}
	if form.FreeBusy != "" {
		tags = append(tags, []string{"fb", form.FreeBusy})
	}
	tags = append(tags, []string{"d", NewSlotID()})

	return finalize(record.Raw{
		PubKey:  form.AuthorKey,
		Kind:    record.KindRSVP,
		Content: form.Note,
		Tags:    tags,
	}), nil
}

// CalendarForm is the input for a new user-curated calendar grouping
// already-decoded events.
type CalendarForm struct {
	AuthorKey string
	Title     string
	Events    []entity.CalendarEvent
}

// BuildCalendarList produces a 31924 record whose member events are
// referenced by coordinate. Events without a slot id cannot be
// referenced and are skipped.
func BuildCalendarList(form CalendarForm) (record.Raw, error) {
	if form.Title == "" {
		return record.Raw{}, ErrTitleRequired
	}

	tags := make([][]string, 0, len(form.Events)+2)
	tags = append(tags, []string{"title", form.Title})
	members := 0
	for _, e := range form.Events {
		if e.SlotID == "" {
			continue
		}
		tags = append(tags, []string{"a", record.FormatCoordinate(e.Kind, e.AuthorKey, e.SlotID)})
		members++
	}
	if members == 0 {
		return record.Raw{}, ErrNoMemberEvents
	}
	tags = append(tags, []string{"d", NewSlotID()})

	return finalize(record.Raw{
		PubKey: form.AuthorKey,
		Kind:   record.KindCalendarList,
		Tags:   tags,
	}), nil
}

func finalize(r record.Raw) record.Raw {
	r.CreatedAt = time.Now().Unix()
	r.ID = record.ComputeID(r)
	return r
}

const (
	slotIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	slotIDLength   = 8
)

// NewSlotID generates a short random alphanumeric slot identifier.
// Stable identity across republishes requires the caller to keep and
// reuse it.
func NewSlotID() string {
	buf := make([]byte, slotIDLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	for i := range buf {
		buf[i] = slotIDAlphabet[int(buf[i])%len(slotIDAlphabet)]
	}
	return string(buf)
}
