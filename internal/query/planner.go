package query

import (
	"context"
	"errors"
	"time"

	"github.com/okunev/nostrcal/internal/entity"
	"github.com/okunev/nostrcal/internal/record"
	"github.com/okunev/nostrcal/internal/relay"
	log "github.com/sirupsen/logrus"
)

var ErrEventNotFound = errors.New("event not found")

// Upcoming view looks this far back; the post-filter trims to
// strictly-future afterwards.
const upcomingLookback = 30 * 24 * time.Hour

const (
	defaultFetchTimeout = 10 * time.Second
	defaultResultLimit  = 20
)

type Config struct {
	FetchTimeout time.Duration
	ResultLimit  int
}

// Planner turns view requirements into relay fetches. It holds no
// cache: every view is recomputed from the relay store, and
// invocations for different views are independent.
type Planner struct {
	client  relay.Client
	timeout time.Duration
	limit   int
	now     func() time.Time
}

func New(client relay.Client, config Config) *Planner {
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = defaultFetchTimeout
	}
	if config.ResultLimit <= 0 {
		config.ResultLimit = defaultResultLimit
	}
	return &Planner{
		client:  client,
		timeout: config.FetchTimeout,
		limit:   config.ResultLimit,
		now:     time.Now,
	}
}

// fetch runs one bounded-wait relay query. A deadline hit is not an
// error: the view gets whatever arrived in time.
func (p *Planner) fetch(ctx context.Context, f relay.Filter) ([]record.Raw, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	records, err := p.client.Fetch(ctx, f)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		log.Debugf("fetch timed out, returning %d records", len(records))
		return records, nil
	}
	return records, err
}

// UpcomingEvents plans the global view: recent calendar events of both
// kinds, trimmed client-side to strictly-future starts. Hashtags, when
// given, become a server-side t-tag membership constraint.
func (p *Planner) UpcomingEvents(ctx context.Context, hashtags []string) ([]entity.CalendarEvent, error) {
	f := relay.Filter{
		Kinds: record.EventKinds(),
		Since: p.now().Add(-upcomingLookback).Unix(),
		Limit: p.limit,
	}
	if len(hashtags) > 0 {
		f.Tags = map[string][]string{"t": hashtags}
	}
	records, err := p.fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	events := entity.CollapseEvents(decodeEvents(records))
	return FutureEvents(events, p.now()), nil
}

// UserEvents plans one author's events. No future post-filter: a
// user's page shows their past events too.
func (p *Planner) UserEvents(ctx context.Context, pubkey string, hashtags []string) ([]entity.CalendarEvent, error) {
	f := relay.Filter{
		Kinds:   record.EventKinds(),
		Authors: []string{pubkey},
	}
	if len(hashtags) > 0 {
		f.Tags = map[string][]string{"t": hashtags}
	}
	records, err := p.fetch(ctx, f)
	if err != nil {
		return nil, err
	}
	return entity.CollapseEvents(decodeEvents(records)), nil
}

// UserRSVPEvents resolves a user's RSVPs to the events they reference.
// Phase one fetches the RSVPs; phase two fetches the referenced ids
// and cannot start earlier. Zero RSVPs short-circuits without a
// second fetch.
func (p *Planner) UserRSVPEvents(ctx context.Context, pubkey string) ([]entity.CalendarEvent, error) {
	records, err := p.fetch(ctx, relay.Filter{
		Kinds:   []int{record.KindRSVP},
		Authors: []string{pubkey},
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(records))
	ids := make([]string, 0, len(records))
	for _, r := range records {
		id := entity.DecodeRSVP(r).EventID
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []entity.CalendarEvent{}, nil
	}

	phase2, err := p.fetch(ctx, relay.Filter{Kinds: record.EventKinds(), IDs: ids})
	if err != nil {
		return nil, err
	}
	return entity.CollapseEvents(decodeEvents(phase2)), nil
}

// EventRSVPs plans the responses view for one event, matched on the
// referenced-event-id tag.
func (p *Planner) EventRSVPs(ctx context.Context, eventID string) ([]entity.RSVP, error) {
	records, err := p.fetch(ctx, relay.Filter{
		Kinds: []int{record.KindRSVP},
		Tags:  map[string][]string{"e": {eventID}},
	})
	if err != nil {
		return nil, err
	}
	rsvps := make([]entity.RSVP, 0, len(records))
	for _, r := range records {
		rsvps = append(rsvps, entity.DecodeRSVP(r))
	}
	return rsvps, nil
}

// UserCalendars plans one author's calendar lists.
func (p *Planner) UserCalendars(ctx context.Context, pubkey string) ([]entity.CalendarList, error) {
	records, err := p.fetch(ctx, relay.Filter{
		Kinds:   []int{record.KindCalendarList},
		Authors: []string{pubkey},
	})
	if err != nil {
		return nil, err
	}
	calendars := make([]entity.CalendarList, 0, len(records))
	for _, r := range records {
		calendars = append(calendars, entity.DecodeCalendarList(r))
	}
	return entity.CollapseCalendars(calendars), nil
}

// CalendarEvents resolves a calendar's member coordinates to events by
// slot identifier. An empty derived set short-circuits to an empty
// result without a fetch.
func (p *Planner) CalendarEvents(ctx context.Context, calendar entity.CalendarList) ([]entity.CalendarEvent, error) {
	slotIDs := record.SlotIDs(calendar.MemberCoordinates)
	if len(slotIDs) == 0 {
		return []entity.CalendarEvent{}, nil
	}

	records, err := p.fetch(ctx, relay.Filter{
		Kinds: record.EventKinds(),
		Tags:  map[string][]string{"d": slotIDs},
		Limit: p.limit,
	})
	if err != nil {
		return nil, err
	}
	return entity.CollapseEvents(decodeEvents(records)), nil
}

// EventByID resolves a single calendar event by its record id.
func (p *Planner) EventByID(ctx context.Context, id string) (entity.CalendarEvent, error) {
	records, err := p.fetch(ctx, relay.Filter{Kinds: record.EventKinds(), IDs: []string{id}, Limit: 1})
	if err != nil {
		return entity.CalendarEvent{}, err
	}
	if len(records) == 0 {
		return entity.CalendarEvent{}, ErrEventNotFound
	}
	return entity.DecodeCalendarEvent(records[0]), nil
}

// EventsByIDs resolves a set of event ids, used when curating a
// calendar from selected events.
func (p *Planner) EventsByIDs(ctx context.Context, ids []string) ([]entity.CalendarEvent, error) {
	if len(ids) == 0 {
		return []entity.CalendarEvent{}, nil
	}
	records, err := p.fetch(ctx, relay.Filter{Kinds: record.EventKinds(), IDs: ids})
	if err != nil {
		return nil, err
	}
	return entity.CollapseEvents(decodeEvents(records)), nil
}

func decodeEvents(records []record.Raw) []entity.CalendarEvent {
	events := make([]entity.CalendarEvent, 0, len(records))
	for _, r := range records {
		events = append(events, entity.DecodeCalendarEvent(r))
	}
	return events
}
