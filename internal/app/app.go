package app

import (
	"context"

	"github.com/okunev/nostrcal/internal/bridge"
	"github.com/okunev/nostrcal/internal/builder"
	"github.com/okunev/nostrcal/internal/entity"
	"github.com/okunev/nostrcal/internal/query"
)

// App wires the query planner and the host bridge behind one facade,
// one method per view or mutation.
type App struct {
	Planner *query.Planner
	Bridge  *bridge.Bridge
	origin  string
}

func New(planner *query.Planner, b *bridge.Bridge) *App {
	return &App{Planner: planner, Bridge: b, origin: bridge.NewOrigin()}
}

func (a *App) CurrentUser() bridge.User {
	return a.Bridge.CurrentUser()
}

func (a *App) UpcomingEvents(ctx context.Context, hashtags []string) ([]entity.CalendarEvent, error) {
	return a.Planner.UpcomingEvents(ctx, hashtags)
}

func (a *App) UserEvents(ctx context.Context, pubkey string, hashtags []string) ([]entity.CalendarEvent, error) {
	return a.Planner.UserEvents(ctx, pubkey, hashtags)
}

func (a *App) UserRSVPEvents(ctx context.Context, pubkey string) ([]entity.CalendarEvent, error) {
	return a.Planner.UserRSVPEvents(ctx, pubkey)
}

func (a *App) EventRSVPs(ctx context.Context, eventID string) ([]entity.RSVP, error) {
	return a.Planner.EventRSVPs(ctx, eventID)
}

func (a *App) UserCalendars(ctx context.Context, pubkey string) ([]entity.CalendarList, error) {
	return a.Planner.UserCalendars(ctx, pubkey)
}

func (a *App) CalendarEvents(ctx context.Context, calendar entity.CalendarList) ([]entity.CalendarEvent, error) {
	return a.Planner.CalendarEvents(ctx, calendar)
}

// CreateEvent validates and builds a calendar event, then requests
// publication. A validation failure never reaches the bridge.
func (a *App) CreateEvent(ctx context.Context, form builder.EventForm) (bridge.PublishOutcome, error) {
	if form.AuthorKey == "" {
		form.AuthorKey = a.Bridge.CurrentUser().PublicKey
	}
	r, err := builder.BuildCalendarEvent(form)
	if err != nil {
		return bridge.PublishOutcome{}, err
	}
	return a.Bridge.RequestPublish(r, a.origin), nil
}

// CreateRSVP resolves the referenced event first so the RSVP carries
// both its id and its coordinate.
func (a *App) CreateRSVP(ctx context.Context, eventID, status, freeBusy, note string) (bridge.PublishOutcome, error) {
	event, err := a.Planner.EventByID(ctx, eventID)
	if err != nil {
		return bridge.PublishOutcome{}, err
	}
	r, err := builder.BuildRSVP(builder.RSVPForm{
		AuthorKey: a.Bridge.CurrentUser().PublicKey,
		Event:     event,
		Status:    status,
		FreeBusy:  freeBusy,
		Note:      note,
	})
	if err != nil {
		return bridge.PublishOutcome{}, err
	}
	return a.Bridge.RequestPublish(r, a.origin), nil
}

// CreateCalendar groups already-published events, referenced by id at
// selection time, into a new calendar list.
func (a *App) CreateCalendar(ctx context.Context, title string, eventIDs []string) (bridge.PublishOutcome, error) {
	events, err := a.Planner.EventsByIDs(ctx, eventIDs)
	if err != nil {
		return bridge.PublishOutcome{}, err
	}
	r, err := builder.BuildCalendarList(builder.CalendarForm{
		AuthorKey: a.Bridge.CurrentUser().PublicKey,
		Title:     title,
		Events:    events,
	})
	if err != nil {
		return bridge.PublishOutcome{}, err
	}
	return a.Bridge.RequestPublish(r, a.origin), nil
}
