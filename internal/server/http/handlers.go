package internalhttp

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/okunev/nostrcal/internal/builder"
	"github.com/okunev/nostrcal/internal/entity"
	"github.com/okunev/nostrcal/internal/ical"
	"github.com/okunev/nostrcal/internal/query"
	log "github.com/sirupsen/logrus"
)

const (
	errInternalServerError = "internal server error"
	errCalendarNotFound    = "calendar not found"
	errBadRequestBody      = "invalid request body"
)

func (s *Server) registerRoutes(mux *runtime.ServeMux) {
	mux.HandlePath("GET", "/me", s.currentUser)
	mux.HandlePath("GET", "/events/upcoming", s.upcomingEvents)
	mux.HandlePath("GET", "/events/{id}/rsvps", s.eventRSVPs)
	mux.HandlePath("GET", "/users/{pubkey}/events", s.userEvents)
	mux.HandlePath("GET", "/users/{pubkey}/rsvped-events", s.userRSVPEvents)
	mux.HandlePath("GET", "/users/{pubkey}/calendars", s.userCalendars)
	mux.HandlePath("GET", "/users/{pubkey}/calendars/{slot}/events", s.calendarEvents)
	mux.HandlePath("GET", "/users/{pubkey}/calendars/{slot}/ics", s.calendarICS)
	mux.HandlePath("POST", "/events", s.createEvent)
	mux.HandlePath("POST", "/rsvps", s.createRSVP)
	mux.HandlePath("POST", "/calendars", s.createCalendar)
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	writeJSON(w, http.StatusOK, s.app.CurrentUser())
}

func (s *Server) upcomingEvents(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	events, err := s.app.UpcomingEvents(r.Context(), r.URL.Query()["t"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) userEvents(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	events, err := s.app.UserEvents(r.Context(), pathParams["pubkey"], r.URL.Query()["t"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) userRSVPEvents(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	events, err := s.app.UserRSVPEvents(r.Context(), pathParams["pubkey"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) eventRSVPs(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	rsvps, err := s.app.EventRSVPs(r.Context(), pathParams["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rsvps)
}

func (s *Server) userCalendars(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	calendars, err := s.app.UserCalendars(r.Context(), pathParams["pubkey"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calendars)
}

func (s *Server) findCalendar(r *http.Request, pathParams map[string]string) (entity.CalendarList, bool, error) {
	calendars, err := s.app.UserCalendars(r.Context(), pathParams["pubkey"])
	if err != nil {
		return entity.CalendarList{}, false, err
	}
	for _, c := range calendars {
		if c.SlotID == pathParams["slot"] {
			return c, true, nil
		}
	}
	return entity.CalendarList{}, false, nil
}

func (s *Server) calendarEvents(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	calendar, found, err := s.findCalendar(r, pathParams)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		http.Error(w, errCalendarNotFound, http.StatusNotFound)
		return
	}
	events, err := s.app.CalendarEvents(r.Context(), calendar)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) calendarICS(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	calendar, found, err := s.findCalendar(r, pathParams)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		http.Error(w, errCalendarNotFound, http.StatusNotFound)
		return
	}
	events, err := s.app.CalendarEvents(r.Context(), calendar)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Write([]byte(ical.Format(calendar.Title, events)))
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var form builder.EventForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, errBadRequestBody, http.StatusBadRequest)
		return
	}
	outcome, err := s.app.CreateEvent(r.Context(), form)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, outcome)
}

type rsvpRequest struct {
	EventID  string `json:"eventId"`
	Status   string `json:"status"`
	FreeBusy string `json:"freeBusy"`
	Note     string `json:"note"`
}

func (s *Server) createRSVP(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req rsvpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, errBadRequestBody, http.StatusBadRequest)
		return
	}
	outcome, err := s.app.CreateRSVP(r.Context(), req.EventID, req.Status, req.FreeBusy, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, outcome)
}

type calendarRequest struct {
	Title    string   `json:"title"`
	EventIDs []string `json:"eventIds"`
}

func (s *Server) createCalendar(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var req calendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, errBadRequestBody, http.StatusBadRequest)
		return
	}
	outcome, err := s.app.CreateCalendar(r.Context(), req.Title, req.EventIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, outcome)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, query.ErrEventNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, builder.ErrTitleRequired),
		errors.Is(err, builder.ErrBadEventKind),
		errors.Is(err, builder.ErrInvalidStatus),
		errors.Is(err, builder.ErrEventNotSlotted),
		errors.Is(err, builder.ErrNoMemberEvents):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("request failed: %v", err)
		http.Error(w, errInternalServerError, http.StatusInternalServerError)
	}
}
