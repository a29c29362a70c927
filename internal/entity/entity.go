package entity

// Default titles applied when a record carries no usable title tag.
const (
	DefaultEventTitle    = "Untitled Event"
	DefaultCalendarTitle = "Untitled Calendar"
)

// RSVP statuses.
const (
	StatusAccepted  = "accepted"
	StatusDeclined  = "declined"
	StatusTentative = "tentative"
)

// DefaultParticipantRole is assumed when a participant tag carries no
// role value.
const DefaultParticipantRole = "attendee"

// Participant is a pubkey invited to or involved in a calendar event.
type Participant struct {
	PubKey string `json:"pubkey"`
	Role   string `json:"role"`
}

// CalendarEvent is a decoded date-based (31922) or time-based (31923)
// calendar event. Start and End are decimal Unix seconds for
// time-based events and ISO YYYY-MM-DD dates for date-based ones; they
// must never be compared across kinds without renormalizing.
type CalendarEvent struct {
	ID           string        `json:"id"`
	AuthorKey    string        `json:"authorKey"`
	CreatedAt    int64         `json:"createdAt"`
	Kind         int           `json:"kind"`
	SlotID       string        `json:"slotId"`
	Title        string        `json:"title"`
	Summary      string        `json:"summary"`
	Start        string        `json:"start,omitempty"`
	End          string        `json:"end,omitempty"`
	Location     string        `json:"location,omitempty"`
	Image        string        `json:"image,omitempty"`
	Hashtags     []string      `json:"hashtags"`
	Participants []Participant `json:"participants"`
}

// CalendarList is a decoded user-curated calendar (31924). Member
// events are referenced by coordinate, not id, so the references
// survive event republishing.
type CalendarList struct {
	ID                string   `json:"id"`
	AuthorKey         string   `json:"authorKey"`
	CreatedAt         int64    `json:"createdAt"`
	Kind              int      `json:"kind"`
	SlotID            string   `json:"slotId"`
	Title             string   `json:"title"`
	MemberCoordinates []string `json:"memberCoordinates"`
}

// RSVP is a decoded response (31925) to a calendar event, referencing
// it both by id (as of RSVP time) and by coordinate.
type RSVP struct {
	ID             string `json:"id"`
	AuthorKey      string `json:"authorKey"`
	CreatedAt      int64  `json:"createdAt"`
	Kind           int    `json:"kind"`
	Content        string `json:"content"`
	EventID        string `json:"eventId"`
	Coordinate     string `json:"coordinate"`
	SlotID         string `json:"slotId"`
	Status         string `json:"status"`
	FreeBusy       string `json:"freeBusy,omitempty"`
	EventAuthorKey string `json:"eventAuthorKey"`
}

// Entity is the closed set of decoded record types. Call sites that do
// not statically know a record's kind switch over the three concrete
// types.
type Entity interface {
	isEntity()
}

func (CalendarEvent) isEntity() {}
func (CalendarList) isEntity()  {}
func (RSVP) isEntity()          {}

// ValidStatus reports whether s is one of the three RSVP statuses.
func ValidStatus(s string) bool {
	return s == StatusAccepted || s == StatusDeclined || s == StatusTentative
}
