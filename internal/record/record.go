package record

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// NIP-52 record kinds.
const (
	KindDateBasedEvent = 31922
	KindTimeBasedEvent = 31923
	KindCalendarList   = 31924
	KindRSVP           = 31925
)

// EventKinds lists the two calendar-event kinds, used by every
// event-list filter.
func EventKinds() []int {
	return []int{KindDateBasedEvent, KindTimeBasedEvent}
}

// Raw is the wire shape of a relay record.
type Raw struct {
	ID        string     `json:"id"`
	PubKey    string     `json:"pubkey"`
	CreatedAt int64      `json:"created_at"`
	Kind      int        `json:"kind"`
	Content   string     `json:"content"`
	Tags      [][]string `json:"tags"`
}

// preimage fixes the key order of the canonical object the id is
// derived from.
type preimage struct {
	PubKey    string     `json:"pubkey"`
	CreatedAt int64      `json:"created_at"`
	Kind      int        `json:"kind"`
	Content   string     `json:"content"`
	Tags      [][]string `json:"tags"`
}

// ComputeID returns the content-derived identifier of a record: the hex
// SHA-256 of its canonical pre-image JSON. The record's own ID field is
// ignored.
func ComputeID(r Raw) string {
	tags := r.Tags
	if tags == nil {
		tags = [][]string{}
	}
	data, _ := json.Marshal(preimage{
		PubKey:    r.PubKey,
		CreatedAt: r.CreatedAt,
		Kind:      r.Kind,
		Content:   r.Content,
		Tags:      tags,
	})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
