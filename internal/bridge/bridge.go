package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/okunev/nostrcal/internal/outbox"
	"github.com/okunev/nostrcal/internal/record"
	log "github.com/sirupsen/logrus"
)

// User is the identity the host supplies for the current user.
type User struct {
	PublicKey   string `json:"publicKey"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

// PublishOutcome is the explicit result of a publish request: locally
// accepted into the outbox, or rejected with a reason. Acceptance
// never implies on-relay confirmation.
type PublishOutcome struct {
	RecordID string `json:"recordId"`
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

// Queue is the slice of the outbox the bridge needs.
type Queue interface {
	Publish(body []byte) error
}

// Bridge exposes the host side of the widget contract: who the
// current user is, and a publish request path for built records.
type Bridge struct {
	user  User
	queue Queue
}

func New(user User, queue Queue) *Bridge {
	if user.AvatarURL == "" {
		user.AvatarURL = AvatarURL(user.PublicKey)
	}
	return &Bridge{user: user, queue: queue}
}

func (b *Bridge) CurrentUser() User {
	return b.user
}

// RequestPublish enqueues a built record for publication and reports
// the outcome. A queue failure rejects the record; it is discarded,
// not retried.
func (b *Bridge) RequestPublish(r record.Raw, origin string) PublishOutcome {
	body, err := json.Marshal(outbox.Message{Origin: origin, Record: r})
	if err != nil {
		return PublishOutcome{RecordID: r.ID, Reason: fmt.Sprintf("failed to encode record: %v", err)}
	}
	if err := b.queue.Publish(body); err != nil {
		log.Errorf("failed to enqueue record %q: %v", r.ID, err)
		return PublishOutcome{RecordID: r.ID, Reason: err.Error()}
	}
	return PublishOutcome{RecordID: r.ID, Accepted: true}
}

// NewOrigin generates an origin handle identifying one requester
// instance.
func NewOrigin() string {
	return uuid.NewString()
}

// AvatarURL derives a deterministic avatar for a pubkey.
func AvatarURL(pubkey string) string {
	return fmt.Sprintf("https://api.boringavatars.com/beam/120/%s?colors=264653,2a9d8f,e9c46a,f4a261,e76f51", pubkey)
}
