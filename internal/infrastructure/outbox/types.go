package outbox

import (
	"time"

	"github.com/google/uuid"
)

const KindWelcome = "welcome"

// Message is a pending outbound notification. It survives process restarts;
// the mail processor drains it asynchronously.
type Message struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Recipient string    `json:"recipient"`
	Username  string    `json:"username"`
	Retries   int       `json:"retries"`
	Timestamp time.Time `json:"timestamp"`

	bucketKey []byte
}

func (m *Message) normalize() {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Kind == "" {
		m.Kind = KindWelcome
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
}
