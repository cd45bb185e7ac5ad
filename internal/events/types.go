package events

import (
	"time"

	"github.com/google/uuid"
)

// Topic names for the event bus
const (
	// TopicPushRequested carries unsolicited outbound messages (welcome text,
	// privacy notice) that are delivered by push rather than by reply token.
	TopicPushRequested = "line.push.requested"
)

// Event represents the base event structure with common fields
type Event struct {
	CorrelationID string    `json:"correlation_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewEvent creates a new base event with generated correlation ID
func NewEvent() Event {
	return Event{
		CorrelationID: uuid.New().String(),
		Timestamp:     time.Now(),
	}
}

// PushRequested represents a request to push a message to a user,
// addressed by user id and not tied to any reply token
type PushRequested struct {
	Event
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}
