package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all domain events published on the bus.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CONCERN_UPDATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Domain event constructors. Consumers (audit log, downstream analytics)
// subscribe by type; payloads are deliberately flat maps.

func ConcernCreated(userId, concernId uuid.UUID, title string) Event {
	return BaseEvent{
		Type: "CONCERN_CREATED",
		Data: map[string]interface{}{
			"user_id":    userId,
			"concern_id": concernId,
			"title":      title,
		},
		OccurredAt: time.Now(),
	}
}

func ConcernUpdated(userId, concernId uuid.UUID, title string, reason string) Event {
	return BaseEvent{
		Type: "CONCERN_UPDATED",
		Data: map[string]interface{}{
			"user_id":    userId,
			"concern_id": concernId,
			"title":      title,
			"reason":     reason,
		},
		OccurredAt: time.Now(),
	}
}

func ConcernMerged(userId, primaryId uuid.UUID, mergedTitles []string) Event {
	return BaseEvent{
		Type: "CONCERN_MERGED",
		Data: map[string]interface{}{
			"user_id":       userId,
			"primary_id":    primaryId,
			"merged_titles": mergedTitles,
		},
		OccurredAt: time.Now(),
	}
}

func ConcernDeleted(userId, concernId uuid.UUID, title string) Event {
	return BaseEvent{
		Type: "CONCERN_DELETED",
		Data: map[string]interface{}{
			"user_id":    userId,
			"concern_id": concernId,
			"title":      title,
		},
		OccurredAt: time.Now(),
	}
}

func CheckinSent(userId uuid.UUID, conversationRef string) Event {
	return BaseEvent{
		Type: "CHECKIN_SENT",
		Data: map[string]interface{}{
			"user_id":          userId,
			"conversation_ref": conversationRef,
		},
		OccurredAt: time.Now(),
	}
}

func CheckinCompleted(userId uuid.UUID, replyClass string) Event {
	return BaseEvent{
		Type: "CHECKIN_COMPLETED",
		Data: map[string]interface{}{
			"user_id":     userId,
			"reply_class": replyClass,
		},
		OccurredAt: time.Now(),
	}
}
