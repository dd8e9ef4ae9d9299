package entity

import (
	"time"

	"github.com/google/uuid"
)

// MessageDirection distinguishes inbound user messages from outbound bot
// messages in the log.
type MessageDirection string

const (
	MessageInbound  MessageDirection = "inbound"
	MessageOutbound MessageDirection = "outbound"
)

// MessageLog is an append-only record of every message crossing the chat
// channel. The follow-up scheduler reads the per-user activity timestamps
// that these rows feed.
type MessageLog struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Direction MessageDirection
	Body      string
	Payload   map[string]interface{} // raw provider payload, when available
	CreatedAt time.Time
}
