package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient holds the minimum profile the assistant needs for message
// personalization: display name, preferred language and the conversation
// ref on the external chat channel. Identity and auth live upstream.
type Patient struct {
	Id              uuid.UUID
	FullName        string
	Language        string // ISO 639-1, e.g. "en", "es"
	ConversationRef string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
