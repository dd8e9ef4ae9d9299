package dto

import (
	"time"

	"github.com/google/uuid"
)

type FollowUpStateResponse struct {
	UserId               uuid.UUID  `json:"user_id"`
	Status               string     `json:"status"`
	ScheduledFor         *time.Time `json:"scheduled_for"`
	LastSummaryCreatedAt *time.Time `json:"last_summary_created_at"`
	LastUserMessageAt    *time.Time `json:"last_user_message_at"`
	LastBotMessageAt     *time.Time `json:"last_bot_message_at"`
	CaseLabel            *string    `json:"case_label"`
}

// CheckinJobPayload is what the delayed queue carries for a scheduled
// check-in. Everything else is re-read from the state store at fire time.
type CheckinJobPayload struct {
	UserId          uuid.UUID `json:"user_id"`
	ConversationRef string    `json:"conversation_ref"`
}

type CancelFollowUpRequest struct {
	UserId uuid.UUID `json:"user_id" validate:"required"`
}
