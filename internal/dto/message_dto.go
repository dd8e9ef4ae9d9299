package dto

import (
	"github.com/google/uuid"
)

// InboundMessageRequest is the webhook payload for a user message arriving
// from the chat channel.
type InboundMessageRequest struct {
	UserId          uuid.UUID              `json:"user_id" validate:"required"`
	ConversationRef string                 `json:"conversation_ref" validate:"required"`
	Text            string                 `json:"text" validate:"required"`
	RawPayload      map[string]interface{} `json:"raw_payload,omitempty"`
}

type InboundMessageResponse struct {
	Handled bool   `json:"handled"` // true when consumed as a check-in response
	Reply   string `json:"reply,omitempty"`
}

// ProcessSummaryMessage is the intake-pipeline payload published when the
// upstream layer produces a new conversation summary for a user.
type ProcessSummaryMessage struct {
	UserId          uuid.UUID `json:"user_id"`
	ConversationRef string    `json:"conversation_ref"`
	Excerpt         string    `json:"excerpt"`
	Summary         string    `json:"summary"`
	CaseLabel       string    `json:"case_label,omitempty"`
}

type SubmitSummaryRequest struct {
	UserId          uuid.UUID `json:"user_id" validate:"required"`
	ConversationRef string    `json:"conversation_ref" validate:"required"`
	Excerpt         string    `json:"excerpt" validate:"required"`
	Summary         string    `json:"summary" validate:"required"`
	CaseLabel       string    `json:"case_label,omitempty"`
}
