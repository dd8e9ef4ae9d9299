package entity

import (
	"time"

	"github.com/google/uuid"
)

// FollowUpStatus is the scheduling state machine:
//
//	not_scheduled --schedule--> scheduled
//	scheduled     --cancel----> canceled
//	scheduled     --fire(ok)--> sent
//	scheduled     --fire(skip)> canceled
//	sent          --response--> completed
//	canceled      --schedule--> scheduled
//
// The status column is the single source of truth for whether a queued job
// should still fire; queue-level cancellation is only an optimization.
type FollowUpStatus string

const (
	FollowUpNotScheduled FollowUpStatus = "not_scheduled"
	FollowUpScheduled    FollowUpStatus = "scheduled"
	FollowUpSent         FollowUpStatus = "sent"
	FollowUpCanceled     FollowUpStatus = "canceled"
	FollowUpCompleted    FollowUpStatus = "completed"
)

// FollowUpState is the per-user scheduling row, created lazily on first
// scheduling. At most one outstanding delayed job exists per user; the job
// key is derived deterministically from UserId.
type FollowUpState struct {
	UserId               uuid.UUID
	Status               FollowUpStatus
	ConversationRef      string
	ScheduledFor         *time.Time
	LastSummaryCreatedAt *time.Time
	LastUserMessageAt    *time.Time
	LastBotMessageAt     *time.Time
	CaseLabel            *string
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}
