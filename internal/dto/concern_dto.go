package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConcernResponse struct {
	Id             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Status         string     `json:"status"`
	SummaryContent *string    `json:"summary_content"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}

type MergeConcernsRequest struct {
	UserId      uuid.UUID `json:"user_id" validate:"required"`
	TargetNames []string  `json:"target_names" validate:"required,min=2,dive,required"`
}

type DeleteConcernRequest struct {
	UserId     uuid.UUID `json:"user_id" validate:"required"`
	TargetName string    `json:"target_name" validate:"required"`
}

type RenameConcernRequest struct {
	UserId     uuid.UUID `json:"user_id" validate:"required"`
	TargetName string    `json:"target_name" validate:"required"`
	NewName    string    `json:"new_name" validate:"required"`
}

type UpdateConcernStatusRequest struct {
	ConcernId uuid.UUID `json:"concern_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=active improving resolved"`
}

// CommandResponse carries what the upstream intent layer needs to phrase a
// confirmation: the matched (not input-literal) titles plus ready-made copy.
type CommandResponse struct {
	MatchedTitles []string `json:"matched_titles"`
	Message       string   `json:"message"`
}

type AggregateResponse struct {
	UserId    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
