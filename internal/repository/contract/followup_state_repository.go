package contract

import (
	"context"

	"carenote-be/internal/entity"

	"github.com/google/uuid"
)

type FollowUpStateRepository interface {
	// Upsert writes the per-user scheduling row, creating it lazily on
	// first scheduling.
	Upsert(ctx context.Context, state *entity.FollowUpState) error
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.FollowUpState, error)
}
