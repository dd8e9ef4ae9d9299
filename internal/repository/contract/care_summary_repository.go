package contract

import (
	"context"

	"carenote-be/internal/entity"

	"github.com/google/uuid"
)

type CareSummaryRepository interface {
	// Upsert writes the materialized aggregate for a user, inserting the
	// row on first use.
	Upsert(ctx context.Context, summary *entity.CareSummary) error
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.CareSummary, error)
}
