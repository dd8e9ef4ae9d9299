package contract

import (
	"context"

	"carenote-be/internal/entity"
	"carenote-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConcernRepository interface {
	Create(ctx context.Context, concern *entity.Concern) error
	Update(ctx context.Context, concern *entity.Concern) error
	// Delete removes the concern row. Snapshots are not cascaded: they are
	// retained for audit.
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Concern, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Concern, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
