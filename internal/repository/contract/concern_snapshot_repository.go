package contract

import (
	"context"

	"carenote-be/internal/entity"
	"carenote-be/internal/repository/specification"
)

// ConcernSnapshotRepository is append-only by contract: no Update, no Delete.
type ConcernSnapshotRepository interface {
	Create(ctx context.Context, snapshot *entity.ConcernSnapshot) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConcernSnapshot, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
