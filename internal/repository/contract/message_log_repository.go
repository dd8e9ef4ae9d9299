package contract

import (
	"context"

	"carenote-be/internal/entity"
	"carenote-be/internal/repository/specification"
)

// MessageLogRepository is append-only.
type MessageLogRepository interface {
	Create(ctx context.Context, log *entity.MessageLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MessageLog, error)
}
