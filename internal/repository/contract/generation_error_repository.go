package contract

import (
	"context"

	"tenx-cards-be/internal/entity"
	"tenx-cards-be/internal/repository/specification"
)

// GenerationErrorRepository is an append-only audit trail; rows are never
// mutated or deleted.
type GenerationErrorRepository interface {
	Create(ctx context.Context, record *entity.GenerationError) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationError, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
