package contract

import (
	"context"

	"tenx-cards-be/internal/entity"
	"tenx-cards-be/internal/repository/specification"
)

type GenerationSessionRepository interface {
	Create(ctx context.Context, session *entity.GenerationSession) error
	Update(ctx context.Context, session *entity.GenerationSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GenerationSession, error)
	// FindOneForUpdate reads a session under a row-level write lock. Must run
	// inside a transaction; it is the mutual-exclusion point that makes the
	// save procedure exactly-once under concurrency.
	FindOneForUpdate(ctx context.Context, specs ...specification.Specification) (*entity.GenerationSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
