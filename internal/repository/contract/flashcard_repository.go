package contract

import (
	"context"

	"tenx-cards-be/internal/entity"
	"tenx-cards-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FlashcardRepository interface {
	Create(ctx context.Context, flashcard *entity.Flashcard) error
	CreateBulk(ctx context.Context, flashcards []*entity.Flashcard) error
	Update(ctx context.Context, flashcard *entity.Flashcard) error
	// Delete removes a row scoped by owner and reports how many rows matched,
	// so callers can distinguish "deleted" from "not found or foreign".
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Flashcard, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Flashcard, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
