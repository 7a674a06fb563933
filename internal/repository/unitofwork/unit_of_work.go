package unitofwork

import (
	"context"

	"tenx-cards-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	FlashcardRepository() contract.FlashcardRepository
	GenerationSessionRepository() contract.GenerationSessionRepository
	GenerationErrorRepository() contract.GenerationErrorRepository
}
