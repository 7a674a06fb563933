package dto

import (
	"github.com/google/uuid"
)

type GenerateFlashcardsRequest struct {
	SourceText string `json:"source_text" validate:"required,min=1000,max=10000"`
}

// FlashcardProposal is a suggestion returned from a generation; it only
// becomes a persisted flashcard after an explicit save.
type FlashcardProposal struct {
	Front  string `json:"front"`
	Back   string `json:"back"`
	Source string `json:"source"`
}

type GenerateFlashcardsResponse struct {
	GenerationId   uuid.UUID           `json:"generation_id"`
	Proposals      []FlashcardProposal `json:"flashcards_proposals"`
	GeneratedCount int                 `json:"generated_count"`
}
