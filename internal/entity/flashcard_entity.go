package entity

import (
	"time"

	"github.com/google/uuid"
)

type FlashcardSource string

const (
	FlashcardSourceAIGenerated FlashcardSource = "ai_generated"
	FlashcardSourceAIEdited    FlashcardSource = "ai_edited"
	FlashcardSourceUserCreated FlashcardSource = "user_created"
)

type Flashcard struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Front        string
	Back         string
	Source       FlashcardSource
	GenerationId *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
