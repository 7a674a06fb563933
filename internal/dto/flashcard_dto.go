package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFlashcardRequest struct {
	Front string `json:"front" validate:"required,max=250"`
	Back  string `json:"back" validate:"required,max=500"`
}

type UpdateFlashcardRequest struct {
	Id    uuid.UUID
	Front string `json:"front" validate:"required,max=250"`
	Back  string `json:"back" validate:"required,max=500"`
}

type FlashcardResponse struct {
	Id           uuid.UUID  `json:"id"`
	Front        string     `json:"front"`
	Back         string     `json:"back"`
	Source       string     `json:"source"`
	GenerationId *uuid.UUID `json:"generation_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ListFlashcardsRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"page_size" validate:"omitempty,min=1,max=100"`
}

type PaginationMeta struct {
	Page       int   `json:"current_page"`
	PageSize   int   `json:"limit"`
	Total      int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

type ListFlashcardsResponse struct {
	Flashcards []FlashcardResponse `json:"flashcards"`
	Pagination PaginationMeta      `json:"pagination"`
}

type SaveGeneratedItem struct {
	Front  string `json:"front" validate:"required,max=250"`
	Back   string `json:"back" validate:"required,max=500"`
	Source string `json:"source" validate:"required,oneof=ai_generated ai_edited"`
}

type SaveGeneratedFlashcardsRequest struct {
	GenerationId uuid.UUID           `json:"generation_id" validate:"required"`
	Flashcards   []SaveGeneratedItem `json:"flashcards" validate:"required,min=1,dive"`
}

type SaveGeneratedFlashcardsResponse struct {
	GenerationId uuid.UUID           `json:"generation_id"`
	SavedCount   int                 `json:"saved_count"`
	Flashcards   []FlashcardResponse `json:"flashcards"`
}
