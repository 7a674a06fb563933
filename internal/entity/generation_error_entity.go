package entity

import (
	"time"

	"github.com/google/uuid"
)

type GenerationError struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	Model            string
	SourceTextHash   string
	SourceTextLength int
	GenerationId     *uuid.UUID
	ErrorCode        string
	ErrorMessage     string
	CreatedAt        time.Time
}
