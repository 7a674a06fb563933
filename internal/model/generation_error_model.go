package model

import (
	"time"

	"github.com/google/uuid"
)

// GenerationError is a write-once audit row for a failed generation attempt.
type GenerationError struct {
	Id               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID  `gorm:"type:uuid;not null;index"`
	Model            string     `gorm:"type:varchar(255);not null"`
	SourceTextHash   string     `gorm:"type:varchar(64);not null"`
	SourceTextLength int        `gorm:"not null"`
	GenerationId     *uuid.UUID `gorm:"type:uuid"`
	ErrorCode        string     `gorm:"type:varchar(50);not null"`
	ErrorMessage     string     `gorm:"type:text;not null"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
}

func (GenerationError) TableName() string {
	return "generation_errors"
}
