package model

import (
	"time"

	"github.com/google/uuid"
)

type Flashcard struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Front        string     `gorm:"type:varchar(250);not null"`
	Back         string     `gorm:"type:varchar(500);not null"`
	Source       string     `gorm:"type:varchar(50);not null"` // ai_generated | ai_edited | user_created
	GenerationId *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}
