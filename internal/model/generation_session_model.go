package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GenerationSession is one AI generation attempt. The row doubles as the
// per-user cache entry once GeneratedProposals is populated, and as the
// save-claim record once the accepted counts are set.
type GenerationSession struct {
	Id                    uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId                uuid.UUID      `gorm:"type:uuid;not null;index:idx_generation_sessions_cache_key"`
	Model                 string         `gorm:"type:varchar(255);not null"`
	SourceTextHash        string         `gorm:"type:varchar(64);not null;index:idx_generation_sessions_cache_key"`
	SourceTextLength      int            `gorm:"not null"`
	GeneratedCount        int            `gorm:"not null;default:0"`
	GeneratedProposals    datatypes.JSON // null until the first successful generation
	AcceptedUneditedCount *int
	AcceptedEditedCount   *int
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (GenerationSession) TableName() string {
	return "generation_sessions"
}
