package entity

import (
	"time"

	"github.com/google/uuid"
)

// CachedProposal is the shape stored in the session's cached payload.
// Provenance is intentionally absent: cached proposals always re-surface as
// ai_generated on replay.
type CachedProposal struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type GenerationSession struct {
	Id                 uuid.UUID
	UserId             uuid.UUID
	Model              string
	SourceTextHash     string
	SourceTextLength   int
	GeneratedCount     int
	GeneratedProposals []CachedProposal // nil until the first successful generation

	// Non-nil accepted counts mean flashcards were already saved against this
	// session; a session may be claimed at most once.
	AcceptedUneditedCount *int
	AcceptedEditedCount   *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Saved reports whether this session has already been claimed by a save.
func (s *GenerationSession) Saved() bool {
	return s.AcceptedUneditedCount != nil
}

// Cached reports whether proposals were attached after a successful generation.
func (s *GenerationSession) Cached() bool {
	return s.GeneratedProposals != nil
}
