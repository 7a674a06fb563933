package mapper

import (
	"encoding/json"

	"tenx-cards-be/internal/entity"
	"tenx-cards-be/internal/model"

	"gorm.io/datatypes"
)

type GenerationSessionMapper struct{}

func NewGenerationSessionMapper() *GenerationSessionMapper {
	return &GenerationSessionMapper{}
}

func (m *GenerationSessionMapper) ToEntity(s *model.GenerationSession) (*entity.GenerationSession, error) {
	if s == nil {
		return nil, nil
	}

	var proposals []entity.CachedProposal
	if len(s.GeneratedProposals) > 0 {
		if err := json.Unmarshal(s.GeneratedProposals, &proposals); err != nil {
			return nil, err
		}
	}

	return &entity.GenerationSession{
		Id:                    s.Id,
		UserId:                s.UserId,
		Model:                 s.Model,
		SourceTextHash:        s.SourceTextHash,
		SourceTextLength:      s.SourceTextLength,
		GeneratedCount:        s.GeneratedCount,
		GeneratedProposals:    proposals,
		AcceptedUneditedCount: s.AcceptedUneditedCount,
		AcceptedEditedCount:   s.AcceptedEditedCount,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}, nil
}

func (m *GenerationSessionMapper) ToModel(s *entity.GenerationSession) (*model.GenerationSession, error) {
	if s == nil {
		return nil, nil
	}

	var proposals datatypes.JSON
	if s.GeneratedProposals != nil {
		raw, err := json.Marshal(s.GeneratedProposals)
		if err != nil {
			return nil, err
		}
		proposals = datatypes.JSON(raw)
	}

	return &model.GenerationSession{
		Id:                    s.Id,
		UserId:                s.UserId,
		Model:                 s.Model,
		SourceTextHash:        s.SourceTextHash,
		SourceTextLength:      s.SourceTextLength,
		GeneratedCount:        s.GeneratedCount,
		GeneratedProposals:    proposals,
		AcceptedUneditedCount: s.AcceptedUneditedCount,
		AcceptedEditedCount:   s.AcceptedEditedCount,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}, nil
}

type GenerationErrorMapper struct{}

func NewGenerationErrorMapper() *GenerationErrorMapper {
	return &GenerationErrorMapper{}
}

func (m *GenerationErrorMapper) ToModel(e *entity.GenerationError) *model.GenerationError {
	if e == nil {
		return nil
	}

	return &model.GenerationError{
		Id:               e.Id,
		UserId:           e.UserId,
		Model:            e.Model,
		SourceTextHash:   e.SourceTextHash,
		SourceTextLength: e.SourceTextLength,
		GenerationId:     e.GenerationId,
		ErrorCode:        e.ErrorCode,
		ErrorMessage:     e.ErrorMessage,
		CreatedAt:        e.CreatedAt,
	}
}

func (m *GenerationErrorMapper) ToEntity(e *model.GenerationError) *entity.GenerationError {
	if e == nil {
		return nil
	}

	return &entity.GenerationError{
		Id:               e.Id,
		UserId:           e.UserId,
		Model:            e.Model,
		SourceTextHash:   e.SourceTextHash,
		SourceTextLength: e.SourceTextLength,
		GenerationId:     e.GenerationId,
		ErrorCode:        e.ErrorCode,
		ErrorMessage:     e.ErrorMessage,
		CreatedAt:        e.CreatedAt,
	}
}
