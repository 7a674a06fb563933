package mapper

import (
	"tenx-cards-be/internal/entity"
	"tenx-cards-be/internal/model"
)

type FlashcardMapper struct{}

func NewFlashcardMapper() *FlashcardMapper {
	return &FlashcardMapper{}
}

func (m *FlashcardMapper) ToEntity(f *model.Flashcard) *entity.Flashcard {
	if f == nil {
		return nil
	}

	return &entity.Flashcard{
		Id:           f.Id,
		UserId:       f.UserId,
		Front:        f.Front,
		Back:         f.Back,
		Source:       entity.FlashcardSource(f.Source),
		GenerationId: f.GenerationId,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func (m *FlashcardMapper) ToModel(f *entity.Flashcard) *model.Flashcard {
	if f == nil {
		return nil
	}

	return &model.Flashcard{
		Id:           f.Id,
		UserId:       f.UserId,
		Front:        f.Front,
		Back:         f.Back,
		Source:       string(f.Source),
		GenerationId: f.GenerationId,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func (m *FlashcardMapper) ToEntities(flashcards []*model.Flashcard) []*entity.Flashcard {
	entities := make([]*entity.Flashcard, len(flashcards))
	for i, f := range flashcards {
		entities[i] = m.ToEntity(f)
	}
	return entities
}

func (m *FlashcardMapper) ToModels(flashcards []*entity.Flashcard) []*model.Flashcard {
	models := make([]*model.Flashcard, len(flashcards))
	for i, f := range flashcards {
		models[i] = m.ToModel(f)
	}
	return models
}
