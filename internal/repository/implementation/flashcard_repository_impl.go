package implementation

import (
	"context"
	"errors"

	"tenx-cards-be/internal/entity"
	"tenx-cards-be/internal/mapper"
	"tenx-cards-be/internal/model"
	"tenx-cards-be/internal/repository/contract"
	"tenx-cards-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FlashcardRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FlashcardMapper
}

func NewFlashcardRepository(db *gorm.DB) contract.FlashcardRepository {
	return &FlashcardRepositoryImpl{
		db:     db,
		mapper: mapper.NewFlashcardMapper(),
	}
}

func (r *FlashcardRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FlashcardRepositoryImpl) Create(ctx context.Context, flashcard *entity.Flashcard) error {
	m := r.mapper.ToModel(flashcard)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*flashcard = *r.mapper.ToEntity(m)
	return nil
}

func (r *FlashcardRepositoryImpl) CreateBulk(ctx context.Context, flashcards []*entity.Flashcard) error {
	if len(flashcards) == 0 {
		return nil
	}
	models := r.mapper.ToModels(flashcards)
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*flashcards[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *FlashcardRepositoryImpl) Update(ctx context.Context, flashcard *entity.Flashcard) error {
	m := r.mapper.ToModel(flashcard)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*flashcard = *r.mapper.ToEntity(m)
	return nil
}

func (r *FlashcardRepositoryImpl) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Delete(&model.Flashcard{}, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *FlashcardRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Flashcard, error) {
	var m model.Flashcard
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FlashcardRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Flashcard, error) {
	var models []*model.Flashcard
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FlashcardRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Flashcard{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
