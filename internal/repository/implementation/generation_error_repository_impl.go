package implementation

import (
	"context"

	"tenx-cards-be/internal/entity"
	"tenx-cards-be/internal/mapper"
	"tenx-cards-be/internal/model"
	"tenx-cards-be/internal/repository/contract"
	"tenx-cards-be/internal/repository/specification"

	"gorm.io/gorm"
)

type GenerationErrorRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GenerationErrorMapper
}

func NewGenerationErrorRepository(db *gorm.DB) contract.GenerationErrorRepository {
	return &GenerationErrorRepositoryImpl{
		db:     db,
		mapper: mapper.NewGenerationErrorMapper(),
	}
}

func (r *GenerationErrorRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GenerationErrorRepositoryImpl) Create(ctx context.Context, record *entity.GenerationError) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *GenerationErrorRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationError, error) {
	var models []*model.GenerationError
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	records := make([]*entity.GenerationError, len(models))
	for i, m := range models {
		records[i] = r.mapper.ToEntity(m)
	}
	return records, nil
}

func (r *GenerationErrorRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GenerationError{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
