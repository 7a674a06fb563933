package implementation

import (
	"context"
	"errors"

	"tenx-cards-be/internal/entity"
	"tenx-cards-be/internal/mapper"
	"tenx-cards-be/internal/model"
	"tenx-cards-be/internal/repository/contract"
	"tenx-cards-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GenerationSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GenerationSessionMapper
}

func NewGenerationSessionRepository(db *gorm.DB) contract.GenerationSessionRepository {
	return &GenerationSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewGenerationSessionMapper(),
	}
}

func (r *GenerationSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GenerationSessionRepositoryImpl) Create(ctx context.Context, session *entity.GenerationSession) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	mapped, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*session = *mapped
	return nil
}

func (r *GenerationSessionRepositoryImpl) Update(ctx context.Context, session *entity.GenerationSession) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	mapped, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*session = *mapped
	return nil
}

func (r *GenerationSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GenerationSession, error) {
	return r.findOne(r.db.WithContext(ctx), specs...)
}

func (r *GenerationSessionRepositoryImpl) FindOneForUpdate(ctx context.Context, specs ...specification.Specification) (*entity.GenerationSession, error) {
	// FOR UPDATE serializes concurrent saves against the same session row.
	query := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.findOne(query, specs...)
}

func (r *GenerationSessionRepositoryImpl) findOne(db *gorm.DB, specs ...specification.Specification) (*entity.GenerationSession, error) {
	var m model.GenerationSession
	query := r.applySpecifications(db, specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *GenerationSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GenerationSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
