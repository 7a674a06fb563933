package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"tenx-cards-be/internal/constant"
	"tenx-cards-be/internal/dto"
	"tenx-cards-be/internal/entity"
	"tenx-cards-be/internal/pkg/logger"
	"tenx-cards-be/internal/repository/specification"
	"tenx-cards-be/internal/repository/unitofwork"
	"tenx-cards-be/pkg/events"
	pktNats "tenx-cards-be/pkg/nats"

	"github.com/google/uuid"
)

const defaultPageSize = 20

type IFlashcardService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFlashcardRequest) (*dto.FlashcardResponse, error)
	List(ctx context.Context, userId uuid.UUID, req *dto.ListFlashcardsRequest) (*dto.ListFlashcardsResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateFlashcardRequest) (*dto.FlashcardResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	SaveGenerated(ctx context.Context, userId uuid.UUID, req *dto.SaveGeneratedFlashcardsRequest) (*dto.SaveGeneratedFlashcardsResponse, error)
}

type flashcardService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewFlashcardService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IFlashcardService {
	return &flashcardService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (s *flashcardService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFlashcardRequest) (*dto.FlashcardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	flashcard := &entity.Flashcard{
		Id:        uuid.New(),
		UserId:    userId,
		Front:     strings.TrimSpace(req.Front),
		Back:      strings.TrimSpace(req.Back),
		Source:    entity.FlashcardSourceUserCreated,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if flashcard.Front == "" || flashcard.Back == "" {
		return nil, NewBadRequestError("front and back must not be empty")
	}

	if err := uow.FlashcardRepository().Create(ctx, flashcard); err != nil {
		return nil, err
	}

	return toFlashcardResponse(flashcard), nil
}

func (s *flashcardService) List(ctx context.Context, userId uuid.UUID, req *dto.ListFlashcardsRequest) (*dto.ListFlashcardsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	total, err := uow.FlashcardRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	flashcards, err := uow.FlashcardRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FlashcardResponse, len(flashcards))
	for i, f := range flashcards {
		items[i] = *toFlashcardResponse(f)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &dto.ListFlashcardsResponse{
		Flashcards: items,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *flashcardService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateFlashcardRequest) (*dto.FlashcardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	flashcard, err := uow.FlashcardRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if flashcard == nil {
		return nil, NewNotFoundError("flashcard not found")
	}

	flashcard.Front = strings.TrimSpace(req.Front)
	flashcard.Back = strings.TrimSpace(req.Back)
	flashcard.UpdatedAt = time.Now()
	// A hand-edited AI card keeps its AI lineage but flips to ai_edited.
	if flashcard.Source == entity.FlashcardSourceAIGenerated {
		flashcard.Source = entity.FlashcardSourceAIEdited
	}

	if err := uow.FlashcardRepository().Update(ctx, flashcard); err != nil {
		return nil, err
	}

	return toFlashcardResponse(flashcard), nil
}

func (s *flashcardService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	affected, err := uow.FlashcardRepository().Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NewNotFoundError("flashcard not found")
	}
	return nil
}

// SaveGenerated persists accepted proposals against their generation session.
// The session lookup, the flashcard inserts and the session claim run in one
// transaction; a session can be claimed exactly once, so a concurrent second
// save fails after the first commits.
func (s *flashcardService) SaveGenerated(ctx context.Context, userId uuid.UUID, req *dto.SaveGeneratedFlashcardsRequest) (*dto.SaveGeneratedFlashcardsResponse, error) {
	if len(req.Flashcards) == 0 {
		return nil, NewBadRequestError("flashcards must not be empty")
	}

	items := make([]dto.SaveGeneratedItem, len(req.Flashcards))
	for i, item := range req.Flashcards {
		front := strings.TrimSpace(item.Front)
		back := strings.TrimSpace(item.Back)
		if front == "" || back == "" {
			return nil, NewBadRequestError(fmt.Sprintf("flashcard %d has an empty front or back", i))
		}
		if utf8.RuneCountInString(front) > constant.FlashcardFrontMax {
			return nil, NewBadRequestError(fmt.Sprintf("flashcard %d front exceeds %d characters", i, constant.FlashcardFrontMax))
		}
		if utf8.RuneCountInString(back) > constant.FlashcardBackMax {
			return nil, NewBadRequestError(fmt.Sprintf("flashcard %d back exceeds %d characters", i, constant.FlashcardBackMax))
		}
		items[i] = dto.SaveGeneratedItem{Front: front, Back: back, Source: item.Source}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := uow.GenerationSessionRepository().FindOneForUpdate(ctx,
		specification.ByID{ID: req.GenerationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		// A foreign session is indistinguishable from a missing one.
		return nil, NewNotFoundError("generation session not found")
	}
	if session.Saved() {
		return nil, NewBadRequestError("flashcards for this generation have already been saved")
	}

	now := time.Now()
	flashcards := make([]*entity.Flashcard, len(items))
	unedited := 0
	edited := 0
	for i, item := range items {
		source := entity.FlashcardSource(item.Source)
		if source == entity.FlashcardSourceAIEdited {
			edited++
		} else {
			unedited++
		}
		flashcards[i] = &entity.Flashcard{
			Id:           uuid.New(),
			UserId:       userId,
			Front:        item.Front,
			Back:         item.Back,
			Source:       source,
			GenerationId: &session.Id,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	if err := uow.FlashcardRepository().CreateBulk(ctx, flashcards); err != nil {
		return nil, err
	}

	session.AcceptedUneditedCount = &unedited
	session.AcceptedEditedCount = &edited
	session.UpdatedAt = now
	if err := uow.GenerationSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.publishSaved(ctx, userId, session.Id, len(flashcards))

	responses := make([]dto.FlashcardResponse, len(flashcards))
	for i, f := range flashcards {
		responses[i] = *toFlashcardResponse(f)
	}

	return &dto.SaveGeneratedFlashcardsResponse{
		GenerationId: session.Id,
		SavedCount:   len(flashcards),
		Flashcards:   responses,
	}, nil
}

func (s *flashcardService) publishSaved(ctx context.Context, userId uuid.UUID, generationId uuid.UUID, savedCount int) {
	evt := events.BaseEvent{
		Type: events.TypeFlashcardsSaved,
		Data: map[string]interface{}{
			"user_id":       userId,
			"generation_id": generationId,
			"saved_count":   savedCount,
		},
		OccurredAt: time.Now(),
	}

	if s.publisherService != nil {
		if payload, err := json.Marshal(evt); err == nil {
			if err := s.publisherService.Publish(ctx, payload); err != nil {
				s.logger.Warn("flashcard", "Failed to publish saved event", map[string]interface{}{
					"generation_id": generationId,
					"error":         err.Error(),
				})
			}
		}
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("flashcard", "Failed to publish saved event to NATS", map[string]interface{}{
				"generation_id": generationId,
				"error":         err.Error(),
			})
		}
	}
}

func toFlashcardResponse(f *entity.Flashcard) *dto.FlashcardResponse {
	return &dto.FlashcardResponse{
		Id:           f.Id,
		Front:        f.Front,
		Back:         f.Back,
		Source:       string(f.Source),
		GenerationId: f.GenerationId,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}
