package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"tenx-cards-be/internal/constant"
	"tenx-cards-be/internal/dto"
	"tenx-cards-be/internal/entity"
	"tenx-cards-be/internal/pkg/logger"
	"tenx-cards-be/internal/repository/specification"
	"tenx-cards-be/internal/repository/unitofwork"
	"tenx-cards-be/pkg/llm"
	"tenx-cards-be/pkg/utils"

	"github.com/google/uuid"
)

type IGenerationService interface {
	GenerateFlashcards(ctx context.Context, userId uuid.UUID, req *dto.GenerateFlashcardsRequest) (*dto.GenerateFlashcardsResponse, error)
}

type generationService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   llm.Provider
	logger     logger.ILogger
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.Provider,
	log logger.ILogger,
) IGenerationService {
	return &generationService{
		uowFactory: uowFactory,
		provider:   provider,
		logger:     log,
	}
}

// generatedPayload is the shape the model is constrained to by the strict
// response schema.
type generatedPayload struct {
	Flashcards []struct {
		Front string `json:"front"`
		Back  string `json:"back"`
	} `json:"flashcards"`
}

func (s *generationService) GenerateFlashcards(ctx context.Context, userId uuid.UUID, req *dto.GenerateFlashcardsRequest) (*dto.GenerateFlashcardsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	hash := utils.Fingerprint(req.SourceText)
	textLength := utf8.RuneCountInString(req.SourceText)

	// Identical text from the same user replays the stored proposals without
	// touching the AI gateway. A failed lookup is treated as a miss.
	cached, err := uow.GenerationSessionRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.BySourceTextHash{Hash: hash},
		specification.HasCachedProposals{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		s.logger.Warn("generation", "Cache lookup failed, generating fresh", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
	if cached != nil {
		s.logger.Info("generation", "Cache hit", map[string]interface{}{
			"user_id":       userId,
			"generation_id": cached.Id,
		})
		return s.toResponse(cached.Id, cached.GeneratedProposals), nil
	}

	// The session row is created before the gateway call so that failed
	// attempts still leave an auditable session behind.
	session := &entity.GenerationSession{
		Id:               uuid.New(),
		UserId:           userId,
		Model:            s.provider.Model(),
		SourceTextHash:   hash,
		SourceTextLength: textLength,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := uow.GenerationSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	proposals, err := s.callGateway(ctx, req.SourceText)
	if err != nil {
		s.recordGenerationError(ctx, uow, userId, hash, textLength, &session.Id, err)
		return nil, err
	}

	// Storing the proposals is best effort: a write failure costs a future
	// cache hit, not this response.
	session.GeneratedCount = len(proposals)
	session.GeneratedProposals = proposals
	session.UpdatedAt = time.Now()
	if err := uow.GenerationSessionRepository().Update(ctx, session); err != nil {
		s.logger.Warn("generation", "Failed to store proposals for reuse", map[string]interface{}{
			"generation_id": session.Id,
			"error":         err.Error(),
		})
	}

	return s.toResponse(session.Id, proposals), nil
}

func (s *generationService) callGateway(ctx context.Context, sourceText string) ([]entity.CachedProposal, error) {
	history := []llm.Message{
		{Role: "system", Content: constant.FlashcardGenerationSystemPromptV1},
		{Role: "user", Content: constant.FlashcardGenerationUserPrompt(sourceText)},
	}

	raw, err := s.provider.ChatStructured(ctx, history,
		constant.FlashcardGenerationResponseFormat(),
		llm.WithTemperature(constant.GenerationTemperature),
		llm.WithMaxTokens(constant.GenerationMaxTokens),
	)
	if err != nil {
		return nil, err
	}

	var payload generatedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, llm.NewError(llm.KindValidation, 0, "model response does not match the flashcard schema", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if payload.Flashcards == nil {
		return nil, llm.NewError(llm.KindValidation, 0, "model response is missing the flashcards array", nil)
	}

	proposals := make([]entity.CachedProposal, 0, len(payload.Flashcards))
	for _, f := range payload.Flashcards {
		proposals = append(proposals, entity.CachedProposal{
			Front: strings.TrimSpace(f.Front),
			Back:  strings.TrimSpace(f.Back),
		})
	}
	return proposals, nil
}

func (s *generationService) toResponse(generationId uuid.UUID, proposals []entity.CachedProposal) *dto.GenerateFlashcardsResponse {
	// Proposals always surface as ai_generated; the client flips the source
	// to ai_edited when the user modifies one before saving.
	out := make([]dto.FlashcardProposal, len(proposals))
	for i, p := range proposals {
		out[i] = dto.FlashcardProposal{
			Front:  p.Front,
			Back:   p.Back,
			Source: constant.FlashcardSourceAIGenerated,
		}
	}
	return &dto.GenerateFlashcardsResponse{
		GenerationId:   generationId,
		Proposals:      out,
		GeneratedCount: len(out),
	}
}

// recordGenerationError appends an audit row for a failed attempt. The write
// is best effort and never masks the original failure.
func (s *generationService) recordGenerationError(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, hash string, textLength int, generationId *uuid.UUID, cause error) {
	code := "generic"
	message := cause.Error()
	if llmErr, ok := llm.AsError(cause); ok {
		code = llmErr.Kind.String()
	}

	record := &entity.GenerationError{
		Id:               uuid.New(),
		UserId:           userId,
		Model:            s.provider.Model(),
		SourceTextHash:   hash,
		SourceTextLength: textLength,
		GenerationId:     generationId,
		ErrorCode:        code,
		ErrorMessage:     message,
		CreatedAt:        time.Now(),
	}
	if err := uow.GenerationErrorRepository().Create(ctx, record); err != nil {
		s.logger.Error("generation", "Failed to record generation error", map[string]interface{}{
			"user_id": userId,
			"cause":   message,
			"error":   err.Error(),
		})
	}
}
