package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"tenx-cards-be/internal/dto"
	"tenx-cards-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlashcardFixture(store *fakeStore) IFlashcardService {
	return NewFlashcardService(&fakeUowFactory{store: store}, nil, nil, noopLogger{})
}

func seedSession(store *fakeStore, userId uuid.UUID) uuid.UUID {
	session := entity.GenerationSession{
		Id:               uuid.New(),
		UserId:           userId,
		Model:            "test/model",
		SourceTextHash:   "abc123",
		SourceTextLength: 1500,
		GeneratedCount:   2,
		GeneratedProposals: []entity.CachedProposal{
			{Front: "Q1", Back: "A1"},
			{Front: "Q2", Back: "A2"},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	store.sessions[session.Id] = session
	return session.Id
}

func saveRequest(generationId uuid.UUID) *dto.SaveGeneratedFlashcardsRequest {
	return &dto.SaveGeneratedFlashcardsRequest{
		GenerationId: generationId,
		Flashcards: []dto.SaveGeneratedItem{
			{Front: "Q1", Back: "A1", Source: "ai_generated"},
			{Front: "Q2 edited", Back: "A2 edited", Source: "ai_edited"},
		},
	}
}

func TestSaveGeneratedSuccess(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	generationId := seedSession(store, userId)
	svc := newFlashcardFixture(store)

	res, err := svc.SaveGenerated(context.Background(), userId, saveRequest(generationId))
	require.NoError(t, err)
	assert.Equal(t, generationId, res.GenerationId)
	assert.Equal(t, 2, res.SavedCount)
	require.Len(t, res.Flashcards, 2)

	// Every saved card links back to its generation session.
	for _, f := range res.Flashcards {
		require.NotNil(t, f.GenerationId)
		assert.Equal(t, generationId, *f.GenerationId)
	}
	assert.Len(t, store.cards, 2)

	// The session is claimed with split accepted counts.
	session := store.sessions[generationId]
	require.NotNil(t, session.AcceptedUneditedCount)
	require.NotNil(t, session.AcceptedEditedCount)
	assert.Equal(t, 1, *session.AcceptedUneditedCount)
	assert.Equal(t, 1, *session.AcceptedEditedCount)
}

func TestSaveGeneratedSecondSaveConflicts(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	generationId := seedSession(store, userId)
	svc := newFlashcardFixture(store)

	_, err := svc.SaveGenerated(context.Background(), userId, saveRequest(generationId))
	require.NoError(t, err)

	_, err = svc.SaveGenerated(context.Background(), userId, saveRequest(generationId))
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Code)
	assert.Len(t, store.cards, 2)
}

func TestSaveGeneratedUnknownSessionIsNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newFlashcardFixture(store)

	_, err := svc.SaveGenerated(context.Background(), uuid.New(), saveRequest(uuid.New()))
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Code)
}

func TestSaveGeneratedForeignSessionIsNotFound(t *testing.T) {
	store := newFakeStore()
	owner := uuid.New()
	generationId := seedSession(store, owner)
	svc := newFlashcardFixture(store)

	_, err := svc.SaveGenerated(context.Background(), uuid.New(), saveRequest(generationId))
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Code)

	// The owner can still claim it afterwards.
	_, err = svc.SaveGenerated(context.Background(), owner, saveRequest(generationId))
	require.NoError(t, err)
}

func TestSaveGeneratedValidation(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	generationId := seedSession(store, userId)
	svc := newFlashcardFixture(store)

	tests := []struct {
		name  string
		items []dto.SaveGeneratedItem
	}{
		{name: "empty items", items: nil},
		{
			name:  "whitespace only front",
			items: []dto.SaveGeneratedItem{{Front: "   ", Back: "A", Source: "ai_generated"}},
		},
		{
			name:  "front too long",
			items: []dto.SaveGeneratedItem{{Front: strings.Repeat("x", 251), Back: "A", Source: "ai_generated"}},
		},
		{
			name:  "back too long",
			items: []dto.SaveGeneratedItem{{Front: "Q", Back: strings.Repeat("x", 501), Source: "ai_generated"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveGenerated(context.Background(), userId, &dto.SaveGeneratedFlashcardsRequest{
				GenerationId: generationId,
				Flashcards:   tt.items,
			})
			require.Error(t, err)
			var svcErr *Error
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, 400, svcErr.Code)
			assert.Empty(t, store.cards)
		})
	}
}

func TestSaveGeneratedBoundaryLengthsAccepted(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	generationId := seedSession(store, userId)
	svc := newFlashcardFixture(store)

	res, err := svc.SaveGenerated(context.Background(), userId, &dto.SaveGeneratedFlashcardsRequest{
		GenerationId: generationId,
		Flashcards: []dto.SaveGeneratedItem{
			{Front: strings.Repeat("x", 250), Back: strings.Repeat("y", 500), Source: "ai_generated"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.SavedCount)
}

func TestSaveGeneratedConcurrentSavesClaimOnce(t *testing.T) {
	store := newFakeStore()
	userId := uuid.New()
	generationId := seedSession(store, userId)
	svc := newFlashcardFixture(store)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SaveGenerated(context.Background(), userId, saveRequest(generationId))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, store.cards, 2)
}

func TestCreateManualFlashcard(t *testing.T) {
	store := newFakeStore()
	svc := newFlashcardFixture(store)
	userId := uuid.New()

	res, err := svc.Create(context.Background(), userId, &dto.CreateFlashcardRequest{
		Front: "  What is Go?  ",
		Back:  "A programming language.",
	})
	require.NoError(t, err)
	assert.Equal(t, "What is Go?", res.Front)
	assert.Equal(t, "user_created", res.Source)
	assert.Nil(t, res.GenerationId)
}

func TestListFlashcardsPagination(t *testing.T) {
	store := newFakeStore()
	svc := newFlashcardFixture(store)
	userId := uuid.New()

	for i := 0; i < 25; i++ {
		card := entity.Flashcard{
			Id:        uuid.New(),
			UserId:    userId,
			Front:     "Q",
			Back:      "A",
			Source:    entity.FlashcardSourceUserCreated,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		store.cards[card.Id] = card
	}
	// A foreign card must never appear in the listing.
	foreign := entity.Flashcard{Id: uuid.New(), UserId: uuid.New(), Front: "F", Back: "B", Source: entity.FlashcardSourceUserCreated}
	store.cards[foreign.Id] = foreign

	res, err := svc.List(context.Background(), userId, &dto.ListFlashcardsRequest{Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, res.Flashcards, 10)
	assert.Equal(t, int64(25), res.Pagination.Total)
	assert.Equal(t, 3, res.Pagination.TotalPages)
	assert.Equal(t, 2, res.Pagination.Page)
}

func TestUpdateFlashcardFlipsAISource(t *testing.T) {
	store := newFakeStore()
	svc := newFlashcardFixture(store)
	userId := uuid.New()
	card := entity.Flashcard{
		Id:     uuid.New(),
		UserId: userId,
		Front:  "Q",
		Back:   "A",
		Source: entity.FlashcardSourceAIGenerated,
	}
	store.cards[card.Id] = card

	res, err := svc.Update(context.Background(), userId, &dto.UpdateFlashcardRequest{Id: card.Id, Front: "Q2", Back: "A2"})
	require.NoError(t, err)
	assert.Equal(t, "ai_edited", res.Source)
}

func TestUpdateFlashcardNotOwnedIsNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newFlashcardFixture(store)
	card := entity.Flashcard{Id: uuid.New(), UserId: uuid.New(), Front: "Q", Back: "A", Source: entity.FlashcardSourceUserCreated}
	store.cards[card.Id] = card

	_, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateFlashcardRequest{Id: card.Id, Front: "Q2", Back: "A2"})
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Code)
}

func TestDeleteFlashcard(t *testing.T) {
	store := newFakeStore()
	svc := newFlashcardFixture(store)
	userId := uuid.New()
	card := entity.Flashcard{Id: uuid.New(), UserId: userId, Front: "Q", Back: "A", Source: entity.FlashcardSourceUserCreated}
	store.cards[card.Id] = card

	require.NoError(t, svc.Delete(context.Background(), userId, card.Id))
	assert.Empty(t, store.cards)

	err := svc.Delete(context.Background(), userId, card.Id)
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 404, svcErr.Code)
}
