package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"tenx-cards-be/internal/entity"
	"tenx-cards-be/internal/repository/contract"
	"tenx-cards-be/internal/repository/specification"
	"tenx-cards-be/internal/repository/unitofwork"
	"tenx-cards-be/pkg/llm"

	"github.com/google/uuid"
)

// The fakes below interpret the same specification values the GORM
// implementations translate to SQL, so service logic runs unchanged.

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type fakeStore struct {
	mu sync.Mutex
	// txMu simulates the row lock a transactional save acquires; Begin takes
	// it and Commit/Rollback release it.
	txMu sync.Mutex

	users    map[uuid.UUID]entity.User
	sessions map[uuid.UUID]entity.GenerationSession
	cards    map[uuid.UUID]entity.Flashcard
	errs     []entity.GenerationError

	failSessionLookup bool
	failSessionUpdate bool
	failErrorCreate   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]entity.User),
		sessions: make(map[uuid.UUID]entity.GenerationSession),
		cards:    make(map[uuid.UUID]entity.Flashcard),
	}
}

type fakeUowFactory struct {
	store *fakeStore
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
	inTx  bool
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.store.txMu.Lock()
	u.inTx = true
	return nil
}

func (u *fakeUow) Commit() error {
	if u.inTx {
		u.inTx = false
		u.store.txMu.Unlock()
	}
	return nil
}

func (u *fakeUow) Rollback() error {
	if u.inTx {
		u.inTx = false
		u.store.txMu.Unlock()
	}
	return nil
}

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUow) FlashcardRepository() contract.FlashcardRepository {
	return &fakeFlashcardRepo{store: u.store}
}

func (u *fakeUow) GenerationSessionRepository() contract.GenerationSessionRepository {
	return &fakeSessionRepo{store: u.store}
}

func (u *fakeUow) GenerationErrorRepository() contract.GenerationErrorRepository {
	return &fakeErrorRepo{store: u.store}
}

// matchers

type sessionFilter struct {
	id        *uuid.UUID
	userId    *uuid.UUID
	hash      *string
	cached    bool
	orderDesc bool
}

func parseSessionSpecs(specs []specification.Specification) sessionFilter {
	var f sessionFilter
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			f.id = &id
		case specification.UserOwnedBy:
			uid := s.UserID
			f.userId = &uid
		case specification.BySourceTextHash:
			h := s.Hash
			f.hash = &h
		case specification.HasCachedProposals:
			f.cached = true
		case specification.OrderBy:
			f.orderDesc = s.Desc
		}
	}
	return f
}

func (f sessionFilter) matches(s entity.GenerationSession) bool {
	if f.id != nil && s.Id != *f.id {
		return false
	}
	if f.userId != nil && s.UserId != *f.userId {
		return false
	}
	if f.hash != nil && s.SourceTextHash != *f.hash {
		return false
	}
	if f.cached && !s.Cached() {
		return false
	}
	return true
}

// repositories

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.Id] = *user
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var byEmail *string
	var byId *uuid.UUID
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByEmail:
			e := s.Email
			byEmail = &e
		case specification.ByID:
			id := s.ID
			byId = &id
		}
	}
	for _, u := range r.store.users {
		if byEmail != nil && u.Email != *byEmail {
			continue
		}
		if byId != nil && u.Id != *byId {
			continue
		}
		found := u
		return &found, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.users)), nil
}

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.GenerationSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sessions[session.Id] = *session
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.GenerationSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failSessionUpdate {
		return errFake
	}
	r.store.sessions[session.Id] = *session
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GenerationSession, error) {
	if r.store.failSessionLookup {
		return nil, errFake
	}
	return r.findOne(specs)
}

func (r *fakeSessionRepo) FindOneForUpdate(ctx context.Context, specs ...specification.Specification) (*entity.GenerationSession, error) {
	return r.findOne(specs)
}

func (r *fakeSessionRepo) findOne(specs []specification.Specification) (*entity.GenerationSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f := parseSessionSpecs(specs)
	var matches []entity.GenerationSession
	for _, s := range r.store.sessions {
		if f.matches(s) {
			matches = append(matches, s)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	sort.Slice(matches, func(i, j int) bool {
		if f.orderDesc {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})
	found := matches[0]
	return &found, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.sessions)), nil
}

type fakeFlashcardRepo struct {
	store *fakeStore
}

func (r *fakeFlashcardRepo) Create(ctx context.Context, flashcard *entity.Flashcard) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.cards[flashcard.Id] = *flashcard
	return nil
}

func (r *fakeFlashcardRepo) CreateBulk(ctx context.Context, flashcards []*entity.Flashcard) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, f := range flashcards {
		r.store.cards[f.Id] = *f
	}
	return nil
}

func (r *fakeFlashcardRepo) Update(ctx context.Context, flashcard *entity.Flashcard) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.cards[flashcard.Id] = *flashcard
	return nil
}

func (r *fakeFlashcardRepo) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	card, ok := r.store.cards[id]
	if !ok || card.UserId != userId {
		return 0, nil
	}
	delete(r.store.cards, id)
	return 1, nil
}

func (r *fakeFlashcardRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Flashcard, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeFlashcardRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Flashcard, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var byId *uuid.UUID
	var byUser *uuid.UUID
	orderDesc := false
	limit, offset := 0, 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			byId = &id
		case specification.UserOwnedBy:
			uid := s.UserID
			byUser = &uid
		case specification.OrderBy:
			orderDesc = s.Desc
		case specification.Pagination:
			limit, offset = s.Limit, s.Offset
		}
	}
	var matches []*entity.Flashcard
	for _, c := range r.store.cards {
		if byId != nil && c.Id != *byId {
			continue
		}
		if byUser != nil && c.UserId != *byUser {
			continue
		}
		card := c
		matches = append(matches, &card)
	}
	sort.Slice(matches, func(i, j int) bool {
		if orderDesc {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})
	if offset > 0 {
		if offset >= len(matches) {
			return nil, nil
		}
		matches = matches[offset:]
	}
	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *fakeFlashcardRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var byUser *uuid.UUID
	for _, spec := range specs {
		if s, ok := spec.(specification.UserOwnedBy); ok {
			uid := s.UserID
			byUser = &uid
		}
	}
	var count int64
	for _, c := range r.store.cards {
		if byUser != nil && c.UserId != *byUser {
			continue
		}
		count++
	}
	return count, nil
}

type fakeErrorRepo struct {
	store *fakeStore
}

func (r *fakeErrorRepo) Create(ctx context.Context, record *entity.GenerationError) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.failErrorCreate {
		return errFake
	}
	r.store.errs = append(r.store.errs, *record)
	return nil
}

func (r *fakeErrorRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationError, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.GenerationError, len(r.store.errs))
	for i := range r.store.errs {
		rec := r.store.errs[i]
		out[i] = &rec
	}
	return out, nil
}

func (r *fakeErrorRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.errs)), nil
}

// fakeProvider is a scripted gateway: it either returns the configured JSON
// payload or the configured error, and counts how often it was called.

type fakeProvider struct {
	mu       sync.Mutex
	calls    int
	response string
	err      error
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func (p *fakeProvider) ChatStructured(ctx context.Context, history []llm.Message, format llm.ResponseFormat, options ...llm.Option) (json.RawMessage, error) {
	content, err := p.Chat(ctx, history, options...)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(content), nil
}

func (p *fakeProvider) Model() string {
	return "test/model"
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type fakeError struct{}

func (fakeError) Error() string { return "storage failure" }

var errFake = fakeError{}
