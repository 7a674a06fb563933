package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tenx-cards-be/internal/dto"
	"tenx-cards-be/internal/entity"
	"tenx-cards-be/internal/repository/memory"
	"tenx-cards-be/internal/repository/specification"
	"tenx-cards-be/internal/repository/unitofwork"
	"tenx-cards-be/pkg/events"
	pktNats "tenx-cards-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenExpiry = time.Hour * 24

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, accessToken string) error
}

type authService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	blacklist        *memory.TokenBlacklist
	jwtSecret        string
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	blacklist *memory.TokenBlacklist,
	jwtSecret string,
) IAuthService {
	return &authService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		blacklist:        blacklist,
		jwtSecret:        jwtSecret,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewConflictError("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BaseEvent{
		Type: events.TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id":   user.Id,
			"email":     user.Email,
			"full_name": user.FullName,
		},
		OccurredAt: time.Now(),
	})

	return &dto.RegisterResponse{
		Id:    user.Id,
		Email: user.Email,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"exp":     time.Now().Add(accessTokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.BaseEvent{
		Type: events.TypeUserLogin,
		Data: map[string]interface{}{
			"user_id": user.Id,
			"email":   user.Email,
		},
		OccurredAt: time.Now(),
	})

	return &dto.LoginResponse{
		AccessToken: signedToken,
		User: dto.UserDTO{
			Id:       user.Id,
			Email:    user.Email,
			FullName: user.FullName,
		},
	}, nil
}

func (s *authService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return NewBadRequestError("missing access token")
	}

	// Revoke for the remaining token lifetime so the blacklist entry expires
	// together with the token itself.
	ttl := accessTokenExpiry
	token, _, err := jwt.NewParser().ParseUnverified(accessToken, jwt.MapClaims{})
	if err == nil {
		if exp, expErr := token.Claims.GetExpirationTime(); expErr == nil && exp != nil {
			if remaining := time.Until(exp.Time); remaining > 0 {
				ttl = remaining
			}
		}
	}

	s.blacklist.Revoke(accessToken, ttl)
	return nil
}

// publishEvent fans the event out to the in-process bus and, when NATS is
// configured, to the external stream. Both are auxiliary; failures are
// logged but never fail the request.
func (s *authService) publishEvent(ctx context.Context, evt events.BaseEvent) {
	if s.publisherService != nil {
		payload, err := json.Marshal(evt)
		if err == nil {
			if err := s.publisherService.Publish(ctx, payload); err != nil {
				fmt.Printf("[WARN] Failed to publish %s event: %v\n", evt.Type, err)
			}
		}
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event to NATS: %v\n", evt.Type, err)
		}
	}
}
