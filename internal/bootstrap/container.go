package bootstrap

import (
	"context"
	"log"
	"time"

	"tenx-cards-be/internal/config"
	"tenx-cards-be/internal/controller"
	"tenx-cards-be/internal/pkg/logger"
	"tenx-cards-be/internal/pkg/mailer"
	"tenx-cards-be/internal/pkg/serverutils"
	"tenx-cards-be/internal/repository/memory"
	"tenx-cards-be/internal/repository/unitofwork"
	"tenx-cards-be/internal/service"
	"tenx-cards-be/pkg/events"
	"tenx-cards-be/pkg/llm/factory"
	"tenx-cards-be/pkg/llm/openrouter"

	pktNats "tenx-cards-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Rate limit for AI generation requests, per user.
const (
	generateRateLimit  = 10
	generateRateWindow = time.Minute
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	GenerationController controller.IGenerationController
	FlashcardController  controller.IFlashcardController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI gateway. Missing credentials are fatal at startup so no request
	// ever reaches a half-configured provider.
	if err := cfg.OpenRouter.Validate(); err != nil {
		log.Fatalf("[FATAL] Invalid AI gateway configuration: %v", err)
	}
	llmProvider, err := factory.NewLLMProvider("openrouter", openrouter.Config{
		APIKey:   cfg.OpenRouter.APIKey,
		Model:    cfg.OpenRouter.Model,
		BaseURL:  cfg.OpenRouter.BaseURL,
		SiteURL:  cfg.OpenRouter.SiteURL,
		SiteName: cfg.OpenRouter.SiteName,
		Timeout:  cfg.OpenRouter.Timeout,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: openrouter (%s)", llmProvider.Model())

	// 4. Infrastructure. NATS and Redis are optional; services degrade to
	// in-process behavior when either is unreachable.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	}

	var rdb *redis.Client
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb = redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (rate limiting disabled)", err)
		rdb = nil
	}

	tokenBlacklist := memory.NewTokenBlacklist()

	// 5. Services
	publisherService := service.NewPublisherService(events.TopicName, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		events.TopicName,
		emailService,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, publisherService, natsPub, tokenBlacklist, cfg.App.JWTSecret)
	generationService := service.NewGenerationService(uowFactory, llmProvider, sysLogger)
	flashcardService := service.NewFlashcardService(uowFactory, publisherService, natsPub, sysLogger)

	// 6. Middleware
	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.App.JWTSecret, tokenBlacklist)
	rateLimit := serverutils.NewRateLimitMiddleware(rdb, generateRateLimit, generateRateWindow)

	// 7. Controllers
	authController := controller.NewAuthController(authService)
	generationController := controller.NewGenerationController(generationService, jwtMiddleware, rateLimit)
	flashcardController := controller.NewFlashcardController(flashcardService, jwtMiddleware)

	return &Container{
		AuthController:       authController,
		GenerationController: generationController,
		FlashcardController:  flashcardController,
		ConsumerService:      consumerService,
		Logger:               sysLogger,
	}
}
