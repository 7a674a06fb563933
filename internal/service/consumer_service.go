package service

import (
	"context"
	"encoding/json"

	"tenx-cards-be/internal/pkg/logger"
	"tenx-cards-be/internal/pkg/mailer"
	"tenx-cards-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var evt events.BaseEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal event", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack malformed messages, redelivery cannot fix them.
		msg.Ack()
		return
	}

	switch evt.Type {
	case events.TypeUserRegistered:
		cs.handleUserRegistered(&evt)
	case events.TypeFlashcardsSaved:
		cs.handleFlashcardsSaved(&evt)
	default:
		cs.logger.Debug("consumer", "Ignoring event", map[string]interface{}{
			"type": evt.Type,
		})
	}

	msg.Ack()
}

func (cs *consumerService) handleUserRegistered(evt *events.BaseEvent) {
	email, _ := evt.Data["email"].(string)
	fullName, _ := evt.Data["full_name"].(string)
	if email == "" {
		cs.logger.Warn("consumer", "User registered event without email", map[string]interface{}{
			"data": evt.Data,
		})
		return
	}

	if err := cs.emailService.SendWelcome(email, fullName); err != nil {
		cs.logger.Error("consumer", "Failed to send welcome email", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return
	}

	cs.logger.Info("consumer", "Welcome email sent", map[string]interface{}{
		"email": email,
	})
}

func (cs *consumerService) handleFlashcardsSaved(evt *events.BaseEvent) {
	cs.logger.Info("consumer", "Flashcards saved", map[string]interface{}{
		"user_id":       evt.Data["user_id"],
		"generation_id": evt.Data["generation_id"],
		"saved_count":   evt.Data["saved_count"],
	})
}
