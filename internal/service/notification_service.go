package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/waitlisthq/waitlist-service/internal/config"
	"github.com/waitlisthq/waitlist-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventContactSubmitted, n.handleContactSubmitted)
	n.dispatcher.Subscribe(events.EventWaitlistJoined, n.handleWaitlistJoined)
	n.dispatcher.Subscribe(events.EventAdminRegistered, n.handleAdminEvent)
	n.dispatcher.Subscribe(events.EventAdminDeleted, n.handleAdminEvent)
}

func (n *NotificationService) handleContactSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("ContactSubmitted", zap.String("contact_id", event.SubjectID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleWaitlistJoined(ctx context.Context, event events.Event) error {
	n.logger.Info("WaitlistJoined", zap.String("entry_id", event.SubjectID))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// Admin events are audit log lines only; they never leave the process.
func (n *NotificationService) handleAdminEvent(_ context.Context, event events.Event) error {
	n.logger.Info("AdminEvent", zap.String("event_type", string(event.Type)), zap.String("admin_id", event.SubjectID))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailTo) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", n.cfg.EmailTo),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("subject_id", event.SubjectID),
		zap.String("event_type", string(event.Type)))
}
