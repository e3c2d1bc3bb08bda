package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/cryptobloom/backend/internal/config"
	"github.com/cryptobloom/backend/internal/events"
)

// NotificationService emits transactional email notifications for
// domain events. Delivery is a stub; the configured SMTP endpoint is
// logged alongside each message.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.EmailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.EmailConfig) *NotificationService {
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
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventOrderPlaced, n.handleOrderPlaced)
	n.dispatcher.Subscribe(events.EventOrderStatusChanged, n.handleOrderStatusChanged)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	n.logger.Info("UserRegistered", zap.String("user_id", event.UserID), zap.String("username", payload.Username))
	n.sendEmailStub(payload.Email, "Welcome to CryptoBloom!")
	return nil
}

func (n *NotificationService) handleOrderPlaced(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.OrderPlacedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("OrderPlaced", zap.String("order_id", payload.OrderID), zap.Float64("total", payload.Total))
	n.sendEmailStub(payload.Email, "Order Confirmation - #"+payload.OrderID)
	return nil
}

func (n *NotificationService) handleOrderStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderStatusChanged", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendEmailStub(to, subject string) {
	if strings.TrimSpace(n.cfg.From) == "" || to == "" {
		return
	}
	n.logger.Debug("sendEmailStub",
		zap.String("from", n.cfg.From),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("smtp_host", n.cfg.Host),
		zap.Int("smtp_port", n.cfg.Port))
}
