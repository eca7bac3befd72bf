package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/qrmenu-service/internal/config"
	"github.com/spec-kit/qrmenu-service/internal/events"
)

// NotificationService forwards order events to the kitchen printer webhook.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.PrinterConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.PrinterConfig) *NotificationService {
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
	n.dispatcher.Subscribe(events.EventOrderCreated, n.handleOrderCreated)
	n.dispatcher.Subscribe(events.EventOrderStatusChanged, n.handleOrderStatusChanged)
	n.dispatcher.Subscribe(events.EventOrderPOSFailed, n.handleOrderPOSFailed)
	n.dispatcher.Subscribe(events.EventSubscriptionExpired, n.handleSubscriptionExpired)
}

func (n *NotificationService) handleOrderCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderCreated", zap.String("order_id", event.OrderID), zap.Any("payload", event.Payload))
	n.sendPrinterNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleOrderStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderStatusChanged", zap.String("order_id", event.OrderID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleOrderPOSFailed(ctx context.Context, event events.Event) error {
	n.logger.Warn("OrderPOSFailed", zap.String("order_id", event.OrderID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleSubscriptionExpired(ctx context.Context, event events.Event) error {
	n.logger.Info("SubscriptionExpired", zap.String("business_id", event.BusinessID))
	return nil
}

func (n *NotificationService) sendPrinterNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendPrinterNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("order_id", event.OrderID),
		zap.String("event_type", string(event.Type)))
}
