package events

import (
	"time"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderCreated        EventType = "order_created"
	EventOrderStatusChanged  EventType = "order_status_changed"
	EventOrderPOSDispatched  EventType = "order_pos_dispatched"
	EventOrderPOSFailed      EventType = "order_pos_failed"
	EventSubscriptionExpired EventType = "subscription_expired"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	BusinessID string      `json:"business_id"`
	OrderID    string      `json:"order_id,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	TableID     string             `json:"table_id"`
	Source      domain.OrderSource `json:"source"`
	ItemCount   int                `json:"item_count"`
	TotalAmount float64            `json:"total_amount"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}

// OrderPOSDispatchedPayload payload.
type OrderPOSDispatchedPayload struct {
	Provider string `json:"provider"`
	Endpoint string `json:"endpoint"`
}

// OrderPOSFailedPayload payload.
type OrderPOSFailedPayload struct {
	Provider string `json:"provider"`
	Reason   string `json:"reason"`
}

// SubscriptionExpiredPayload payload.
type SubscriptionExpiredPayload struct {
	Plan domain.PlanType `json:"plan,omitempty"`
}
