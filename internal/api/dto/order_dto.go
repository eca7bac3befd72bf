package dto

import (
	"time"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

// OrderItemRequest is one order line as submitted by the customer UI.
type OrderItemRequest struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// CreateOrderRequest payload for the public ordering flow.
type CreateOrderRequest struct {
	QRToken string             `json:"qrToken"`
	Items   []OrderItemRequest `json:"items"`
	Notes   string             `json:"notes"`
	Source  string             `json:"source"`
}

// UpdateOrderStatusRequest payload for lifecycle transitions.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse shapes an order for JSON responses.
type OrderResponse struct {
	ID          string             `json:"id"`
	TableID     string             `json:"tableId"`
	Items       []domain.OrderItem `json:"items"`
	TotalAmount float64            `json:"totalAmount"`
	Status      string             `json:"status"`
	Source      string             `json:"source,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// NewOrderResponse maps the domain model.
func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		TableID:     order.TableID,
		Items:       order.Items,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		Source:      string(order.Source),
		Notes:       order.Notes,
		CreatedAt:   order.CreatedAt,
	}
}
