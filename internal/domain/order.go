package domain

import "time"

// OrderStatus enumerates lifecycle states for customer orders.
type OrderStatus string

const (
	OrderStatusReceived      OrderStatus = "received"
	OrderStatusSentToPrinter OrderStatus = "sent_to_printer"
	OrderStatusPrinted       OrderStatus = "printed"
	OrderStatusPrinterError  OrderStatus = "printer_error"
	OrderStatusSentToPOS     OrderStatus = "sent_to_pos"
	OrderStatusPOSError      OrderStatus = "pos_error"
)

// OrderSource identifies which customer-facing flow produced an order.
type OrderSource string

const (
	OrderSourceQRMenu OrderSource = "QR_MENU"
	OrderSourceAI     OrderSource = "AI"
)

// OrderItem is a single menu line on an order.
type OrderItem struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// Order is a customer order placed against a tenant's table.
type Order struct {
	ID          string
	BusinessID  string
	TableID     string
	Items       []OrderItem
	TotalAmount float64
	Status      OrderStatus
	Source      OrderSource
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanTransitionTo reports whether a status change is a legal lifecycle step.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	allowed, ok := orderTransitions[s]
	if !ok {
		return false
	}
	for _, candidate := range allowed {
		if candidate == next {
			return true
		}
	}
	return false
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusReceived:      {OrderStatusSentToPrinter, OrderStatusSentToPOS},
	OrderStatusSentToPrinter: {OrderStatusPrinted, OrderStatusPrinterError},
	OrderStatusSentToPOS:     {OrderStatusPOSError},
	OrderStatusPrinterError:  {OrderStatusSentToPrinter},
	OrderStatusPOSError:      {OrderStatusSentToPOS},
	OrderStatusPrinted:       {},
}
