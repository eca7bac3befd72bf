package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/qrmenu-service/internal/domain"
	"github.com/spec-kit/qrmenu-service/internal/events"
	"github.com/spec-kit/qrmenu-service/internal/pos"
	"github.com/spec-kit/qrmenu-service/internal/repository"
	apperrors "github.com/spec-kit/qrmenu-service/pkg/util"
)

// upsellCacheTTL bounds how long co-occurrence suggestions are served from cache.
const upsellCacheTTL = 10 * time.Minute

// UpsellCache caches computed upsell suggestion lists.
type UpsellCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// OrderService coordinates order intake, lifecycle and POS dispatch.
type OrderService struct {
	orders      repository.OrderRepository
	businesses  repository.BusinessRepository
	resolver    *pos.Resolver
	dispatcher  events.Dispatcher
	upsellCache UpsellCache
	logger      *zap.Logger
}

// OrderDependencies bundles requirements for the order service.
type OrderDependencies struct {
	OrderRepo    repository.OrderRepository
	BusinessRepo repository.BusinessRepository
	Resolver     *pos.Resolver
	Dispatcher   events.Dispatcher
	UpsellCache  UpsellCache
	Logger       *zap.Logger
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:      deps.OrderRepo,
		businesses:  deps.BusinessRepo,
		resolver:    deps.Resolver,
		dispatcher:  deps.Dispatcher,
		upsellCache: deps.UpsellCache,
		logger:      deps.Logger,
	}
}

// CreateOrder records a customer order in the received state. The stored
// total is computed from the line items at intake time.
func (s *OrderService) CreateOrder(ctx context.Context, businessID, tableID string, items []domain.OrderItem, notes string, source domain.OrderSource) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("order requires at least one item", nil)
	}
	total := 0.0
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, apperrors.NewValidationError("item quantity must be positive", nil)
		}
		if item.Price < 0 {
			return nil, apperrors.NewValidationError("item price must not be negative", nil)
		}
		total += item.Price * float64(item.Quantity)
	}

	order := &domain.Order{
		BusinessID:  businessID,
		TableID:     tableID,
		Items:       items,
		TotalAmount: total,
		Status:      domain.OrderStatusReceived,
		Source:      source,
		Notes:       notes,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:       events.EventOrderCreated,
		BusinessID: businessID,
		OrderID:    order.ID,
		Timestamp:  time.Now(),
		Payload: events.OrderCreatedPayload{
			TableID:     tableID,
			Source:      source,
			ItemCount:   len(items),
			TotalAmount: total,
		},
	})
	return order, nil
}

// GetOrder loads an order, enforcing tenant ownership.
func (s *OrderService) GetOrder(ctx context.Context, businessID, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BusinessID != businessID {
		// cross-tenant lookups look identical to a missing order
		return nil, apperrors.NewNotFound("order", nil)
	}
	return order, nil
}

// ListOrders returns the tenant's orders with filters applied.
func (s *OrderService) ListOrders(ctx context.Context, businessID string, filter repository.OrderFilter) ([]domain.Order, error) {
	return s.orders.ListByBusiness(ctx, businessID, filter)
}

// UpdateStatus applies a lifecycle transition after validating it.
func (s *OrderService) UpdateStatus(ctx context.Context, businessID, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, businessID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("cannot transition order from %s to %s", order.Status, next), nil)
	}
	if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:       events.EventOrderStatusChanged,
		BusinessID: businessID,
		OrderID:    orderID,
		Timestamp:  time.Now(),
		Payload:    events.OrderStatusChangedPayload{OldStatus: order.Status, NewStatus: next},
	})

	order.Status = next
	return order, nil
}

// DispatchToPOS canonicalizes the order and forwards it to the tenant's POS
// endpoint. The order moves to sent_to_pos on success and pos_error on
// failure; the adapter error propagates to the caller either way. Dispatch is
// never retried automatically.
func (s *OrderService) DispatchToPOS(ctx context.Context, businessID, orderID string) error {
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return err
	}
	if !business.POS.Enabled {
		return apperrors.NewValidationError("pos integration disabled", nil)
	}

	order, err := s.GetOrder(ctx, businessID, orderID)
	if err != nil {
		return err
	}

	canonical := pos.ToCanonical(order, order.Source, s.logger)
	adapter := s.resolver.Resolve(business.POS.Provider)

	if err := adapter.SendOrder(ctx, canonical, business.POS); err != nil {
		if updateErr := s.orders.UpdateStatus(ctx, orderID, domain.OrderStatusPOSError); updateErr != nil {
			s.logger.Error("failed to record pos_error status", zap.String("order_id", orderID), zap.Error(updateErr))
		}
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:       events.EventOrderPOSFailed,
			BusinessID: businessID,
			OrderID:    orderID,
			Timestamp:  time.Now(),
			Payload:    events.OrderPOSFailedPayload{Provider: business.POS.Provider, Reason: err.Error()},
		})
		return err
	}

	if err := s.orders.UpdateStatus(ctx, orderID, domain.OrderStatusSentToPOS); err != nil {
		return err
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:       events.EventOrderPOSDispatched,
		BusinessID: businessID,
		OrderID:    orderID,
		Timestamp:  time.Now(),
		Payload:    events.OrderPOSDispatchedPayload{Provider: business.POS.Provider, Endpoint: business.POS.Endpoint},
	})
	return nil
}

// TestPOSConnection sends a synthetic canonical order to the tenant's POS
// endpoint so the dashboard can validate the integration. Nothing is stored.
func (s *OrderService) TestPOSConnection(ctx context.Context, businessID string) error {
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return err
	}
	if !business.POS.Enabled {
		return apperrors.NewValidationError("pos integration disabled", nil)
	}

	probe := &domain.Order{
		ID:         "test-" + businessID,
		BusinessID: businessID,
		TableID:    "test",
		Items: []domain.OrderItem{
			{MenuItemID: "test-item", Name: "Connection Test", Price: 0, Quantity: 1},
		},
		TotalAmount: 0,
		CreatedAt:   time.Now(),
	}
	canonical := pos.ToCanonical(probe, domain.OrderSourceQRMenu, s.logger)
	adapter := s.resolver.Resolve(business.POS.Provider)
	return adapter.SendOrder(ctx, canonical, business.POS)
}

// UpsellSuggestion is a menu item frequently co-ordered with a reference item.
type UpsellSuggestion struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	Count      int64  `json:"count"`
}

// UpsellSuggestions ranks co-occurring items for the given menu item. Results
// are cached per business/item pair.
func (s *OrderService) UpsellSuggestions(ctx context.Context, businessID, menuItemID string, limit int) ([]UpsellSuggestion, error) {
	key := fmt.Sprintf("upsell:%s:%s", businessID, menuItemID)
	if s.upsellCache != nil {
		if cached, ok := s.upsellCache.Get(ctx, key); ok {
			var suggestions []UpsellSuggestion
			if err := json.Unmarshal(cached, &suggestions); err == nil {
				return suggestions, nil
			}
		}
	}

	rows, err := s.orders.CoOccurringItems(ctx, businessID, menuItemID, limit)
	if err != nil {
		return nil, err
	}

	suggestions := make([]UpsellSuggestion, 0, len(rows))
	for _, row := range rows {
		suggestions = append(suggestions, UpsellSuggestion{
			MenuItemID: row.MenuItemID,
			Name:       row.Name,
			Count:      row.Count,
		})
	}

	if s.upsellCache != nil {
		if encoded, err := json.Marshal(suggestions); err == nil {
			s.upsellCache.Set(ctx, key, encoded, upsellCacheTTL)
		}
	}
	return suggestions, nil
}
