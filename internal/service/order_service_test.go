package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/qrmenu-service/internal/domain"
	"github.com/spec-kit/qrmenu-service/internal/events"
	"github.com/spec-kit/qrmenu-service/internal/pos"
	"github.com/spec-kit/qrmenu-service/internal/repository"
	apperrors "github.com/spec-kit/qrmenu-service/pkg/util"
)

type fakeOrderRepository struct {
	orders       map[string]*domain.Order
	coOccurrence []repository.CoOccurrence
	coCalls      int
	nextID       int
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{orders: map[string]*domain.Order{}}
}

func (f *fakeOrderRepository) Create(_ context.Context, order *domain.Order) error {
	f.nextID++
	order.ID = fmt.Sprintf("order-%d", f.nextID)
	order.CreatedAt = time.Now()
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeOrderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepository) ListByBusiness(_ context.Context, businessID string, _ repository.OrderFilter) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, order := range f.orders {
		if order.BusinessID == businessID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepository) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return pgx.ErrNoRows
	}
	order.Status = status
	return nil
}

func (f *fakeOrderRepository) CoOccurringItems(_ context.Context, _, _ string, _ int) ([]repository.CoOccurrence, error) {
	f.coCalls++
	return f.coOccurrence, nil
}

// mapUpsellCache is an in-memory UpsellCache for tests.
type mapUpsellCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMapUpsellCache() *mapUpsellCache {
	return &mapUpsellCache{entries: map[string][]byte{}}
}

func (c *mapUpsellCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	return value, ok
}

func (c *mapUpsellCache) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

type capturedEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *capturedEvents) record(_ context.Context, event events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *capturedEvents) types() []events.EventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]events.EventType, 0, len(c.events))
	for _, event := range c.events {
		out = append(out, event.Type)
	}
	return out
}

func newOrderTestService(t *testing.T, businessRepo repository.BusinessRepository) (*OrderService, *fakeOrderRepository, *capturedEvents) {
	t.Helper()
	orderRepo := newFakeOrderRepository()
	dispatcher := events.NewInMemoryDispatcher()
	captured := &capturedEvents{}
	for _, eventType := range []events.EventType{
		events.EventOrderCreated,
		events.EventOrderStatusChanged,
		events.EventOrderPOSDispatched,
		events.EventOrderPOSFailed,
	} {
		dispatcher.Subscribe(eventType, captured.record)
	}

	svc := NewOrderService(OrderDependencies{
		OrderRepo:    orderRepo,
		BusinessRepo: businessRepo,
		Resolver:     pos.NewResolver(&http.Client{}),
		Dispatcher:   dispatcher,
		UpsellCache:  newMapUpsellCache(),
		Logger:       zaptest.NewLogger(t),
	})
	return svc, orderRepo, captured
}

func TestOrderService_CreateOrder(t *testing.T) {
	svc, _, captured := newOrderTestService(t, newFakeBusinessRepository())
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "biz-1", "table-1", []domain.OrderItem{
		{MenuItemID: "item-1", Name: "Margherita", Price: 12.50, Quantity: 2},
		{MenuItemID: "item-2", Name: "Cola", Price: 2.50, Quantity: 1},
	}, "extra napkins", domain.OrderSourceQRMenu)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.OrderStatusReceived, order.Status)
	assert.InDelta(t, 27.50, order.TotalAmount, 0.001)
	assert.Equal(t, []events.EventType{events.EventOrderCreated}, captured.types())
}

func TestOrderService_CreateOrderValidation(t *testing.T) {
	svc, _, _ := newOrderTestService(t, newFakeBusinessRepository())
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, "biz-1", "table-1", nil, "", domain.OrderSourceQRMenu)
	assert.Error(t, err, "empty orders are rejected")

	_, err = svc.CreateOrder(ctx, "biz-1", "table-1", []domain.OrderItem{
		{MenuItemID: "item-1", Price: 5, Quantity: 0},
	}, "", domain.OrderSourceQRMenu)
	assert.Error(t, err, "zero quantity is rejected")

	_, err = svc.CreateOrder(ctx, "biz-1", "table-1", []domain.OrderItem{
		{MenuItemID: "item-1", Price: -1, Quantity: 1},
	}, "", domain.OrderSourceQRMenu)
	assert.Error(t, err, "negative price is rejected")
}

func TestOrderService_GetOrderEnforcesOwnership(t *testing.T) {
	svc, _, _ := newOrderTestService(t, newFakeBusinessRepository())
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "biz-1", "table-1", []domain.OrderItem{
		{MenuItemID: "item-1", Price: 5, Quantity: 1},
	}, "", domain.OrderSourceQRMenu)
	require.NoError(t, err)

	_, err = svc.GetOrder(ctx, "biz-2", order.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus, "cross-tenant reads look like a missing order")
}

func TestOrderService_UpdateStatusTransitions(t *testing.T) {
	svc, _, captured := newOrderTestService(t, newFakeBusinessRepository())
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, "biz-1", "table-1", []domain.OrderItem{
		{MenuItemID: "item-1", Price: 5, Quantity: 1},
	}, "", domain.OrderSourceQRMenu)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, "biz-1", order.ID, domain.OrderStatusPrinted)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr, "received cannot jump straight to printed")
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)

	updated, err := svc.UpdateStatus(ctx, "biz-1", order.ID, domain.OrderStatusSentToPrinter)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusSentToPrinter, updated.Status)

	updated, err = svc.UpdateStatus(ctx, "biz-1", order.ID, domain.OrderStatusPrinted)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPrinted, updated.Status)

	_, err = svc.UpdateStatus(ctx, "biz-1", order.ID, domain.OrderStatusReceived)
	assert.Error(t, err, "printed is terminal")

	assert.Contains(t, captured.types(), events.EventOrderStatusChanged)
}

func TestOrderService_DispatchToPOS(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	businessRepo := newFakeBusinessRepository()
	business := &domain.Business{
		Name:  "Trattoria",
		Email: "owner@example.com",
		POS: domain.POSIntegration{
			Enabled:  true,
			Provider: "generic",
			Endpoint: server.URL,
		},
	}
	require.NoError(t, businessRepo.Create(context.Background(), business))

	svc, orderRepo, captured := newOrderTestService(t, businessRepo)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, business.ID, "table-1", []domain.OrderItem{
		{MenuItemID: "item-1", Name: "Margherita", Price: 12.50, Quantity: 1},
	}, "", domain.OrderSourceQRMenu)
	require.NoError(t, err)

	require.NoError(t, svc.DispatchToPOS(ctx, business.ID, order.ID))

	stored, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusSentToPOS, stored.Status)
	assert.Contains(t, captured.types(), events.EventOrderPOSDispatched)
}

func TestOrderService_DispatchToPOSFailureMarksOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	businessRepo := newFakeBusinessRepository()
	business := &domain.Business{
		Name:  "Trattoria",
		Email: "owner@example.com",
		POS: domain.POSIntegration{
			Enabled:  true,
			Provider: "generic",
			Endpoint: server.URL,
		},
	}
	require.NoError(t, businessRepo.Create(context.Background(), business))

	svc, orderRepo, captured := newOrderTestService(t, businessRepo)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, business.ID, "table-1", []domain.OrderItem{
		{MenuItemID: "item-1", Price: 5, Quantity: 1},
	}, "", domain.OrderSourceQRMenu)
	require.NoError(t, err)

	err = svc.DispatchToPOS(ctx, business.ID, order.ID)
	var statusErr *pos.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)

	stored, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPOSError, stored.Status)
	assert.Contains(t, captured.types(), events.EventOrderPOSFailed)
}

func TestOrderService_DispatchRequiresEnabledPOS(t *testing.T) {
	businessRepo := newFakeBusinessRepository()
	business := &domain.Business{Name: "Trattoria", Email: "owner@example.com"}
	require.NoError(t, businessRepo.Create(context.Background(), business))

	svc, _, _ := newOrderTestService(t, businessRepo)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, business.ID, "table-1", []domain.OrderItem{
		{MenuItemID: "item-1", Price: 5, Quantity: 1},
	}, "", domain.OrderSourceQRMenu)
	require.NoError(t, err)

	assert.Error(t, svc.DispatchToPOS(ctx, business.ID, order.ID))
}

func TestOrderService_UpsellSuggestionsCached(t *testing.T) {
	svc, orderRepo, _ := newOrderTestService(t, newFakeBusinessRepository())
	ctx := context.Background()

	orderRepo.coOccurrence = []repository.CoOccurrence{
		{MenuItemID: "item-2", Name: "Cola", Count: 12},
		{MenuItemID: "item-3", Name: "Tiramisu", Count: 5},
	}

	suggestions, err := svc.UpsellSuggestions(ctx, "biz-1", "item-1", 5)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, UpsellSuggestion{MenuItemID: "item-2", Name: "Cola", Count: 12}, suggestions[0])

	again, err := svc.UpsellSuggestions(ctx, "biz-1", "item-1", 5)
	require.NoError(t, err)
	assert.Equal(t, suggestions, again)
	assert.Equal(t, 1, orderRepo.coCalls, "second call is served from cache")

	encoded, err := json.Marshal(suggestions)
	require.NoError(t, err)
	assert.NotEmpty(t, encoded)
}
