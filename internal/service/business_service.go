package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/qrmenu-service/internal/billing"
	"github.com/spec-kit/qrmenu-service/internal/domain"
	"github.com/spec-kit/qrmenu-service/internal/events"
	"github.com/spec-kit/qrmenu-service/internal/repository"
)

// BusinessService covers super-admin tenant management and billing actions.
type BusinessService struct {
	businesses repository.BusinessRepository
	checkout   *billing.CheckoutClient
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewBusinessService builds the service.
func NewBusinessService(businesses repository.BusinessRepository, checkout *billing.CheckoutClient, dispatcher events.Dispatcher, logger *zap.Logger) *BusinessService {
	return &BusinessService{
		businesses: businesses,
		checkout:   checkout,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ListBusinesses returns tenants for the admin panel.
func (s *BusinessService) ListBusinesses(ctx context.Context, limit, offset int) ([]domain.Business, error) {
	return s.businesses.List(ctx, limit, offset)
}

// SetEnabled toggles a tenant's enablement flag.
func (s *BusinessService) SetEnabled(ctx context.Context, id string, enabled bool) error {
	return s.businesses.SetEnabled(ctx, id, enabled)
}

// UpdateSubscription replaces a tenant's subscription state.
func (s *BusinessService) UpdateSubscription(ctx context.Context, id string, sub domain.Subscription) error {
	return s.businesses.UpdateSubscription(ctx, id, sub)
}

// EnsureSubscriptionCurrent applies the lazy auto-expiry backstop to a loaded
// tenant and persists the transition when it fires.
func (s *BusinessService) EnsureSubscriptionCurrent(ctx context.Context, business *domain.Business) error {
	if !billing.ShouldAutoExpire(&business.Subscription) {
		return nil
	}
	business.Subscription.Status = domain.SubscriptionExpired
	if err := s.businesses.UpdateSubscription(ctx, business.ID, business.Subscription); err != nil {
		return err
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:       events.EventSubscriptionExpired,
		BusinessID: business.ID,
		Timestamp:  time.Now(),
		Payload:    events.SubscriptionExpiredPayload{Plan: business.Subscription.Plan},
	})
	return nil
}

// HasActiveSubscription reports whether the tenant may take customer orders.
func (s *BusinessService) HasActiveSubscription(business *domain.Business) bool {
	if business.Subscription.Status == domain.SubscriptionTrial {
		// Trials order freely until an admin transitions them.
		return true
	}
	return billing.IsActive(&business.Subscription)
}

// CreateCheckoutSession returns the hosted checkout redirect URL for a plan.
func (s *BusinessService) CreateCheckoutSession(ctx context.Context, businessID string, plan domain.PlanType) (string, error) {
	url, err := s.checkout.CreateSession(ctx, businessID, plan)
	if err != nil {
		s.logger.Error("checkout session creation failed", zap.String("business_id", businessID), zap.Error(err))
		return "", err
	}
	return url, nil
}
