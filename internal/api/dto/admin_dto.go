package dto

import (
	"time"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

// SetEnabledRequest payload for toggling tenant enablement.
type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// UpdateSubscriptionRequest payload for admin subscription changes.
type UpdateSubscriptionRequest struct {
	Status          string     `json:"status"`
	Plan            string     `json:"plan"`
	NextBillingDate *time.Time `json:"nextBillingDate"`
}

// BusinessSummary shapes a tenant row for the admin panel.
type BusinessSummary struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Enabled      bool                `json:"enabled"`
	Subscription domain.Subscription `json:"subscription"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// NewBusinessSummary maps the domain model.
func NewBusinessSummary(business *domain.Business) BusinessSummary {
	return BusinessSummary{
		ID:           business.ID,
		Name:         business.Name,
		Email:        business.Email,
		Enabled:      business.Enabled,
		Subscription: business.Subscription,
		CreatedAt:    business.CreatedAt,
	}
}

// CheckoutRequest payload for starting a hosted checkout session.
type CheckoutRequest struct {
	Plan string `json:"plan"`
}
