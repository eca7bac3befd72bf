package domain

import "time"

// SubscriptionStatus enumerates billing states for a tenant.
type SubscriptionStatus string

const (
	SubscriptionTrial   SubscriptionStatus = "trial"
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionExpired SubscriptionStatus = "expired"
	SubscriptionPastDue SubscriptionStatus = "past_due"
)

// PlanType enumerates subscription plans.
type PlanType string

const (
	PlanMonthly PlanType = "monthly"
	PlanYearly  PlanType = "yearly"
)

// Subscription is the billing value object embedded on a Business.
type Subscription struct {
	Status          SubscriptionStatus `json:"status"`
	Plan            PlanType           `json:"plan,omitempty"`
	NextBillingDate *time.Time         `json:"nextBillingDate,omitempty"`
}

// POSIntegration configures outbound dispatch to a tenant's POS system.
type POSIntegration struct {
	Enabled   bool              `json:"enabled"`
	Provider  string            `json:"provider,omitempty"`
	Endpoint  string            `json:"endpoint,omitempty"`
	Method    string            `json:"method,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
	TimeoutMs int               `json:"timeoutMs,omitempty"`
}

// PrinterIntegration configures the tenant's kitchen printer webhook.
type PrinterIntegration struct {
	Enabled    bool   `json:"enabled"`
	WebhookURL string `json:"webhookUrl,omitempty"`
}

// Business is the tenant aggregate: a restaurant or bar account.
type Business struct {
	ID                  string
	Name                string
	Email               string
	PasswordHash        string
	Enabled             bool
	Subscription        Subscription
	POS                 POSIntegration
	Printer             PrinterIntegration
	CustomContent       map[string]any
	PasswordResetToken  *string
	PasswordResetExpiry *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
