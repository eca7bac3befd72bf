package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

func TestIsActive(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	tests := []struct {
		name string
		sub  *domain.Subscription
		want bool
	}{
		{name: "nil subscription", sub: nil, want: false},
		{name: "active without billing date", sub: &domain.Subscription{Status: domain.SubscriptionActive}, want: true},
		{name: "active with future billing date", sub: &domain.Subscription{Status: domain.SubscriptionActive, NextBillingDate: &future}, want: true},
		{name: "active with past billing date", sub: &domain.Subscription{Status: domain.SubscriptionActive, NextBillingDate: &past}, want: false},
		{name: "trial", sub: &domain.Subscription{Status: domain.SubscriptionTrial, NextBillingDate: &future}, want: false},
		{name: "expired", sub: &domain.Subscription{Status: domain.SubscriptionExpired}, want: false},
		{name: "past due", sub: &domain.Subscription{Status: domain.SubscriptionPastDue, NextBillingDate: &future}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsActive(tt.sub))
		})
	}
}

func TestShouldAutoExpire(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	tests := []struct {
		name string
		sub  *domain.Subscription
		want bool
	}{
		{name: "nil subscription", sub: nil, want: false},
		{name: "active past billing date", sub: &domain.Subscription{Status: domain.SubscriptionActive, NextBillingDate: &past}, want: true},
		{name: "active future billing date", sub: &domain.Subscription{Status: domain.SubscriptionActive, NextBillingDate: &future}, want: false},
		{name: "active without billing date", sub: &domain.Subscription{Status: domain.SubscriptionActive}, want: false},
		{name: "expired past billing date", sub: &domain.Subscription{Status: domain.SubscriptionExpired, NextBillingDate: &past}, want: false},
		{name: "trial past billing date", sub: &domain.Subscription{Status: domain.SubscriptionTrial, NextBillingDate: &past}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldAutoExpire(tt.sub))
		})
	}
}
