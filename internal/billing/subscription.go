package billing

import (
	"time"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

// IsActive reports whether a subscription currently grants access.
// A nil subscription or any non-active status is inactive; an active status
// with a billing date strictly in the past is inactive as well.
func IsActive(sub *domain.Subscription) bool {
	if sub == nil {
		return false
	}
	if sub.Status != domain.SubscriptionActive {
		return false
	}
	if sub.NextBillingDate != nil && sub.NextBillingDate.Before(time.Now()) {
		return false
	}
	return true
}

// ShouldAutoExpire detects an active subscription whose billing date has
// passed without the status being transitioned to expired. Used as a lazy
// backstop on tenant loads, never as a background process.
func ShouldAutoExpire(sub *domain.Subscription) bool {
	if sub == nil {
		return false
	}
	return sub.Status == domain.SubscriptionActive &&
		sub.NextBillingDate != nil &&
		sub.NextBillingDate.Before(time.Now())
}
