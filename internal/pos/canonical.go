package pos

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

// CanonicalItem is a normalized order line consumed by POS adapters.
type CanonicalItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
}

// CanonicalOrder is the read-only projection of an Order that every POS
// adapter consumes. It is constructed per dispatch and never persisted.
type CanonicalOrder struct {
	OrderID    string             `json:"orderId"`
	BusinessID string             `json:"businessId"`
	Table      string             `json:"table"`
	Source     domain.OrderSource `json:"source"`
	Items      []CanonicalItem    `json:"items"`
	Subtotal   float64            `json:"subtotal"`
	Tax        float64            `json:"tax"`
	Discount   float64            `json:"discount"`
	Total      float64            `json:"total"`
	Notes      string             `json:"notes,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// totalTolerance is the allowed drift between the recomputed subtotal and the
// stored order total before a mismatch is flagged.
const totalTolerance = 0.01

// ToCanonical maps an order to its canonical POS representation. The subtotal
// is recomputed from line items and cross-checked against the stored total;
// on drift beyond the tolerance a warning is logged but the stored total
// remains authoritative. The function never fails.
func ToCanonical(order *domain.Order, source domain.OrderSource, logger *zap.Logger) CanonicalOrder {
	items := make([]CanonicalItem, 0, len(order.Items))
	subtotal := 0.0
	for _, line := range order.Items {
		lineTotal := line.Price * float64(line.Quantity)
		items = append(items, CanonicalItem{
			ID:        line.MenuItemID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.Price,
			Total:     lineTotal,
		})
		subtotal += lineTotal
	}

	tax := 0.0
	discount := 0.0
	calculatedTotal := subtotal + tax - discount

	if math.Abs(calculatedTotal-order.TotalAmount) > totalTolerance {
		logger.Warn("order total mismatch",
			zap.String("order_id", order.ID),
			zap.String("business_id", order.BusinessID),
			zap.Float64("calculated_total", calculatedTotal),
			zap.Float64("stored_total", order.TotalAmount))
	}

	return CanonicalOrder{
		OrderID:    order.ID,
		BusinessID: order.BusinessID,
		Table:      order.TableID,
		Source:     source,
		Items:      items,
		Subtotal:   subtotal,
		Tax:        tax,
		Discount:   discount,
		Total:      order.TotalAmount,
		Notes:      order.Notes,
		CreatedAt:  order.CreatedAt,
	}
}
