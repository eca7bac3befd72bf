package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/qrmenu-service/internal/api/dto"
	"github.com/spec-kit/qrmenu-service/internal/auth"
	"github.com/spec-kit/qrmenu-service/internal/domain"
	"github.com/spec-kit/qrmenu-service/internal/service"
	apperrors "github.com/spec-kit/qrmenu-service/pkg/util"
)

// BillingHandler exposes checkout session creation for tenants.
type BillingHandler struct {
	businesses *service.BusinessService
}

// NewBillingHandler constructs handler.
func NewBillingHandler(businesses *service.BusinessService) *BillingHandler {
	return &BillingHandler{businesses: businesses}
}

// CreateCheckout handles POST /api/billing/checkout.
func (h *BillingHandler) CreateCheckout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	plan := domain.PlanType(req.Plan)
	switch plan {
	case domain.PlanMonthly, domain.PlanYearly:
	default:
		return fiber.NewError(http.StatusBadRequest, "invalid plan")
	}

	url, err := h.businesses.CreateCheckoutSession(c.UserContext(), principal.BusinessID, plan)
	if err != nil {
		return apperrors.NewUpstreamError("checkout session creation failed", err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"checkoutUrl": url}})
}
