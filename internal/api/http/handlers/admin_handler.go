package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/qrmenu-service/internal/api/dto"
	"github.com/spec-kit/qrmenu-service/internal/domain"
	"github.com/spec-kit/qrmenu-service/internal/service"
)

// AdminHandler exposes super-admin tenant management endpoints.
type AdminHandler struct {
	businesses *service.BusinessService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(businesses *service.BusinessService) *AdminHandler {
	return &AdminHandler{businesses: businesses}
}

// ListBusinesses handles GET /admin/businesses.
func (h *AdminHandler) ListBusinesses(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	businesses, err := h.businesses.ListBusinesses(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	summaries := make([]dto.BusinessSummary, 0, len(businesses))
	for i := range businesses {
		summaries = append(summaries, dto.NewBusinessSummary(&businesses[i]))
	}
	return c.JSON(fiber.Map{"data": summaries})
}

// SetEnabled handles PATCH /admin/businesses/:id/enabled.
func (h *AdminHandler) SetEnabled(c *fiber.Ctx) error {
	var req dto.SetEnabledRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.businesses.SetEnabled(c.UserContext(), c.Params("id"), req.Enabled); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"enabled": req.Enabled}})
}

// UpdateSubscription handles PATCH /admin/businesses/:id/subscription.
func (h *AdminHandler) UpdateSubscription(c *fiber.Ctx) error {
	var req dto.UpdateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	status := domain.SubscriptionStatus(req.Status)
	switch status {
	case domain.SubscriptionTrial, domain.SubscriptionActive, domain.SubscriptionExpired, domain.SubscriptionPastDue:
	default:
		return fiber.NewError(http.StatusBadRequest, "invalid subscription status")
	}

	sub := domain.Subscription{
		Status:          status,
		Plan:            domain.PlanType(req.Plan),
		NextBillingDate: req.NextBillingDate,
	}
	if err := h.businesses.UpdateSubscription(c.UserContext(), c.Params("id"), sub); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sub})
}
