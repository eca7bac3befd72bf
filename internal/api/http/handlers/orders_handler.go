package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/qrmenu-service/internal/api/dto"
	"github.com/spec-kit/qrmenu-service/internal/auth"
	"github.com/spec-kit/qrmenu-service/internal/domain"
	"github.com/spec-kit/qrmenu-service/internal/repository"
	"github.com/spec-kit/qrmenu-service/internal/service"
)

// OrdersHandler exposes order listing and lifecycle endpoints for tenants.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// List handles GET /api/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	filter := repository.OrderFilter{}
	if statuses := c.Query("status"); statuses != "" {
		for _, status := range strings.Split(statuses, ",") {
			filter.Statuses = append(filter.Statuses, domain.OrderStatus(status))
		}
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset", "0"))

	orders, err := h.orders.ListOrders(c.UserContext(), principal.BusinessID, filter)
	if err != nil {
		return err
	}

	responses := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, dto.NewOrderResponse(&orders[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Get handles GET /api/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	order, err := h.orders.GetOrder(c.UserContext(), principal.BusinessID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// UpdateStatus handles PATCH /api/orders/:id/status.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Status == "" {
		return fiber.NewError(http.StatusBadRequest, "status required")
	}

	order, err := h.orders.UpdateStatus(c.UserContext(), principal.BusinessID, c.Params("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// Dispatch handles POST /api/orders/:id/pos.
func (h *OrdersHandler) Dispatch(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := h.orders.DispatchToPOS(c.UserContext(), principal.BusinessID, c.Params("id")); err != nil {
		return mapPOSError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"dispatched": true}})
}
