package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/qrmenu-service/internal/auth"
	"github.com/spec-kit/qrmenu-service/internal/pos"
	"github.com/spec-kit/qrmenu-service/internal/service"
)

// POSHandler exposes the POS connection test endpoint.
type POSHandler struct {
	orders *service.OrderService
}

// NewPOSHandler constructs handler.
func NewPOSHandler(orders *service.OrderService) *POSHandler {
	return &POSHandler{orders: orders}
}

// TestConnection handles POST /api/pos/test. Adapter failures map to response
// codes through the typed error variants: timeout to 408, everything else 500.
func (h *POSHandler) TestConnection(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := h.orders.TestPOSConnection(c.UserContext(), principal.BusinessID); err != nil {
		return mapPOSError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"connected": true}})
}

// mapPOSError converts adapter error variants to HTTP responses.
func mapPOSError(err error) error {
	var timeoutErr *pos.TimeoutError
	if errors.As(err, &timeoutErr) {
		return fiber.NewError(http.StatusRequestTimeout, timeoutErr.Error())
	}
	var statusErr *pos.HTTPStatusError
	if errors.As(err, &statusErr) {
		return fiber.NewError(http.StatusInternalServerError, statusErr.Error())
	}
	var networkErr *pos.NetworkError
	if errors.As(err, &networkErr) {
		return fiber.NewError(http.StatusInternalServerError, networkErr.Error())
	}
	return err
}
