package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/qrmenu-service/internal/api/dto"
	"github.com/spec-kit/qrmenu-service/internal/auth"
	"github.com/spec-kit/qrmenu-service/internal/service"
)

// MenuHandler exposes menu management endpoints for tenants.
type MenuHandler struct {
	menu   *service.MenuService
	orders *service.OrderService
}

// NewMenuHandler constructs handler.
func NewMenuHandler(menu *service.MenuService, orders *service.OrderService) *MenuHandler {
	return &MenuHandler{menu: menu, orders: orders}
}

// List handles GET /api/menu.
func (h *MenuHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	items, err := h.menu.ListItems(c.UserContext(), principal.BusinessID)
	if err != nil {
		return err
	}

	responses := make([]dto.MenuItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, dto.NewMenuItemResponse(&items[i]))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Create handles POST /api/menu.
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	var req dto.MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	item, err := h.menu.CreateItem(c.UserContext(), principal.BusinessID, service.MenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMenuItemResponse(item)})
}

// Update handles PUT /api/menu/:id.
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	var req dto.MenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	item, err := h.menu.UpdateItem(c.UserContext(), principal.BusinessID, c.Params("id"), service.MenuItemInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Available:   req.Available,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMenuItemResponse(item)})
}

// Delete handles DELETE /api/menu/:id.
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := h.menu.DeleteItem(c.UserContext(), principal.BusinessID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Upsell handles GET /api/menu/:id/upsell.
func (h *MenuHandler) Upsell(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "5"))
	suggestions, err := h.orders.UpsellSuggestions(c.UserContext(), principal.BusinessID, c.Params("id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": suggestions})
}
