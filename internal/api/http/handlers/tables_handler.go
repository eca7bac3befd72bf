package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/qrmenu-service/internal/api/dto"
	"github.com/spec-kit/qrmenu-service/internal/auth"
	"github.com/spec-kit/qrmenu-service/internal/service"
)

// TablesHandler exposes table management endpoints for tenants.
type TablesHandler struct {
	menu *service.MenuService
}

// NewTablesHandler constructs handler.
func NewTablesHandler(menu *service.MenuService) *TablesHandler {
	return &TablesHandler{menu: menu}
}

// List handles GET /api/tables.
func (h *TablesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	tables, err := h.menu.ListTables(c.UserContext(), principal.BusinessID)
	if err != nil {
		return err
	}

	responses := make([]dto.TableResponse, 0, len(tables))
	for i := range tables {
		responses = append(responses, dto.TableResponse{
			ID:    tables[i].ID,
			Name:  tables[i].Name,
			QRURL: h.menu.QRCodeURL(&tables[i]),
		})
	}
	return c.JSON(fiber.Map{"data": responses})
}

// Create handles POST /api/tables.
func (h *TablesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	var req dto.TableRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	table, err := h.menu.CreateTable(c.UserContext(), principal.BusinessID, req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.TableResponse{
		ID:    table.ID,
		Name:  table.Name,
		QRURL: h.menu.QRCodeURL(table),
	}})
}

// Delete handles DELETE /api/tables/:id.
func (h *TablesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := h.menu.DeleteTable(c.UserContext(), principal.BusinessID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
