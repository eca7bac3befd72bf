package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/qrmenu-service/internal/api/dto"
	"github.com/spec-kit/qrmenu-service/internal/auth"
	"github.com/spec-kit/qrmenu-service/internal/domain"
	"github.com/spec-kit/qrmenu-service/internal/repository"
)

// ContactsHandler exposes customer contact endpoints for tenants.
type ContactsHandler struct {
	contacts repository.ContactRepository
}

// NewContactsHandler constructs handler.
func NewContactsHandler(contacts repository.ContactRepository) *ContactsHandler {
	return &ContactsHandler{contacts: contacts}
}

// List handles GET /api/contacts.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	contacts, err := h.contacts.ListByBusiness(c.UserContext(), principal.BusinessID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": contacts})
}

// Create handles POST /api/contacts.
func (h *ContactsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || (req.Phone == "" && req.Email == "") {
		return fiber.NewError(http.StatusBadRequest, "name and phone or email required")
	}

	contact := &domain.Contact{
		BusinessID: principal.BusinessID,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
	}
	if err := h.contacts.Create(c.UserContext(), contact); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": contact})
}
