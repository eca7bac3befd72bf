package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/qrmenu-service/internal/api/dto"
	"github.com/spec-kit/qrmenu-service/internal/domain"
	"github.com/spec-kit/qrmenu-service/internal/repository"
	"github.com/spec-kit/qrmenu-service/internal/service"
	apperrors "github.com/spec-kit/qrmenu-service/pkg/util"
)

// PublicHandler serves the customer-facing menu and ordering flow keyed by
// per-table QR tokens. No session auth; the token is the capability.
type PublicHandler struct {
	tables     repository.TableRepository
	businesses repository.BusinessRepository
	bizService *service.BusinessService
	menu       *service.MenuService
	orders     *service.OrderService
	stats      *service.StatsService
}

// PublicDependencies bundles requirements for the public handler.
type PublicDependencies struct {
	TableRepo       repository.TableRepository
	BusinessRepo    repository.BusinessRepository
	BusinessService *service.BusinessService
	MenuService     *service.MenuService
	OrderService    *service.OrderService
	StatsService    *service.StatsService
}

// NewPublicHandler constructs handler.
func NewPublicHandler(deps PublicDependencies) *PublicHandler {
	return &PublicHandler{
		tables:     deps.TableRepo,
		businesses: deps.BusinessRepo,
		bizService: deps.BusinessService,
		menu:       deps.MenuService,
		orders:     deps.OrderService,
		stats:      deps.StatsService,
	}
}

// resolveTable maps a QR token to its table and an ordering-eligible tenant.
func (h *PublicHandler) resolveTable(c *fiber.Ctx, qrToken string) (*domain.Table, *domain.Business, error) {
	table, err := h.tables.GetByQRToken(c.UserContext(), qrToken)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewNotFound("menu", nil)
		}
		return nil, nil, err
	}

	business, err := h.businesses.GetByID(c.UserContext(), table.BusinessID)
	if err != nil {
		return nil, nil, err
	}
	if !business.Enabled {
		return nil, nil, apperrors.NewNotFound("menu", nil)
	}
	if err := h.bizService.EnsureSubscriptionCurrent(c.UserContext(), business); err != nil {
		return nil, nil, err
	}
	if !h.bizService.HasActiveSubscription(business) {
		return nil, nil, apperrors.NewForbidden("ordering unavailable")
	}
	return table, business, nil
}

// Menu handles GET /public/menu/:qrToken. Each view records a scan.
func (h *PublicHandler) Menu(c *fiber.Ctx) error {
	table, business, err := h.resolveTable(c, c.Params("qrToken"))
	if err != nil {
		return err
	}

	items, err := h.menu.ListItems(c.UserContext(), business.ID)
	if err != nil {
		return err
	}
	if err := h.stats.RecordScan(c.UserContext(), business.ID, table.ID); err != nil {
		return err
	}

	responses := make([]dto.MenuItemResponse, 0, len(items))
	for i := range items {
		if !items[i].Available {
			continue
		}
		responses = append(responses, dto.NewMenuItemResponse(&items[i]))
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"business": fiber.Map{"id": business.ID, "name": business.Name},
			"table":    fiber.Map{"id": table.ID, "name": table.Name},
			"menu":     responses,
		},
	})
}

// CreateOrder handles POST /public/orders.
func (h *PublicHandler) CreateOrder(c *fiber.Ctx) error {
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.QRToken == "" {
		return fiber.NewError(http.StatusBadRequest, "qr token required")
	}
	if len(req.Items) == 0 {
		return fiber.NewError(http.StatusBadRequest, "at least one item required")
	}

	table, business, err := h.resolveTable(c, req.QRToken)
	if err != nil {
		return err
	}

	source := domain.OrderSource(req.Source)
	if source != domain.OrderSourceAI {
		source = domain.OrderSourceQRMenu
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		})
	}

	order, err := h.orders.CreateOrder(c.UserContext(), business.ID, table.ID, items, req.Notes, source)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// RecordChat handles POST /public/chat.
func (h *PublicHandler) RecordChat(c *fiber.Ctx) error {
	var req dto.ChatInteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.QRToken == "" || req.Message == "" {
		return fiber.NewError(http.StatusBadRequest, "qr token and message required")
	}

	_, business, err := h.resolveTable(c, req.QRToken)
	if err != nil {
		return err
	}
	if err := h.stats.RecordChatInteraction(c.UserContext(), business.ID, req.SessionID, req.Message); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"recorded": true}})
}
