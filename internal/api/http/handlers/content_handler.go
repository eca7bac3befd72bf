package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/qrmenu-service/internal/api/dto"
	"github.com/spec-kit/qrmenu-service/internal/auth"
	"github.com/spec-kit/qrmenu-service/internal/service"
	apperrors "github.com/spec-kit/qrmenu-service/pkg/util"
)

// ContentHandler exposes translation and image search for the menu builder.
type ContentHandler struct {
	translate *service.TranslateService
	images    *service.ImageService
}

// NewContentHandler constructs handler.
func NewContentHandler(translate *service.TranslateService, images *service.ImageService) *ContentHandler {
	return &ContentHandler{translate: translate, images: images}
}

// Translate handles POST /api/content/translate.
func (h *ContentHandler) Translate(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	var req dto.TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Text == "" || req.TargetLanguage == "" {
		return fiber.NewError(http.StatusBadRequest, "text and target language required")
	}

	translated, err := h.translate.Translate(c.UserContext(), req.Text, req.TargetLanguage)
	if err != nil {
		return apperrors.NewUpstreamError("translation failed", err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"translated": translated}})
}

// SearchImage handles GET /api/content/images.
func (h *ContentHandler) SearchImage(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	query := c.Query("q")
	if query == "" {
		return fiber.NewError(http.StatusBadRequest, "query required")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"imageUrl": h.images.SearchImage(c.UserContext(), query)}})
}
