package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/qrmenu-service/internal/api/dto"
	"github.com/spec-kit/qrmenu-service/internal/auth"
	"github.com/spec-kit/qrmenu-service/internal/config"
	"github.com/spec-kit/qrmenu-service/internal/service"
)

// AuthHandler exposes tenant session endpoints.
type AuthHandler struct {
	auth *service.AuthService
	app  config.AppConfig
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, app config.AppConfig) *AuthHandler {
	return &AuthHandler{auth: authService, app: app}
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Expires:  expires,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.app.IsProduction(),
	})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	business, token, exp, err := h.auth.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token, exp)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"business": fiber.Map{
				"id":    business.ID,
				"name":  business.Name,
				"email": business.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	business, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	h.setSessionCookie(c, token, exp)
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"business": fiber.Map{
				"id":    business.ID,
				"name":  business.Name,
				"email": business.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout by clearing the session cookie. Tokens are
// stateless so there is nothing to revoke server-side.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.app.IsProduction(),
	})
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "logged out"}})
}

// ForgotPassword handles POST /auth/password/forgot. The response is
// identical whether or not the email matches a tenant.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}

	h.auth.RequestPasswordReset(c.UserContext(), req.Email)
	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "if the email exists, reset instructions have been sent"},
	})
}

// ResetPassword handles POST /auth/password/reset.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Token == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "token and new password required")
	}

	if err := h.auth.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		if err == service.ErrResetTokenInvalid {
			return fiber.NewError(http.StatusBadRequest, "reset token invalid or expired")
		}
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "password updated"}})
}

// ForgotEmail handles POST /auth/email/forgot. Same generic response either way.
func (h *AuthHandler) ForgotEmail(c *fiber.Ctx) error {
	var req dto.ForgotEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.BusinessName == "" {
		return fiber.NewError(http.StatusBadRequest, "business name required")
	}

	h.auth.RecoverEmail(c.UserContext(), req.BusinessName)
	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "if the business exists, recovery instructions have been sent"},
	})
}

// ChangePassword handles POST /auth/password/change for authenticated tenants.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fiber.NewError(http.StatusBadRequest, "current and new password required")
	}

	if err := h.auth.ChangePassword(c.UserContext(), principal.BusinessID, req.CurrentPassword, req.NewPassword); err != nil {
		if err == service.ErrInvalidCredentials {
			return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
		}
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "password updated"}})
}
