package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/qrmenu-service/internal/billing"
	"github.com/spec-kit/qrmenu-service/internal/domain"
	"github.com/spec-kit/qrmenu-service/internal/repository"
	apperrors "github.com/spec-kit/qrmenu-service/pkg/util"
)

const principalKey = "auth_principal"

// CookieName is the session cookie carrying the signed token.
const CookieName = "auth"

// Principal represents the authenticated caller.
type Principal struct {
	BusinessID string
	Email      string
	Role       domain.Role
	Business   *domain.Business
}

// AuthMiddleware validates session tokens and loads the tenant record.
type AuthMiddleware struct {
	tokens     *TokenManager
	gate       *SuperAdminGate
	businesses repository.BusinessRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, gate *SuperAdminGate, businesses repository.BusinessRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, gate: gate, businesses: businesses}
}

// TokenFromRequest extracts the raw session token from the auth cookie,
// falling back to a bearer Authorization header.
func TokenFromRequest(c *fiber.Ctx) string {
	if cookie := c.Cookies(CookieName); cookie != "" {
		return cookie
	}
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// Handle enforces authentication for tenant routes. Auth failures are always
// generic so a caller cannot tell which check rejected them.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	claims := m.tokens.Verify(TokenFromRequest(c))
	if claims == nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	principal := &Principal{BusinessID: claims.BusinessID, Email: claims.Email, Role: claims.Role}

	if claims.Role == domain.RoleBusiness {
		business, err := m.businesses.GetByID(c.UserContext(), claims.BusinessID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return apperrors.NewUnauthorized("invalid credentials")
			}
			return apperrors.MapError(err)
		}
		if !business.Enabled {
			return apperrors.NewForbidden("unauthorized")
		}
		// Lazy backstop: an active subscription past its billing date should
		// have been transitioned externally; persist the expiry here.
		if billing.ShouldAutoExpire(&business.Subscription) {
			business.Subscription.Status = domain.SubscriptionExpired
			if err := m.businesses.UpdateSubscription(c.UserContext(), business.ID, business.Subscription); err != nil {
				return apperrors.MapError(err)
			}
		}
		principal.Business = business
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// RequireSuperAdmin rejects callers that do not pass the super-admin gate.
func (m *AuthMiddleware) RequireSuperAdmin(c *fiber.Ctx) error {
	if !m.gate.IsSuperAdmin(TokenFromRequest(c)) {
		return apperrors.NewForbidden("unauthorized")
	}
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
