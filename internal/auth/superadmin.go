package auth

import (
	"strings"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

// SuperAdminGate authorizes the single privileged operator identity.
type SuperAdminGate struct {
	tokens     *TokenManager
	adminEmail string
}

// NewSuperAdminGate constructs the gate around the configured admin email.
func NewSuperAdminGate(tokens *TokenManager, adminEmail string) *SuperAdminGate {
	return &SuperAdminGate{tokens: tokens, adminEmail: strings.TrimSpace(adminEmail)}
}

// IsSuperAdmin reports whether the raw token belongs to the super admin.
// All checks must hold: token verifies, role is super_admin, and the trimmed
// claim email exactly matches the configured admin email.
func (g *SuperAdminGate) IsSuperAdmin(token string) bool {
	if token == "" || g.adminEmail == "" {
		return false
	}
	claims := g.tokens.Verify(token)
	if claims == nil {
		return false
	}
	if claims.Role != domain.RoleSuperAdmin {
		return false
	}
	return strings.TrimSpace(claims.Email) == g.adminEmail
}
