package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

func TestSuperAdminGate(t *testing.T) {
	tm := NewTokenManager("test-secret", 168)
	gate := NewSuperAdminGate(tm, "admin@example.com")

	adminToken, _, err := tm.Generate("admin", "admin@example.com", domain.RoleSuperAdmin)
	require.NoError(t, err)
	businessToken, _, err := tm.Generate("biz-1", "admin@example.com", domain.RoleBusiness)
	require.NoError(t, err)
	otherToken, _, err := tm.Generate("admin", "someone@example.com", domain.RoleSuperAdmin)
	require.NoError(t, err)

	assert.True(t, gate.IsSuperAdmin(adminToken))
	assert.False(t, gate.IsSuperAdmin(businessToken), "business role never passes the gate")
	assert.False(t, gate.IsSuperAdmin(otherToken), "email must match exactly")
	assert.False(t, gate.IsSuperAdmin(""))
	assert.False(t, gate.IsSuperAdmin("garbage"))
}

func TestSuperAdminGate_TrimsEmailWhitespace(t *testing.T) {
	tm := NewTokenManager("test-secret", 168)
	gate := NewSuperAdminGate(tm, "  admin@example.com  ")

	token, _, err := tm.Generate("admin", "admin@example.com ", domain.RoleSuperAdmin)
	require.NoError(t, err)

	assert.True(t, gate.IsSuperAdmin(token))
}

func TestSuperAdminGate_CaseSensitiveEmail(t *testing.T) {
	tm := NewTokenManager("test-secret", 168)
	gate := NewSuperAdminGate(tm, "admin@example.com")

	token, _, err := tm.Generate("admin", "Admin@Example.com", domain.RoleSuperAdmin)
	require.NoError(t, err)

	assert.False(t, gate.IsSuperAdmin(token))
}

func TestSuperAdminGate_NoAdminConfigured(t *testing.T) {
	tm := NewTokenManager("test-secret", 168)
	gate := NewSuperAdminGate(tm, "")

	token, _, err := tm.Generate("admin", "", domain.RoleSuperAdmin)
	require.NoError(t, err)

	assert.False(t, gate.IsSuperAdmin(token), "empty admin email disables the gate entirely")
}
