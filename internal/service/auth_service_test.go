package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spec-kit/qrmenu-service/internal/config"
	"github.com/spec-kit/qrmenu-service/internal/domain"
	apperrors "github.com/spec-kit/qrmenu-service/pkg/util"
)

// fakeBusinessRepository is an in-memory stand-in keyed by business ID.
type fakeBusinessRepository struct {
	businesses map[string]*domain.Business
	nextID     int
}

func newFakeBusinessRepository() *fakeBusinessRepository {
	return &fakeBusinessRepository{businesses: map[string]*domain.Business{}}
}

func (f *fakeBusinessRepository) Create(_ context.Context, business *domain.Business) error {
	f.nextID++
	business.ID = fmt.Sprintf("biz-%d", f.nextID)
	business.CreatedAt = time.Now()
	copied := *business
	f.businesses[business.ID] = &copied
	return nil
}

func (f *fakeBusinessRepository) Update(_ context.Context, business *domain.Business) error {
	if _, ok := f.businesses[business.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *business
	f.businesses[business.ID] = &copied
	return nil
}

func (f *fakeBusinessRepository) GetByID(_ context.Context, id string) (*domain.Business, error) {
	business, ok := f.businesses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *business
	return &copied, nil
}

func (f *fakeBusinessRepository) GetByEmail(_ context.Context, email string) (*domain.Business, error) {
	for _, business := range f.businesses {
		if business.Email == email {
			copied := *business
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBusinessRepository) GetByName(_ context.Context, name string) (*domain.Business, error) {
	for _, business := range f.businesses {
		if business.Name == name {
			copied := *business
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBusinessRepository) List(_ context.Context, _, _ int) ([]domain.Business, error) {
	out := make([]domain.Business, 0, len(f.businesses))
	for _, business := range f.businesses {
		out = append(out, *business)
	}
	return out, nil
}

func (f *fakeBusinessRepository) SetEnabled(_ context.Context, id string, enabled bool) error {
	business, ok := f.businesses[id]
	if !ok {
		return pgx.ErrNoRows
	}
	business.Enabled = enabled
	return nil
}

func (f *fakeBusinessRepository) UpdateSubscription(_ context.Context, id string, sub domain.Subscription) error {
	business, ok := f.businesses[id]
	if !ok {
		return pgx.ErrNoRows
	}
	business.Subscription = sub
	return nil
}

func (f *fakeBusinessRepository) SetResetToken(_ context.Context, id, token string, expiry time.Time) error {
	business, ok := f.businesses[id]
	if !ok {
		return pgx.ErrNoRows
	}
	business.PasswordResetToken = &token
	business.PasswordResetExpiry = &expiry
	return nil
}

func (f *fakeBusinessRepository) GetByResetToken(_ context.Context, token string) (*domain.Business, error) {
	for _, business := range f.businesses {
		if business.PasswordResetToken != nil && *business.PasswordResetToken == token {
			copied := *business
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBusinessRepository) RedeemResetToken(_ context.Context, token, passwordHash string) error {
	for _, business := range f.businesses {
		if business.PasswordResetToken != nil && *business.PasswordResetToken == token {
			business.PasswordHash = passwordHash
			business.PasswordResetToken = nil
			business.PasswordResetExpiry = nil
			return nil
		}
	}
	return pgx.ErrNoRows
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			SessionTTLHours:         168,
			PasswordResetTTLMinutes: 30,
			BcryptCost:              4,
			SuperAdminEmail:         "admin@example.com",
		},
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newFakeBusinessRepository()
	svc := NewAuthService(testConfig(), repo, zaptest.NewLogger(t))
	ctx := context.Background()

	business, token, _, err := svc.Register(ctx, "Trattoria", "owner@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, business.ID)
	assert.NotEmpty(t, token)
	assert.True(t, business.Enabled)
	assert.Equal(t, domain.SubscriptionTrial, business.Subscription.Status)

	loggedIn, token, _, err := svc.Login(ctx, "owner@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, business.ID, loggedIn.ID)

	claims := svc.TokenManager().Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, domain.RoleBusiness, claims.Role)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	repo := newFakeBusinessRepository()
	svc := NewAuthService(testConfig(), repo, zaptest.NewLogger(t))
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Trattoria", "owner@example.com", "hunter22")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "Osteria", "owner@example.com", "hunter23")
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
}

func TestAuthService_LoginFailures(t *testing.T) {
	repo := newFakeBusinessRepository()
	svc := NewAuthService(testConfig(), repo, zaptest.NewLogger(t))
	ctx := context.Background()

	business, _, _, err := svc.Register(ctx, "Trattoria", "owner@example.com", "hunter22")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "owner@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email yields the same error as a bad password")

	require.NoError(t, repo.SetEnabled(ctx, business.ID, false))
	_, _, _, err = svc.Login(ctx, "owner@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "disabled accounts fail like bad credentials")
}

func TestAuthService_SuperAdminLogin(t *testing.T) {
	repo := newFakeBusinessRepository()
	svc := NewAuthService(testConfig(), repo, zaptest.NewLogger(t))
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "HQ", "admin@example.com", "hunter22")
	require.NoError(t, err)

	_, token, _, err := svc.Login(ctx, "admin@example.com", "hunter22")
	require.NoError(t, err)

	claims := svc.TokenManager().Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, domain.RoleSuperAdmin, claims.Role)
}

func TestAuthService_PasswordResetLifecycle(t *testing.T) {
	repo := newFakeBusinessRepository()
	svc := NewAuthService(testConfig(), repo, zaptest.NewLogger(t))
	ctx := context.Background()

	business, _, _, err := svc.Register(ctx, "Trattoria", "owner@example.com", "hunter22")
	require.NoError(t, err)

	svc.RequestPasswordReset(ctx, "owner@example.com")
	stored, err := repo.GetByID(ctx, business.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordResetToken)
	require.NotNil(t, stored.PasswordResetExpiry)
	token := *stored.PasswordResetToken

	require.NoError(t, svc.ConfirmPasswordReset(ctx, token, "new-password"))

	stored, err = repo.GetByID(ctx, business.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.PasswordResetToken, "redeem clears the token")
	assert.Nil(t, stored.PasswordResetExpiry)

	_, _, _, err = svc.Login(ctx, "owner@example.com", "new-password")
	assert.NoError(t, err)
	_, _, _, err = svc.Login(ctx, "owner@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.ErrorIs(t, svc.ConfirmPasswordReset(ctx, token, "again"), ErrResetTokenInvalid, "tokens are single use")
}

func TestAuthService_PasswordResetInvalidTokens(t *testing.T) {
	repo := newFakeBusinessRepository()
	svc := NewAuthService(testConfig(), repo, zaptest.NewLogger(t))
	ctx := context.Background()

	business, _, _, err := svc.Register(ctx, "Trattoria", "owner@example.com", "hunter22")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ConfirmPasswordReset(ctx, "unknown-token", "pw"), ErrResetTokenInvalid)

	require.NoError(t, repo.SetResetToken(ctx, business.ID, "expired-token", time.Now().Add(-time.Minute)))
	assert.ErrorIs(t, svc.ConfirmPasswordReset(ctx, "expired-token", "pw"), ErrResetTokenInvalid)

	// Unknown email must not surface any signal.
	svc.RequestPasswordReset(ctx, "nobody@example.com")
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newFakeBusinessRepository()
	svc := NewAuthService(testConfig(), repo, zaptest.NewLogger(t))
	ctx := context.Background()

	business, _, _, err := svc.Register(ctx, "Trattoria", "owner@example.com", "hunter22")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, business.ID, "wrong", "next"), ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, business.ID, "hunter22", "next"))
	_, _, _, err = svc.Login(ctx, "owner@example.com", "next")
	assert.NoError(t, err)
}
