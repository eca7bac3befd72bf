package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/qrmenu-service/internal/auth"
	"github.com/spec-kit/qrmenu-service/internal/config"
	"github.com/spec-kit/qrmenu-service/internal/domain"
	"github.com/spec-kit/qrmenu-service/internal/repository"
	apperrors "github.com/spec-kit/qrmenu-service/pkg/util"
)

// ErrInvalidCredentials is the generic failure for every login/reset path so
// callers cannot learn which check rejected them.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrResetTokenInvalid covers unknown, expired and already-redeemed tokens alike.
var ErrResetTokenInvalid = errors.New("reset token invalid or expired")

// AuthService coordinates tenant registration, login and password reset flows.
type AuthService struct {
	businesses repository.BusinessRepository
	tokenMgr   *auth.TokenManager
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
	adminEmail string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, businesses repository.BusinessRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		businesses: businesses,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTLHours),
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		adminEmail: cfg.Auth.SuperAdminEmail,
	}
}

// Register creates a new tenant account on a trial subscription.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.Business, string, time.Time, error) {
	if _, err := s.businesses.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if err != nil && err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	business := &domain.Business{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Enabled:      true,
		Subscription: domain.Subscription{Status: domain.SubscriptionTrial},
	}
	if err := s.businesses.Create(ctx, business); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Generate(business.ID, business.Email, domain.RoleBusiness)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return business, token, exp, nil
}

// Login authenticates a tenant. The super-admin email receives a
// super_admin-role token instead of a tenant one.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Business, string, time.Time, error) {
	business, err := s.businesses.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(business.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !business.Enabled {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	role := domain.RoleBusiness
	if s.adminEmail != "" && business.Email == s.adminEmail {
		role = domain.RoleSuperAdmin
	}

	token, exp, err := s.tokenMgr.Generate(business.ID, business.Email, role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return business, token, exp, nil
}

// RequestPasswordReset stores a single-use reset token on the tenant record.
// Whether or not the email matches an account, the caller gets no signal; a
// miss is only logged.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) {
	business, err := s.businesses.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Debug("password reset requested for unknown email")
		return
	}

	token := uuid.NewString()
	expiry := time.Now().Add(s.resetTTL)
	if err := s.businesses.SetResetToken(ctx, business.ID, token, expiry); err != nil {
		s.logger.Error("failed to store reset token", zap.Error(err))
		return
	}

	// Delivery would go through the mailer; until then the token is only
	// visible in debug logs for operator-assisted resets.
	s.logger.Debug("password reset token issued",
		zap.String("business_id", business.ID),
		zap.Time("expires_at", expiry))
}

// ConfirmPasswordReset redeems a reset token, setting the new password hash
// and clearing the token and expiry in one atomic update.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	business, err := s.businesses.GetByResetToken(ctx, token)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrResetTokenInvalid
		}
		return err
	}
	if business.PasswordResetExpiry == nil || time.Now().After(*business.PasswordResetExpiry) {
		return ErrResetTokenInvalid
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	if err := s.businesses.RedeemResetToken(ctx, token, hash); err != nil {
		if err == pgx.ErrNoRows {
			return ErrResetTokenInvalid
		}
		return err
	}
	return nil
}

// RecoverEmail handles the forgot-email flow: look the tenant up by business
// name and log the hit. The response to the caller is identical either way.
func (s *AuthService) RecoverEmail(ctx context.Context, businessName string) {
	business, err := s.businesses.GetByName(ctx, businessName)
	if err != nil {
		s.logger.Debug("email recovery requested for unknown business name")
		return
	}
	s.logger.Debug("email recovery requested", zap.String("business_id", business.ID))
}

// ChangePassword verifies the current password before updating to a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, businessID, currentPassword, newPassword string) error {
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(business.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	business.PasswordHash = hash
	return s.businesses.Update(ctx, business)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
