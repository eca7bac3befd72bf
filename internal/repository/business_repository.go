package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

// BusinessRepository defines persistence access for tenant accounts.
type BusinessRepository interface {
	Create(ctx context.Context, business *domain.Business) error
	Update(ctx context.Context, business *domain.Business) error
	GetByID(ctx context.Context, id string) (*domain.Business, error)
	GetByEmail(ctx context.Context, email string) (*domain.Business, error)
	GetByName(ctx context.Context, name string) (*domain.Business, error)
	List(ctx context.Context, limit, offset int) ([]domain.Business, error)
	SetEnabled(ctx context.Context, id string, enabled bool) error
	UpdateSubscription(ctx context.Context, id string, sub domain.Subscription) error
	SetResetToken(ctx context.Context, id, token string, expiry time.Time) error
	GetByResetToken(ctx context.Context, token string) (*domain.Business, error)
	RedeemResetToken(ctx context.Context, token, passwordHash string) error
}

type businessRepository struct {
	pool *pgxpool.Pool
}

// NewBusinessRepository returns a Postgres-backed implementation.
func NewBusinessRepository(pool *pgxpool.Pool) BusinessRepository {
	return &businessRepository{pool: pool}
}

const businessColumns = `
        id, name, email, password_hash, enabled, subscription, pos_integration,
        printer_integration, custom_content, password_reset_token,
        password_reset_expiry, created_at, updated_at`

func (r *businessRepository) Create(ctx context.Context, business *domain.Business) error {
	const query = `
        INSERT INTO businesses (name, email, password_hash, enabled, subscription, pos_integration, printer_integration, custom_content)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		business.Name,
		business.Email,
		business.PasswordHash,
		business.Enabled,
		business.Subscription,
		business.POS,
		business.Printer,
		business.CustomContent,
	).Scan(&business.ID, &business.CreatedAt, &business.UpdatedAt)
}

func (r *businessRepository) Update(ctx context.Context, business *domain.Business) error {
	const query = `
        UPDATE businesses SET name=$1, email=$2, password_hash=$3, enabled=$4, subscription=$5,
            pos_integration=$6, printer_integration=$7, custom_content=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		business.Name,
		business.Email,
		business.PasswordHash,
		business.Enabled,
		business.Subscription,
		business.POS,
		business.Printer,
		business.CustomContent,
		business.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *businessRepository) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	const query = `SELECT` + businessColumns + ` FROM businesses WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *businessRepository) GetByEmail(ctx context.Context, email string) (*domain.Business, error) {
	const query = `SELECT` + businessColumns + ` FROM businesses WHERE email=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *businessRepository) GetByName(ctx context.Context, name string) (*domain.Business, error) {
	const query = `SELECT` + businessColumns + ` FROM businesses WHERE name=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, name))
}

func (r *businessRepository) List(ctx context.Context, limit, offset int) ([]domain.Business, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT` + businessColumns + ` FROM businesses ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	businesses := make([]domain.Business, 0)
	for rows.Next() {
		business, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, *business)
	}
	return businesses, rows.Err()
}

func (r *businessRepository) SetEnabled(ctx context.Context, id string, enabled bool) error {
	const query = `UPDATE businesses SET enabled=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, enabled, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *businessRepository) UpdateSubscription(ctx context.Context, id string, sub domain.Subscription) error {
	const query = `UPDATE businesses SET subscription=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, sub, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *businessRepository) SetResetToken(ctx context.Context, id, token string, expiry time.Time) error {
	const query = `
        UPDATE businesses SET password_reset_token=$1, password_reset_expiry=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, token, expiry, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *businessRepository) GetByResetToken(ctx context.Context, token string) (*domain.Business, error) {
	const query = `SELECT` + businessColumns + ` FROM businesses WHERE password_reset_token=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, token))
}

// RedeemResetToken sets the new password hash and clears the token and expiry
// in a single atomic update keyed by the token itself.
func (r *businessRepository) RedeemResetToken(ctx context.Context, token, passwordHash string) error {
	const query = `
        UPDATE businesses SET password_hash=$1, password_reset_token=NULL, password_reset_expiry=NULL, updated_at=NOW()
        WHERE password_reset_token=$2`
	cmd, err := r.pool.Exec(ctx, query, passwordHash, token)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *businessRepository) scanOne(row pgx.Row) (*domain.Business, error) {
	var business domain.Business
	if err := row.Scan(
		&business.ID,
		&business.Name,
		&business.Email,
		&business.PasswordHash,
		&business.Enabled,
		&business.Subscription,
		&business.POS,
		&business.Printer,
		&business.CustomContent,
		&business.PasswordResetToken,
		&business.PasswordResetExpiry,
		&business.CreatedAt,
		&business.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &business, nil
}
