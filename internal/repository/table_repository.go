package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

// TableRepository encapsulates table persistence.
type TableRepository interface {
	Create(ctx context.Context, table *domain.Table) error
	Delete(ctx context.Context, businessID, id string) error
	GetByID(ctx context.Context, id string) (*domain.Table, error)
	GetByQRToken(ctx context.Context, token string) (*domain.Table, error)
	ListByBusiness(ctx context.Context, businessID string) ([]domain.Table, error)
}

type tableRepository struct {
	pool *pgxpool.Pool
}

// NewTableRepository instantiates repository.
func NewTableRepository(pool *pgxpool.Pool) TableRepository {
	return &tableRepository{pool: pool}
}

func (r *tableRepository) Create(ctx context.Context, table *domain.Table) error {
	const query = `
        INSERT INTO tables (business_id, name, qr_token)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		table.BusinessID,
		table.Name,
		table.QRToken,
	).Scan(&table.ID, &table.CreatedAt)
}

func (r *tableRepository) Delete(ctx context.Context, businessID, id string) error {
	const query = `DELETE FROM tables WHERE id=$1 AND business_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, businessID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tableRepository) GetByID(ctx context.Context, id string) (*domain.Table, error) {
	const query = `SELECT id, business_id, name, qr_token, created_at FROM tables WHERE id=$1`
	return r.scanOne(ctx, query, id)
}

func (r *tableRepository) GetByQRToken(ctx context.Context, token string) (*domain.Table, error) {
	const query = `SELECT id, business_id, name, qr_token, created_at FROM tables WHERE qr_token=$1`
	return r.scanOne(ctx, query, token)
}

func (r *tableRepository) ListByBusiness(ctx context.Context, businessID string) ([]domain.Table, error) {
	const query = `SELECT id, business_id, name, qr_token, created_at FROM tables WHERE business_id=$1 ORDER BY name`
	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]domain.Table, 0)
	for rows.Next() {
		var table domain.Table
		if err := rows.Scan(&table.ID, &table.BusinessID, &table.Name, &table.QRToken, &table.CreatedAt); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}

func (r *tableRepository) scanOne(ctx context.Context, query, arg string) (*domain.Table, error) {
	var table domain.Table
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&table.ID,
		&table.BusinessID,
		&table.Name,
		&table.QRToken,
		&table.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &table, nil
}
