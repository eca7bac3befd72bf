package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

// MenuRepository encapsulates menu item persistence.
type MenuRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, businessID, id string) error
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	ListByBusiness(ctx context.Context, businessID string) ([]domain.MenuItem, error)
}

type menuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository instantiates repository.
func NewMenuRepository(pool *pgxpool.Pool) MenuRepository {
	return &menuRepository{pool: pool}
}

func (r *menuRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        INSERT INTO menu_items (business_id, name, description, category, price, image_url, available)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		item.BusinessID,
		item.Name,
		item.Description,
		item.Category,
		item.Price,
		item.ImageURL,
		item.Available,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *menuRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        UPDATE menu_items SET name=$1, description=$2, category=$3, price=$4, image_url=$5, available=$6, updated_at=NOW()
        WHERE id=$7 AND business_id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		item.Name,
		item.Description,
		item.Category,
		item.Price,
		item.ImageURL,
		item.Available,
		item.ID,
		item.BusinessID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *menuRepository) Delete(ctx context.Context, businessID, id string) error {
	const query = `DELETE FROM menu_items WHERE id=$1 AND business_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, businessID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *menuRepository) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	const query = `
        SELECT id, business_id, name, description, category, price, image_url, available, created_at, updated_at
        FROM menu_items WHERE id=$1`
	var item domain.MenuItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.BusinessID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.Price,
		&item.ImageURL,
		&item.Available,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) ListByBusiness(ctx context.Context, businessID string) ([]domain.MenuItem, error) {
	const query = `
        SELECT id, business_id, name, description, category, price, image_url, available, created_at, updated_at
        FROM menu_items WHERE business_id=$1 ORDER BY category, name`
	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.MenuItem, 0)
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(
			&item.ID,
			&item.BusinessID,
			&item.Name,
			&item.Description,
			&item.Category,
			&item.Price,
			&item.ImageURL,
			&item.Available,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
