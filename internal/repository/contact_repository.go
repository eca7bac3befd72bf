package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

// ContactRepository encapsulates customer contact persistence.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.Contact, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (business_id, name, phone, email)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		contact.BusinessID,
		contact.Name,
		contact.Phone,
		contact.Email,
	).Scan(&contact.ID, &contact.CreatedAt)
}

func (r *contactRepository) ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]domain.Contact, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, business_id, name, phone, email, created_at
        FROM contacts WHERE business_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]domain.Contact, 0)
	for rows.Next() {
		var contact domain.Contact
		if err := rows.Scan(&contact.ID, &contact.BusinessID, &contact.Name, &contact.Phone, &contact.Email, &contact.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}
