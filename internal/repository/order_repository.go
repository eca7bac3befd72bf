package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/qrmenu-service/internal/domain"
)

// OrderFilter captures tenant order listing parameters.
type OrderFilter struct {
	Statuses    []domain.OrderStatus
	TableID     *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// CoOccurrence is an item that appears in orders alongside a reference item.
type CoOccurrence struct {
	MenuItemID string
	Name       string
	Count      int64
}

// OrderRepository encapsulates order persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByBusiness(ctx context.Context, businessID string, filter OrderFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	CoOccurringItems(ctx context.Context, businessID, menuItemID string, limit int) ([]CoOccurrence, error)
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

// nullableID maps an empty string to SQL NULL for nullable uuid columns.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	const query = `
        INSERT INTO orders (business_id, table_id, items, total_amount, status, source, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		order.BusinessID,
		nullableID(order.TableID),
		order.Items,
		order.TotalAmount,
		order.Status,
		order.Source,
		order.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
        SELECT id, business_id, table_id, items, total_amount, status, source, notes, created_at, updated_at
        FROM orders WHERE id=$1`
	var order domain.Order
	var tableID pgtype.Text
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.BusinessID,
		&tableID,
		&order.Items,
		&order.TotalAmount,
		&order.Status,
		&order.Source,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}
	// table_id goes NULL when the table is deleted out from under the order
	order.TableID = tableID.String
	return &order, nil
}

func (r *orderRepository) ListByBusiness(ctx context.Context, businessID string, filter OrderFilter) ([]domain.Order, error) {
	clauses := []string{"business_id=$1"}
	args := []any{businessID}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			args = append(args, status)
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.TableID != nil {
		args = append(args, *filter.TableID)
		clauses = append(clauses, fmt.Sprintf("table_id=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	query := fmt.Sprintf(`
        SELECT id, business_id, table_id, items, total_amount, status, source, notes, created_at, updated_at
        FROM orders WHERE %s
        ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		strings.Join(clauses, " AND "), limitPos, offsetPos)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		var tableID pgtype.Text
		if err := rows.Scan(
			&order.ID,
			&order.BusinessID,
			&tableID,
			&order.Items,
			&order.TotalAmount,
			&order.Status,
			&order.Source,
			&order.Notes,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		order.TableID = tableID.String
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CoOccurringItems ranks menu items by how often they appear in orders that
// also contain the reference item. Feeds the upsell suggestions.
func (r *orderRepository) CoOccurringItems(ctx context.Context, businessID, menuItemID string, limit int) ([]CoOccurrence, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `
        SELECT item->>'menuItemId' AS menu_item_id,
               MAX(item->>'name') AS name,
               COUNT(*) AS occurrences
        FROM orders o, jsonb_array_elements(o.items) item
        WHERE o.business_id=$1
          AND item->>'menuItemId' <> $2
          AND EXISTS (
              SELECT 1 FROM jsonb_array_elements(o.items) other
              WHERE other->>'menuItemId' = $2)
        GROUP BY item->>'menuItemId'
        ORDER BY occurrences DESC
        LIMIT $3`

	rows, err := r.pool.Query(ctx, query, businessID, menuItemID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suggestions := make([]CoOccurrence, 0, limit)
	for rows.Next() {
		var row CoOccurrence
		if err := rows.Scan(&row.MenuItemID, &row.Name, &row.Count); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, row)
	}
	return suggestions, rows.Err()
}
