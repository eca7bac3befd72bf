package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DailyOrderStat aggregates orders and revenue for one calendar day.
type DailyOrderStat struct {
	Day     time.Time
	Orders  int64
	Revenue float64
}

// BusinessStats is the per-tenant aggregate summary.
type BusinessStats struct {
	TotalOrders      int64
	TotalRevenue     float64
	QRScans          int64
	ChatInteractions int64
	OrdersByDay      []DailyOrderStat
}

// StatsRepository aggregates engagement data per tenant.
type StatsRepository interface {
	RecordScan(ctx context.Context, businessID, tableID string) error
	RecordChatInteraction(ctx context.Context, businessID, sessionID, message string) error
	Summary(ctx context.Context, businessID string, from, to time.Time) (*BusinessStats, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository instantiates repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) RecordScan(ctx context.Context, businessID, tableID string) error {
	const query = `INSERT INTO qr_scans (business_id, table_id) VALUES ($1,$2)`
	_, err := r.pool.Exec(ctx, query, businessID, tableID)
	return err
}

func (r *statsRepository) RecordChatInteraction(ctx context.Context, businessID, sessionID, message string) error {
	const query = `INSERT INTO chat_interactions (business_id, session_id, message) VALUES ($1,$2,$3)`
	_, err := r.pool.Exec(ctx, query, businessID, sessionID, message)
	return err
}

func (r *statsRepository) Summary(ctx context.Context, businessID string, from, to time.Time) (*BusinessStats, error) {
	stats := &BusinessStats{}

	const totalsQuery = `
        SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
        FROM orders WHERE business_id=$1 AND created_at BETWEEN $2 AND $3`
	if err := r.pool.QueryRow(ctx, totalsQuery, businessID, from, to).Scan(&stats.TotalOrders, &stats.TotalRevenue); err != nil {
		return nil, err
	}

	const scansQuery = `
        SELECT COUNT(*) FROM qr_scans WHERE business_id=$1 AND scanned_at BETWEEN $2 AND $3`
	if err := r.pool.QueryRow(ctx, scansQuery, businessID, from, to).Scan(&stats.QRScans); err != nil {
		return nil, err
	}

	const chatQuery = `
        SELECT COUNT(*) FROM chat_interactions WHERE business_id=$1 AND created_at BETWEEN $2 AND $3`
	if err := r.pool.QueryRow(ctx, chatQuery, businessID, from, to).Scan(&stats.ChatInteractions); err != nil {
		return nil, err
	}

	const byDayQuery = `
        SELECT date_trunc('day', created_at) AS day, COUNT(*), COALESCE(SUM(total_amount), 0)
        FROM orders WHERE business_id=$1 AND created_at BETWEEN $2 AND $3
        GROUP BY day ORDER BY day`
	rows, err := r.pool.Query(ctx, byDayQuery, businessID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var stat DailyOrderStat
		if err := rows.Scan(&stat.Day, &stat.Orders, &stat.Revenue); err != nil {
			return nil, err
		}
		stats.OrdersByDay = append(stats.OrdersByDay, stat)
	}
	return stats, rows.Err()
}
