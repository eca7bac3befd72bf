package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/qrmenu-service/internal/repository"
)

// StatsService records engagement signals and serves tenant aggregates.
type StatsService struct {
	stats  repository.StatsRepository
	redis  *redis.Client
	logger *zap.Logger
}

// NewStatsService builds the service.
func NewStatsService(stats repository.StatsRepository, redisClient *redis.Client, logger *zap.Logger) *StatsService {
	return &StatsService{stats: stats, redis: redisClient, logger: logger}
}

// RecordScan persists a QR scan and bumps the day's Redis counter. Counter
// failures are logged, not surfaced; the scan row is the source of truth.
func (s *StatsService) RecordScan(ctx context.Context, businessID, tableID string) error {
	if err := s.stats.RecordScan(ctx, businessID, tableID); err != nil {
		return err
	}
	if s.redis != nil {
		key := fmt.Sprintf("scans:%s:%s", businessID, time.Now().Format("2006-01-02"))
		if err := s.redis.Incr(ctx, key).Err(); err != nil {
			s.logger.Warn("scan counter increment failed", zap.Error(err))
		} else {
			s.redis.Expire(ctx, key, 48*time.Hour)
		}
	}
	return nil
}

// RecordChatInteraction persists one customer chat exchange.
func (s *StatsService) RecordChatInteraction(ctx context.Context, businessID, sessionID, message string) error {
	return s.stats.RecordChatInteraction(ctx, businessID, sessionID, message)
}

// Summary returns the tenant aggregate for a date range, defaulting to the
// trailing 30 days.
func (s *StatsService) Summary(ctx context.Context, businessID string, from, to time.Time) (*repository.BusinessStats, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return s.stats.Summary(ctx, businessID, from, to)
}
