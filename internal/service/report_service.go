package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/folkadonis/proffessor/internal/config"
	"github.com/folkadonis/proffessor/internal/model"
	"github.com/folkadonis/proffessor/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ReportService serves completed-attempt reports and the admin statistics
// views. The admin aggregates are cached in Redis for a short TTL since
// they are read far more often than attempts complete.
type ReportService struct {
	reportRepo *repository.ReportRepository
	rdb        *redis.Client
	cfg        *config.Config
	log        zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(reportRepo *repository.ReportRepository, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		rdb:        rdb,
		cfg:        cfg,
		log:        log.With().Str("component", "report_service").Logger(),
	}
}

// UserRows retrieves one user's completed-attempt history, newest first.
func (s *ReportService) UserRows(ctx context.Context, userID uuid.UUID) ([]model.ReportRow, error) {
	return s.reportRepo.Rows(ctx, &userID)
}

// AllRows retrieves every user's completed attempts for the admin report.
func (s *ReportService) AllRows(ctx context.Context) ([]model.ReportRow, error) {
	return s.reportRepo.Rows(ctx, nil)
}

// UserStats aggregates a user's completed attempts.
func (s *ReportService) UserStats(ctx context.Context, userID uuid.UUID) (*model.UserStats, error) {
	return s.reportRepo.UserStats(ctx, userID)
}

// DashboardStats returns the admin dashboard counters, cached briefly.
func (s *ReportService) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	if s.cacheGet(ctx, config.CacheKey.DashboardStatsKey(), &stats) {
		return &stats, nil
	}

	fresh, err := s.reportRepo.DashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	s.cacheSet(ctx, config.CacheKey.DashboardStatsKey(), fresh)
	return fresh, nil
}

// PlatformStatistics returns the detailed statistics view, cached briefly.
func (s *ReportService) PlatformStatistics(ctx context.Context) (*model.PlatformStatistics, error) {
	var stats model.PlatformStatistics
	if s.cacheGet(ctx, config.CacheKey.PlatformStatisticsKey(), &stats) {
		return &stats, nil
	}

	fresh, err := s.reportRepo.PlatformStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("platform statistics: %w", err)
	}
	s.cacheSet(ctx, config.CacheKey.PlatformStatisticsKey(), fresh)
	return fresh, nil
}

// cacheGet reports whether the key was found and decoded. Cache failures
// are logged and treated as misses so reads never depend on Redis.
func (s *ReportService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn().Err(err).Str("key", key).Msg("Stats cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Stats cache decode failed")
		return false
	}
	return true
}

func (s *ReportService) cacheSet(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.cfg.StatsCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Stats cache write failed")
	}
}
