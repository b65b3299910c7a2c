package service

import (
	"context"
	"encoding/json"
	"time"

	"agencyhub/internal/modash_client"
	"agencyhub/internal/repository"

	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"
)

// reportCacheTTL is how long a cached report stays valid. Records past this
// age trigger a fresh fetch; they are never served as a degraded response.
const reportCacheTTL = 30 * 24 * time.Hour

// reportClient is the slice of the analytics client the report service needs.
type reportClient interface {
	FetchReport(ctx context.Context, platform, userID string) (*modash_client.Report, error)
	FetchPerformanceData(ctx context.Context, platform, userID string) (*modash_client.PerformanceData, error)
}

// VettedReport is a report snapshot with the derived vetting score attached.
// The score is recomputed on every request; it is never persisted on its own.
type VettedReport struct {
	modash_client.Report
	VettingScore   int       `json:"vettingScore"`
	VettingReasons []string  `json:"vettingReasons"`
	CachedAt       time.Time `json:"cachedAt"`
}

type ReportService interface {
	GetReport(ctx context.Context, platform, userID string, forceRefresh bool) (*VettedReport, error)
	GetPerformance(ctx context.Context, platform, userID string) (*modash_client.PerformanceData, error)
	InvalidateCache(platform, userID string) error
}

type reportService struct {
	client   reportClient
	cache    repository.ReportCacheRepository
	creators repository.CreatorRepository
	logger   *zap.Logger

	now func() time.Time
	ttl time.Duration
}

func NewReportService(client reportClient, cache repository.ReportCacheRepository, creators repository.CreatorRepository, logger *zap.Logger) ReportService {
	return &reportService{
		client:   client,
		cache:    cache,
		creators: creators,
		logger:   logger,
		now:      time.Now,
		ttl:      reportCacheTTL,
	}
}

// GetReport serves the cached report when it is younger than the TTL, and
// otherwise fetches fresh, overwrites the cache record, and returns the new
// snapshot. Cache trouble is never fatal: read or write failures degrade to
// an upstream fetch with a warning.
func (s *reportService) GetReport(ctx context.Context, platform, userID string, forceRefresh bool) (*VettedReport, error) {
	if !forceRefresh {
		record, err := s.cache.Get(platform, userID)
		if err != nil {
			s.logger.Warn("Report cache read failed, fetching fresh",
				zap.String("platform", platform),
				zap.String("creator", userID),
				zap.Error(err))
		} else if record != nil && s.now().Sub(record.FetchedAt) < s.ttl {
			var report modash_client.Report
			if err := json.Unmarshal(record.Payload, &report); err != nil {
				s.logger.Warn("Cached report payload is unreadable, fetching fresh",
					zap.String("platform", platform),
					zap.String("creator", userID),
					zap.Error(err))
			} else {
				return s.vet(&report, record.FetchedAt), nil
			}
		}
	}

	report, err := s.client.FetchReport(ctx, platform, userID)
	if err != nil {
		return nil, err
	}

	fetchedAt := s.now()
	if payload, err := json.Marshal(report); err != nil {
		s.logger.Warn("Failed to marshal report for caching", zap.Error(err))
	} else if err := s.cache.Upsert(platform, userID, types.JSONText(payload)); err != nil {
		s.logger.Warn("Failed to cache report",
			zap.String("platform", platform),
			zap.String("creator", userID),
			zap.Error(err))
	}

	// Keep the mirror row in step with the richer report snapshot.
	if err := s.creators.Upsert(mirrorCreator(platform, &report.Creator)); err != nil {
		s.logger.Warn("Failed to mirror creator from report",
			zap.String("platform", platform),
			zap.String("creator", userID),
			zap.Error(err))
	}

	return s.vet(report, fetchedAt), nil
}

// GetPerformance proxies recent-post metrics straight through; no local
// cache, since the numbers churn daily.
func (s *reportService) GetPerformance(ctx context.Context, platform, userID string) (*modash_client.PerformanceData, error) {
	return s.client.FetchPerformanceData(ctx, platform, userID)
}

// InvalidateCache drops the cached record so the next read fetches fresh.
func (s *reportService) InvalidateCache(platform, userID string) error {
	return s.cache.Delete(platform, userID)
}

func (s *reportService) vet(report *modash_client.Report, cachedAt time.Time) *VettedReport {
	breakdown := modash_client.VettingScore(report)
	return &VettedReport{
		Report:         *report,
		VettingScore:   breakdown.Score,
		VettingReasons: breakdown.Reasons,
		CachedAt:       cachedAt,
	}
}
