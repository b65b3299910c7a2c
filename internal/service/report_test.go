package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"agencyhub/internal/modash_client"
	"agencyhub/internal/models"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReportClient struct {
	report  *modash_client.Report
	err     error
	fetches int
}

func (f *fakeReportClient) FetchReport(context.Context, string, string) (*modash_client.Report, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func (f *fakeReportClient) FetchPerformanceData(context.Context, string, string) (*modash_client.PerformanceData, error) {
	return &modash_client.PerformanceData{}, nil
}

type fakeReportCache struct {
	record  *models.ReportCacheRecord
	getErr  error
	putErr  error
	upserts int
}

func (f *fakeReportCache) Get(string, string) (*models.ReportCacheRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.record, nil
}

func (f *fakeReportCache) Upsert(platform, userID string, payload types.JSONText) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.upserts++
	f.record = &models.ReportCacheRecord{
		Platform:  platform,
		UserID:    userID,
		Payload:   payload,
		FetchedAt: time.Now(),
	}
	return nil
}

func (f *fakeReportCache) Delete(string, string) error { return nil }

func newReportServiceForTest(client *fakeReportClient, cache *fakeReportCache, now time.Time) *reportService {
	svc := NewReportService(client, cache, &fakeCreatorRepo{}, zap.NewNop()).(*reportService)
	svc.now = func() time.Time { return now }
	return svc
}

func sampleReport(t *testing.T) (*modash_client.Report, types.JSONText) {
	t.Helper()
	report := &modash_client.Report{
		Creator: modash_client.Creator{
			UserID:         "u1",
			Username:       "alpha",
			Followers:      10000,
			EngagementRate: 0.08,
			AvgLikes:       1000,
		},
		FollowerGrowth30d: 10,
		PostsPerWeek:      4,
		AvgComments:       30,
	}
	payload, err := json.Marshal(report)
	require.NoError(t, err)
	return report, types.JSONText(payload)
}

func TestGetReportServesFreshCacheWithoutFetching(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	_, payload := sampleReport(t)

	client := &fakeReportClient{}
	cache := &fakeReportCache{record: &models.ReportCacheRecord{
		Payload:   payload,
		FetchedAt: now.Add(-29*24*time.Hour - 23*time.Hour),
	}}
	svc := newReportServiceForTest(client, cache, now)

	vetted, err := svc.GetReport(context.Background(), modash_client.PlatformInstagram, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, 0, client.fetches)
	assert.Equal(t, "alpha", vetted.Username)
	assert.Equal(t, 85, vetted.VettingScore)
	assert.Equal(t, cache.record.FetchedAt, vetted.CachedAt)
}

func TestGetReportRefetchesExpiredCache(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	report, payload := sampleReport(t)

	client := &fakeReportClient{report: report}
	cache := &fakeReportCache{record: &models.ReportCacheRecord{
		Payload:   payload,
		FetchedAt: now.Add(-30*24*time.Hour - time.Hour),
	}}
	svc := newReportServiceForTest(client, cache, now)

	vetted, err := svc.GetReport(context.Background(), modash_client.PlatformInstagram, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, 1, client.fetches)
	assert.Equal(t, 1, cache.upserts)
	assert.Equal(t, now, vetted.CachedAt)
}

func TestGetReportForceRefreshSkipsCache(t *testing.T) {
	now := time.Now()
	report, payload := sampleReport(t)

	client := &fakeReportClient{report: report}
	cache := &fakeReportCache{record: &models.ReportCacheRecord{
		Payload:   payload,
		FetchedAt: now.Add(-time.Minute),
	}}
	svc := newReportServiceForTest(client, cache, now)

	_, err := svc.GetReport(context.Background(), modash_client.PlatformInstagram, "u1", true)
	require.NoError(t, err)
	assert.Equal(t, 1, client.fetches)
	assert.Equal(t, 1, cache.upserts)
}

func TestGetReportCacheReadFailureFallsThrough(t *testing.T) {
	report, _ := sampleReport(t)
	client := &fakeReportClient{report: report}
	cache := &fakeReportCache{getErr: errors.New("db down")}
	svc := newReportServiceForTest(client, cache, time.Now())

	vetted, err := svc.GetReport(context.Background(), modash_client.PlatformInstagram, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, 1, client.fetches)
	assert.Equal(t, 85, vetted.VettingScore)
}

func TestGetReportCacheWriteFailureIsBestEffort(t *testing.T) {
	report, _ := sampleReport(t)
	client := &fakeReportClient{report: report}
	cache := &fakeReportCache{putErr: errors.New("db down")}
	svc := newReportServiceForTest(client, cache, time.Now())

	vetted, err := svc.GetReport(context.Background(), modash_client.PlatformInstagram, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, 85, vetted.VettingScore)
}

func TestGetReportCorruptCachePayloadRefetches(t *testing.T) {
	now := time.Now()
	report, _ := sampleReport(t)

	client := &fakeReportClient{report: report}
	cache := &fakeReportCache{record: &models.ReportCacheRecord{
		Payload:   types.JSONText(`{not json`),
		FetchedAt: now.Add(-time.Minute),
	}}
	svc := newReportServiceForTest(client, cache, now)

	_, err := svc.GetReport(context.Background(), modash_client.PlatformInstagram, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, 1, client.fetches)
}

func TestGetReportUpstreamErrorPropagates(t *testing.T) {
	upstream := &modash_client.APIError{StatusCode: 404, Message: "creator not found"}
	client := &fakeReportClient{err: upstream}
	svc := newReportServiceForTest(client, &fakeReportCache{}, time.Now())

	_, err := svc.GetReport(context.Background(), modash_client.PlatformInstagram, "missing", false)

	var apiErr *modash_client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}
