package handler

import (
	"testing"
	"time"

	"agencyhub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCampaignStatsArithmetic(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	campaign := &models.Campaign{
		Budget:  10000,
		Spent:   2500,
		EndDate: now.Add(10 * 24 * time.Hour),
	}

	stats := CampaignStats(campaign, now)

	assert.Equal(t, 7500.0, stats.BudgetRemaining)
	assert.Equal(t, 25.0, stats.PercentSpent)
	assert.Equal(t, 10, stats.DaysRemaining)
}

func TestCampaignStatsZeroBudget(t *testing.T) {
	now := time.Now()
	campaign := &models.Campaign{
		Budget:  0,
		Spent:   100,
		EndDate: now.Add(24 * time.Hour),
	}

	stats := CampaignStats(campaign, now)

	assert.Equal(t, -100.0, stats.BudgetRemaining)
	assert.Equal(t, 0.0, stats.PercentSpent)
}

func TestCampaignStatsPastEndDate(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	campaign := &models.Campaign{
		Budget:  1000,
		Spent:   1000,
		EndDate: now.Add(-48 * time.Hour),
	}

	stats := CampaignStats(campaign, now)

	assert.Equal(t, 0.0, stats.BudgetRemaining)
	assert.Equal(t, 100.0, stats.PercentSpent)
	assert.Equal(t, 0, stats.DaysRemaining)
}

func TestCampaignStatsRoundsPercent(t *testing.T) {
	now := time.Now()
	campaign := &models.Campaign{
		Budget:  3000,
		Spent:   1000,
		EndDate: now.Add(24 * time.Hour),
	}

	stats := CampaignStats(campaign, now)
	assert.Equal(t, 33.3, stats.PercentSpent)
}
