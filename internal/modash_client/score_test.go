package modash_client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVettingScoreStrongProfile(t *testing.T) {
	report := &Report{
		Creator: Creator{
			EngagementRate: 0.06,
			AvgLikes:       1000,
		},
		FollowerGrowth30d: 10,
		PostsPerWeek:      5,
		AvgComments:       25, // ratio 0.025
	}

	breakdown := VettingScore(report)

	// 0.30 + 0.20 + 0.15 + 0.15 + 0.05 baseline.
	assert.Equal(t, 85, breakdown.Score)
	assert.Equal(t, []string{
		"High engagement rate vs peers",
		"Organic growth pattern",
		"Consistent posting cadence",
		"High audience engagement quality",
	}, breakdown.Reasons)
}

func TestVettingScoreWeakProfile(t *testing.T) {
	report := &Report{
		FollowerGrowth30d: 150,
		PostsPerWeek:      0.5,
	}

	breakdown := VettingScore(report)

	// Only the 0.05 baseline survives; every negative signal fires.
	assert.Equal(t, 5, breakdown.Score)
	assert.Equal(t, []string{
		"Low engagement rate",
		"Suspicious follower growth",
		"Irregular posting schedule",
		"Low comment engagement",
	}, breakdown.Reasons)
}

func TestVettingScoreEmptyProfile(t *testing.T) {
	breakdown := VettingScore(&Report{})

	// Zero growth sits outside every growth band, so no growth reason.
	assert.Equal(t, 5, breakdown.Score)
	assert.Equal(t, []string{
		"Low engagement rate",
		"Irregular posting schedule",
		"Low comment engagement",
	}, breakdown.Reasons)
}

func TestVettingScoreSuspiciousGrowth(t *testing.T) {
	report := &Report{
		Creator: Creator{
			EngagementRate: 0.03,
			AvgLikes:       500,
		},
		FollowerGrowth30d: 150,
		PostsPerWeek:      2,
		AvgComments:       3,
	}

	breakdown := VettingScore(report)

	// 0.20 engagement + 0.05 baseline; ratio 0.006 is in the silent band.
	assert.Equal(t, 25, breakdown.Score)
	assert.Equal(t, []string{"Suspicious follower growth"}, breakdown.Reasons)
}

func TestVettingScoreBoundariesAreSilent(t *testing.T) {
	tests := []struct {
		name   string
		growth float64
	}{
		{"growth exactly 50", 50},
		{"growth exactly 100", 100},
		{"growth exactly zero", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &Report{
				Creator: Creator{
					EngagementRate: 0.03,
					AvgLikes:       1000,
				},
				FollowerGrowth30d: tt.growth,
				PostsPerWeek:      2,
				AvgComments:       10, // ratio 0.01, silent band
			}
			breakdown := VettingScore(report)
			assert.Equal(t, 25, breakdown.Score)
			assert.Empty(t, breakdown.Reasons)
		})
	}
}

func TestVettingScoreCadenceBandsInclusive(t *testing.T) {
	for _, posts := range []float64{3, 7} {
		report := &Report{
			Creator: Creator{
				EngagementRate: 0.03,
				AvgLikes:       1000,
			},
			PostsPerWeek: posts,
			AvgComments:  10,
		}
		breakdown := VettingScore(report)
		assert.Equal(t, 40, breakdown.Score)
		assert.Equal(t, []string{"Consistent posting cadence"}, breakdown.Reasons)
	}
}

func TestVettingScoreZeroLikesRatio(t *testing.T) {
	report := &Report{
		Creator: Creator{
			EngagementRate: 0.03,
		},
		PostsPerWeek: 2,
		AvgComments:  500,
	}

	breakdown := VettingScore(report)

	// No likes means the ratio is treated as zero, not infinite.
	assert.Equal(t, 25, breakdown.Score)
	assert.Equal(t, []string{"Low comment engagement"}, breakdown.Reasons)
}

func TestVettingScoreNeverExceeds100(t *testing.T) {
	report := &Report{
		Creator: Creator{
			EngagementRate: 0.5,
			AvgLikes:       100,
		},
		FollowerGrowth30d: 25,
		PostsPerWeek:      5,
		AvgComments:       50,
	}

	breakdown := VettingScore(report)
	assert.Equal(t, 85, breakdown.Score)
	assert.LessOrEqual(t, breakdown.Score, 100)
}
