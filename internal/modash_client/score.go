package modash_client

import "math"

// ScoreBreakdown is the result of the vetting rubric: an integer 0-100 and
// the reason strings for the signals that fired, in rubric order.
type ScoreBreakdown struct {
	Score   int      `json:"vettingScore"`
	Reasons []string `json:"vettingReasons"`
}

// VettingScore computes the heuristic quality score for a report snapshot.
// The thresholds and weights are a fixed rubric; comparisons are deliberately
// strict where written that way, so boundary values (growth of exactly 50 or
// 100, velocity of exactly 5 or 20) contribute nothing and emit no reason.
func VettingScore(r *Report) ScoreBreakdown {
	var sum float64
	var reasons []string

	// Engagement rate vs peers, up to 0.30.
	switch {
	case r.EngagementRate > 0.05:
		sum += 0.30
		reasons = append(reasons, "High engagement rate vs peers")
	case r.EngagementRate > 0.02:
		sum += 0.20
	default:
		reasons = append(reasons, "Low engagement rate")
	}

	// 30-day follower growth, up to 0.20. One chain: a growth figure matches
	// at most one band, so the velocity bonus never stacks on top of the
	// organic-growth bonus.
	switch {
	case r.FollowerGrowth30d > 0 && r.FollowerGrowth30d < 50:
		sum += 0.20
		reasons = append(reasons, "Organic growth pattern")
	case r.FollowerGrowth30d > 100:
		reasons = append(reasons, "Suspicious follower growth")
	case r.FollowerGrowth30d > 5 && r.FollowerGrowth30d < 20:
		// Unreachable while the organic band encloses it; kept to mirror
		// the rubric as published.
		sum += 0.10
		reasons = append(reasons, "Healthy growth velocity")
	}

	// Posting cadence, up to 0.15.
	switch {
	case r.PostsPerWeek >= 3 && r.PostsPerWeek <= 7:
		sum += 0.15
		reasons = append(reasons, "Consistent posting cadence")
	case r.PostsPerWeek < 1:
		reasons = append(reasons, "Irregular posting schedule")
	}

	// Comment-to-like ratio, up to 0.15.
	var ratio float64
	if r.AvgLikes > 0 {
		ratio = r.AvgComments / r.AvgLikes
	}
	switch {
	case ratio > 0.02:
		sum += 0.15
		reasons = append(reasons, "High audience engagement quality")
	case ratio < 0.005:
		reasons = append(reasons, "Low comment engagement")
	}

	// Baseline relevance.
	sum += 0.05

	return ScoreBreakdown{
		Score:   int(math.Round(sum * 100)),
		Reasons: reasons,
	}
}
