package modash_client

import (
	"context"
	"fmt"
	"net/http"
)

// EngagementPoint is one month of engagement history in a report.
type EngagementPoint struct {
	Month    string  `json:"month"`
	AvgLikes float64 `json:"avgLikes"`
	Rate     float64 `json:"engagementRate"`
}

// Report is the enriched creator snapshot used for vetting. It is a superset
// of the search-result profile.
type Report struct {
	Creator
	FollowerGrowth30d float64           `json:"followerGrowth30d"`
	PostsPerWeek      float64           `json:"postsPerWeek"`
	AvgComments       float64           `json:"avgComments"`
	EngagementHistory []EngagementPoint `json:"engagementHistory,omitempty"`
}

type reportResponse struct {
	Profile Report `json:"profile"`
}

// FetchReport retrieves a creator's detailed report from the provider.
// Payloads missing the identity fields are rejected with a ValidationError
// rather than passed through with zero values.
func (c *Client) FetchReport(ctx context.Context, platform, userID string) (*Report, error) {
	if !ValidPlatform(platform) {
		return nil, ErrInvalidPlatform
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}

	var resp reportResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/%s/report/%s", platform, userID), nil, &resp); err != nil {
		return nil, err
	}

	report := resp.Profile
	if report.Username == "" {
		return nil, &ValidationError{Field: "username", Reason: "is missing"}
	}
	if report.UserID == "" {
		report.UserID = userID
	}
	return &report, nil
}
