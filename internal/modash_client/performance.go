package modash_client

import (
	"context"
	"fmt"
	"net/http"
)

// PostPerformance is one recent post's metrics from the performance endpoint.
type PostPerformance struct {
	PostID    string  `json:"postId"`
	URL       string  `json:"url"`
	CreatedAt string  `json:"created"`
	Likes     float64 `json:"likes"`
	Comments  float64 `json:"comments"`
	Views     float64 `json:"views"`
}

// PerformanceData summarizes a creator's recent posting performance.
type PerformanceData struct {
	UserID      string            `json:"userId"`
	AvgLikes    float64           `json:"avgLikes"`
	AvgComments float64           `json:"avgComments"`
	AvgViews    float64           `json:"avgViews"`
	Posts       []PostPerformance `json:"posts,omitempty"`
}

type performanceResponse struct {
	Data PerformanceData `json:"data"`
}

// FetchPerformanceData retrieves recent-post metrics for a creator. Unlike
// reports this data is not cached locally; it changes too fast to be useful
// after days.
func (c *Client) FetchPerformanceData(ctx context.Context, platform, userID string) (*PerformanceData, error) {
	if !ValidPlatform(platform) {
		return nil, ErrInvalidPlatform
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrInvalidInput)
	}

	path := fmt.Sprintf("/%s/performance-data?userId=%s", platform, userID)
	var resp performanceResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	data := resp.Data
	if data.UserID == "" {
		data.UserID = userID
	}
	return &data, nil
}
