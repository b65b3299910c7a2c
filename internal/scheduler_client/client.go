package scheduler_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client is a client for the social-posting/scheduling provider API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// PostRequest describes a post to publish immediately or at a scheduled time.
type PostRequest struct {
	AccountID   string     `json:"account_id"`
	Text        string     `json:"text"`
	MediaURLs   []string   `json:"media_urls,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// PostResponse is the provider's acknowledgement of a created post.
type PostResponse struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// AccountAnalytics is the per-account performance summary the provider
// exposes for connected social accounts.
type AccountAnalytics struct {
	AccountID   string  `json:"account_id"`
	Followers   int64   `json:"followers"`
	Posts       int     `json:"posts"`
	Impressions int64   `json:"impressions"`
	Engagement  float64 `json:"engagement"`
}

// NewClient creates a new scheduling provider client.
func NewClient(baseURL, token string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// CreatePost publishes a post immediately.
func (c *Client) CreatePost(ctx context.Context, req *PostRequest) (*PostResponse, error) {
	var resp PostResponse
	if err := c.do(ctx, http.MethodPost, "/posts", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SchedulePost queues a post for a future time; ScheduledAt is required.
func (c *Client) SchedulePost(ctx context.Context, req *PostRequest) (*PostResponse, error) {
	if req.ScheduledAt == nil {
		return nil, fmt.Errorf("scheduled_at is required")
	}
	var resp PostResponse
	if err := c.do(ctx, http.MethodPost, "/posts/schedule", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteScheduledPost removes a queued post before it is published.
func (c *Client) DeleteScheduledPost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodDelete, "/posts/schedule/"+postID, nil, nil)
}

// GetAccountAnalytics fetches the performance summary for one account.
func (c *Client) GetAccountAnalytics(ctx context.Context, accountID string) (*AccountAnalytics, error) {
	var resp AccountAnalytics
	if err := c.do(ctx, http.MethodGet, "/accounts/"+accountID+"/analytics", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("scheduler returned status %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode scheduler response: %w", err)
		}
	}
	return nil
}
