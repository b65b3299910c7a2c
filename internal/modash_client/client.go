package modash_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Supported platforms.
const (
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
	PlatformYouTube   = "youtube"
)

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = time.Second
	defaultJitterMax  = time.Second
)

// ValidPlatform reports whether p is one of the supported platforms.
func ValidPlatform(p string) bool {
	return p == PlatformInstagram || p == PlatformTikTok || p == PlatformYouTube
}

// Client is the client for the social-analytics provider API. One configured
// instance is constructed at process start and shared by the services that
// need discovery, dictionary, or report data.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger

	maxRetries int
	baseDelay  time.Duration

	// sleep and jitter are swappable so the retry schedule can be unit
	// tested without real delays.
	sleep  func(time.Duration)
	jitter func() time.Duration
}

// NewClient creates a new analytics provider client.
func NewClient(baseURL, token string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:     logger,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		sleep:      time.Sleep,
		jitter: func() time.Duration {
			return time.Duration(rand.Int63n(int64(defaultJitterMax)))
		},
	}
}

// do performs one API call with the retry/backoff policy: 429 and
// transport-level failures are retried with exponential backoff, any other
// non-2xx fails immediately with an APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt == c.maxRetries {
				break
			}
			delay := c.backoffDelay(attempt)
			c.logger.Warn("provider request failed, retrying",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err))
			c.sleep(delay)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			delay := c.retryAfter(resp, attempt)
			resp.Body.Close()
			if attempt == c.maxRetries {
				return &RateLimitError{RetryAfter: delay}
			}
			c.logger.Warn("provider rate limited, retrying",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))
			c.sleep(delay)
			continue
		}

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			apiErr := readAPIError(resp)
			resp.Body.Close()
			return apiErr
		}

		if out != nil {
			err = json.NewDecoder(resp.Body).Decode(out)
		}
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to decode provider response: %w", err)
		}
		return nil
	}

	return &MaxRetriesError{Attempts: c.maxRetries + 1, Err: lastErr}
}

// backoffDelay computes baseDelay * 2^attempt plus uniform jitter.
func (c *Client) backoffDelay(attempt int) time.Duration {
	return c.baseDelay*time.Duration(1<<attempt) + c.jitter()
}

// retryAfter prefers the server-provided Retry-After header (seconds) and
// falls back to the backoff schedule.
func (c *Client) retryAfter(resp *http.Response, attempt int) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return c.backoffDelay(attempt)
}

// readAPIError extracts the upstream error message from a non-2xx body. The
// provider answers either {"message": ...} or {"error": "..."}.
func readAPIError(resp *http.Response) *APIError {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: parsed.Message}
		}
		if parsed.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: parsed.Error}
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: string(body)}
}
