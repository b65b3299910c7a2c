package mailer_client

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client is a client for the email-marketing provider API. Auth is an API
// key sent as the password of HTTP Basic auth.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// Member is a list subscriber as returned by the provider.
type Member struct {
	ID          string            `json:"id"`
	Email       string            `json:"email_address"`
	Status      string            `json:"status"`
	MergeFields map[string]string `json:"merge_fields,omitempty"`
}

// NewClient creates a new email-marketing provider client.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// UpsertMember adds or updates a list member. The member is addressed by the
// provider's convention of the MD5 hash of the lowercased email.
func (c *Client) UpsertMember(ctx context.Context, listID, email, status string, mergeFields map[string]string) (*Member, error) {
	body := struct {
		Email       string            `json:"email_address"`
		Status      string            `json:"status_if_new"`
		MergeFields map[string]string `json:"merge_fields,omitempty"`
	}{Email: email, Status: status, MergeFields: mergeFields}

	path := fmt.Sprintf("/lists/%s/members/%s", listID, memberHash(email))
	var member Member
	if err := c.do(ctx, http.MethodPut, path, body, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// AddTags applies tags to an existing list member.
func (c *Client) AddTags(ctx context.Context, listID, email string, tags []string) error {
	type tag struct {
		Name   string `json:"name"`
		Status string `json:"status"`
	}
	body := struct {
		Tags []tag `json:"tags"`
	}{}
	for _, name := range tags {
		body.Tags = append(body.Tags, tag{Name: name, Status: "active"})
	}

	path := fmt.Sprintf("/lists/%s/members/%s/tags", listID, memberHash(email))
	return c.do(ctx, http.MethodPost, path, body, nil)
}

func memberHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(email)))
	return fmt.Sprintf("%x", sum)
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
	req.SetBasicAuth("anystring", c.apiKey)
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
		return fmt.Errorf("mailer returned status %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode mailer response: %w", err)
		}
	}
	return nil
}
