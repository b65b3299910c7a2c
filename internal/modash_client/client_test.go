package modash_client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedTransport plays back a fixed sequence of responses or transport
// errors; once the script runs out it repeats the last step.
type scriptedTransport struct {
	steps []scriptStep
	calls int
}

type scriptStep struct {
	status  int
	body    string
	headers map[string]string
	err     error
}

func (t *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	step := t.steps[len(t.steps)-1]
	if t.calls < len(t.steps) {
		step = t.steps[t.calls]
	}
	t.calls++

	if step.err != nil {
		return nil, step.err
	}
	resp := &http.Response{
		StatusCode: step.status,
		Body:       io.NopCloser(strings.NewReader(step.body)),
		Header:     make(http.Header),
		Request:    req,
	}
	for k, v := range step.headers {
		resp.Header.Set(k, v)
	}
	return resp, nil
}

func newTestClient(t *testing.T, transport http.RoundTripper) (*Client, *[]time.Duration) {
	t.Helper()
	slept := &[]time.Duration{}
	c := NewClient("https://api.example.com/v1", "test-token", zap.NewNop())
	c.httpClient = &http.Client{Transport: transport}
	c.sleep = func(d time.Duration) { *slept = append(*slept, d) }
	c.jitter = func() time.Duration { return 250 * time.Millisecond }
	return c, slept
}

func TestDoRetriesRateLimitThenSucceeds(t *testing.T) {
	transport := &scriptedTransport{steps: []scriptStep{
		{status: http.StatusTooManyRequests},
		{status: http.StatusTooManyRequests},
		{status: http.StatusOK, body: `{"total": 3}`},
	}}
	client, slept := newTestClient(t, transport)

	var out struct {
		Total int `json:"total"`
	}
	err := client.do(context.Background(), http.MethodGet, "/instagram/search", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, 3, transport.calls)
	assert.Len(t, *slept, 2)
}

func TestDoBackoffSchedule(t *testing.T) {
	transport := &scriptedTransport{steps: []scriptStep{
		{status: http.StatusTooManyRequests},
	}}
	client, slept := newTestClient(t, transport)

	err := client.do(context.Background(), http.MethodGet, "/instagram/search", nil, nil)

	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, 4, transport.calls)

	// baseDelay * 2^attempt plus the fixed test jitter for attempts 0..2; the
	// final 429 exhausts the budget without sleeping.
	want := []time.Duration{
		1*time.Second + 250*time.Millisecond,
		2*time.Second + 250*time.Millisecond,
		4*time.Second + 250*time.Millisecond,
	}
	assert.Equal(t, want, *slept)
	assert.Equal(t, 8*time.Second+250*time.Millisecond, rateErr.RetryAfter)
}

func TestDoHonorsRetryAfterHeader(t *testing.T) {
	transport := &scriptedTransport{steps: []scriptStep{
		{status: http.StatusTooManyRequests, headers: map[string]string{"Retry-After": "7"}},
		{status: http.StatusOK, body: `{}`},
	}}
	client, slept := newTestClient(t, transport)

	err := client.do(context.Background(), http.MethodGet, "/instagram/search", nil, nil)
	require.NoError(t, err)
	require.Len(t, *slept, 1)
	assert.Equal(t, 7*time.Second, (*slept)[0])
}

func TestDoTransportErrorExhaustsRetries(t *testing.T) {
	netErr := errors.New("connection refused")
	transport := &scriptedTransport{steps: []scriptStep{{err: netErr}}}
	client, slept := newTestClient(t, transport)

	err := client.do(context.Background(), http.MethodGet, "/instagram/search", nil, nil)

	var maxErr *MaxRetriesError
	require.ErrorAs(t, err, &maxErr)
	assert.Equal(t, 4, maxErr.Attempts)
	assert.Equal(t, 4, transport.calls)
	assert.Len(t, *slept, 3)
	assert.ErrorContains(t, maxErr.Err, "connection refused")
}

func TestDoDoesNotRetryOtherStatuses(t *testing.T) {
	transport := &scriptedTransport{steps: []scriptStep{
		{status: http.StatusBadRequest, body: `{"message": "filter is malformed"}`},
	}}
	client, slept := newTestClient(t, transport)

	err := client.do(context.Background(), http.MethodGet, "/instagram/search", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "filter is malformed", apiErr.Message)
	assert.Equal(t, 1, transport.calls)
	assert.Empty(t, *slept)
}

func TestReadAPIErrorFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message": "quota exceeded"}`, "quota exceeded"},
		{"error field", `{"error": "not found"}`, "not found"},
		{"raw body", `upstream exploded`, "upstream exploded"},
		{"empty body", ``, http.StatusText(http.StatusBadGateway)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: http.StatusBadGateway,
				Body:       io.NopCloser(strings.NewReader(tt.body)),
			}
			apiErr := readAPIError(resp)
			assert.Equal(t, tt.want, apiErr.Message)
		})
	}
}

func TestValidPlatform(t *testing.T) {
	assert.True(t, ValidPlatform(PlatformInstagram))
	assert.True(t, ValidPlatform(PlatformTikTok))
	assert.True(t, ValidPlatform(PlatformYouTube))
	assert.False(t, ValidPlatform("twitch"))
	assert.False(t, ValidPlatform(""))
	assert.False(t, ValidPlatform("Instagram"))
}

func TestFetchReportValidation(t *testing.T) {
	transport := &scriptedTransport{steps: []scriptStep{
		{status: http.StatusOK, body: `{"profile": {"followers": 1000}}`},
	}}
	client, _ := newTestClient(t, transport)

	_, err := client.FetchReport(context.Background(), PlatformInstagram, "abc123")

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "username", valErr.Field)
}

func TestFetchReportBackfillsUserID(t *testing.T) {
	transport := &scriptedTransport{steps: []scriptStep{
		{status: http.StatusOK, body: `{"profile": {"username": "kayobrasil", "followers": 1000}}`},
	}}
	client, _ := newTestClient(t, transport)

	report, err := client.FetchReport(context.Background(), PlatformInstagram, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", report.UserID)
	assert.Equal(t, "kayobrasil", report.Username)
}

func TestFetchReportInvalidInput(t *testing.T) {
	client, _ := newTestClient(t, &scriptedTransport{steps: []scriptStep{{status: http.StatusOK}}})

	_, err := client.FetchReport(context.Background(), "myspace", "abc123")
	assert.ErrorIs(t, err, ErrInvalidPlatform)

	_, err = client.FetchReport(context.Background(), PlatformInstagram, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// failTransport fails the test if any request reaches the network layer.
type failTransport struct {
	t *testing.T
}

func (f *failTransport) RoundTrip(*http.Request) (*http.Response, error) {
	f.t.Fatal("unexpected network call")
	return nil, fmt.Errorf("unexpected network call")
}
