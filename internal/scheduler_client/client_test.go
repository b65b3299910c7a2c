package scheduler_client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreatePost(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"id": "p1", "status": "published"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "sched-token", zap.NewNop())
	resp, err := client.CreatePost(context.Background(), &PostRequest{
		AccountID: "acc1",
		Text:      "New drop tomorrow",
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", resp.ID)
	assert.Equal(t, "published", resp.Status)
	assert.Equal(t, "Bearer sched-token", gotAuth)
	assert.Equal(t, "/posts", gotPath)
}

func TestSchedulePostRequiresTime(t *testing.T) {
	client := NewClient("http://unused.example.com", "token", zap.NewNop())

	_, err := client.SchedulePost(context.Background(), &PostRequest{
		AccountID: "acc1",
		Text:      "later",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduled_at")
}

func TestSchedulePost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts/schedule", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"id": "p2", "status": "scheduled"})
	}))
	defer server.Close()

	at := time.Now().Add(2 * time.Hour)
	client := NewClient(server.URL, "token", zap.NewNop())
	resp, err := client.SchedulePost(context.Background(), &PostRequest{
		AccountID:   "acc1",
		Text:        "later",
		ScheduledAt: &at,
	})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", resp.Status)
}

func TestGetAccountAnalytics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/acc1/analytics", r.URL.Path)
		json.NewEncoder(w).Encode(AccountAnalytics{
			AccountID:   "acc1",
			Followers:   12000,
			Posts:       80,
			Impressions: 450000,
			Engagement:  0.034,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", zap.NewNop())
	analytics, err := client.GetAccountAnalytics(context.Background(), "acc1")
	require.NoError(t, err)
	assert.Equal(t, int64(12000), analytics.Followers)
}

func TestUpstreamErrorSurfacesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", zap.NewNop())
	err := client.DeleteScheduledPost(context.Background(), "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}
