package mailer_client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUpsertMemberAddressing(t *testing.T) {
	var gotPath, gotUser, gotKey string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotKey, _ = r.BasicAuth()
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"id":            "m1",
			"email_address": "ana@example.com",
			"status":        "subscribed",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "api-key", zap.NewNop())
	member, err := client.UpsertMember(context.Background(), "list1", "Ana@Example.com", "subscribed", nil)
	require.NoError(t, err)

	// Members are addressed by the MD5 of the lowercased email.
	assert.Equal(t, "/lists/list1/members/"+memberHash("ana@example.com"), gotPath)
	assert.Equal(t, "anystring", gotUser)
	assert.Equal(t, "api-key", gotKey)
	assert.Equal(t, "subscribed", gotBody["status_if_new"])
	assert.Equal(t, "subscribed", member.Status)
}

func TestAddTags(t *testing.T) {
	var gotBody struct {
		Tags []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"tags"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "api-key", zap.NewNop())
	err := client.AddTags(context.Background(), "list1", "ana@example.com", []string{"creator", "signed"})
	require.NoError(t, err)

	require.Len(t, gotBody.Tags, 2)
	assert.Equal(t, "creator", gotBody.Tags[0].Name)
	assert.Equal(t, "active", gotBody.Tags[0].Status)
}

func TestUpsertMemberUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "invalid email"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "api-key", zap.NewNop())
	_, err := client.UpsertMember(context.Background(), "list1", "broken", "subscribed", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestMemberHashIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, memberHash("Ana@Example.COM"), memberHash("ana@example.com"))
}
