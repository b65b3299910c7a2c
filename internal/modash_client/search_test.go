package modash_client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchInvalidPlatformFailsFast(t *testing.T) {
	client, _ := newTestClient(t, &failTransport{t: t})

	_, err := client.Search(context.Background(), "facebook", SearchFilters{}, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidPlatform)

	_, err = client.Search(context.Background(), PlatformInstagram, SearchFilters{}, nil, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchHasMoreFromTotal(t *testing.T) {
	transport := &scriptedTransport{steps: []scriptStep{
		{status: http.StatusOK, body: `{"total": 40, "results": [{"userId": "u1", "profile": {"username": "a"}}]}`},
	}}
	client, _ := newTestClient(t, transport)

	page, err := client.Search(context.Background(), PlatformInstagram, SearchFilters{}, nil, 0)
	require.NoError(t, err)
	assert.True(t, page.HasMore) // 15 < 40

	page, err = client.Search(context.Background(), PlatformInstagram, SearchFilters{}, nil, 2)
	require.NoError(t, err)
	assert.False(t, page.HasMore) // 45 >= 40
}

func TestSearchHasMoreHeuristicWithoutTotal(t *testing.T) {
	full := `{"results": [`
	for i := 0; i < PageSize; i++ {
		if i > 0 {
			full += ","
		}
		full += `{"userId": "u", "profile": {"username": "x"}}`
	}
	full += `]}`

	transport := &scriptedTransport{steps: []scriptStep{
		{status: http.StatusOK, body: full},
		{status: http.StatusOK, body: `{"results": [{"userId": "u", "profile": {"username": "x"}}]}`},
	}}
	client, _ := newTestClient(t, transport)

	page, err := client.Search(context.Background(), PlatformInstagram, SearchFilters{}, nil, 0)
	require.NoError(t, err)
	assert.True(t, page.HasMore)

	page, err = client.Search(context.Background(), PlatformInstagram, SearchFilters{}, nil, 1)
	require.NoError(t, err)
	assert.False(t, page.HasMore)
}

func TestSearchBackfillsUserID(t *testing.T) {
	transport := &scriptedTransport{steps: []scriptStep{
		{status: http.StatusOK, body: `{"total": 1, "results": [{"userId": "envelope-id", "profile": {"username": "a"}}]}`},
	}}
	client, _ := newTestClient(t, transport)

	page, err := client.Search(context.Background(), PlatformYouTube, SearchFilters{}, nil, 0)
	require.NoError(t, err)
	require.Len(t, page.Creators, 1)
	assert.Equal(t, "envelope-id", page.Creators[0].UserID)
}

func TestBuildSearchRequest(t *testing.T) {
	verified := true
	req := buildSearchRequest(SearchFilters{
		FollowersMin:   10000,
		FollowersMax:   500000,
		Hashtags:       []string{"fitness", "gym"},
		AudienceGender: "female",
		AudienceAgeMin: 18,
		AudienceAgeMax: 34,
		Verified:       &verified,
	}, &SortSpec{Field: "followers", Direction: "desc"}, 2)

	assert.Equal(t, 2, req.Page)
	require.NotNil(t, req.Filter.Influencer.Followers)
	assert.Equal(t, int64(10000), req.Filter.Influencer.Followers.Min)
	assert.Equal(t, int64(500000), req.Filter.Influencer.Followers.Max)
	require.Len(t, req.Filter.Influencer.TextTags, 2)
	assert.Equal(t, textTag{Type: "hashtag", Value: "fitness"}, req.Filter.Influencer.TextTags[0])
	require.NotNil(t, req.Filter.Audience.Age)
	assert.Equal(t, int64(18), req.Filter.Audience.Age.Min)
	require.NotNil(t, req.Filter.Influencer.IsVerified)
	assert.True(t, *req.Filter.Influencer.IsVerified)
	require.NotNil(t, req.Sort)
	assert.Equal(t, "followers", req.Sort.Field)
}

func TestBuildSearchRequestEmptyFilters(t *testing.T) {
	req := buildSearchRequest(SearchFilters{}, nil, 0)
	assert.Nil(t, req.Filter.Influencer.Followers)
	assert.Nil(t, req.Filter.Audience.Age)
	assert.Empty(t, req.Filter.Influencer.TextTags)
	assert.Nil(t, req.Sort)
}
