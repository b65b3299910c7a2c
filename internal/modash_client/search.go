package modash_client

import (
	"context"
	"fmt"
	"net/http"
)

// PageSize is the fixed number of results per search call.
const PageSize = 15

// Creator is the provider's profile shape as consumed by discovery pages.
type Creator struct {
	UserID             string  `json:"userId"`
	Username           string  `json:"username"`
	FullName           string  `json:"fullname"`
	Picture            string  `json:"picture"`
	Followers          int64   `json:"followers"`
	EngagementRate     float64 `json:"engagementRate"`
	AvgLikes           float64 `json:"avgLikes"`
	AvgViews           float64 `json:"avgViews"`
	IsVerified         bool    `json:"isVerified"`
	HasContactDetails  bool    `json:"hasContactDetails"`
	TopAudienceCountry string  `json:"topAudienceCountry,omitempty"`
	TopAudienceCity    string  `json:"topAudienceCity,omitempty"`
}

// SearchFilters is the structured filter object built by the discovery UI.
// Zero values mean "not filtered".
type SearchFilters struct {
	FollowersMin      int64
	FollowersMax      int64
	EngagementRateMin float64
	Locations         []int64
	Interests         []string
	Languages         []string
	Hashtags          []string
	Keywords          string
	AudienceGender    string
	AudienceAgeMin    int
	AudienceAgeMax    int
	Verified          *bool
	HasContactDetails *bool
	// Usernames restricts matching to the given handles; used by the
	// suggestion flow for @username lookups.
	Usernames []string
}

// SortSpec orders search results by a provider field.
type SortSpec struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// SearchPage is one page of discovery results. HasMore uses the upstream
// total when the provider includes one, and otherwise falls back to the
// "full page means more" heuristic.
type SearchPage struct {
	Creators []Creator `json:"creators"`
	Total    int       `json:"total"`
	HasMore  bool      `json:"hasMore"`
}

type searchRequest struct {
	Page   int          `json:"page"`
	Sort   *SortSpec    `json:"sort,omitempty"`
	Filter searchFilter `json:"filter"`
}

type searchFilter struct {
	Influencer influencerFilter `json:"influencer"`
	Audience   audienceFilter   `json:"audience"`
}

type influencerFilter struct {
	Followers         *rangeFilter `json:"followers,omitempty"`
	EngagementRate    float64      `json:"engagementRate,omitempty"`
	Location          []int64      `json:"location,omitempty"`
	Interests         []string     `json:"interests,omitempty"`
	Language          []string     `json:"language,omitempty"`
	TextTags          []textTag    `json:"textTags,omitempty"`
	Keywords          string       `json:"keywords,omitempty"`
	RelevanceUsers    []string     `json:"relevance,omitempty"`
	IsVerified        *bool        `json:"isVerified,omitempty"`
	HasContactDetails *bool        `json:"hasContactDetails,omitempty"`
}

type audienceFilter struct {
	Gender string       `json:"gender,omitempty"`
	Age    *rangeFilter `json:"age,omitempty"`
}

type rangeFilter struct {
	Min int64 `json:"min,omitempty"`
	Max int64 `json:"max,omitempty"`
}

type textTag struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type searchResponse struct {
	Total   int `json:"total"`
	Results []struct {
		UserID  string  `json:"userId"`
		Profile Creator `json:"profile"`
	} `json:"results"`
}

// Search translates filters, sort, and a zero-based page into one upstream
// search call for a single platform.
func (c *Client) Search(ctx context.Context, platform string, filters SearchFilters, sort *SortSpec, page int) (*SearchPage, error) {
	if !ValidPlatform(platform) {
		return nil, ErrInvalidPlatform
	}
	if page < 0 {
		return nil, fmt.Errorf("%w: page must not be negative", ErrInvalidInput)
	}

	req := buildSearchRequest(filters, sort, page)
	var resp searchResponse
	if err := c.do(ctx, http.MethodPost, "/"+platform+"/search", req, &resp); err != nil {
		return nil, err
	}

	creators := make([]Creator, 0, len(resp.Results))
	for _, r := range resp.Results {
		creator := r.Profile
		if creator.UserID == "" {
			creator.UserID = r.UserID
		}
		creators = append(creators, creator)
	}

	result := &SearchPage{Creators: creators, Total: resp.Total}
	if resp.Total > 0 {
		result.HasMore = (page+1)*PageSize < resp.Total
	} else {
		result.HasMore = len(creators) == PageSize
	}
	return result, nil
}

func buildSearchRequest(filters SearchFilters, sort *SortSpec, page int) searchRequest {
	inf := influencerFilter{
		EngagementRate:    filters.EngagementRateMin,
		Location:          filters.Locations,
		Interests:         filters.Interests,
		Language:          filters.Languages,
		Keywords:          filters.Keywords,
		RelevanceUsers:    filters.Usernames,
		IsVerified:        filters.Verified,
		HasContactDetails: filters.HasContactDetails,
	}
	if filters.FollowersMin > 0 || filters.FollowersMax > 0 {
		inf.Followers = &rangeFilter{Min: filters.FollowersMin, Max: filters.FollowersMax}
	}
	for _, tag := range filters.Hashtags {
		inf.TextTags = append(inf.TextTags, textTag{Type: "hashtag", Value: tag})
	}

	aud := audienceFilter{Gender: filters.AudienceGender}
	if filters.AudienceAgeMin > 0 || filters.AudienceAgeMax > 0 {
		aud.Age = &rangeFilter{Min: int64(filters.AudienceAgeMin), Max: int64(filters.AudienceAgeMax)}
	}

	return searchRequest{
		Page: page,
		Sort: sort,
		Filter: searchFilter{
			Influencer: inf,
			Audience:   aud,
		},
	}
}
