package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"agencyhub/internal/models"
	"agencyhub/internal/modash_client"
	"agencyhub/internal/repository"

	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"
)

// discoveryClient is the slice of the analytics client the discovery service
// needs; narrowed so tests can substitute a fake.
type discoveryClient interface {
	Search(ctx context.Context, platform string, filters modash_client.SearchFilters, sortSpec *modash_client.SortSpec, page int) (*modash_client.SearchPage, error)
	ListDictionary(ctx context.Context, platform string, kind modash_client.DictionaryKind, query string, limit int) ([]modash_client.DictionaryEntry, error)
}

type DiscoveryService interface {
	Search(ctx context.Context, userID int64, platform string, filters modash_client.SearchFilters, sortSpec *modash_client.SortSpec, page int) (*modash_client.SearchPage, error)
	Suggest(ctx context.Context, platform, query string) ([]modash_client.Creator, error)
	Dictionary(ctx context.Context, platform string, kind modash_client.DictionaryKind, query string, limit int) ([]modash_client.DictionaryEntry, error)
	History(userID int64, limit int) ([]*models.SearchLog, error)
}

type discoveryService struct {
	client   discoveryClient
	creators repository.CreatorRepository
	logs     repository.SearchLogRepository
	logger   *zap.Logger
}

func NewDiscoveryService(client discoveryClient, creators repository.CreatorRepository, logs repository.SearchLogRepository, logger *zap.Logger) DiscoveryService {
	return &discoveryService{
		client:   client,
		creators: creators,
		logs:     logs,
		logger:   logger,
	}
}

// Search runs one page of discovery and then, best-effort, mirrors the
// returned creators and records the query against the user. Persistence
// failures are logged and never fail the search itself.
func (s *discoveryService) Search(ctx context.Context, userID int64, platform string, filters modash_client.SearchFilters, sortSpec *modash_client.SortSpec, page int) (*modash_client.SearchPage, error) {
	result, err := s.client.Search(ctx, platform, filters, sortSpec, page)
	if err != nil {
		return nil, err
	}

	for i := range result.Creators {
		if err := s.creators.Upsert(mirrorCreator(platform, &result.Creators[i])); err != nil {
			s.logger.Warn("Failed to mirror creator",
				zap.String("platform", platform),
				zap.String("creator", result.Creators[i].UserID),
				zap.Error(err))
		}
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		filtersJSON = []byte("{}")
	}
	if err := s.logs.Insert(userID, platform, types.JSONText(filtersJSON), page, len(result.Creators)); err != nil {
		s.logger.Warn("Failed to record search log", zap.Int64("user_id", userID), zap.Error(err))
	}

	return result, nil
}

// Suggest is the autocomplete search mode: a leading '@' means username
// lookup, a leading '#' means hashtag lookup, anything else is free text.
// Exact username matches rank first, then username-prefix matches, then the
// rest; each tier is ordered by follower count descending.
func (s *discoveryService) Suggest(ctx context.Context, platform, query string) ([]modash_client.Creator, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []modash_client.Creator{}, nil
	}

	var filters modash_client.SearchFilters
	needle := query
	switch {
	case strings.HasPrefix(query, "@"):
		needle = strings.TrimPrefix(query, "@")
		filters.Usernames = []string{needle}
	case strings.HasPrefix(query, "#"):
		needle = strings.TrimPrefix(query, "#")
		filters.Hashtags = []string{needle}
	default:
		filters.Keywords = query
	}

	sortSpec := &modash_client.SortSpec{Field: "followers", Direction: "desc"}
	result, err := s.client.Search(ctx, platform, filters, sortSpec, 0)
	if err != nil {
		return nil, err
	}

	creators := result.Creators
	lowered := strings.ToLower(needle)
	rank := func(c *modash_client.Creator) int {
		username := strings.ToLower(c.Username)
		switch {
		case username == lowered:
			return 0
		case strings.HasPrefix(username, lowered):
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(creators, func(i, j int) bool {
		ri, rj := rank(&creators[i]), rank(&creators[j])
		if ri != rj {
			return ri < rj
		}
		return creators[i].Followers > creators[j].Followers
	})
	return creators, nil
}

// History returns the user's most recent discovery queries.
func (s *discoveryService) History(userID int64, limit int) ([]*models.SearchLog, error) {
	return s.logs.ListByUser(userID, limit)
}

// Dictionary proxies filter-UI enumeration lookups unchanged.
func (s *discoveryService) Dictionary(ctx context.Context, platform string, kind modash_client.DictionaryKind, query string, limit int) ([]modash_client.DictionaryEntry, error) {
	return s.client.ListDictionary(ctx, platform, kind, query, limit)
}

// mirrorCreator converts a provider profile into a mirror-table row.
func mirrorCreator(platform string, c *modash_client.Creator) *models.Creator {
	return &models.Creator{
		Platform:           platform,
		UserID:             c.UserID,
		Username:           c.Username,
		FullName:           c.FullName,
		Picture:            c.Picture,
		Followers:          c.Followers,
		EngagementRate:     c.EngagementRate,
		AvgLikes:           c.AvgLikes,
		AvgViews:           c.AvgViews,
		IsVerified:         c.IsVerified,
		HasContactDetails:  c.HasContactDetails,
		TopAudienceCountry: c.TopAudienceCountry,
		TopAudienceCity:    c.TopAudienceCity,
	}
}
