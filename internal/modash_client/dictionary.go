package modash_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

// DictionaryKind selects one of the provider-hosted enumerations used to
// populate filter UIs.
type DictionaryKind string

const (
	DictionaryLocations DictionaryKind = "locations"
	DictionaryInterests DictionaryKind = "interests"
	DictionaryBrands    DictionaryKind = "brands"
	DictionaryLanguages DictionaryKind = "languages"
)

const (
	// Queries shorter than this never hit the network; the UI calls this
	// endpoint on every keystroke.
	minDictionaryQuery = 2

	defaultDictionaryLimit = 50
)

// DictionaryEntry is a single (id, name) suggestion. Location IDs are
// numeric, language IDs are strings, so the ID stays a json.Number-compatible
// raw value.
type DictionaryEntry struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

type dictionaryResponse struct {
	Locations []DictionaryEntry `json:"locations"`
	Interests []DictionaryEntry `json:"interests"`
	Brands    []DictionaryEntry `json:"brands"`
	Languages []DictionaryEntry `json:"languages"`
}

// ListDictionary resolves a free-text query into suggestion entries for the
// given enumeration kind, scoped to a platform. Entries come back in upstream
// order; no local re-sorting.
func (c *Client) ListDictionary(ctx context.Context, platform string, kind DictionaryKind, query string, limit int) ([]DictionaryEntry, error) {
	if !ValidPlatform(platform) {
		return nil, ErrInvalidPlatform
	}
	switch kind {
	case DictionaryLocations, DictionaryInterests, DictionaryBrands, DictionaryLanguages:
	default:
		return nil, fmt.Errorf("%w: unknown dictionary kind %q", ErrInvalidInput, kind)
	}

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minDictionaryQuery {
		return []DictionaryEntry{}, nil
	}
	if limit <= 0 {
		limit = defaultDictionaryLimit
	}

	path := fmt.Sprintf("/%s/%s?query=%s&limit=%d", platform, kind, url.QueryEscape(query), limit)
	var resp dictionaryResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	switch kind {
	case DictionaryLocations:
		return resp.Locations, nil
	case DictionaryInterests:
		return resp.Interests, nil
	case DictionaryBrands:
		return resp.Brands, nil
	default:
		return resp.Languages, nil
	}
}
