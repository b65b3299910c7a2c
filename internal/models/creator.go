package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Creator is a row in the 'creators' mirror table: a read-only copy of a
// provider profile, keyed by (platform, user_id). No cross-platform merging.
type Creator struct {
	ID                 int64     `db:"id" json:"-"`
	Platform           string    `db:"platform" json:"platform"`
	UserID             string    `db:"user_id" json:"user_id"`
	Username           string    `db:"username" json:"username"`
	FullName           string    `db:"full_name" json:"full_name"`
	Picture            string    `db:"picture" json:"picture"`
	Followers          int64     `db:"followers" json:"followers"`
	EngagementRate     float64   `db:"engagement_rate" json:"engagement_rate"`
	AvgLikes           float64   `db:"avg_likes" json:"avg_likes"`
	AvgViews           float64   `db:"avg_views" json:"avg_views"`
	IsVerified         bool      `db:"is_verified" json:"is_verified"`
	HasContactDetails  bool      `db:"has_contact_details" json:"has_contact_details"`
	TopAudienceCountry string    `db:"top_audience_country" json:"top_audience_country"`
	TopAudienceCity    string    `db:"top_audience_city" json:"top_audience_city"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// ReportCacheRecord is a row in the 'creator_reports' table: the last-fetched
// report payload for a (platform, user_id) key plus its fetch timestamp.
// Records older than the TTL are treated as expired; a fresh fetch always
// overwrites the prior record.
type ReportCacheRecord struct {
	ID        int64          `db:"id"`
	Platform  string         `db:"platform"`
	UserID    string         `db:"user_id"`
	Payload   types.JSONText `db:"payload"`
	FetchedAt time.Time      `db:"fetched_at"`
}

// SearchLog is a row in the 'search_logs' table recording one discovery query
// against the initiating user. Append-only, best-effort.
type SearchLog struct {
	ID          int64          `db:"id" json:"id"`
	UserID      int64          `db:"user_id" json:"user_id"`
	Platform    string         `db:"platform" json:"platform"`
	Filters     types.JSONText `db:"filters" json:"filters"`
	Page        int            `db:"page" json:"page"`
	ResultCount int            `db:"result_count" json:"result_count"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}
