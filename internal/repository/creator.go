package repository

import (
	"database/sql"
	"errors"

	"agencyhub/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type CreatorRepository interface {
	Upsert(creator *models.Creator) error
	GetByKey(platform, userID string) (*models.Creator, error)
	List(platform string, limit int) ([]*models.Creator, error)
	Count() (int, error)
}

type creatorRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCreatorRepository(db *sqlx.DB, logger *zap.Logger) CreatorRepository {
	return &creatorRepository{db: db, logger: logger}
}

// Upsert writes a mirrored profile, overwriting any prior row for the same
// (platform, user_id) key. Last write wins; the payload is snapshot data.
func (r *creatorRepository) Upsert(creator *models.Creator) error {
	query := `
		INSERT INTO creators (platform, user_id, username, full_name, picture, followers,
		                      engagement_rate, avg_likes, avg_views, is_verified,
		                      has_contact_details, top_audience_country, top_audience_city, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (platform, user_id) DO UPDATE SET
			username = EXCLUDED.username,
			full_name = EXCLUDED.full_name,
			picture = EXCLUDED.picture,
			followers = EXCLUDED.followers,
			engagement_rate = EXCLUDED.engagement_rate,
			avg_likes = EXCLUDED.avg_likes,
			avg_views = EXCLUDED.avg_views,
			is_verified = EXCLUDED.is_verified,
			has_contact_details = EXCLUDED.has_contact_details,
			top_audience_country = EXCLUDED.top_audience_country,
			top_audience_city = EXCLUDED.top_audience_city,
			updated_at = NOW()
		RETURNING id`
	return r.db.QueryRowx(query,
		creator.Platform, creator.UserID, creator.Username, creator.FullName, creator.Picture,
		creator.Followers, creator.EngagementRate, creator.AvgLikes, creator.AvgViews,
		creator.IsVerified, creator.HasContactDetails,
		creator.TopAudienceCountry, creator.TopAudienceCity).Scan(&creator.ID)
}

func (r *creatorRepository) GetByKey(platform, userID string) (*models.Creator, error) {
	var creator models.Creator
	query := `SELECT * FROM creators WHERE platform = $1 AND user_id = $2`
	err := r.db.Get(&creator, query, platform, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &creator, nil
}

func (r *creatorRepository) List(platform string, limit int) ([]*models.Creator, error) {
	if limit <= 0 {
		limit = 100
	}
	var creators []*models.Creator
	var err error
	if platform != "" {
		query := `SELECT * FROM creators WHERE platform = $1 ORDER BY followers DESC LIMIT $2`
		err = r.db.Select(&creators, query, platform, limit)
	} else {
		query := `SELECT * FROM creators ORDER BY followers DESC LIMIT $1`
		err = r.db.Select(&creators, query, limit)
	}
	if err != nil {
		return nil, err
	}
	return creators, nil
}

func (r *creatorRepository) Count() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM creators`); err != nil {
		return 0, err
	}
	return count, nil
}
