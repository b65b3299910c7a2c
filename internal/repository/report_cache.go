package repository

import (
	"database/sql"
	"errors"

	"agencyhub/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"
)

type ReportCacheRepository interface {
	Get(platform, userID string) (*models.ReportCacheRecord, error)
	Upsert(platform, userID string, payload types.JSONText) error
	Delete(platform, userID string) error
}

type reportCacheRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewReportCacheRepository(db *sqlx.DB, logger *zap.Logger) ReportCacheRepository {
	return &reportCacheRepository{db: db, logger: logger}
}

func (r *reportCacheRepository) Get(platform, userID string) (*models.ReportCacheRecord, error) {
	var record models.ReportCacheRecord
	query := `SELECT id, platform, user_id, payload, fetched_at FROM creator_reports WHERE platform = $1 AND user_id = $2`
	err := r.db.Get(&record, query, platform, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Upsert overwrites the cache record for the key and stamps the current
// time. Exactly one row per (platform, user_id); the second writer wins.
func (r *reportCacheRepository) Upsert(platform, userID string, payload types.JSONText) error {
	query := `
		INSERT INTO creator_reports (platform, user_id, payload, fetched_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (platform, user_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			fetched_at = NOW()`
	_, err := r.db.Exec(query, platform, userID, payload)
	return err
}

func (r *reportCacheRepository) Delete(platform, userID string) error {
	_, err := r.db.Exec(`DELETE FROM creator_reports WHERE platform = $1 AND user_id = $2`, platform, userID)
	return err
}
