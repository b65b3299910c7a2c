package repository

import (
	"agencyhub/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"
)

type SearchLogRepository interface {
	Insert(userID int64, platform string, filters types.JSONText, page, resultCount int) error
	ListByUser(userID int64, limit int) ([]*models.SearchLog, error)
}

type searchLogRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSearchLogRepository(db *sqlx.DB, logger *zap.Logger) SearchLogRepository {
	return &searchLogRepository{db: db, logger: logger}
}

func (r *searchLogRepository) Insert(userID int64, platform string, filters types.JSONText, page, resultCount int) error {
	query := `INSERT INTO search_logs (user_id, platform, filters, page, result_count) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(query, userID, platform, filters, page, resultCount)
	return err
}

func (r *searchLogRepository) ListByUser(userID int64, limit int) ([]*models.SearchLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []*models.SearchLog
	query := `SELECT id, user_id, platform, filters, page, result_count, created_at
	          FROM search_logs WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	if err := r.db.Select(&logs, query, userID, limit); err != nil {
		return nil, err
	}
	return logs, nil
}
