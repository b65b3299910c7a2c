package repository

import (
	"database/sql"
	"errors"
	"time"

	"agencyhub/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type AdConnectionRepository interface {
	Upsert(conn *models.AdConnection) error
	Get(userID int64, provider string) (*models.AdConnection, error)
	Delete(userID int64, provider string) error
}

type adConnectionRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAdConnectionRepository(db *sqlx.DB, logger *zap.Logger) AdConnectionRepository {
	return &adConnectionRepository{db: db, logger: logger}
}

// Upsert stores one connection per (user_id, provider); reconnecting
// replaces the stored token.
func (r *adConnectionRepository) Upsert(conn *models.AdConnection) error {
	if conn.ExpiresAt.IsZero() {
		conn.ExpiresAt = time.Now().Add(60 * 24 * time.Hour)
	}
	query := `
		INSERT INTO ad_connections (user_id, provider, token_encrypted, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, provider) DO UPDATE SET
			token_encrypted = EXCLUDED.token_encrypted,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
		RETURNING id`
	return r.db.QueryRowx(query, conn.UserID, conn.Provider, conn.TokenEncrypted, conn.ExpiresAt).
		Scan(&conn.ID)
}

func (r *adConnectionRepository) Get(userID int64, provider string) (*models.AdConnection, error) {
	var conn models.AdConnection
	query := `SELECT id, user_id, provider, token_encrypted, expires_at, created_at, updated_at
	          FROM ad_connections WHERE user_id = $1 AND provider = $2`
	err := r.db.Get(&conn, query, userID, provider)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &conn, nil
}

func (r *adConnectionRepository) Delete(userID int64, provider string) error {
	_, err := r.db.Exec(`DELETE FROM ad_connections WHERE user_id = $1 AND provider = $2`, userID, provider)
	return err
}
