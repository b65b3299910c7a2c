package repository

import (
	"database/sql"
	"errors"

	"agencyhub/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type AuthRepository interface {
	CreateUser(user *models.User) error
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
	ListUsers() ([]*models.User, error)
	CountUsers() (int, error)
}

type authRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAuthRepository(db *sqlx.DB, logger *zap.Logger) AuthRepository {
	return &authRepository{db: db, logger: logger}
}

func (r *authRepository) CreateUser(user *models.User) error {
	query := `INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	return r.db.QueryRowx(query, user.Username, user.PasswordHash, user.Role).Scan(&user.ID, &user.CreatedAt)
}

func (r *authRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, password_hash, role, created_at FROM users WHERE username = $1`
	err := r.db.Get(&user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *authRepository) GetUserByID(id int64) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, password_hash, role, created_at FROM users WHERE id = $1`
	err := r.db.Get(&user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *authRepository) ListUsers() ([]*models.User, error) {
	var users []*models.User
	query := `SELECT id, username, password_hash, role, created_at FROM users ORDER BY id`
	if err := r.db.Select(&users, query); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *authRepository) CountUsers() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users`
	if err := r.db.Get(&count, query); err != nil {
		return 0, err
	}
	return count, nil
}
