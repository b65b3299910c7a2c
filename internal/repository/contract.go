package repository

import (
	"database/sql"
	"errors"

	"agencyhub/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type ContractRepository interface {
	Create(contract *models.Contract) error
	GetByID(id uuid.UUID) (*models.Contract, error)
	ListByCampaign(campaignID uuid.UUID) ([]*models.Contract, error)
	UpdateStatus(id uuid.UUID, status string) error
	Delete(id uuid.UUID) error
	TotalValue() (float64, error)
}

type contractRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewContractRepository(db *sqlx.DB, logger *zap.Logger) ContractRepository {
	return &contractRepository{db: db, logger: logger}
}

func (r *contractRepository) Create(contract *models.Contract) error {
	if contract.ID == uuid.Nil {
		contract.ID = uuid.New()
	}
	query := `
		INSERT INTO contracts (id, campaign_id, creator_platform, creator_user_id, title, file_url, status, value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`
	return r.db.QueryRowx(query, contract.ID, contract.CampaignID, contract.CreatorPlatform,
		contract.CreatorUserID, contract.Title, contract.FileURL, contract.Status, contract.Value).
		Scan(&contract.CreatedAt, &contract.UpdatedAt)
}

func (r *contractRepository) GetByID(id uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.Get(&contract, `SELECT * FROM contracts WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) ListByCampaign(campaignID uuid.UUID) ([]*models.Contract, error) {
	var contracts []*models.Contract
	query := `SELECT * FROM contracts WHERE campaign_id = $1 ORDER BY created_at DESC`
	if err := r.db.Select(&contracts, query, campaignID); err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *contractRepository) UpdateStatus(id uuid.UUID, status string) error {
	_, err := r.db.Exec(`UPDATE contracts SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}

func (r *contractRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM contracts WHERE id = $1`, id)
	return err
}

func (r *contractRepository) TotalValue() (float64, error) {
	var total float64
	if err := r.db.Get(&total, `SELECT COALESCE(SUM(value), 0) FROM contracts`); err != nil {
		return 0, err
	}
	return total, nil
}
