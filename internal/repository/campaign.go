package repository

import (
	"database/sql"
	"errors"

	"agencyhub/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type CampaignRepository interface {
	Create(campaign *models.Campaign) error
	GetByID(id uuid.UUID) (*models.Campaign, error)
	List(status string) ([]*models.Campaign, error)
	Update(campaign *models.Campaign) error
	Delete(id uuid.UUID) error
	CountByStatus() (map[string]int, error)
}

type campaignRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCampaignRepository(db *sqlx.DB, logger *zap.Logger) CampaignRepository {
	return &campaignRepository{db: db, logger: logger}
}

func (r *campaignRepository) Create(campaign *models.Campaign) error {
	if campaign.ID == uuid.Nil {
		campaign.ID = uuid.New()
	}
	query := `
		INSERT INTO campaigns (id, name, brand, platforms, budget, spent, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`
	return r.db.QueryRowx(query, campaign.ID, campaign.Name, campaign.Brand, campaign.Platforms,
		campaign.Budget, campaign.Spent, campaign.StartDate, campaign.EndDate, campaign.Status).
		Scan(&campaign.CreatedAt, &campaign.UpdatedAt)
}

func (r *campaignRepository) GetByID(id uuid.UUID) (*models.Campaign, error) {
	var campaign models.Campaign
	query := `SELECT * FROM campaigns WHERE id = $1`
	err := r.db.Get(&campaign, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepository) List(status string) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	var err error
	if status != "" {
		err = r.db.Select(&campaigns, `SELECT * FROM campaigns WHERE status = $1 ORDER BY created_at DESC`, status)
	} else {
		err = r.db.Select(&campaigns, `SELECT * FROM campaigns ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *campaignRepository) Update(campaign *models.Campaign) error {
	query := `
		UPDATE campaigns
		SET name = $1, brand = $2, platforms = $3, budget = $4, spent = $5,
		    start_date = $6, end_date = $7, status = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at`
	return r.db.QueryRowx(query, campaign.Name, campaign.Brand, campaign.Platforms,
		campaign.Budget, campaign.Spent, campaign.StartDate, campaign.EndDate,
		campaign.Status, campaign.ID).Scan(&campaign.UpdatedAt)
}

func (r *campaignRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM campaigns WHERE id = $1`, id)
	return err
}

func (r *campaignRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.db.Queryx(`SELECT status, COUNT(*) AS n FROM campaigns GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
