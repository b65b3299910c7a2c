package repository

import (
	"database/sql"
	"errors"

	"agencyhub/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type TaskRepository interface {
	Create(task *models.Task) error
	GetByID(id uuid.UUID) (*models.Task, error)
	ListByCampaign(campaignID uuid.UUID) ([]*models.Task, error)
	UpdateStage(id uuid.UUID, stage string) error
	Update(task *models.Task) error
	Delete(id uuid.UUID) error
	CountByStage() (map[string]int, error)
}

type taskRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTaskRepository(db *sqlx.DB, logger *zap.Logger) TaskRepository {
	return &taskRepository{db: db, logger: logger}
}

func (r *taskRepository) Create(task *models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	query := `
		INSERT INTO tasks (id, campaign_id, title, stage, assignee, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`
	return r.db.QueryRowx(query, task.ID, task.CampaignID, task.Title, task.Stage,
		task.Assignee, task.DueDate).Scan(&task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) GetByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.Get(&task, `SELECT * FROM tasks WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) ListByCampaign(campaignID uuid.UUID) ([]*models.Task, error) {
	var tasks []*models.Task
	query := `SELECT * FROM tasks WHERE campaign_id = $1 ORDER BY created_at`
	if err := r.db.Select(&tasks, query, campaignID); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) UpdateStage(id uuid.UUID, stage string) error {
	_, err := r.db.Exec(`UPDATE tasks SET stage = $1, updated_at = NOW() WHERE id = $2`, stage, id)
	return err
}

func (r *taskRepository) Update(task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, stage = $2, assignee = $3, due_date = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`
	return r.db.QueryRowx(query, task.Title, task.Stage, task.Assignee, task.DueDate, task.ID).
		Scan(&task.UpdatedAt)
}

func (r *taskRepository) Delete(id uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *taskRepository) CountByStage() (map[string]int, error) {
	rows, err := r.db.Queryx(`SELECT stage, COUNT(*) AS n FROM tasks GROUP BY stage`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var stage string
		var n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, err
		}
		counts[stage] = n
	}
	return counts, rows.Err()
}
