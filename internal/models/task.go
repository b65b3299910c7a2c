package models

import (
	"time"

	"github.com/google/uuid"
)

// Kanban stages for campaign tasks.
const (
	TaskStageBacklog    = "backlog"
	TaskStageInProgress = "in_progress"
	TaskStageReview     = "review"
	TaskStageDone       = "done"
)

// ValidTaskStage reports whether s is a known kanban stage.
func ValidTaskStage(s string) bool {
	switch s {
	case TaskStageBacklog, TaskStageInProgress, TaskStageReview, TaskStageDone:
		return true
	}
	return false
}

// Task is a row in the 'tasks' table.
type Task struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	CampaignID uuid.UUID  `db:"campaign_id" json:"campaign_id"`
	Title      string     `db:"title" json:"title"`
	Stage      string     `db:"stage" json:"stage"`
	Assignee   string     `db:"assignee" json:"assignee"`
	DueDate    *time.Time `db:"due_date" json:"due_date,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}
