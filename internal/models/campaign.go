package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Campaign statuses.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
	CampaignStatusArchived  = "archived"
)

// ValidCampaignStatus reports whether s is a known campaign status.
func ValidCampaignStatus(s string) bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusCompleted, CampaignStatusArchived:
		return true
	}
	return false
}

// Campaign is a row in the 'campaigns' table.
type Campaign struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Brand     string         `db:"brand" json:"brand"`
	Platforms pq.StringArray `db:"platforms" json:"platforms"`
	Budget    float64        `db:"budget" json:"budget"`
	Spent     float64        `db:"spent" json:"spent"`
	StartDate time.Time      `db:"start_date" json:"start_date"`
	EndDate   time.Time      `db:"end_date" json:"end_date"`
	Status    string         `db:"status" json:"status"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// CampaignStats is the derived budget/schedule arithmetic shown on the
// campaign dashboard.
type CampaignStats struct {
	BudgetRemaining float64 `json:"budget_remaining"`
	PercentSpent    float64 `json:"percent_spent"`
	DaysRemaining   int     `json:"days_remaining"`
}
