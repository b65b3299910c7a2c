package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract statuses.
const (
	ContractStatusDraft  = "draft"
	ContractStatusSent   = "sent"
	ContractStatusSigned = "signed"
)

// ValidContractStatus reports whether s is a known contract status.
func ValidContractStatus(s string) bool {
	switch s {
	case ContractStatusDraft, ContractStatusSent, ContractStatusSigned:
		return true
	}
	return false
}

// Contract is a row in the 'contracts' table linking a campaign to a mirrored
// creator, with the signed document's location.
type Contract struct {
	ID              uuid.UUID `db:"id" json:"id"`
	CampaignID      uuid.UUID `db:"campaign_id" json:"campaign_id"`
	CreatorPlatform string    `db:"creator_platform" json:"creator_platform"`
	CreatorUserID   string    `db:"creator_user_id" json:"creator_user_id"`
	Title           string    `db:"title" json:"title"`
	FileURL         string    `db:"file_url" json:"file_url"`
	Status          string    `db:"status" json:"status"`
	Value           float64   `db:"value" json:"value"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
