package models

import "time"

// Ad-platform providers.
const (
	AdProviderMeta   = "meta"
	AdProviderTikTok = "tiktok"
)

// ValidAdProvider reports whether p is a known ad-platform provider.
func ValidAdProvider(p string) bool {
	return p == AdProviderMeta || p == AdProviderTikTok
}

// AdConnection is a row in the 'ad_connections' table: one user's OAuth
// connection to an ad platform. The access token is stored AES-GCM encrypted.
type AdConnection struct {
	ID             int64     `db:"id"`
	UserID         int64     `db:"user_id"`
	Provider       string    `db:"provider"`
	TokenEncrypted string    `db:"token_encrypted"`
	ExpiresAt      time.Time `db:"expires_at"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
