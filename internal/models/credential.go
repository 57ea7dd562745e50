package models

import "time"

// Credential is the database representation of a stored OAuth credential
// set. (business_id, provider) is the primary key.
type Credential struct {
	BusinessID    string    `db:"business_id"`
	Provider      string    `db:"provider"`
	AccountID     string    `db:"account_id"`
	AccessToken   string    `db:"access_token"`
	RefreshToken  string    `db:"refresh_token"`
	ConnectedAt   time.Time `db:"connected_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
