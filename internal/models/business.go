package models

import "time"

// AuditFields holds persistence timestamps shared by all tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

// Business is the database representation of a business account.
type Business struct {
	BusinessID   string `db:"business_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	AuditFields
}
