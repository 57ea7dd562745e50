package domain

// Business represents a registered business account in the domain.
type Business struct {
	BusinessID   string `json:"businessID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuditFields
}
