package models

// Account is the persistence row for a receiving bucket (cash/bank).
type Account struct {
	AccountID   string `db:"account_id"`
	SchoolID    string `db:"school_id"`
	Name        string `db:"name"`
	Kind        string `db:"kind"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
