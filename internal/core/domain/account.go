package domain

// AccountKind distinguishes the receiving buckets payments can land in.
type AccountKind string

const (
	AccountCash AccountKind = "CASH"
	AccountBank AccountKind = "BANK"
)

// Account represents a receiving ledger bucket (cash box or bank account)
// referenced by fee payments and other income. It carries no fee logic.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary Key (e.g., UUID)
	SchoolID    string      `json:"schoolID"`  // FK -> schools.school_id (NON-NULL)
	Name        string      `json:"name"`      // User-defined name, e.g., "Meezan Bank"
	Kind        AccountKind `json:"kind"`      // CASH or BANK
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	AuditFields             // Embed CreatedAt, CreatedBy, etc.
}
