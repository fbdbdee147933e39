package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OtherIncome records non-fee income (donations, canteen rent, etc.).
// It is independent of the fee ledger and never participates in carry-forward.
type OtherIncome struct {
	IncomeID    string          `json:"incomeID"` // Primary Key (e.g., UUID)
	SchoolID    string          `json:"schoolID"` // FK -> schools.school_id
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	IncomeDate  time.Time       `json:"incomeDate"`
	AccountID   *string         `json:"accountID,omitempty"` // FK -> accounts.account_id
	Description string          `json:"description"`
	AuditFields
}
