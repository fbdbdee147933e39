package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// OtherIncome is the persistence row for non-fee income entries.
type OtherIncome struct {
	IncomeID    string          `db:"income_id"`
	SchoolID    string          `db:"school_id"`
	Category    string          `db:"category"`
	Amount      decimal.Decimal `db:"amount"`
	IncomeDate  time.Time       `db:"income_date"`
	AccountID   sql.NullString  `db:"account_id"`
	Description string          `db:"description"`
	AuditFields
}
