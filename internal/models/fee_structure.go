package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeStructure is the persistence row for fee structure rules.
// ClassID and StudentID are nullable; exactly one of them is set.
type FeeStructure struct {
	StructureID   string          `db:"structure_id"`
	SchoolID      string          `db:"school_id"`
	ClassID       *string         `db:"class_id"`
	StudentID     *string         `db:"student_id"`
	FeeType       string          `db:"fee_type"`
	MonthlyAmount decimal.Decimal `db:"monthly_amount"`
	EffectiveFrom time.Time       `db:"effective_from"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
