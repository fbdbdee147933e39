package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// FeePayment is the persistence row for a ledger record. The
// (school_id, student_id, fee_type, period, year) unique constraint enforced
// in the migration is what makes generation race-safe; the application level
// existence check is only an optimization.
type FeePayment struct {
	PaymentID       string          `db:"payment_id"`
	SchoolID        string          `db:"school_id"`
	StudentID       string          `db:"student_id"`
	ClassID         string          `db:"class_id"`
	FeeType         string          `db:"fee_type"`
	Period          int             `db:"period"`
	Year            int             `db:"year"`
	AmountDue       decimal.Decimal `db:"amount_due"`
	AmountPaid      decimal.Decimal `db:"amount_paid"`
	PreviousBalance decimal.Decimal `db:"previous_balance"`
	Method          sql.NullString  `db:"method"`
	AccountID       sql.NullString  `db:"account_id"`
	ReceiptNo       sql.NullString  `db:"receipt_no"`
	PaymentDate     sql.NullTime    `db:"payment_date"`
	Notes           sql.NullString  `db:"notes"`
	AuditFields
}
