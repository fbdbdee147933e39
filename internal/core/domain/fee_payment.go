package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from amount due and amount paid. It is never stored
// as an independent source of truth.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "PAID"
	StatusPartial PaymentStatus = "PARTIAL"
	StatusUnpaid  PaymentStatus = "UNPAID"
	StatusAdvance PaymentStatus = "ADVANCE"
)

// PaymentMethod enumerates how a payment was received.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "CASH"
	MethodBank   PaymentMethod = "BANK"
	MethodOnline PaymentMethod = "ONLINE"
)

// FeePayment is a single period's fee obligation and payment state for one
// student (a ledger record). AmountDue is stored signed: a carried-forward
// credit can push it negative. Display paths clamp via TotalPayable.
type FeePayment struct {
	PaymentID string  `json:"paymentID"` // Primary Key (e.g., UUID)
	SchoolID  string  `json:"schoolID"`  // FK -> schools.school_id
	StudentID string  `json:"studentID"` // FK -> students.student_id
	ClassID   string  `json:"classID"`   // Denormalized at creation time
	FeeType   FeeType `json:"feeType"`
	Period    int     `json:"period"` // Month 1-12, or 0 for non-monthly fee types
	Year      int     `json:"year"`

	AmountDue       decimal.Decimal `json:"amountDue"`       // Includes any carried-forward balance; signed
	AmountPaid      decimal.Decimal `json:"amountPaid"`      // >= 0
	PreviousBalance decimal.Decimal `json:"previousBalance"` // Signed: positive = carried debt, negative = carried credit

	Method      PaymentMethod `json:"method,omitempty"`
	AccountID   *string       `json:"accountID,omitempty"` // FK -> accounts.account_id
	ReceiptNo   string        `json:"receiptNo,omitempty"`
	PaymentDate *time.Time    `json:"paymentDate,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	AuditFields
}

// Classify computes the derived status and balance for a ledger record.
// Balance sign convention: positive = owed, negative = credit.
// Over-payment takes precedence over exact-paid detection; a zero due with
// zero paid is the degenerate "nothing owed" case and classifies as PAID.
func Classify(amountDue, amountPaid decimal.Decimal) (PaymentStatus, decimal.Decimal) {
	balance := amountDue.Sub(amountPaid)
	switch {
	case balance.IsNegative():
		return StatusAdvance, balance
	case balance.IsZero():
		return StatusPaid, balance
	case amountPaid.IsZero():
		return StatusUnpaid, balance
	default:
		return StatusPartial, balance
	}
}

// Balance returns amount due minus amount paid (positive = owed, negative = credit).
func (p FeePayment) Balance() decimal.Decimal {
	return p.AmountDue.Sub(p.AmountPaid)
}

// Status returns the derived payment status.
func (p FeePayment) Status() PaymentStatus {
	status, _ := Classify(p.AmountDue, p.AmountPaid)
	return status
}

// TotalPayable is the displayable amount due, floored at zero. The signed
// AmountDue is preserved internally for carry-forward accuracy.
func (p FeePayment) TotalPayable() decimal.Decimal {
	if p.AmountDue.IsNegative() {
		return decimal.Zero
	}
	return p.AmountDue
}

// MonthlyFee is the base charge for the period, before carry-forward.
func (p FeePayment) MonthlyFee() decimal.Decimal {
	return p.AmountDue.Sub(p.PreviousBalance)
}

// CarryForward computes the previous_balance to merge into the next period's
// amount due. Only MONTHLY records carry forward; a missing prior record
// contributes zero. The result is signed: positive if the student owed money,
// negative if the student overpaid and holds a credit.
func CarryForward(prior *FeePayment) decimal.Decimal {
	if prior == nil || !prior.FeeType.IsMonthly() {
		return decimal.Zero
	}
	return prior.Balance()
}

// PriorPeriod returns the (month, year) immediately preceding the given
// billing month, rolling January back to December of the previous year.
func PriorPeriod(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}
