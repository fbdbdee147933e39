package mapping

import (
	"database/sql"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shahmir3899/fee_ledger_app/internal/models"
)

// ToModelFeePayment converts a domain FeePayment to its persistence row.
func ToModelFeePayment(d domain.FeePayment) models.FeePayment {
	m := models.FeePayment{
		PaymentID:       d.PaymentID,
		SchoolID:        d.SchoolID,
		StudentID:       d.StudentID,
		ClassID:         d.ClassID,
		FeeType:         string(d.FeeType),
		Period:          d.Period,
		Year:            d.Year,
		AmountDue:       d.AmountDue,
		AmountPaid:      d.AmountPaid,
		PreviousBalance: d.PreviousBalance,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.Method != "" {
		m.Method = sql.NullString{String: string(d.Method), Valid: true}
	}
	if d.AccountID != nil && *d.AccountID != "" {
		m.AccountID = sql.NullString{String: *d.AccountID, Valid: true}
	}
	if d.ReceiptNo != "" {
		m.ReceiptNo = sql.NullString{String: d.ReceiptNo, Valid: true}
	}
	if d.PaymentDate != nil {
		m.PaymentDate = sql.NullTime{Time: *d.PaymentDate, Valid: true}
	}
	if d.Notes != "" {
		m.Notes = sql.NullString{String: d.Notes, Valid: true}
	}
	return m
}

// ToDomainFeePayment converts a persistence row back to the domain type.
func ToDomainFeePayment(m models.FeePayment) domain.FeePayment {
	d := domain.FeePayment{
		PaymentID:       m.PaymentID,
		SchoolID:        m.SchoolID,
		StudentID:       m.StudentID,
		ClassID:         m.ClassID,
		FeeType:         domain.FeeType(m.FeeType),
		Period:          m.Period,
		Year:            m.Year,
		AmountDue:       m.AmountDue,
		AmountPaid:      m.AmountPaid,
		PreviousBalance: m.PreviousBalance,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.Method.Valid {
		d.Method = domain.PaymentMethod(m.Method.String)
	}
	if m.AccountID.Valid {
		accountID := m.AccountID.String
		d.AccountID = &accountID
	}
	if m.ReceiptNo.Valid {
		d.ReceiptNo = m.ReceiptNo.String
	}
	if m.PaymentDate.Valid {
		paymentDate := m.PaymentDate.Time
		d.PaymentDate = &paymentDate
	}
	if m.Notes.Valid {
		d.Notes = m.Notes.String
	}
	return d
}

// ToDomainFeePayments converts a slice of persistence rows.
func ToDomainFeePayments(ms []models.FeePayment) []domain.FeePayment {
	out := make([]domain.FeePayment, len(ms))
	for i, m := range ms {
		out[i] = ToDomainFeePayment(m)
	}
	return out
}
