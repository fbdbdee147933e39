package mapping

import (
	"database/sql"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shahmir3899/fee_ledger_app/internal/models"
)

// ToModelOtherIncome converts a domain OtherIncome to its persistence row.
func ToModelOtherIncome(d domain.OtherIncome) models.OtherIncome {
	m := models.OtherIncome{
		IncomeID:    d.IncomeID,
		SchoolID:    d.SchoolID,
		Category:    d.Category,
		Amount:      d.Amount,
		IncomeDate:  d.IncomeDate,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.AccountID != nil && *d.AccountID != "" {
		m.AccountID = sql.NullString{String: *d.AccountID, Valid: true}
	}
	return m
}

// ToDomainOtherIncome converts a persistence row back to the domain type.
func ToDomainOtherIncome(m models.OtherIncome) domain.OtherIncome {
	d := domain.OtherIncome{
		IncomeID:    m.IncomeID,
		SchoolID:    m.SchoolID,
		Category:    m.Category,
		Amount:      m.Amount,
		IncomeDate:  m.IncomeDate,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.AccountID.Valid {
		accountID := m.AccountID.String
		d.AccountID = &accountID
	}
	return d
}
