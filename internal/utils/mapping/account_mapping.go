package mapping

import (
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shahmir3899/fee_ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to its persistence row.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		SchoolID:    d.SchoolID,
		Name:        d.Name,
		Kind:        string(d.Kind),
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a persistence row back to the domain type.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		SchoolID:    m.SchoolID,
		Name:        m.Name,
		Kind:        domain.AccountKind(m.Kind),
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
