package mapping

import (
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shahmir3899/fee_ledger_app/internal/models"
)

// ToModelSchool converts a domain School to its persistence row.
func ToModelSchool(d domain.School) models.School {
	return models.School{
		SchoolID:    d.SchoolID,
		Name:        d.Name,
		Address:     d.Address,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSchool converts a persistence row back to the domain type.
func ToDomainSchool(m models.School) domain.School {
	return domain.School{
		SchoolID:    m.SchoolID,
		Name:        m.Name,
		Address:     m.Address,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
