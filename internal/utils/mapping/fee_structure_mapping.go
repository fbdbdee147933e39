package mapping

import (
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shahmir3899/fee_ledger_app/internal/models"
)

// ToModelFeeStructure converts a domain FeeStructure to its persistence row.
func ToModelFeeStructure(d domain.FeeStructure) models.FeeStructure {
	return models.FeeStructure{
		StructureID:   d.StructureID,
		SchoolID:      d.SchoolID,
		ClassID:       d.ClassID,
		StudentID:     d.StudentID,
		FeeType:       string(d.FeeType),
		MonthlyAmount: d.MonthlyAmount,
		EffectiveFrom: d.EffectiveFrom,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFeeStructure converts a persistence row back to the domain type.
func ToDomainFeeStructure(m models.FeeStructure) domain.FeeStructure {
	return domain.FeeStructure{
		StructureID:   m.StructureID,
		SchoolID:      m.SchoolID,
		ClassID:       m.ClassID,
		StudentID:     m.StudentID,
		FeeType:       domain.FeeType(m.FeeType),
		MonthlyAmount: m.MonthlyAmount,
		EffectiveFrom: m.EffectiveFrom,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFeeStructures converts a slice of persistence rows.
func ToDomainFeeStructures(ms []models.FeeStructure) []domain.FeeStructure {
	out := make([]domain.FeeStructure, len(ms))
	for i, m := range ms {
		out[i] = ToDomainFeeStructure(m)
	}
	return out
}
