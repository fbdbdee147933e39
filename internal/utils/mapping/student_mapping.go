package mapping

import (
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shahmir3899/fee_ledger_app/internal/models"
)

// ToDomainStudent converts a persistence row to the domain type.
func ToDomainStudent(m models.Student) domain.Student {
	return domain.Student{
		StudentID:   m.StudentID,
		SchoolID:    m.SchoolID,
		ClassID:     m.ClassID,
		Name:        m.Name,
		RollNo:      m.RollNo,
		Status:      domain.EnrollmentStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelStudent converts a domain Student to its persistence row.
func ToModelStudent(d domain.Student) models.Student {
	return models.Student{
		StudentID:   d.StudentID,
		SchoolID:    d.SchoolID,
		ClassID:     d.ClassID,
		Name:        d.Name,
		RollNo:      d.RollNo,
		Status:      string(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSchoolClass converts a persistence row to the domain type.
func ToDomainSchoolClass(m models.SchoolClass) domain.SchoolClass {
	return domain.SchoolClass{
		ClassID:     m.ClassID,
		SchoolID:    m.SchoolID,
		Name:        m.Name,
		Section:     m.Section,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSchoolClass converts a domain SchoolClass to its persistence row.
func ToModelSchoolClass(d domain.SchoolClass) models.SchoolClass {
	return models.SchoolClass{
		ClassID:     d.ClassID,
		SchoolID:    d.SchoolID,
		Name:        d.Name,
		Section:     d.Section,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}
