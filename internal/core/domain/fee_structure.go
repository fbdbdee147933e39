package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeType enumerates the kinds of charges a school can levy.
type FeeType string

const (
	FeeMonthly   FeeType = "MONTHLY"
	FeeAnnual    FeeType = "ANNUAL"
	FeeAdmission FeeType = "ADMISSION"
	FeeBooks     FeeType = "BOOKS"
	FeeFine      FeeType = "FINE"
)

// IsMonthly reports whether this fee type bills per calendar month.
// Only monthly fees participate in balance carry-forward.
func (ft FeeType) IsMonthly() bool {
	return ft == FeeMonthly
}

// IsValid reports whether the fee type is one of the known values.
func (ft FeeType) IsValid() bool {
	switch ft {
	case FeeMonthly, FeeAnnual, FeeAdmission, FeeBooks, FeeFine:
		return true
	}
	return false
}

// FeeSource identifies which rule produced a resolved fee amount.
type FeeSource string

const (
	SourceStudentOverride FeeSource = "student_override"
	SourceClassDefault    FeeSource = "class_default"
)

// FeeStructure is a rule stating what a student owes for a given fee type.
// Exactly one of ClassID / StudentID is set: class-level default or
// student-level override. Amount changes supersede (deactivate) the previous
// structure rather than mutating it, so old entries remain for audit.
type FeeStructure struct {
	StructureID   string          `json:"structureID"` // Primary Key (e.g., UUID)
	SchoolID      string          `json:"schoolID"`    // FK -> schools.school_id
	ClassID       *string         `json:"classID,omitempty"`
	StudentID     *string         `json:"studentID,omitempty"`
	FeeType       FeeType         `json:"feeType"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"` // Amount per period (per month for MONTHLY, one-off otherwise)
	EffectiveFrom time.Time       `json:"effectiveFrom"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// IsStudentOverride reports whether this structure is a student-specific override.
func (fs FeeStructure) IsStudentOverride() bool {
	return fs.StudentID != nil && *fs.StudentID != ""
}

// AppliesAt reports whether the structure is active and in effect at the given date.
func (fs FeeStructure) AppliesAt(asOf time.Time) bool {
	return fs.IsActive && !fs.EffectiveFrom.After(asOf)
}

// ResolvedFee is the outcome of fee structure resolution for one student.
type ResolvedFee struct {
	Amount decimal.Decimal `json:"amount"`
	Source FeeSource       `json:"source"`
}

// ResolveFee picks the applicable fee amount for a student from a set of
// candidate structures. A student-level override that is active and effective
// at asOf always wins over a class-level default; within a scope the most
// recent EffectiveFrom wins. Returns nil if nothing applies — the caller must
// treat the student as having no fee structure.
func ResolveFee(structures []FeeStructure, studentID, classID string, feeType FeeType, asOf time.Time) *ResolvedFee {
	var bestOverride, bestDefault *FeeStructure
	for i := range structures {
		fs := &structures[i]
		if fs.FeeType != feeType || !fs.AppliesAt(asOf) {
			continue
		}
		switch {
		case fs.IsStudentOverride():
			if *fs.StudentID != studentID {
				continue
			}
			if bestOverride == nil || fs.EffectiveFrom.After(bestOverride.EffectiveFrom) {
				bestOverride = fs
			}
		case fs.ClassID != nil && *fs.ClassID == classID:
			if bestDefault == nil || fs.EffectiveFrom.After(bestDefault.EffectiveFrom) {
				bestDefault = fs
			}
		}
	}

	if bestOverride != nil {
		return &ResolvedFee{Amount: bestOverride.MonthlyAmount, Source: SourceStudentOverride}
	}
	if bestDefault != nil {
		return &ResolvedFee{Amount: bestDefault.MonthlyAmount, Source: SourceClassDefault}
	}
	return nil
}
