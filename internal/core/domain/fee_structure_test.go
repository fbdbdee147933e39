package domain_test

import (
	"testing"
	"time"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveFee_OverridePrecedence(t *testing.T) {
	classDefault := domain.FeeStructure{
		StructureID:   "fs-class",
		ClassID:       strPtr("class-1"),
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: dec("1000"),
		EffectiveFrom: date(2024, time.April, 1),
		IsActive:      true,
	}
	override := domain.FeeStructure{
		StructureID:   "fs-student",
		StudentID:     strPtr("student-1"),
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: dec("750"),
		EffectiveFrom: date(2024, time.April, 1),
		IsActive:      true,
	}
	asOf := date(2025, time.January, 1)

	// The override wins regardless of slice order.
	for _, structures := range [][]domain.FeeStructure{
		{classDefault, override},
		{override, classDefault},
	} {
		resolved := domain.ResolveFee(structures, "student-1", "class-1", domain.FeeMonthly, asOf)
		require.NotNil(t, resolved)
		assert.Equal(t, domain.SourceStudentOverride, resolved.Source)
		assert.True(t, dec("750").Equal(resolved.Amount))
	}

	// A different student in the same class falls back to the class default.
	resolved := domain.ResolveFee([]domain.FeeStructure{classDefault, override}, "student-2", "class-1", domain.FeeMonthly, asOf)
	require.NotNil(t, resolved)
	assert.Equal(t, domain.SourceClassDefault, resolved.Source)
	assert.True(t, dec("1000").Equal(resolved.Amount))
}

func TestResolveFee_MostRecentEffectiveWins(t *testing.T) {
	older := domain.FeeStructure{
		StructureID:   "fs-old",
		ClassID:       strPtr("class-1"),
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: dec("900"),
		EffectiveFrom: date(2023, time.April, 1),
		IsActive:      true,
	}
	newer := domain.FeeStructure{
		StructureID:   "fs-new",
		ClassID:       strPtr("class-1"),
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: dec("1100"),
		EffectiveFrom: date(2024, time.April, 1),
		IsActive:      true,
	}

	resolved := domain.ResolveFee([]domain.FeeStructure{older, newer}, "student-1", "class-1", domain.FeeMonthly, date(2024, time.June, 1))
	require.NotNil(t, resolved)
	assert.True(t, dec("1100").Equal(resolved.Amount))

	// Before the newer structure takes effect, the older one still applies.
	resolved = domain.ResolveFee([]domain.FeeStructure{older, newer}, "student-1", "class-1", domain.FeeMonthly, date(2024, time.January, 1))
	require.NotNil(t, resolved)
	assert.True(t, dec("900").Equal(resolved.Amount))
}

func TestResolveFee_NothingApplicable(t *testing.T) {
	inactive := domain.FeeStructure{
		StructureID:   "fs-inactive",
		ClassID:       strPtr("class-1"),
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: dec("1000"),
		EffectiveFrom: date(2024, time.April, 1),
		IsActive:      false,
	}
	future := domain.FeeStructure{
		StructureID:   "fs-future",
		ClassID:       strPtr("class-1"),
		FeeType:       domain.FeeMonthly,
		MonthlyAmount: dec("1200"),
		EffectiveFrom: date(2026, time.April, 1),
		IsActive:      true,
	}
	wrongType := domain.FeeStructure{
		StructureID:   "fs-annual",
		ClassID:       strPtr("class-1"),
		FeeType:       domain.FeeAnnual,
		MonthlyAmount: dec("5000"),
		EffectiveFrom: date(2024, time.April, 1),
		IsActive:      true,
	}

	resolved := domain.ResolveFee([]domain.FeeStructure{inactive, future, wrongType}, "student-1", "class-1", domain.FeeMonthly, date(2025, time.January, 1))
	assert.Nil(t, resolved)
}

func TestResolveFee_NonMonthlyTypesUseSamePrecedence(t *testing.T) {
	classBooks := domain.FeeStructure{
		StructureID:   "fs-books-class",
		ClassID:       strPtr("class-1"),
		FeeType:       domain.FeeBooks,
		MonthlyAmount: dec("3000"),
		EffectiveFrom: date(2024, time.April, 1),
		IsActive:      true,
	}
	studentBooks := domain.FeeStructure{
		StructureID:   "fs-books-student",
		StudentID:     strPtr("student-1"),
		FeeType:       domain.FeeBooks,
		MonthlyAmount: dec("2500"),
		EffectiveFrom: date(2024, time.April, 1),
		IsActive:      true,
	}

	resolved := domain.ResolveFee([]domain.FeeStructure{classBooks, studentBooks}, "student-1", "class-1", domain.FeeBooks, date(2025, time.January, 1))
	require.NotNil(t, resolved)
	assert.Equal(t, domain.SourceStudentOverride, resolved.Source)
	assert.True(t, dec("2500").Equal(resolved.Amount))
}
