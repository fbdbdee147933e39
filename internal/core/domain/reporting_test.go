package domain_test

import (
	"testing"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	records := []domain.FeePayment{
		{ClassID: "class-b", AmountDue: dec("1000"), AmountPaid: dec("1000")},
		{ClassID: "class-b", AmountDue: dec("1000"), AmountPaid: dec("600")},
		{ClassID: "class-a", AmountDue: dec("1500"), AmountPaid: dec("0")},
	}
	classNames := map[string]string{"class-a": "Grade 1", "class-b": "grade 10"}

	summary := domain.Summarize(records, classNames)

	assert.True(t, dec("3500").Equal(summary.TotalDue))
	assert.True(t, dec("1600").Equal(summary.TotalCollected))
	assert.True(t, dec("1900").Equal(summary.TotalPending))
	assert.Equal(t, 1, summary.CountsByStatus[domain.StatusPaid])
	assert.Equal(t, 1, summary.CountsByStatus[domain.StatusPartial])
	assert.Equal(t, 1, summary.CountsByStatus[domain.StatusUnpaid])

	require.Len(t, summary.ByClass, 2)
	// Case-insensitive ascending class name order.
	assert.Equal(t, "Grade 1", summary.ByClass[0].ClassName)
	assert.Equal(t, "grade 10", summary.ByClass[1].ClassName)
	assert.Equal(t, 2, summary.ByClass[1].Count)
	assert.True(t, dec("2000").Equal(summary.ByClass[1].TotalDue))
}

// Advance credits may push individual balances negative; the aggregate pending
// figure must still floor at zero.
func TestSummarize_PendingFlooredAtZero(t *testing.T) {
	records := []domain.FeePayment{
		{ClassID: "class-a", AmountDue: dec("1000"), AmountPaid: dec("1500")},
		{ClassID: "class-a", AmountDue: dec("200"), AmountPaid: dec("200")},
	}

	summary := domain.Summarize(records, map[string]string{"class-a": "Grade 1"})

	assert.True(t, summary.TotalPending.IsZero())
	assert.Equal(t, 1, summary.CountsByStatus[domain.StatusAdvance])
}

func TestSummarize_UnknownClassBucket(t *testing.T) {
	records := []domain.FeePayment{
		{ClassID: "", AmountDue: dec("500"), AmountPaid: dec("0")},
	}

	summary := domain.Summarize(records, nil)

	require.Len(t, summary.ByClass, 1)
	assert.Equal(t, "unknown", summary.ByClass[0].ClassName)
}

func TestSummarize_Empty(t *testing.T) {
	summary := domain.Summarize(nil, nil)
	assert.True(t, summary.TotalDue.IsZero())
	assert.True(t, summary.TotalPending.IsZero())
	assert.Empty(t, summary.ByClass)
}
