package domain_test

import (
	"testing"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		amountDue   string
		amountPaid  string
		wantStatus  domain.PaymentStatus
		wantBalance string
	}{
		{
			name:        "unpaid full amount",
			amountDue:   "1000",
			amountPaid:  "0",
			wantStatus:  domain.StatusUnpaid,
			wantBalance: "1000",
		},
		{
			name:        "partial payment",
			amountDue:   "1000",
			amountPaid:  "600",
			wantStatus:  domain.StatusPartial,
			wantBalance: "400",
		},
		{
			name:        "paid exactly",
			amountDue:   "1400",
			amountPaid:  "1400",
			wantStatus:  domain.StatusPaid,
			wantBalance: "0",
		},
		{
			name:        "overpaid becomes advance",
			amountDue:   "1000",
			amountPaid:  "1200",
			wantStatus:  domain.StatusAdvance,
			wantBalance: "-200",
		},
		{
			name:        "zero due zero paid is degenerate paid",
			amountDue:   "0",
			amountPaid:  "0",
			wantStatus:  domain.StatusPaid,
			wantBalance: "0",
		},
		{
			name:        "negative due from carried credit is advance",
			amountDue:   "-200",
			amountPaid:  "0",
			wantStatus:  domain.StatusAdvance,
			wantBalance: "-200",
		},
		{
			name:        "fractional partial has no drift",
			amountDue:   "999.99",
			amountPaid:  "333.33",
			wantStatus:  domain.StatusPartial,
			wantBalance: "666.66",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, balance := domain.Classify(dec(tt.amountDue), dec(tt.amountPaid))
			assert.Equal(t, tt.wantStatus, status)
			assert.True(t, dec(tt.wantBalance).Equal(balance), "balance: want %s got %s", tt.wantBalance, balance)
		})
	}
}

// Classification totality: every non-negative (due, paid) pair yields exactly
// one status, and the balance sign agrees with the status.
func TestClassify_SignMatchesStatus(t *testing.T) {
	values := []string{"0", "0.01", "500", "999.99", "1000", "1500"}
	for _, due := range values {
		for _, paid := range values {
			status, balance := domain.Classify(dec(due), dec(paid))
			switch status {
			case domain.StatusAdvance:
				assert.True(t, balance.IsNegative(), "due=%s paid=%s", due, paid)
			case domain.StatusPaid:
				assert.True(t, balance.IsZero(), "due=%s paid=%s", due, paid)
			case domain.StatusUnpaid, domain.StatusPartial:
				assert.True(t, balance.IsPositive(), "due=%s paid=%s", due, paid)
			default:
				t.Fatalf("unexpected status %s for due=%s paid=%s", status, due, paid)
			}
		}
	}
}

func TestCarryForward(t *testing.T) {
	tests := []struct {
		name  string
		prior *domain.FeePayment
		want  string
	}{
		{
			name:  "no prior record",
			prior: nil,
			want:  "0",
		},
		{
			name: "unpaid remainder carries as debt",
			prior: &domain.FeePayment{
				FeeType:    domain.FeeMonthly,
				AmountDue:  dec("1000"),
				AmountPaid: dec("600"),
			},
			want: "400",
		},
		{
			name: "overpayment carries as credit",
			prior: &domain.FeePayment{
				FeeType:    domain.FeeMonthly,
				AmountDue:  dec("1000"),
				AmountPaid: dec("1200"),
			},
			want: "-200",
		},
		{
			name: "fully paid prior carries nothing",
			prior: &domain.FeePayment{
				FeeType:    domain.FeeMonthly,
				AmountDue:  dec("1400"),
				AmountPaid: dec("1400"),
			},
			want: "0",
		},
		{
			name: "non-monthly fee types never carry forward",
			prior: &domain.FeePayment{
				FeeType:    domain.FeeAnnual,
				AmountDue:  dec("5000"),
				AmountPaid: dec("0"),
			},
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.CarryForward(tt.prior)
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestPriorPeriod(t *testing.T) {
	month, year := domain.PriorPeriod(2, 2025)
	assert.Equal(t, 1, month)
	assert.Equal(t, 2025, year)

	// Year rollover: January looks at December of the previous year.
	month, year = domain.PriorPeriod(1, 2025)
	assert.Equal(t, 12, month)
	assert.Equal(t, 2024, year)
}

func TestFeePayment_TotalPayable(t *testing.T) {
	p := domain.FeePayment{AmountDue: dec("-200")}
	assert.True(t, p.TotalPayable().IsZero(), "negative due must display as zero")

	p = domain.FeePayment{AmountDue: dec("1400")}
	assert.True(t, dec("1400").Equal(p.TotalPayable()))
}

func TestFeePayment_MonthlyFee(t *testing.T) {
	p := domain.FeePayment{
		AmountDue:       dec("1400"),
		PreviousBalance: dec("400"),
	}
	assert.True(t, dec("1000").Equal(p.MonthlyFee()))
}
