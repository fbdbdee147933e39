package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ClassSummary is the per-class rollup row in a fee summary report.
type ClassSummary struct {
	ClassID        string          `json:"classID"`
	ClassName      string          `json:"className"`
	TotalDue       decimal.Decimal `json:"totalDue"`
	TotalCollected decimal.Decimal `json:"totalCollected"`
	Count          int             `json:"count"`
}

// FeeSummary rolls a set of ledger records up into dashboard totals.
type FeeSummary struct {
	TotalDue       decimal.Decimal       `json:"totalDue"`
	TotalCollected decimal.Decimal       `json:"totalCollected"`
	TotalPending   decimal.Decimal       `json:"totalPending"`
	CountsByStatus map[PaymentStatus]int `json:"countsByStatus"`
	ByClass        []ClassSummary        `json:"byClass"`
}

// Summarize aggregates ledger records for reporting. Totals are straight sums
// of the signed amounts; only TotalPending is floored at zero, so advance
// credits on individual records never produce a negative pending total.
// classNames maps class IDs to display names for the per-class grouping.
func Summarize(records []FeePayment, classNames map[string]string) FeeSummary {
	summary := FeeSummary{
		TotalDue:       decimal.Zero,
		TotalCollected: decimal.Zero,
		CountsByStatus: make(map[PaymentStatus]int),
	}

	type classKey struct {
		id   string
		name string
	}
	groups := make(map[string]*ClassSummary)

	for _, rec := range records {
		summary.TotalDue = summary.TotalDue.Add(rec.AmountDue)
		summary.TotalCollected = summary.TotalCollected.Add(rec.AmountPaid)
		summary.CountsByStatus[rec.Status()]++

		key := classKey{id: rec.ClassID, name: classNames[rec.ClassID]}
		groupID := key.id
		if groupID == "" {
			groupID = key.name
		}
		if groupID == "" {
			groupID = "unknown"
		}
		group, ok := groups[groupID]
		if !ok {
			name := key.name
			if name == "" {
				name = "unknown"
			}
			group = &ClassSummary{
				ClassID:        key.id,
				ClassName:      name,
				TotalDue:       decimal.Zero,
				TotalCollected: decimal.Zero,
			}
			groups[groupID] = group
		}
		group.TotalDue = group.TotalDue.Add(rec.AmountDue)
		group.TotalCollected = group.TotalCollected.Add(rec.AmountPaid)
		group.Count++
	}

	summary.TotalPending = summary.TotalDue.Sub(summary.TotalCollected)
	if summary.TotalPending.IsNegative() {
		summary.TotalPending = decimal.Zero
	}

	summary.ByClass = make([]ClassSummary, 0, len(groups))
	for _, group := range groups {
		summary.ByClass = append(summary.ByClass, *group)
	}
	sort.Slice(summary.ByClass, func(i, j int) bool {
		return strings.ToLower(summary.ByClass[i].ClassName) < strings.ToLower(summary.ByClass[j].ClassName)
	})

	return summary
}

// ExportRow is the flat record shape handed to reporting collaborators
// (CSV/PDF). Derived fields are precomputed so exporters never re-implement
// classification.
type ExportRow struct {
	StudentName     string          `json:"studentName"`
	RollNo          string          `json:"rollNo"`
	ClassName       string          `json:"className"`
	FeeType         FeeType         `json:"feeType"`
	Period          int             `json:"period"`
	Year            int             `json:"year"`
	MonthlyFee      decimal.Decimal `json:"monthlyFee"` // amount_due - previous_balance
	PreviousBalance decimal.Decimal `json:"previousBalance"`
	AmountDue       decimal.Decimal `json:"amountDue"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	Balance         decimal.Decimal `json:"balance"`
	Status          PaymentStatus   `json:"status"`
}
