package dto

import (
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryParams defines query parameters for the fee summary report.
type SummaryParams struct {
	FeeType string  `form:"feeType" binding:"required,oneof=MONTHLY ANNUAL ADMISSION BOOKS FINE"`
	Period  int     `form:"period" binding:"min=0,max=12"`
	Year    int     `form:"year" binding:"required"`
	ClassID *string `form:"classID"`
}

// ClassSummaryResponse is the per-class breakdown within a summary.
type ClassSummaryResponse struct {
	ClassID        string          `json:"classID"`
	ClassName      string          `json:"className"`
	TotalDue       decimal.Decimal `json:"totalDue"`
	TotalCollected decimal.Decimal `json:"totalCollected"`
	Count          int             `json:"count"`
}

// SummaryResponse aggregates a period's ledger records.
type SummaryResponse struct {
	TotalDue       decimal.Decimal              `json:"totalDue"`
	TotalCollected decimal.Decimal              `json:"totalCollected"`
	TotalPending   decimal.Decimal              `json:"totalPending"`
	CountsByStatus map[domain.PaymentStatus]int `json:"countsByStatus"`
	ByClass        []ClassSummaryResponse       `json:"byClass"`
}

// ToSummaryResponse converts a domain.FeeSummary to its response DTO.
func ToSummaryResponse(s *domain.FeeSummary) SummaryResponse {
	byClass := make([]ClassSummaryResponse, len(s.ByClass))
	for i, c := range s.ByClass {
		byClass[i] = ClassSummaryResponse{
			ClassID:        c.ClassID,
			ClassName:      c.ClassName,
			TotalDue:       c.TotalDue,
			TotalCollected: c.TotalCollected,
			Count:          c.Count,
		}
	}
	return SummaryResponse{
		TotalDue:       s.TotalDue,
		TotalCollected: s.TotalCollected,
		TotalPending:   s.TotalPending,
		CountsByStatus: s.CountsByStatus,
		ByClass:        byClass,
	}
}

// DefaultersParams defines query parameters for the defaulters report.
type DefaultersParams struct {
	FeeType string  `form:"feeType" binding:"required,oneof=MONTHLY ANNUAL ADMISSION BOOKS FINE"`
	Period  int     `form:"period" binding:"min=0,max=12"`
	Year    int     `form:"year" binding:"required"`
	ClassID *string `form:"classID"`
	MinDue  *string `form:"minDue"` // Optional decimal floor on the outstanding balance
}

// DefaulterResponse is one student with an outstanding balance.
type DefaulterResponse struct {
	StudentID   string               `json:"studentID"`
	StudentName string               `json:"studentName"`
	RollNo      string               `json:"rollNo,omitempty"`
	ClassName   string               `json:"className"`
	Balance     decimal.Decimal      `json:"balance"`
	Status      domain.PaymentStatus `json:"status"`
}

// ExportParams defines query parameters for the ledger CSV export.
type ExportParams struct {
	FeeType string  `form:"feeType" binding:"required,oneof=MONTHLY ANNUAL ADMISSION BOOKS FINE"`
	Period  int     `form:"period" binding:"min=0,max=12"`
	Year    int     `form:"year" binding:"required"`
	ClassID *string `form:"classID"`
}
