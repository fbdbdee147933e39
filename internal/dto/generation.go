package dto

import (
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GenerationRequest defines the parameters for previewing or committing a
// bulk fee generation run. Period is the billing month for MONTHLY and must
// be 0 for the one-time fee types.
type GenerationRequest struct {
	FeeType domain.FeeType `json:"feeType" binding:"required,oneof=MONTHLY ANNUAL ADMISSION BOOKS FINE"`
	Period  int            `json:"period" binding:"min=0,max=12"`
	Year    int            `json:"year" binding:"required"`
	ClassID *string        `json:"classID"`
}

// GenerationPreviewStudent is one row of the preview listing.
type GenerationPreviewStudent struct {
	StudentID   string          `json:"studentID"`
	StudentName string          `json:"studentName"`
	Amount      decimal.Decimal `json:"amount"`
}

// GenerationPreviewResponse reports what a generation run would do without
// persisting anything. The student listing is capped; HasMore signals the cut.
type GenerationPreviewResponse struct {
	WillCreate     int                        `json:"willCreate"`
	AlreadyExist   int                        `json:"alreadyExist"`
	NoFeeStructure int                        `json:"noFeeStructure"`
	TotalAmount    decimal.Decimal            `json:"totalAmount"`
	Students       []GenerationPreviewStudent `json:"students"`
	HasMore        bool                       `json:"hasMore"`
}

// GenerationResultResponse reports the outcome of a committed generation run.
// Counts are always returned, including on partial success.
type GenerationResultResponse struct {
	Created        int `json:"created"`
	Skipped        int `json:"skipped"`
	NoFeeStructure int `json:"noFeeStructure"`
}
