package dto

import (
	"time"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFeePaymentRequest defines the data for manually creating a single
// ledger record outside of bulk generation. The same unique-key rules apply.
type CreateFeePaymentRequest struct {
	StudentID string          `json:"studentID" binding:"required"`
	FeeType   domain.FeeType  `json:"feeType" binding:"required,oneof=MONTHLY ANNUAL ADMISSION BOOKS FINE"`
	Period    int             `json:"period" binding:"min=0,max=12"`
	Year      int             `json:"year" binding:"required"`
	AmountDue decimal.Decimal `json:"amountDue" binding:"required"`
	Notes     string          `json:"notes"`
}

// RecordPaymentRequest defines the data for recording a payment against a
// ledger record. AmountPaid is the new total paid for the record. An account
// is required whenever the paid amount is positive.
type RecordPaymentRequest struct {
	AmountPaid  decimal.Decimal      `json:"amountPaid" binding:"required"`
	Method      domain.PaymentMethod `json:"method" binding:"omitempty,oneof=CASH BANK ONLINE"`
	AccountID   *string              `json:"accountID"`
	ReceiptNo   string               `json:"receiptNo"`
	PaymentDate *time.Time           `json:"paymentDate"`
	Notes       *string              `json:"notes"`
}

// BulkMarkPaidRequest marks an explicit list of records as paid in full.
type BulkMarkPaidRequest struct {
	PaymentIDs  []string             `json:"paymentIDs" binding:"required,min=1"`
	Method      domain.PaymentMethod `json:"method" binding:"required,oneof=CASH BANK ONLINE"`
	AccountID   string               `json:"accountID" binding:"required"`
	PaymentDate *time.Time           `json:"paymentDate"`
}

// BulkDeleteRequest deletes an explicit list of records.
type BulkDeleteRequest struct {
	PaymentIDs []string `json:"paymentIDs" binding:"required,min=1"`
}

// BulkOperationResponse reports per-id outcomes of a best-effort batch.
// A partial failure does not roll back the records that succeeded.
type BulkOperationResponse struct {
	Succeeded int      `json:"succeeded"`
	NotFound  int      `json:"notFound"`
	Failed    int      `json:"failed"`
	FailedIDs []string `json:"failedIDs,omitempty"`
}

// FeePaymentResponse defines the data returned for a ledger record. Status,
// balance and the derived display fields are computed by the classifier at
// read time, never stored.
type FeePaymentResponse struct {
	PaymentID       string               `json:"paymentID"`
	StudentID       string               `json:"studentID"`
	ClassID         string               `json:"classID"`
	FeeType         domain.FeeType       `json:"feeType"`
	Period          int                  `json:"period"`
	Year            int                  `json:"year"`
	AmountDue       decimal.Decimal      `json:"amountDue"`
	AmountPaid      decimal.Decimal      `json:"amountPaid"`
	PreviousBalance decimal.Decimal      `json:"previousBalance"`
	MonthlyFee      decimal.Decimal      `json:"monthlyFee"`
	TotalPayable    decimal.Decimal      `json:"totalPayable"`
	Balance         decimal.Decimal      `json:"balance"`
	Status          domain.PaymentStatus `json:"status"`
	Method          domain.PaymentMethod `json:"method,omitempty"`
	AccountID       *string              `json:"accountID,omitempty"`
	ReceiptNo       string               `json:"receiptNo,omitempty"`
	PaymentDate     *time.Time           `json:"paymentDate,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
}

// ToFeePaymentResponse converts a domain.FeePayment to its response DTO.
func ToFeePaymentResponse(p *domain.FeePayment) FeePaymentResponse {
	status, balance := domain.Classify(p.AmountDue, p.AmountPaid)
	return FeePaymentResponse{
		PaymentID:       p.PaymentID,
		StudentID:       p.StudentID,
		ClassID:         p.ClassID,
		FeeType:         p.FeeType,
		Period:          p.Period,
		Year:            p.Year,
		AmountDue:       p.AmountDue,
		AmountPaid:      p.AmountPaid,
		PreviousBalance: p.PreviousBalance,
		MonthlyFee:      p.MonthlyFee(),
		TotalPayable:    p.TotalPayable(),
		Balance:         balance,
		Status:          status,
		Method:          p.Method,
		AccountID:       p.AccountID,
		ReceiptNo:       p.ReceiptNo,
		PaymentDate:     p.PaymentDate,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt,
		LastUpdatedAt:   p.LastUpdatedAt,
	}
}

// ToFeePaymentResponses converts a slice of domain.FeePayment.
func ToFeePaymentResponses(payments []domain.FeePayment) []FeePaymentResponse {
	res := make([]FeePaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToFeePaymentResponse(&payments[i])
	}
	return res
}

// ListPaymentsParams defines query parameters for listing ledger records.
type ListPaymentsParams struct {
	FeeType   *string `form:"feeType" binding:"omitempty,oneof=MONTHLY ANNUAL ADMISSION BOOKS FINE"`
	Period    *int    `form:"period" binding:"omitempty,min=0,max=12"`
	Year      *int    `form:"year"`
	ClassID   *string `form:"classID"`
	StudentID *string `form:"studentID"`
	Limit     int     `form:"limit,default=50"`
	NextToken *string `form:"nextToken"`
}

// ListPaymentsResponse wraps a page of ledger records.
type ListPaymentsResponse struct {
	Payments  []FeePaymentResponse `json:"payments"`
	NextToken *string              `json:"nextToken,omitempty"`
}
