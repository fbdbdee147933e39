package dto

import (
	"time"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOtherIncomeRequest defines the data for recording a non-fee income entry.
type CreateOtherIncomeRequest struct {
	Category    string          `json:"category" binding:"required,min=1,max=100"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	IncomeDate  time.Time       `json:"incomeDate" binding:"required"`
	AccountID   *string         `json:"accountID"`
	Description string          `json:"description"`
}

// OtherIncomeResponse defines the data returned for a non-fee income entry.
type OtherIncomeResponse struct {
	IncomeID    string          `json:"incomeID"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	IncomeDate  time.Time       `json:"incomeDate"`
	AccountID   *string         `json:"accountID,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ToOtherIncomeResponse converts a domain.OtherIncome to its response DTO.
func ToOtherIncomeResponse(o *domain.OtherIncome) OtherIncomeResponse {
	return OtherIncomeResponse{
		IncomeID:    o.IncomeID,
		Category:    o.Category,
		Amount:      o.Amount,
		IncomeDate:  o.IncomeDate,
		AccountID:   o.AccountID,
		Description: o.Description,
		CreatedAt:   o.CreatedAt,
		CreatedBy:   o.CreatedBy,
	}
}

// ToListOtherIncomeResponse converts a slice of domain.OtherIncome.
func ToListOtherIncomeResponse(incomes []domain.OtherIncome) []OtherIncomeResponse {
	res := make([]OtherIncomeResponse, len(incomes))
	for i := range incomes {
		res[i] = ToOtherIncomeResponse(&incomes[i])
	}
	return res
}

// ListOtherIncomeParams defines query parameters for listing income entries.
type ListOtherIncomeParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}
