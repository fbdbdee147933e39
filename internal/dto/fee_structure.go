package dto

import (
	"time"

	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFeeStructureRequest defines the data needed to create a fee structure.
// Exactly one of classID / studentID must be set; the service rejects both or neither.
type CreateFeeStructureRequest struct {
	ClassID       *string         `json:"classID"`
	StudentID     *string         `json:"studentID"`
	FeeType       domain.FeeType  `json:"feeType" binding:"required,oneof=MONTHLY ANNUAL ADMISSION BOOKS FINE"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount" binding:"required"`
	EffectiveFrom time.Time       `json:"effectiveFrom" binding:"required"`
}

// FeeStructureResponse defines the data returned for a fee structure.
type FeeStructureResponse struct {
	StructureID   string          `json:"structureID"`
	ClassID       *string         `json:"classID,omitempty"`
	StudentID     *string         `json:"studentID,omitempty"`
	FeeType       domain.FeeType  `json:"feeType"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
	EffectiveFrom time.Time       `json:"effectiveFrom"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ToFeeStructureResponse converts a domain.FeeStructure to its response DTO.
func ToFeeStructureResponse(fs *domain.FeeStructure) FeeStructureResponse {
	return FeeStructureResponse{
		StructureID:   fs.StructureID,
		ClassID:       fs.ClassID,
		StudentID:     fs.StudentID,
		FeeType:       fs.FeeType,
		MonthlyAmount: fs.MonthlyAmount,
		EffectiveFrom: fs.EffectiveFrom,
		IsActive:      fs.IsActive,
		CreatedAt:     fs.CreatedAt,
		CreatedBy:     fs.CreatedBy,
		LastUpdatedAt: fs.LastUpdatedAt,
		LastUpdatedBy: fs.LastUpdatedBy,
	}
}

// ToListFeeStructureResponse converts a slice of domain.FeeStructure.
func ToListFeeStructureResponse(structures []domain.FeeStructure) []FeeStructureResponse {
	res := make([]FeeStructureResponse, len(structures))
	for i, fs := range structures {
		res[i] = ToFeeStructureResponse(&fs)
	}
	return res
}

// ResolveFeeParams defines query parameters for resolving a student's fee.
type ResolveFeeParams struct {
	FeeType string `form:"feeType" binding:"required,oneof=MONTHLY ANNUAL ADMISSION BOOKS FINE"`
	AsOf    string `form:"asOf"` // Optional, YYYY-MM-DD; defaults to today
}

// ResolveFeeResponse reports the resolved amount and which rule produced it.
// Amount and Source are null when the student has no applicable fee structure.
type ResolveFeeResponse struct {
	Amount *decimal.Decimal `json:"amount"`
	Source *string          `json:"source"`
}
