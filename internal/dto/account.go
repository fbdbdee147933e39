package dto

import (
	"github.com/shahmir3899/fee_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a collection account.
type CreateAccountRequest struct {
	Name        string             `json:"name" binding:"required,min=1,max=100"`
	Kind        domain.AccountKind `json:"kind" binding:"required,oneof=CASH BANK"`
	Description string             `json:"description"`
}

// UpdateAccountRequest defines the data for updating an account. Only provided
// fields are changed.
type UpdateAccountRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	Name        string             `json:"name"`
	Kind        domain.AccountKind `json:"kind"`
	Description string             `json:"description,omitempty"`
	IsActive    bool               `json:"isActive"`
}

// AccountCollectionResponse pairs an account with the amount collected into it
// over a reporting window.
type AccountCollectionResponse struct {
	Account   AccountResponse `json:"account"`
	Collected decimal.Decimal `json:"collected"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Name:        a.Name,
		Kind:        a.Kind,
		Description: a.Description,
		IsActive:    a.IsActive,
	}
}

// ToListAccountResponse converts a slice of domain.Account.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
