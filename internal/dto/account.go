package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finken/finken_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new chart of accounts entry.
type CreateAccountRequest struct {
	AccountNumber  string                 `json:"accountNumber" validate:"required"`
	AccountName    string                 `json:"accountName" validate:"required"`
	Description    string                 `json:"description"`
	NormalSide     domain.EntrySide       `json:"normalSide" validate:"required,oneof=DEBIT CREDIT"`
	Category       domain.AccountCategory `json:"category" validate:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	Subcategory    string                 `json:"subcategory"`
	InitialBalance decimal.Decimal        `json:"initialBalance"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	AccountName *string `json:"accountName"`
	Description *string `json:"description"`
	Subcategory *string `json:"subcategory"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID      string                 `json:"accountID"`
	AccountNumber  string                 `json:"accountNumber"`
	AccountName    string                 `json:"accountName"`
	Description    string                 `json:"description"`
	NormalSide     domain.EntrySide       `json:"normalSide"`
	Category       domain.AccountCategory `json:"category"`
	Subcategory    string                 `json:"subcategory"`
	InitialBalance decimal.Decimal        `json:"initialBalance"`
	Balance        decimal.Decimal        `json:"balance"`
	IsActive       bool                   `json:"isActive"`
	CreatedAt      time.Time              `json:"createdAt"`
	CreatedBy      string                 `json:"createdBy"`
	LastUpdatedAt  time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy  string                 `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		AccountNumber:  acc.AccountNumber,
		AccountName:    acc.AccountName,
		Description:    acc.Description,
		NormalSide:     acc.NormalSide,
		Category:       acc.Category,
		Subcategory:    acc.Subcategory,
		InitialBalance: acc.InitialBalance,
		Balance:        acc.Balance,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
