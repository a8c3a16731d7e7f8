package dto

import (
	"time"

	"github.com/SscSPs/buildledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code            string             `json:"code" binding:"required,max=32"`
	Name            string             `json:"name" binding:"required,max=255"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	SubType         string             `json:"subType" binding:"max=64"`
	ParentAccountID *string            `json:"parentAccountID"`                           // Optional
	CurrencyCode    domain.Currency    `json:"currencyCode" binding:"omitempty,currency"` // Defaults to the organization currency
	Description     string             `json:"description"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	SubType     *string `json:"subType" binding:"omitempty,max=64"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	AccountType     string `form:"type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	IsActive        *bool  `form:"isActive"`
	IncludeChildren bool   `form:"includeChildren"`
}

// Filter converts the query parameters into a domain filter.
func (p ListAccountsParams) Filter() domain.AccountFilter {
	f := domain.AccountFilter{IsActive: p.IsActive, IncludeChildren: p.IncludeChildren}
	if p.AccountType != "" {
		t := domain.AccountType(p.AccountType)
		f.AccountType = &t
	}
	return f
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	SubType         string             `json:"subType"`
	ParentAccountID string             `json:"parentAccountID,omitempty"`
	CurrencyCode    domain.Currency    `json:"currencyCode"`
	Description     string             `json:"description"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`

	Parent   *AccountResponse  `json:"parent,omitempty"`
	Children []AccountResponse `json:"children,omitempty"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	res := AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		SubType:         acc.SubType,
		ParentAccountID: acc.ParentAccountID,
		CurrencyCode:    acc.CurrencyCode,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
	if acc.Parent != nil {
		parent := ToAccountResponse(acc.Parent)
		res.Parent = &parent
	}
	if len(acc.Children) > 0 {
		res.Children = ToListAccountResponse(acc.Children)
	}
	return res
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
