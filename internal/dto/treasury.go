package dto

import (
	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCashBoxRequest defines a new cash box. A positive InitialBalance is booked as income.
type CreateCashBoxRequest struct {
	Name           string          `json:"name" binding:"required,max=255"`
	CurrencyCode   domain.Currency `json:"currencyCode" binding:"omitempty,currency"`
	Description    string          `json:"description"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// CreateBankAccountRequest defines a new bank account. A positive InitialBalance is booked as income.
type CreateBankAccountRequest struct {
	Name           string          `json:"name" binding:"required,max=255"`
	BankName       string          `json:"bankName" binding:"max=255"`
	AccountNumber  string          `json:"accountNumber" binding:"max=64"`
	CurrencyCode   domain.Currency `json:"currencyCode" binding:"omitempty,currency"`
	Description    string          `json:"description"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// ListInstrumentsParams defines query parameters for cash box and bank account lists.
type ListInstrumentsParams struct {
	IncludeInactive bool `form:"includeInactive"`
}

// RecordMovementRequest is a manual treasury income or expense.
type RecordMovementRequest struct {
	CashBoxID       string                 `json:"cashBoxID" binding:"required_without=BankAccountID,excluded_with=BankAccountID,omitempty,uuid"`
	BankAccountID   string                 `json:"bankAccountID" binding:"required_without=CashBoxID,excluded_with=CashBoxID,omitempty,uuid"`
	TransactionType domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount          decimal.Decimal        `json:"amount"`
	CurrencyCode    domain.Currency        `json:"currencyCode" binding:"omitempty,currency"`
	Category        string                 `json:"category" binding:"max=64"`
	Description     string                 `json:"description"`
	Date            Date                   `json:"date"`
	Reference       string                 `json:"reference" binding:"max=128"`
}

// Instrument returns the instrument the movement targets.
func (r RecordMovementRequest) Instrument() domain.Instrument {
	if r.CashBoxID != "" {
		return domain.Instrument{ID: r.CashBoxID, Type: domain.CashBoxInstrument}
	}
	return domain.Instrument{ID: r.BankAccountID, Type: domain.BankAccountInstrument}
}

// ListMovementsParams defines query parameters for listing treasury transactions.
type ListMovementsParams struct {
	CashBoxID     string `form:"cashBoxID" binding:"omitempty,uuid"`
	BankAccountID string `form:"bankAccountID" binding:"omitempty,uuid"`
	Limit         string `form:"limit"`
	NextToken     string `form:"nextToken"`
}

// Instrument returns the filtered instrument, or nil for all movements.
func (p ListMovementsParams) Instrument() *domain.Instrument {
	switch {
	case p.CashBoxID != "":
		return &domain.Instrument{ID: p.CashBoxID, Type: domain.CashBoxInstrument}
	case p.BankAccountID != "":
		return &domain.Instrument{ID: p.BankAccountID, Type: domain.BankAccountInstrument}
	}
	return nil
}

// ListMovementsResponse is a page of treasury transactions.
type ListMovementsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	NextToken    *string              `json:"nextToken,omitempty"`
}
