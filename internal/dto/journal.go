package dto

import (
	"time"

	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a manual entry. Exactly one of Debit and Credit is positive.
type JournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required,uuid"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateManualEntryRequest defines a balanced manual journal entry.
type CreateManualEntryRequest struct {
	EntryNumber  string               `json:"entryNumber" binding:"max=64"` // Generated when empty
	EntryDate    Date                 `json:"entryDate"`
	CurrencyCode domain.Currency      `json:"currencyCode" binding:"omitempty,currency"`
	Description  string               `json:"description"`
	Lines        []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// CreateAutomaticEntryRequest defines a single-line entry generated from another module.
type CreateAutomaticEntryRequest struct {
	SourceType   string                `json:"sourceType" binding:"required,max=64"`
	SourceID     string                `json:"sourceID" binding:"required,max=128"`
	AccountID    string                `json:"accountID" binding:"required,uuid"`
	Amount       decimal.Decimal       `json:"amount"`
	Direction    domain.EntryDirection `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	CurrencyCode domain.Currency       `json:"currencyCode" binding:"omitempty,currency"`
	EntryDate    Date                  `json:"entryDate"`
	Description  string                `json:"description"`
}

// ListJournalEntriesParams defines query parameters for listing entry lines.
type ListJournalEntriesParams struct {
	AccountID   string `form:"accountID" binding:"omitempty,uuid"`
	EntryNumber string `form:"entryNumber"`
	From        string `form:"from"`
	To          string `form:"to"`
	Limit       string `form:"limit"`
	NextToken   string `form:"nextToken"`
}

// JournalEntryResponse defines the data returned for a journal entry line.
type JournalEntryResponse struct {
	EntryID      string          `json:"entryID"`
	EntryNumber  string          `json:"entryNumber"`
	AccountID    string          `json:"accountID"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CurrencyCode domain.Currency `json:"currencyCode"`
	Description  string          `json:"description"`
	EntryDate    Date            `json:"entryDate"`
	IsAutomatic  bool            `json:"isAutomatic"`
	SourceType   string          `json:"sourceType,omitempty"`
	SourceID     string          `json:"sourceID,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ListJournalEntriesResponse is a page of entry lines.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:      e.EntryID,
		EntryNumber:  e.EntryNumber,
		AccountID:    e.AccountID,
		Debit:        e.Debit,
		Credit:       e.Credit,
		CurrencyCode: e.CurrencyCode,
		Description:  e.Description,
		EntryDate:    Date{e.EntryDate},
		IsAutomatic:  e.IsAutomatic,
		SourceType:   e.SourceType,
		SourceID:     e.SourceID,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

// ToJournalEntryListResponse converts a slice of lines to DTOs
func ToJournalEntryListResponse(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
