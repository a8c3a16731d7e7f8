package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDirection says which side of the ledger an automatic entry line hits.
type EntryDirection string

const (
	Debit  EntryDirection = "DEBIT"
	Credit EntryDirection = "CREDIT"
)

// JournalEntry is one line of a journal transaction. Lines sharing an EntryNumber
// within an organization form one logical manual entry.
type JournalEntry struct {
	EntryID        string          `json:"entryID"`
	OrganizationID string          `json:"organizationID"`
	EntryNumber    string          `json:"entryNumber"`
	AccountID      string          `json:"accountID"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	CurrencyCode   Currency        `json:"currencyCode"`
	Description    string          `json:"description"`
	EntryDate      time.Time       `json:"entryDate"`
	IsAutomatic    bool            `json:"isAutomatic"`
	SourceType     string          `json:"sourceType,omitempty"`
	SourceID       string          `json:"sourceID,omitempty"`
	AuditFields
}

// JournalEntryFilter narrows ListEntries.
type JournalEntryFilter struct {
	AccountID   string
	EntryNumber string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}
