package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one journal_entries row.
type JournalEntry struct {
	EntryID        string          `db:"entry_id"`
	OrganizationID string          `db:"organization_id"`
	EntryNumber    string          `db:"entry_number"`
	AccountID      string          `db:"account_id"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	CurrencyCode   string          `db:"currency_code"`
	Description    string          `db:"description"`
	EntryDate      time.Time       `db:"entry_date"`
	IsAutomatic    bool            `db:"is_automatic"`
	SourceType     sql.NullString  `db:"source_type"`
	SourceID       sql.NullString  `db:"source_id"`
	AuditFields
}
