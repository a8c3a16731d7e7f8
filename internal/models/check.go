package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Check is the checks row. Exactly one of CashBoxID and BankAccountID is set.
type Check struct {
	CheckID        string          `db:"check_id"`
	OrganizationID string          `db:"organization_id"`
	CheckNumber    string          `db:"check_number"`
	Amount         decimal.Decimal `db:"amount"`
	CurrencyCode   string          `db:"currency_code"`
	IssuerName     string          `db:"issuer_name"`
	IssuerBank     string          `db:"issuer_bank"`
	IssueDate      time.Time       `db:"issue_date"`
	DueDate        time.Time       `db:"due_date"`
	Status         string          `db:"status"`
	IsReceived     bool            `db:"is_received"`
	CashBoxID      sql.NullString  `db:"cash_box_id"`
	BankAccountID  sql.NullString  `db:"bank_account_id"`
	ReceivedFrom   string          `db:"received_from"`
	IssuedTo       string          `db:"issued_to"`
	Description    string          `db:"description"`
	ClearedAt      sql.NullTime    `db:"cleared_at"`
	AuditFields
}
