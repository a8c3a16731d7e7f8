package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashBox is the cash_boxes row.
type CashBox struct {
	CashBoxID      string `db:"cash_box_id"`
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	CurrencyCode   string `db:"currency_code"`
	Description    string `db:"description"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}

// BankAccount is the bank_accounts row.
type BankAccount struct {
	BankAccountID  string `db:"bank_account_id"`
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	BankName       string `db:"bank_name"`
	AccountNumber  string `db:"account_number"`
	CurrencyCode   string `db:"currency_code"`
	Description    string `db:"description"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}

// AccountBalance is the account_balances row keyed by (account_id, account_type, currency_code).
type AccountBalance struct {
	AccountID    string          `db:"account_id"`
	AccountType  string          `db:"account_type"`
	CurrencyCode string          `db:"currency_code"`
	Balance      decimal.Decimal `db:"balance"`
	UpdatedAt    time.Time       `db:"updated_at"`
}
