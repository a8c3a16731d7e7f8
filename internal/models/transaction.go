package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions row.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	OrganizationID  string          `db:"organization_id"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	TransactionType string          `db:"transaction_type"`
	Category        string          `db:"category"`
	Description     string          `db:"description"`
	Date            time.Time       `db:"transaction_date"`
	Reference       string          `db:"reference"`
	CashBoxID       sql.NullString  `db:"cash_box_id"`
	BankAccountID   sql.NullString  `db:"bank_account_id"`
	CheckID         sql.NullString  `db:"check_id"`
	CreatedAt       time.Time       `db:"created_at"`
	CreatedBy       string          `db:"created_by"`
}
