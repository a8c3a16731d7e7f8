package models

import "database/sql"

// Account is the accounts row. ParentAccountID is NULL for top level accounts.
type Account struct {
	AccountID       string         `db:"account_id"`
	OrganizationID  string         `db:"organization_id"`
	Code            string         `db:"code"`
	Name            string         `db:"name"`
	AccountType     string         `db:"account_type"`
	SubType         string         `db:"sub_type"`
	ParentAccountID sql.NullString `db:"parent_account_id"`
	CurrencyCode    string         `db:"currency_code"`
	Description     string         `db:"description"`
	IsActive        bool           `db:"is_active"`
	AuditFields
}
