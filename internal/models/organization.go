package models

// Organization is the organizations row.
type Organization struct {
	OrganizationID    string `db:"organization_id"`
	Name              string `db:"name"`
	LocalCurrency     string `db:"local_currency"`
	AccountingEnabled bool   `db:"accounting_enabled"`
	IsActive          bool   `db:"is_active"`
	AuditFields
}
