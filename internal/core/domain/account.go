package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is a ledger account in an organization's chart of accounts.
type Account struct {
	AccountID       string      `json:"accountID"`
	OrganizationID  string      `json:"organizationID"`
	Code            string      `json:"code"` // unique per organization, sortable
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	SubType         string      `json:"subType"`
	ParentAccountID string      `json:"parentAccountID"` // empty when top level
	CurrencyCode    Currency    `json:"currencyCode"`
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"`
	AuditFields

	// Populated only when listing with children.
	Parent   *Account  `json:"parent,omitempty"`
	Children []Account `json:"children,omitempty"`
}

// AccountFilter narrows ListAccounts.
type AccountFilter struct {
	AccountType     *AccountType
	IsActive        *bool
	IncludeChildren bool
}
