package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstrumentType distinguishes the treasury instruments a balance row belongs to.
type InstrumentType string

const (
	CashBoxInstrument     InstrumentType = "CASH_BOX"
	BankAccountInstrument InstrumentType = "BANK_ACCOUNT"
)

// CashBox is a physical cash register or petty cash fund.
type CashBox struct {
	CashBoxID      string   `json:"cashBoxID"`
	OrganizationID string   `json:"organizationID"`
	Name           string   `json:"name"`
	CurrencyCode   Currency `json:"currencyCode"`
	Description    string   `json:"description"`
	IsActive       bool     `json:"isActive"`
	AuditFields
}

// BankAccount is an account held at a bank.
type BankAccount struct {
	BankAccountID  string   `json:"bankAccountID"`
	OrganizationID string   `json:"organizationID"`
	Name           string   `json:"name"`
	BankName       string   `json:"bankName"`
	AccountNumber  string   `json:"accountNumber"`
	CurrencyCode   Currency `json:"currencyCode"`
	Description    string   `json:"description"`
	IsActive       bool     `json:"isActive"`
	AuditFields
}

// Instrument identifies one cash box or bank account.
type Instrument struct {
	ID   string
	Type InstrumentType
}

// AccountBalance is the running balance of one instrument in one currency.
type AccountBalance struct {
	AccountID    string          `json:"accountID"`
	AccountType  InstrumentType  `json:"accountType"`
	CurrencyCode Currency        `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// InstrumentBalance is the read model for one instrument in GetBalances.
type InstrumentBalance struct {
	InstrumentID   string                       `json:"instrumentID"`
	InstrumentType InstrumentType               `json:"instrumentType"`
	Name           string                       `json:"name"`
	CurrencyCode   Currency                     `json:"currencyCode"`
	Balances       map[Currency]decimal.Decimal `json:"balances"`
	TotalBalance   decimal.Decimal              `json:"totalBalance"`
}

// ConsolidatedBalances aggregates every active instrument of an organization.
type ConsolidatedBalances struct {
	OrganizationID string                       `json:"organizationID"`
	CashBoxes      []InstrumentBalance          `json:"cashBoxes"`
	BankAccounts   []InstrumentBalance          `json:"bankAccounts"`
	Totals         map[Currency]decimal.Decimal `json:"totals"`
	GeneratedAt    time.Time                    `json:"generatedAt"`
}
