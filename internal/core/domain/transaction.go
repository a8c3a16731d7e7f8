package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a treasury movement.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// Categories used by system generated movements.
const (
	CategoryInitialBalance = "INITIAL_BALANCE"
	CategoryCheckClearing  = "CHECK_CLEARING"
)

// Transaction is the immutable audit record of one cash or bank movement.
// Amount is always positive; Type carries the sign.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	OrganizationID  string          `json:"organizationID"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    Currency        `json:"currencyCode"`
	TransactionType TransactionType `json:"type"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Date            time.Time       `json:"date"`
	Reference       string          `json:"reference"`
	CashBoxID       string          `json:"cashBoxID,omitempty"`
	BankAccountID   string          `json:"bankAccountID,omitempty"`
	CheckID         string          `json:"checkID,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// SignedAmount is the balance delta this movement applies to its instrument.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == TransactionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Instrument returns the cash box or bank account the movement belongs to.
func (t Transaction) Instrument() Instrument {
	if t.CashBoxID != "" {
		return Instrument{ID: t.CashBoxID, Type: CashBoxInstrument}
	}
	return Instrument{ID: t.BankAccountID, Type: BankAccountInstrument}
}
