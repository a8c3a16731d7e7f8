package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CheckStatus is the lifecycle state of a third-party check.
type CheckStatus string

const (
	CheckIssued   CheckStatus = "ISSUED"   // written by the organization, not yet collected
	CheckPending  CheckStatus = "PENDING"  // received, awaiting clearing
	CheckCleared  CheckStatus = "CLEARED"  // terminal, ledger movement applied once
	CheckRejected CheckStatus = "REJECTED" // bounced or voided, no ledger movement
)

// Check is a third-party check tied to exactly one cash box or bank account.
type Check struct {
	CheckID        string          `json:"checkID"`
	OrganizationID string          `json:"organizationID"`
	CheckNumber    string          `json:"checkNumber"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencyCode   Currency        `json:"currencyCode"`
	IssuerName     string          `json:"issuerName"`
	IssuerBank     string          `json:"issuerBank"`
	IssueDate      time.Time       `json:"issueDate"`
	DueDate        time.Time       `json:"dueDate"`
	Status         CheckStatus     `json:"status"`
	IsReceived     bool            `json:"isReceived"`
	CashBoxID      string          `json:"cashBoxID,omitempty"`
	BankAccountID  string          `json:"bankAccountID,omitempty"`
	ReceivedFrom   string          `json:"receivedFrom,omitempty"`
	IssuedTo       string          `json:"issuedTo,omitempty"`
	Description    string          `json:"description,omitempty"`
	ClearedAt      *time.Time      `json:"clearedAt,omitempty"`
	AuditFields
}

// InitialCheckStatus returns PENDING for received checks and ISSUED otherwise.
func InitialCheckStatus(isReceived bool) CheckStatus {
	if isReceived {
		return CheckPending
	}
	return CheckIssued
}

// Instrument returns the cash box or bank account the check will move money through.
func (c Check) Instrument() Instrument {
	if c.CashBoxID != "" {
		return Instrument{ID: c.CashBoxID, Type: CashBoxInstrument}
	}
	return Instrument{ID: c.BankAccountID, Type: BankAccountInstrument}
}

// CanClear returns nil when the check may transition to CLEARED.
func (c Check) CanClear() error {
	switch c.Status {
	case CheckIssued, CheckPending:
		return nil
	case CheckCleared:
		return ErrCheckCleared
	default:
		return fmt.Errorf("check %s cannot be cleared from status %s", c.CheckNumber, c.Status)
	}
}

// ClearingTransaction builds the treasury movement recorded when the check clears.
// Received checks bring money in; issued checks pay it out.
func (c Check) ClearingTransaction(id string, at time.Time, userID string) Transaction {
	txnType := TransactionIncome
	if !c.IsReceived {
		txnType = TransactionExpense
	}
	inst := c.Instrument()
	txn := Transaction{
		TransactionID:   id,
		OrganizationID:  c.OrganizationID,
		Amount:          c.Amount,
		CurrencyCode:    c.CurrencyCode,
		TransactionType: txnType,
		Category:        CategoryCheckClearing,
		Description:     fmt.Sprintf("Check %s cleared", c.CheckNumber),
		Date:            at,
		Reference:       c.CheckNumber,
		CheckID:         c.CheckID,
		CreatedAt:       at,
		CreatedBy:       userID,
	}
	if inst.Type == CashBoxInstrument {
		txn.CashBoxID = inst.ID
	} else {
		txn.BankAccountID = inst.ID
	}
	return txn
}

// CheckFilter narrows ListChecks.
type CheckFilter struct {
	Status    *CheckStatus
	DueBefore *time.Time
}

// CheckFailure records one check a batch sweep could not clear.
type CheckFailure struct {
	CheckID     string `json:"checkID"`
	CheckNumber string `json:"checkNumber"`
	Error       string `json:"error"`
}

// DueCheckReport is the partial-success result of a due-date sweep.
type DueCheckReport struct {
	AsOf      time.Time      `json:"asOf"`
	Processed []Check        `json:"processed"`
	Failed    []CheckFailure `json:"failed"`
}
