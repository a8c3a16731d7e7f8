package dto

import (
	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCheckRequest registers a received or issued check against one instrument.
type CreateCheckRequest struct {
	CheckNumber   string          `json:"checkNumber" binding:"required,max=64"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  domain.Currency `json:"currencyCode" binding:"omitempty,currency"`
	IssuerName    string          `json:"issuerName" binding:"max=255"`
	IssuerBank    string          `json:"issuerBank" binding:"max=255"`
	IssueDate     Date            `json:"issueDate"`
	DueDate       Date            `json:"dueDate"`
	IsReceived    bool            `json:"isReceived"`
	CashBoxID     string          `json:"cashBoxID" binding:"required_without=BankAccountID,excluded_with=BankAccountID,omitempty,uuid"`
	BankAccountID string          `json:"bankAccountID" binding:"required_without=CashBoxID,excluded_with=CashBoxID,omitempty,uuid"`
	ReceivedFrom  string          `json:"receivedFrom"`
	IssuedTo      string          `json:"issuedTo"`
	Description   string          `json:"description"`
}

// ListChecksParams defines query parameters for listing checks.
type ListChecksParams struct {
	Status    string `form:"status" binding:"omitempty,oneof=ISSUED PENDING CLEARED REJECTED"`
	DueBefore string `form:"dueBefore"`
}

// ProcessDueChecksRequest optionally overrides the sweep date.
type ProcessDueChecksRequest struct {
	AsOf Date `json:"asOf"`
}

// ProcessDueChecksResponse summarizes a due sweep.
type ProcessDueChecksResponse struct {
	Count     int                   `json:"count"`
	AsOf      Date                  `json:"asOf"`
	Processed []domain.Check        `json:"processed"`
	Failed    []domain.CheckFailure `json:"failed"`
	Error     string                `json:"error,omitempty"` // Set when the sweep stopped early
}

// ToProcessDueChecksResponse converts a sweep report to its DTO.
func ToProcessDueChecksResponse(r *domain.DueCheckReport) ProcessDueChecksResponse {
	processed := r.Processed
	if processed == nil {
		processed = []domain.Check{}
	}
	failed := r.Failed
	if failed == nil {
		failed = []domain.CheckFailure{}
	}
	return ProcessDueChecksResponse{
		Count:     len(processed),
		AsOf:      Date{r.AsOf},
		Processed: processed,
		Failed:    failed,
	}
}
