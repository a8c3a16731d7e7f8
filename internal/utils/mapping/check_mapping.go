package mapping

import (
	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/SscSPs/buildledger/internal/models"
)

// ToModelCheck converts a domain Check to a model Check
func ToModelCheck(d domain.Check) models.Check {
	return models.Check{
		CheckID:        d.CheckID,
		OrganizationID: d.OrganizationID,
		CheckNumber:    d.CheckNumber,
		Amount:         d.Amount,
		CurrencyCode:   string(d.CurrencyCode),
		IssuerName:     d.IssuerName,
		IssuerBank:     d.IssuerBank,
		IssueDate:      d.IssueDate,
		DueDate:        d.DueDate,
		Status:         string(d.Status),
		IsReceived:     d.IsReceived,
		CashBoxID:      NullString(d.CashBoxID),
		BankAccountID:  NullString(d.BankAccountID),
		ReceivedFrom:   d.ReceivedFrom,
		IssuedTo:       d.IssuedTo,
		Description:    d.Description,
		ClearedAt:      nullTime(d.ClearedAt),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCheck converts a model Check to a domain Check
func ToDomainCheck(m models.Check) domain.Check {
	return domain.Check{
		CheckID:        m.CheckID,
		OrganizationID: m.OrganizationID,
		CheckNumber:    m.CheckNumber,
		Amount:         m.Amount,
		CurrencyCode:   domain.Currency(m.CurrencyCode),
		IssuerName:     m.IssuerName,
		IssuerBank:     m.IssuerBank,
		IssueDate:      m.IssueDate,
		DueDate:        m.DueDate,
		Status:         domain.CheckStatus(m.Status),
		IsReceived:     m.IsReceived,
		CashBoxID:      FromNullString(m.CashBoxID),
		BankAccountID:  FromNullString(m.BankAccountID),
		ReceivedFrom:   m.ReceivedFrom,
		IssuedTo:       m.IssuedTo,
		Description:    m.Description,
		ClearedAt:      fromNullTime(m.ClearedAt),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
