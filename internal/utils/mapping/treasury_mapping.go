package mapping

import (
	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/SscSPs/buildledger/internal/models"
)

// ToModelCashBox converts a domain CashBox to a model CashBox
func ToModelCashBox(d domain.CashBox) models.CashBox {
	return models.CashBox{
		CashBoxID:      d.CashBoxID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		CurrencyCode:   string(d.CurrencyCode),
		Description:    d.Description,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashBox converts a model CashBox to a domain CashBox
func ToDomainCashBox(m models.CashBox) domain.CashBox {
	return domain.CashBox{
		CashBoxID:      m.CashBoxID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		CurrencyCode:   domain.Currency(m.CurrencyCode),
		Description:    m.Description,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBankAccount converts a domain BankAccount to a model BankAccount
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:  d.BankAccountID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		BankName:       d.BankName,
		AccountNumber:  d.AccountNumber,
		CurrencyCode:   string(d.CurrencyCode),
		Description:    d.Description,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccount converts a model BankAccount to a domain BankAccount
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:  m.BankAccountID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		BankName:       m.BankName,
		AccountNumber:  m.AccountNumber,
		CurrencyCode:   domain.Currency(m.CurrencyCode),
		Description:    m.Description,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountBalance converts a model AccountBalance to a domain AccountBalance
func ToDomainAccountBalance(m models.AccountBalance) domain.AccountBalance {
	return domain.AccountBalance{
		AccountID:    m.AccountID,
		AccountType:  domain.InstrumentType(m.AccountType),
		CurrencyCode: domain.Currency(m.CurrencyCode),
		Balance:      m.Balance,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		OrganizationID:  d.OrganizationID,
		Amount:          d.Amount,
		CurrencyCode:    string(d.CurrencyCode),
		TransactionType: string(d.TransactionType),
		Category:        d.Category,
		Description:     d.Description,
		Date:            d.Date,
		Reference:       d.Reference,
		CashBoxID:       NullString(d.CashBoxID),
		BankAccountID:   NullString(d.BankAccountID),
		CheckID:         NullString(d.CheckID),
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		OrganizationID:  m.OrganizationID,
		Amount:          m.Amount,
		CurrencyCode:    domain.Currency(m.CurrencyCode),
		TransactionType: domain.TransactionType(m.TransactionType),
		Category:        m.Category,
		Description:     m.Description,
		Date:            m.Date,
		Reference:       m.Reference,
		CashBoxID:       FromNullString(m.CashBoxID),
		BankAccountID:   FromNullString(m.BankAccountID),
		CheckID:         FromNullString(m.CheckID),
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}
