package mapping

import (
	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/SscSPs/buildledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		OrganizationID: d.OrganizationID,
		EntryNumber:    d.EntryNumber,
		AccountID:      d.AccountID,
		Debit:          d.Debit,
		Credit:         d.Credit,
		CurrencyCode:   string(d.CurrencyCode),
		Description:    d.Description,
		EntryDate:      d.EntryDate,
		IsAutomatic:    d.IsAutomatic,
		SourceType:     NullString(d.SourceType),
		SourceID:       NullString(d.SourceID),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:        m.EntryID,
		OrganizationID: m.OrganizationID,
		EntryNumber:    m.EntryNumber,
		AccountID:      m.AccountID,
		Debit:          m.Debit,
		Credit:         m.Credit,
		CurrencyCode:   domain.Currency(m.CurrencyCode),
		Description:    m.Description,
		EntryDate:      m.EntryDate,
		IsAutomatic:    m.IsAutomatic,
		SourceType:     FromNullString(m.SourceType),
		SourceID:       FromNullString(m.SourceID),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
