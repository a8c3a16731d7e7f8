package services

import (
	"context"

	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/SscSPs/buildledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	GetEntryByID(ctx context.Context, organizationID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves entry lines matching the filter.
	ListEntries(ctx context.Context, organizationID string, filter domain.JournalEntryFilter) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateManualEntry validates and stores a balanced multi-line entry.
	CreateManualEntry(ctx context.Context, organizationID string, req dto.CreateManualEntryRequest, userID string) ([]domain.JournalEntry, error)

	// CreateAutomaticEntry stores a single line generated by another module.
	CreateAutomaticEntry(ctx context.Context, organizationID string, req dto.CreateAutomaticEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes an automatic line, or every line of a manual entry.
	// Returns the number of lines deleted.
	DeleteEntry(ctx context.Context, organizationID string, entryID string) (int64, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
