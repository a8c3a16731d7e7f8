package repositories

import (
	"context"

	"github.com/SscSPs/buildledger/internal/core/domain"
)

// JournalReader defines read operations for journal entry lines
type JournalReader interface {
	// FindEntryByID retrieves a single journal entry line.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntriesByNumber retrieves every line of an entry number within an organization.
	FindEntriesByNumber(ctx context.Context, organizationID, entryNumber string) ([]domain.JournalEntry, error)

	// ListEntries retrieves lines matching the filter, newest first.
	ListEntries(ctx context.Context, organizationID string, filter domain.JournalEntryFilter) ([]domain.JournalEntry, error)

	// ListEntryNumbers returns the distinct entry numbers that start with prefix.
	ListEntryNumbers(ctx context.Context, organizationID, prefix string) ([]string, error)
}

// JournalWriter defines write operations for journal entry lines
type JournalWriter interface {
	// SaveEntries inserts all lines atomically.
	SaveEntries(ctx context.Context, entries []domain.JournalEntry) error

	// DeleteEntryByID removes one line and reports how many rows were deleted.
	DeleteEntryByID(ctx context.Context, organizationID, entryID string) (int64, error)

	// DeleteEntriesByNumber removes every manual line sharing entryNumber within the organization.
	DeleteEntriesByNumber(ctx context.Context, organizationID, entryNumber string) (int64, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
