package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/buildledger/internal/apperrors"
	"github.com/SscSPs/buildledger/internal/core/domain"
	portsrepo "github.com/SscSPs/buildledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/buildledger/internal/core/ports/services"
	"github.com/SscSPs/buildledger/internal/dto"
	"github.com/SscSPs/buildledger/internal/utils/accounting"
	"github.com/google/uuid"
)

// journalService validates and stores journal entry lines.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountReaderSvc
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalOrganizations enables the accounting-enabled check and currency defaults.
func WithJournalOrganizations(svc portssvc.OrganizationSvcFacade) JournalServiceOption {
	return func(s *journalService) {
		s.Organizations = svc
	}
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountReaderSvc, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{journalRepo: journalRepo, accountSvc: accountSvc}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateManualEntry(ctx context.Context, organizationID string, req dto.CreateManualEntryRequest, userID string) ([]domain.JournalEntry, error) {
	if err := s.RequireAccounting(ctx, organizationID); err != nil {
		return nil, err
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = s.LocalCurrency(ctx, organizationID)
	}
	if !currency.IsValid() {
		return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, currency)
	}

	now := time.Now()
	entryDate := domain.TruncateToDay(req.EntryDate.OrNow())
	lines := make([]domain.JournalEntry, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	seen := make(map[string]bool, len(req.Lines))
	for i, l := range req.Lines {
		description := l.Description
		if description == "" {
			description = req.Description
		}
		lines[i] = domain.JournalEntry{
			EntryID:        uuid.NewString(),
			OrganizationID: organizationID,
			AccountID:      l.AccountID,
			Debit:          l.Debit,
			Credit:         l.Credit,
			CurrencyCode:   currency,
			Description:    description,
			EntryDate:      entryDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			accountIDs = append(accountIDs, l.AccountID)
		}
	}

	if err := accounting.ValidateEntryLines(lines); err != nil {
		s.LogDebug(ctx, "Manual journal entry rejected", slog.String("reason", err.Error()))
		return nil, err
	}
	if err := s.requireActiveAccounts(ctx, organizationID, accountIDs); err != nil {
		return nil, err
	}

	entryNumber, err := s.resolveEntryNumber(ctx, organizationID, strings.TrimSpace(req.EntryNumber))
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].EntryNumber = entryNumber
	}

	if err := s.journalRepo.SaveEntries(ctx, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_number", entryNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Manual journal entry created",
		slog.String("entry_number", entryNumber),
		slog.Int("lines", len(lines)))
	return lines, nil
}

// resolveEntryNumber returns the requested number if unused, or the next sequential one.
// Generated numbers are not reserved, so two concurrent requests may receive the same one.
func (s *journalService) resolveEntryNumber(ctx context.Context, organizationID, requested string) (string, error) {
	if requested != "" {
		existing, err := s.journalRepo.FindEntriesByNumber(ctx, organizationID, requested)
		if err != nil {
			s.LogError(ctx, err, "Failed to check entry number", slog.String("entry_number", requested))
			return "", err
		}
		if len(existing) > 0 {
			return "", fmt.Errorf("%w: %s", apperrors.ErrDuplicateEntryNumber, requested)
		}
		return requested, nil
	}

	numbers, err := s.journalRepo.ListEntryNumbers(ctx, organizationID, accounting.EntryNumberPrefix)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entry numbers")
		return "", err
	}
	return accounting.NextSequentialCode(numbers, accounting.EntryNumberPrefix, accounting.EntryNumberWidth), nil
}

func (s *journalService) requireActiveAccounts(ctx context.Context, organizationID string, accountIDs []string) error {
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, organizationID, accountIDs)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		return err
	}
	for _, id := range accountIDs {
		if !accounts[id].IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accounts[id].Code)
		}
	}
	return nil
}

func (s *journalService) CreateAutomaticEntry(ctx context.Context, organizationID string, req dto.CreateAutomaticEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.RequireAccounting(ctx, organizationID); err != nil {
		return nil, err
	}

	debit, credit, err := accounting.SplitAmount(req.Amount, req.Direction)
	if err != nil {
		return nil, err
	}
	if err := s.requireActiveAccounts(ctx, organizationID, []string{req.AccountID}); err != nil {
		return nil, err
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = s.LocalCurrency(ctx, organizationID)
	}

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: organizationID,
		EntryNumber:    fmt.Sprintf("%s:%s", req.SourceType, req.SourceID),
		AccountID:      req.AccountID,
		Debit:          debit,
		Credit:         credit,
		CurrencyCode:   currency,
		Description:    req.Description,
		EntryDate:      domain.TruncateToDay(req.EntryDate.OrNow()),
		IsAutomatic:    true,
		SourceType:     req.SourceType,
		SourceID:       req.SourceID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveEntries(ctx, []domain.JournalEntry{entry}); err != nil {
		s.LogError(ctx, err, "Failed to save automatic journal entry",
			slog.String("source_type", req.SourceType),
			slog.String("source_id", req.SourceID))
		return nil, err
	}

	s.LogInfo(ctx, "Automatic journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("source_type", req.SourceType))
	return &entry, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, organizationID string, entryID string) (*domain.JournalEntry, error) {
	if err := s.RequireAccounting(ctx, organizationID); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, organizationID string, filter domain.JournalEntryFilter) ([]domain.JournalEntry, error) {
	if err := s.RequireAccounting(ctx, organizationID); err != nil {
		return nil, err
	}

	entries, err := s.journalRepo.ListEntries(ctx, organizationID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, err
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

// DeleteEntry removes only the addressed line for automatic entries; for manual
// entries every line sharing the entry number within the organization goes.
func (s *journalService) DeleteEntry(ctx context.Context, organizationID string, entryID string) (int64, error) {
	entry, err := s.GetEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return 0, err
	}

	var deleted int64
	if entry.IsAutomatic {
		deleted, err = s.journalRepo.DeleteEntryByID(ctx, organizationID, entryID)
	} else {
		deleted, err = s.journalRepo.DeleteEntriesByNumber(ctx, organizationID, entry.EntryNumber)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return 0, err
	}
	if deleted == 0 {
		return 0, apperrors.ErrNotFound
	}

	s.LogInfo(ctx, "Journal entry deleted",
		slog.String("entry_number", entry.EntryNumber),
		slog.Bool("automatic", entry.IsAutomatic),
		slog.Int64("lines", deleted))
	return deleted, nil
}
