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
	"github.com/SscSPs/buildledger/internal/platform/events"
	"github.com/SscSPs/buildledger/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	triggerManual   = "manual"
	triggerDueSweep = "due_sweep"
)

// checkService drives checks from registration to CLEARED or REJECTED.
type checkService struct {
	BaseService
	checkRepo   portsrepo.CheckRepositoryWithTx
	ledger      portsrepo.LedgerWriterInTx
	instruments portssvc.InstrumentResolverSvc
	invalidator portssvc.BalanceInvalidator
	metrics     *metrics.Metrics
	publisher   events.Publisher
	now         func() time.Time
}

// CheckServiceOption is a functional option for configuring the check service
type CheckServiceOption func(*checkService)

func WithCheckMetrics(m *metrics.Metrics) CheckServiceOption {
	return func(s *checkService) {
		s.metrics = m
	}
}

func WithCheckEvents(p events.Publisher) CheckServiceOption {
	return func(s *checkService) {
		s.publisher = p
	}
}

// WithBalanceInvalidator drops cached balances after a check clears.
func WithBalanceInvalidator(inv portssvc.BalanceInvalidator) CheckServiceOption {
	return func(s *checkService) {
		s.invalidator = inv
	}
}

// NewCheckService creates a new check service. The check repository and the
// ledger writer must share a connection pool, since clearing writes through
// both inside one transaction begun on checkRepo.
func NewCheckService(checkRepo portsrepo.CheckRepositoryWithTx, ledger portsrepo.LedgerWriterInTx, instruments portssvc.InstrumentResolverSvc, options ...CheckServiceOption) portssvc.CheckSvcFacade {
	svc := &checkService{
		checkRepo:   checkRepo,
		ledger:      ledger,
		instruments: instruments,
		publisher:   events.NoopPublisher{},
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CheckSvcFacade = (*checkService)(nil)

func (s *checkService) CreateCheck(ctx context.Context, organizationID string, req dto.CreateCheckRequest, userID string) (*domain.Check, error) {
	number := strings.TrimSpace(req.CheckNumber)
	if number == "" {
		return nil, fmt.Errorf("%w: check number is required", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", apperrors.ErrValidation)
	}
	issueDate := domain.TruncateToDay(req.IssueDate.OrNow())
	dueDate := domain.TruncateToDay(req.DueDate.Time)
	if dueDate.Before(issueDate) {
		return nil, fmt.Errorf("%w: due date is before issue date", apperrors.ErrValidation)
	}

	check := domain.Check{
		CheckID:        uuid.NewString(),
		OrganizationID: organizationID,
		CheckNumber:    number,
		Amount:         req.Amount,
		CurrencyCode:   req.CurrencyCode,
		IssuerName:     req.IssuerName,
		IssuerBank:     req.IssuerBank,
		IssueDate:      issueDate,
		DueDate:        dueDate,
		Status:         domain.InitialCheckStatus(req.IsReceived),
		IsReceived:     req.IsReceived,
		CashBoxID:      req.CashBoxID,
		BankAccountID:  req.BankAccountID,
		ReceivedFrom:   req.ReceivedFrom,
		IssuedTo:       req.IssuedTo,
		Description:    req.Description,
		AuditFields:    newAuditFields(s.now(), userID),
	}
	if (check.CashBoxID == "") == (check.BankAccountID == "") {
		return nil, fmt.Errorf("%w: exactly one of cash box or bank account is required", apperrors.ErrValidation)
	}

	instCurrency, err := s.instruments.ResolveInstrument(ctx, organizationID, check.Instrument())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: instrument %s not found", apperrors.ErrValidation, check.Instrument().ID)
		}
		return nil, err
	}
	if check.CurrencyCode == "" {
		check.CurrencyCode = instCurrency
	}
	if !check.CurrencyCode.IsValid() {
		return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, check.CurrencyCode)
	}

	existing, err := s.checkRepo.FindCheckByNumber(ctx, organizationID, number)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for duplicate check number", slog.String("check_number", number))
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateCheckNumber
	}

	if err := s.checkRepo.SaveCheck(ctx, check); err != nil {
		s.LogError(ctx, err, "Failed to save check", slog.String("check_number", number))
		return nil, err
	}

	s.LogInfo(ctx, "Check registered",
		slog.String("check_id", check.CheckID),
		slog.String("check_number", number),
		slog.String("status", string(check.Status)))
	return &check, nil
}

func (s *checkService) GetCheckByID(ctx context.Context, organizationID string, checkID string) (*domain.Check, error) {
	check, err := s.checkRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find check", slog.String("check_id", checkID))
		}
		return nil, err
	}
	if check.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return check, nil
}

func (s *checkService) ListChecks(ctx context.Context, organizationID string, filter domain.CheckFilter) ([]domain.Check, error) {
	checks, err := s.checkRepo.ListChecks(ctx, organizationID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list checks")
		return nil, err
	}
	if checks == nil {
		return []domain.Check{}, nil
	}
	return checks, nil
}

func (s *checkService) ClearCheck(ctx context.Context, organizationID string, checkID string, userID string) (*domain.Check, error) {
	return s.clear(ctx, organizationID, checkID, userID, triggerManual)
}

// clear marks the check CLEARED and books its movement in one transaction. The
// row lock taken by FindCheckByIDForUpdate makes a concurrent second clear see
// CLEARED and fail instead of booking twice.
func (s *checkService) clear(ctx context.Context, organizationID string, checkID string, userID string, trigger string) (*domain.Check, error) {
	tx, err := s.checkRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin clearing transaction", slog.String("check_id", checkID))
		return nil, err
	}
	defer s.checkRepo.Rollback(ctx, tx)

	check, err := s.checkRepo.FindCheckByIDForUpdate(ctx, tx, checkID)
	if err != nil {
		return nil, err
	}
	if check.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	if err := check.CanClear(); err != nil {
		if errors.Is(err, domain.ErrCheckCleared) {
			return nil, apperrors.ErrCheckAlreadyCleared
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	now := s.now()
	if err := s.checkRepo.MarkClearedInTx(ctx, tx, checkID, userID, now); err != nil {
		return nil, err
	}
	txn := check.ClearingTransaction(uuid.NewString(), now, userID)
	if err := s.ledger.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return nil, err
	}
	if err := s.ledger.UpsertBalanceInTx(ctx, tx, txn.Instrument(), txn.CurrencyCode, txn.SignedAmount()); err != nil {
		return nil, err
	}
	if err := s.checkRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit check clearing", slog.String("check_id", checkID))
		return nil, err
	}

	check.Status = domain.CheckCleared
	check.ClearedAt = &now
	check.LastUpdatedAt = now
	check.LastUpdatedBy = userID

	if s.invalidator != nil {
		s.invalidator.InvalidateBalances(organizationID)
	}
	s.metrics.CheckCleared(trigger)
	s.publish(ctx, events.TypeCheckCleared, check, txn.SignedAmount())

	s.LogInfo(ctx, "Check cleared",
		slog.String("check_id", check.CheckID),
		slog.String("check_number", check.CheckNumber),
		slog.String("trigger", trigger),
		slog.String("delta", txn.SignedAmount().String()))
	return check, nil
}

func (s *checkService) RejectCheck(ctx context.Context, organizationID string, checkID string, userID string) (*domain.Check, error) {
	check, err := s.GetCheckByID(ctx, organizationID, checkID)
	if err != nil {
		return nil, err
	}
	switch check.Status {
	case domain.CheckCleared:
		return nil, apperrors.ErrCheckAlreadyCleared
	case domain.CheckRejected:
		return check, nil
	}

	now := s.now()
	if err := s.checkRepo.UpdateCheckStatus(ctx, checkID, domain.CheckRejected, userID, now); err != nil {
		if !errors.Is(err, apperrors.ErrCheckAlreadyCleared) {
			s.LogError(ctx, err, "Failed to reject check", slog.String("check_id", checkID))
		}
		return nil, err
	}
	check.Status = domain.CheckRejected
	check.LastUpdatedAt = now
	check.LastUpdatedBy = userID

	s.publish(ctx, events.TypeCheckRejected, check, check.Amount)
	s.LogInfo(ctx, "Check rejected",
		slog.String("check_id", check.CheckID),
		slog.String("check_number", check.CheckNumber))
	return check, nil
}

// ProcessDueChecks clears each due check in its own transaction. Due dates are
// compared against the UTC calendar day of asOf. A failing check
// is recorded in the report and the sweep moves on; checks already cleared by a
// concurrent caller are skipped silently.
func (s *checkService) ProcessDueChecks(ctx context.Context, organizationID string, asOf time.Time, userID string) (*domain.DueCheckReport, error) {
	asOf = domain.TruncateToDay(asOf.UTC())
	due, err := s.checkRepo.ListDueChecks(ctx, organizationID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to list due checks", slog.Time("as_of", asOf))
		return nil, err
	}

	report := &domain.DueCheckReport{
		AsOf:      asOf,
		Processed: []domain.Check{},
		Failed:    []domain.CheckFailure{},
	}
	for _, candidate := range due {
		if err := ctx.Err(); err != nil {
			s.LogInfo(ctx, "Due check sweep interrupted",
				slog.Int("processed", len(report.Processed)),
				slog.Int("failed", len(report.Failed)))
			return report, err
		}

		cleared, err := s.clear(ctx, organizationID, candidate.CheckID, userID, triggerDueSweep)
		if err != nil {
			if errors.Is(err, apperrors.ErrCheckAlreadyCleared) {
				continue
			}
			s.metrics.DueSweepFailure()
			s.LogError(ctx, err, "Failed to clear due check",
				slog.String("check_id", candidate.CheckID),
				slog.String("check_number", candidate.CheckNumber))
			report.Failed = append(report.Failed, domain.CheckFailure{
				CheckID:     candidate.CheckID,
				CheckNumber: candidate.CheckNumber,
				Error:       failureReason(err),
			})
			continue
		}
		report.Processed = append(report.Processed, *cleared)
	}

	s.LogInfo(ctx, "Due check sweep finished",
		slog.Time("as_of", asOf),
		slog.Int("processed", len(report.Processed)),
		slog.Int("failed", len(report.Failed)))
	return report, nil
}

// failureReason is the client-facing text for a failed clear. Domain rule
// violations are echoed like the HTTP layer echoes them; anything else is logged
// above and reported generically.
func failureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConflict):
		return err.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		return "check not found"
	default:
		return apperrors.ErrInternal.Error()
	}
}

func (s *checkService) publish(ctx context.Context, eventType string, check *domain.Check, amount decimal.Decimal) {
	err := s.publisher.Publish(ctx, events.Event{
		EventType:      eventType,
		OrganizationID: check.OrganizationID,
		SubjectID:      check.CheckID,
		Amount:         amount,
		Currency:       string(check.CurrencyCode),
		Reference:      check.CheckNumber,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to publish check event",
			slog.String("event_type", eventType),
			slog.String("check_id", check.CheckID))
	}
}
