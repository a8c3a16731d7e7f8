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
	"github.com/SscSPs/buildledger/internal/platform/cache"
	"github.com/SscSPs/buildledger/internal/platform/events"
	"github.com/SscSPs/buildledger/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const balanceCacheName = "balances"

// treasuryService manages instruments, movements and the consolidated balance view.
type treasuryService struct {
	BaseService
	repo      portsrepo.TreasuryRepositoryWithTx
	balances  *cache.TTL[domain.ConsolidatedBalances]
	metrics   *metrics.Metrics
	publisher events.Publisher
	now       func() time.Time
}

// TreasuryServiceOption is a functional option for configuring the treasury service
type TreasuryServiceOption func(*treasuryService)

// WithBalanceCache caches consolidated balances per organization.
func WithBalanceCache(c *cache.TTL[domain.ConsolidatedBalances]) TreasuryServiceOption {
	return func(s *treasuryService) {
		s.balances = c
	}
}

func WithTreasuryMetrics(m *metrics.Metrics) TreasuryServiceOption {
	return func(s *treasuryService) {
		s.metrics = m
	}
}

func WithTreasuryEvents(p events.Publisher) TreasuryServiceOption {
	return func(s *treasuryService) {
		s.publisher = p
	}
}

// WithTreasuryOrganizations supplies the local currency used when a request omits one.
func WithTreasuryOrganizations(svc portssvc.OrganizationSvcFacade) TreasuryServiceOption {
	return func(s *treasuryService) {
		s.Organizations = svc
	}
}

// NewTreasuryService creates a new treasury service.
func NewTreasuryService(repo portsrepo.TreasuryRepositoryWithTx, options ...TreasuryServiceOption) portssvc.TreasurySvcFacade {
	svc := &treasuryService{
		repo:      repo,
		publisher: events.NoopPublisher{},
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TreasurySvcFacade = (*treasuryService)(nil)

func (s *treasuryService) CreateCashBox(ctx context.Context, organizationID string, req dto.CreateCashBoxRequest, userID string) (*domain.CashBox, error) {
	currency, err := s.instrumentCurrency(ctx, organizationID, req.CurrencyCode, req.InitialBalance)
	if err != nil {
		return nil, err
	}

	now := s.now()
	box := domain.CashBox{
		CashBoxID:      uuid.NewString(),
		OrganizationID: organizationID,
		Name:           strings.TrimSpace(req.Name),
		CurrencyCode:   currency,
		Description:    req.Description,
		IsActive:       true,
		AuditFields:    newAuditFields(now, userID),
	}
	inst := domain.Instrument{ID: box.CashBoxID, Type: domain.CashBoxInstrument}

	err = s.withOpeningBalance(ctx, inst, organizationID, currency, req.InitialBalance, userID, now, func(tx pgx.Tx) error {
		return s.repo.SaveCashBoxInTx(ctx, tx, box)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create cash box", slog.String("name", box.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Cash box created",
		slog.String("cash_box_id", box.CashBoxID),
		slog.String("currency", string(currency)))
	return &box, nil
}

func (s *treasuryService) CreateBankAccount(ctx context.Context, organizationID string, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	currency, err := s.instrumentCurrency(ctx, organizationID, req.CurrencyCode, req.InitialBalance)
	if err != nil {
		return nil, err
	}

	now := s.now()
	account := domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		OrganizationID: organizationID,
		Name:           strings.TrimSpace(req.Name),
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		CurrencyCode:   currency,
		Description:    req.Description,
		IsActive:       true,
		AuditFields:    newAuditFields(now, userID),
	}
	inst := domain.Instrument{ID: account.BankAccountID, Type: domain.BankAccountInstrument}

	err = s.withOpeningBalance(ctx, inst, organizationID, currency, req.InitialBalance, userID, now, func(tx pgx.Tx) error {
		return s.repo.SaveBankAccountInTx(ctx, tx, account)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create bank account", slog.String("name", account.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Bank account created",
		slog.String("bank_account_id", account.BankAccountID),
		slog.String("currency", string(currency)))
	return &account, nil
}

func (s *treasuryService) instrumentCurrency(ctx context.Context, organizationID string, requested domain.Currency, initialBalance decimal.Decimal) (domain.Currency, error) {
	if initialBalance.IsNegative() {
		return "", fmt.Errorf("%w: initial balance cannot be negative", apperrors.ErrValidation)
	}
	if requested == "" {
		return s.LocalCurrency(ctx, organizationID), nil
	}
	if !requested.IsValid() {
		return "", fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, requested)
	}
	return requested, nil
}

// withOpeningBalance runs save and, for a positive opening balance, books it as
// INITIAL_BALANCE income, all in one transaction.
func (s *treasuryService) withOpeningBalance(ctx context.Context, inst domain.Instrument, organizationID string, currency domain.Currency, amount decimal.Decimal, userID string, now time.Time, save func(tx pgx.Tx) error) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.repo.Rollback(ctx, tx)

	if err := save(tx); err != nil {
		return err
	}

	var txn *domain.Transaction
	if amount.IsPositive() {
		opening := newTransaction(inst, organizationID, domain.TransactionIncome, amount, currency, userID, now)
		opening.Category = domain.CategoryInitialBalance
		opening.Description = "Opening balance"
		if err := s.book(ctx, tx, opening); err != nil {
			return err
		}
		txn = &opening
	}

	if err := s.repo.Commit(ctx, tx); err != nil {
		return err
	}
	if txn != nil {
		s.afterMovement(ctx, *txn)
	}
	return nil
}

func (s *treasuryService) ListCashBoxes(ctx context.Context, organizationID string, includeInactive bool) ([]domain.CashBox, error) {
	boxes, err := s.repo.ListCashBoxes(ctx, organizationID, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash boxes")
		return nil, err
	}
	if boxes == nil {
		return []domain.CashBox{}, nil
	}
	return boxes, nil
}

func (s *treasuryService) ListBankAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.BankAccount, error) {
	accounts, err := s.repo.ListBankAccounts(ctx, organizationID, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank accounts")
		return nil, err
	}
	if accounts == nil {
		return []domain.BankAccount{}, nil
	}
	return accounts, nil
}

func (s *treasuryService) DeactivateInstrument(ctx context.Context, organizationID string, instrument domain.Instrument, userID string) error {
	if _, _, err := s.findInstrument(ctx, organizationID, instrument); err != nil {
		return err
	}
	if err := s.repo.DeactivateInstrument(ctx, instrument, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate instrument",
			slog.String("instrument_id", instrument.ID),
			slog.String("instrument_type", string(instrument.Type)))
		return err
	}
	s.InvalidateBalances(organizationID)

	s.LogInfo(ctx, "Instrument deactivated",
		slog.String("instrument_id", instrument.ID),
		slog.String("instrument_type", string(instrument.Type)))
	return nil
}

// findInstrument loads a cash box or bank account owned by the organization and
// returns its currency and active flag.
func (s *treasuryService) findInstrument(ctx context.Context, organizationID string, instrument domain.Instrument) (domain.Currency, bool, error) {
	var (
		owner    string
		currency domain.Currency
		active   bool
	)
	switch instrument.Type {
	case domain.CashBoxInstrument:
		box, err := s.repo.FindCashBoxByID(ctx, instrument.ID)
		if err != nil {
			return "", false, err
		}
		owner, currency, active = box.OrganizationID, box.CurrencyCode, box.IsActive
	case domain.BankAccountInstrument:
		account, err := s.repo.FindBankAccountByID(ctx, instrument.ID)
		if err != nil {
			return "", false, err
		}
		owner, currency, active = account.OrganizationID, account.CurrencyCode, account.IsActive
	default:
		return "", false, fmt.Errorf("%w: unknown instrument type %q", apperrors.ErrValidation, instrument.Type)
	}
	if owner != organizationID {
		return "", false, apperrors.ErrNotFound
	}
	return currency, active, nil
}

func (s *treasuryService) ResolveInstrument(ctx context.Context, organizationID string, instrument domain.Instrument) (domain.Currency, error) {
	currency, active, err := s.findInstrument(ctx, organizationID, instrument)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve instrument", slog.String("instrument_id", instrument.ID))
		}
		return "", err
	}
	if !active {
		return "", fmt.Errorf("%w: %s %s is inactive", apperrors.ErrValidation, strings.ToLower(string(instrument.Type)), instrument.ID)
	}
	return currency, nil
}

func (s *treasuryService) RecordMovement(ctx context.Context, organizationID string, req dto.RecordMovementRequest, userID string) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if req.TransactionType != domain.TransactionIncome && req.TransactionType != domain.TransactionExpense {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, req.TransactionType)
	}

	inst := req.Instrument()
	currency, err := s.ResolveInstrument(ctx, organizationID, inst)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: instrument %s not found", apperrors.ErrValidation, inst.ID)
		}
		return nil, err
	}
	if req.CurrencyCode != "" {
		if !req.CurrencyCode.IsValid() {
			return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, req.CurrencyCode)
		}
		currency = req.CurrencyCode
	}

	txn := newTransaction(inst, organizationID, req.TransactionType, req.Amount, currency, userID, s.now())
	txn.Category = req.Category
	txn.Description = req.Description
	txn.Reference = req.Reference
	if !req.Date.IsZero() {
		txn.Date = req.Date.Time
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin movement transaction")
		return nil, err
	}
	defer s.repo.Rollback(ctx, tx)

	if err := s.book(ctx, tx, txn); err != nil {
		s.LogError(ctx, err, "Failed to record movement", slog.String("instrument_id", inst.ID))
		return nil, err
	}
	if err := s.repo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit movement", slog.String("instrument_id", inst.ID))
		return nil, err
	}

	s.afterMovement(ctx, txn)
	s.LogInfo(ctx, "Treasury movement recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.TransactionType)),
		slog.String("amount", txn.Amount.String()),
		slog.String("currency", string(txn.CurrencyCode)))
	return &txn, nil
}

// book writes the audit record and applies its signed amount to the balance ledger.
func (s *treasuryService) book(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	if err := s.repo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}
	return s.repo.UpsertBalanceInTx(ctx, tx, txn.Instrument(), txn.CurrencyCode, txn.SignedAmount())
}

// afterMovement runs the post-commit side effects of a booked transaction.
func (s *treasuryService) afterMovement(ctx context.Context, txn domain.Transaction) {
	s.InvalidateBalances(txn.OrganizationID)
	s.metrics.Movement(string(txn.TransactionType), txn.Category)

	err := s.publisher.Publish(ctx, events.Event{
		EventType:      events.TypeTreasuryMovement,
		OrganizationID: txn.OrganizationID,
		SubjectID:      txn.TransactionID,
		Amount:         txn.SignedAmount(),
		Currency:       string(txn.CurrencyCode),
		Reference:      txn.Reference,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to publish movement event", slog.String("transaction_id", txn.TransactionID))
	}
}

func (s *treasuryService) ListMovements(ctx context.Context, organizationID string, instrument *domain.Instrument, limit int, offset int) ([]domain.Transaction, error) {
	if instrument != nil {
		if _, _, err := s.findInstrument(ctx, organizationID, *instrument); err != nil {
			return nil, err
		}
	}
	txns, err := s.repo.ListTransactions(ctx, organizationID, instrument, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements")
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

func (s *treasuryService) GetConsolidatedBalances(ctx context.Context, organizationID string) (*domain.ConsolidatedBalances, error) {
	var version uint64
	if s.balances != nil {
		version = s.balances.Version(organizationID)
		if cached, ok := s.balances.Get(organizationID); ok {
			s.metrics.CacheHit(balanceCacheName)
			return &cached, nil
		}
		s.metrics.CacheMiss(balanceCacheName)
	}

	var (
		boxes    []domain.CashBox
		accounts []domain.BankAccount
		rows     []domain.AccountBalance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		boxes, err = s.repo.ListCashBoxes(gctx, organizationID, false)
		return err
	})
	g.Go(func() error {
		var err error
		accounts, err = s.repo.ListBankAccounts(gctx, organizationID, false)
		return err
	})
	g.Go(func() error {
		var err error
		rows, err = s.repo.ListBalances(gctx, organizationID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load treasury balances")
		return nil, err
	}

	result := BuildConsolidatedBalances(organizationID, boxes, accounts, rows, s.now())
	if s.balances != nil {
		// An invalidation during the load means the snapshot may predate a write.
		if !s.balances.SetIfVersion(organizationID, result, version) {
			s.LogDebug(ctx, "Balances invalidated during load, not caching")
		}
	}

	s.LogDebug(ctx, "Consolidated balances computed",
		slog.Int("cash_boxes", len(result.CashBoxes)),
		slog.Int("bank_accounts", len(result.BankAccounts)))
	return &result, nil
}

func (s *treasuryService) InvalidateBalances(organizationID string) {
	if s.balances != nil {
		s.balances.Delete(organizationID)
	}
}

// BuildConsolidatedBalances assembles the balance view. Every instrument reports
// every supported currency, zero when no row exists; TotalBalance is the balance
// in the instrument's own currency. Rows of inactive instruments are ignored.
func BuildConsolidatedBalances(organizationID string, boxes []domain.CashBox, accounts []domain.BankAccount, rows []domain.AccountBalance, at time.Time) domain.ConsolidatedBalances {
	byInstrument := make(map[domain.Instrument]map[domain.Currency]decimal.Decimal)
	for _, row := range rows {
		key := domain.Instrument{ID: row.AccountID, Type: row.AccountType}
		if byInstrument[key] == nil {
			byInstrument[key] = make(map[domain.Currency]decimal.Decimal)
		}
		byInstrument[key][row.CurrencyCode] = byInstrument[key][row.CurrencyCode].Add(row.Balance)
	}

	totals := zeroBalances()
	build := func(inst domain.Instrument, name string, currency domain.Currency) domain.InstrumentBalance {
		balances := zeroBalances()
		for c, amount := range byInstrument[inst] {
			balances[c] = amount
			totals[c] = totals[c].Add(amount)
		}
		return domain.InstrumentBalance{
			InstrumentID:   inst.ID,
			InstrumentType: inst.Type,
			Name:           name,
			CurrencyCode:   currency,
			Balances:       balances,
			TotalBalance:   balances[currency],
		}
	}

	result := domain.ConsolidatedBalances{
		OrganizationID: organizationID,
		CashBoxes:      make([]domain.InstrumentBalance, 0, len(boxes)),
		BankAccounts:   make([]domain.InstrumentBalance, 0, len(accounts)),
		Totals:         totals,
		GeneratedAt:    at,
	}
	for _, b := range boxes {
		result.CashBoxes = append(result.CashBoxes,
			build(domain.Instrument{ID: b.CashBoxID, Type: domain.CashBoxInstrument}, b.Name, b.CurrencyCode))
	}
	for _, a := range accounts {
		result.BankAccounts = append(result.BankAccounts,
			build(domain.Instrument{ID: a.BankAccountID, Type: domain.BankAccountInstrument}, a.Name, a.CurrencyCode))
	}
	return result
}

func zeroBalances() map[domain.Currency]decimal.Decimal {
	m := make(map[domain.Currency]decimal.Decimal, len(domain.SupportedCurrencies))
	for _, c := range domain.SupportedCurrencies {
		m[c] = decimal.Zero
	}
	return m
}

func newTransaction(inst domain.Instrument, organizationID string, txnType domain.TransactionType, amount decimal.Decimal, currency domain.Currency, userID string, now time.Time) domain.Transaction {
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		OrganizationID:  organizationID,
		Amount:          amount,
		CurrencyCode:    currency,
		TransactionType: txnType,
		Date:            now,
		CreatedAt:       now,
		CreatedBy:       userID,
	}
	if inst.Type == domain.CashBoxInstrument {
		txn.CashBoxID = inst.ID
	} else {
		txn.BankAccountID = inst.ID
	}
	return txn
}

func newAuditFields(now time.Time, userID string) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}
