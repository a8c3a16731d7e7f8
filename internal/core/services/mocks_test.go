package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/buildledger/internal/core/domain"
	portsrepo "github.com/SscSPs/buildledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/buildledger/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a database transaction. Repositories are mocked, so none
// of its methods are ever called.
type fakeTx struct {
	pgx.Tx
}

// --- Mock OrganizationService ---
type MockOrganizationService struct {
	mock.Mock
}

var _ portssvc.OrganizationSvcFacade = (*MockOrganizationService)(nil)

func (m *MockOrganizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) EnsureAccountingEnabled(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) ListAccountingOrganizations(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

// --- Mock TransactionManager, shared by the repositories below ---
type mockTxManager struct {
	mock.Mock
}

func (m *mockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *mockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *mockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// expectTx sets up a transaction that begins and commits; rollback is deferred
// unconditionally so it may or may not be observed.
func expectTx(m *mock.Mock, tx pgx.Tx) {
	m.On("Begin", mock.Anything).Return(tx, nil)
	m.On("Commit", mock.Anything, tx).Return(nil)
	m.On("Rollback", mock.Anything, tx).Return(nil).Maybe()
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mockTxManager
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, organizationID string, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountAccounts(ctx context.Context, organizationID string) (int, error) {
	args := m.Called(ctx, organizationID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccountsInTx(ctx context.Context, tx pgx.Tx, accounts []domain.Account) error {
	args := m.Called(ctx, tx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntriesByNumber(ctx context.Context, organizationID, entryNumber string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, organizationID string, filter domain.JournalEntryFilter) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntryNumbers(ctx context.Context, organizationID, prefix string) ([]string, error) {
	args := m.Called(ctx, organizationID, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockJournalRepository) SaveEntries(ctx context.Context, entries []domain.JournalEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntryByID(ctx context.Context, organizationID, entryID string) (int64, error) {
	args := m.Called(ctx, organizationID, entryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournalRepository) DeleteEntriesByNumber(ctx context.Context, organizationID, entryNumber string) (int64, error) {
	args := m.Called(ctx, organizationID, entryNumber)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AccountReaderSvc (as used by the journal service) ---
type MockAccountReader struct {
	mock.Mock
}

var _ portssvc.AccountReaderSvc = (*MockAccountReader)(nil)

func (m *MockAccountReader) GetAccountByID(ctx context.Context, organizationID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountReader) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountReader) ListAccounts(ctx context.Context, organizationID string, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock TreasuryRepository ---
type MockTreasuryRepository struct {
	mockTxManager
}

var _ portsrepo.TreasuryRepositoryWithTx = (*MockTreasuryRepository)(nil)

func (m *MockTreasuryRepository) FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error) {
	args := m.Called(ctx, cashBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBox), args.Error(1)
}

func (m *MockTreasuryRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockTreasuryRepository) ListCashBoxes(ctx context.Context, organizationID string, includeInactive bool) ([]domain.CashBox, error) {
	args := m.Called(ctx, organizationID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBox), args.Error(1)
}

func (m *MockTreasuryRepository) ListBankAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.BankAccount, error) {
	args := m.Called(ctx, organizationID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockTreasuryRepository) SaveCashBoxInTx(ctx context.Context, tx pgx.Tx, cashBox domain.CashBox) error {
	args := m.Called(ctx, tx, cashBox)
	return args.Error(0)
}

func (m *MockTreasuryRepository) SaveBankAccountInTx(ctx context.Context, tx pgx.Tx, bankAccount domain.BankAccount) error {
	args := m.Called(ctx, tx, bankAccount)
	return args.Error(0)
}

func (m *MockTreasuryRepository) DeactivateInstrument(ctx context.Context, instrument domain.Instrument, userID string, now time.Time) error {
	args := m.Called(ctx, instrument, userID, now)
	return args.Error(0)
}

func (m *MockTreasuryRepository) UpsertBalanceInTx(ctx context.Context, tx pgx.Tx, instrument domain.Instrument, currency domain.Currency, delta decimal.Decimal) error {
	args := m.Called(ctx, tx, instrument, currency, delta)
	return args.Error(0)
}

func (m *MockTreasuryRepository) ListBalances(ctx context.Context, organizationID string) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

func (m *MockTreasuryRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTreasuryRepository) ListTransactions(ctx context.Context, organizationID string, instrument *domain.Instrument, limit int, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, organizationID, instrument, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Mock CheckRepository ---
type MockCheckRepository struct {
	mockTxManager
}

var _ portsrepo.CheckRepositoryWithTx = (*MockCheckRepository)(nil)

func (m *MockCheckRepository) FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error) {
	args := m.Called(ctx, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckRepository) FindCheckByNumber(ctx context.Context, organizationID, checkNumber string) (*domain.Check, error) {
	args := m.Called(ctx, organizationID, checkNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckRepository) ListChecks(ctx context.Context, organizationID string, filter domain.CheckFilter) ([]domain.Check, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Check), args.Error(1)
}

func (m *MockCheckRepository) ListDueChecks(ctx context.Context, organizationID string, asOf time.Time) ([]domain.Check, error) {
	args := m.Called(ctx, organizationID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Check), args.Error(1)
}

func (m *MockCheckRepository) SaveCheck(ctx context.Context, check domain.Check) error {
	args := m.Called(ctx, check)
	return args.Error(0)
}

func (m *MockCheckRepository) UpdateCheckStatus(ctx context.Context, checkID string, status domain.CheckStatus, userID string, now time.Time) error {
	args := m.Called(ctx, checkID, status, userID, now)
	return args.Error(0)
}

func (m *MockCheckRepository) FindCheckByIDForUpdate(ctx context.Context, tx pgx.Tx, checkID string) (*domain.Check, error) {
	args := m.Called(ctx, tx, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckRepository) MarkClearedInTx(ctx context.Context, tx pgx.Tx, checkID string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, checkID, userID, now)
	return args.Error(0)
}

// --- Mock InstrumentResolver ---
type MockInstrumentResolver struct {
	mock.Mock
}

var _ portssvc.InstrumentResolverSvc = (*MockInstrumentResolver)(nil)

func (m *MockInstrumentResolver) ResolveInstrument(ctx context.Context, organizationID string, instrument domain.Instrument) (domain.Currency, error) {
	args := m.Called(ctx, organizationID, instrument)
	return args.Get(0).(domain.Currency), args.Error(1)
}
