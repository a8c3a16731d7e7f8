package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/buildledger/internal/core/domain"
	portssvc "github.com/SscSPs/buildledger/internal/core/ports/services"
	"github.com/SscSPs/buildledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// mockCtx matches the request context, which carries the session and logger.
var mockCtx = mock.Anything

// --- Mock OrganizationService ---
type MockOrganizationService struct {
	mock.Mock
}

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

var _ portssvc.OrganizationSvcFacade = (*MockOrganizationService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, organizationID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID string, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	args := m.Called(ctx, organizationID, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountService) SetupDefaultChart(ctx context.Context, organizationID string, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetEntryByID(ctx context.Context, organizationID string, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, organizationID string, filter domain.JournalEntryFilter) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) CreateManualEntry(ctx context.Context, organizationID string, req dto.CreateManualEntryRequest, userID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) CreateAutomaticEntry(ctx context.Context, organizationID string, req dto.CreateAutomaticEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) DeleteEntry(ctx context.Context, organizationID string, entryID string) (int64, error) {
	args := m.Called(ctx, organizationID, entryID)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock TreasuryService ---
type MockTreasuryService struct {
	mock.Mock
}

func (m *MockTreasuryService) CreateCashBox(ctx context.Context, organizationID string, req dto.CreateCashBoxRequest, userID string) (*domain.CashBox, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBox), args.Error(1)
}

func (m *MockTreasuryService) CreateBankAccount(ctx context.Context, organizationID string, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockTreasuryService) ListCashBoxes(ctx context.Context, organizationID string, includeInactive bool) ([]domain.CashBox, error) {
	args := m.Called(ctx, organizationID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBox), args.Error(1)
}

func (m *MockTreasuryService) ListBankAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.BankAccount, error) {
	args := m.Called(ctx, organizationID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockTreasuryService) DeactivateInstrument(ctx context.Context, organizationID string, instrument domain.Instrument, userID string) error {
	args := m.Called(ctx, organizationID, instrument, userID)
	return args.Error(0)
}

func (m *MockTreasuryService) ResolveInstrument(ctx context.Context, organizationID string, instrument domain.Instrument) (domain.Currency, error) {
	args := m.Called(ctx, organizationID, instrument)
	return args.Get(0).(domain.Currency), args.Error(1)
}

func (m *MockTreasuryService) RecordMovement(ctx context.Context, organizationID string, req dto.RecordMovementRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTreasuryService) ListMovements(ctx context.Context, organizationID string, instrument *domain.Instrument, limit int, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, organizationID, instrument, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTreasuryService) GetConsolidatedBalances(ctx context.Context, organizationID string) (*domain.ConsolidatedBalances, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConsolidatedBalances), args.Error(1)
}

func (m *MockTreasuryService) InvalidateBalances(organizationID string) {
	m.Called(organizationID)
}

var _ portssvc.TreasurySvcFacade = (*MockTreasuryService)(nil)

// --- Mock CheckService ---
type MockCheckService struct {
	mock.Mock
}

func (m *MockCheckService) GetCheckByID(ctx context.Context, organizationID string, checkID string) (*domain.Check, error) {
	args := m.Called(ctx, organizationID, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckService) ListChecks(ctx context.Context, organizationID string, filter domain.CheckFilter) ([]domain.Check, error) {
	args := m.Called(ctx, organizationID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Check), args.Error(1)
}

func (m *MockCheckService) CreateCheck(ctx context.Context, organizationID string, req dto.CreateCheckRequest, userID string) (*domain.Check, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckService) ClearCheck(ctx context.Context, organizationID string, checkID string, userID string) (*domain.Check, error) {
	args := m.Called(ctx, organizationID, checkID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckService) RejectCheck(ctx context.Context, organizationID string, checkID string, userID string) (*domain.Check, error) {
	args := m.Called(ctx, organizationID, checkID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Check), args.Error(1)
}

func (m *MockCheckService) ProcessDueChecks(ctx context.Context, organizationID string, asOf time.Time, userID string) (*domain.DueCheckReport, error) {
	args := m.Called(ctx, organizationID, asOf, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DueCheckReport), args.Error(1)
}

var _ portssvc.CheckSvcFacade = (*MockCheckService)(nil)
