package services

import (
	"context"

	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/SscSPs/buildledger/internal/dto"
)

// InstrumentSvc manages cash boxes and bank accounts
type InstrumentSvc interface {
	CreateCashBox(ctx context.Context, organizationID string, req dto.CreateCashBoxRequest, userID string) (*domain.CashBox, error)
	CreateBankAccount(ctx context.Context, organizationID string, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error)
	ListCashBoxes(ctx context.Context, organizationID string, includeInactive bool) ([]domain.CashBox, error)
	ListBankAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.BankAccount, error)
	DeactivateInstrument(ctx context.Context, organizationID string, instrument domain.Instrument, userID string) error
	InstrumentResolverSvc
}

// InstrumentResolverSvc validates instrument references held by other modules
type InstrumentResolverSvc interface {
	// ResolveInstrument checks that the instrument exists in the organization and is
	// active, and returns its nominal currency.
	ResolveInstrument(ctx context.Context, organizationID string, instrument domain.Instrument) (domain.Currency, error)
}

// BalanceInvalidator drops cached balance views after a ledger write
type BalanceInvalidator interface {
	InvalidateBalances(organizationID string)
}

// MovementSvc records treasury transactions
type MovementSvc interface {
	// RecordMovement stores an income or expense and applies it to the balance ledger.
	RecordMovement(ctx context.Context, organizationID string, req dto.RecordMovementRequest, userID string) (*domain.Transaction, error)

	ListMovements(ctx context.Context, organizationID string, instrument *domain.Instrument, limit int, offset int) ([]domain.Transaction, error)
}

// TreasuryQuerySvc answers read-only balance questions
type TreasuryQuerySvc interface {
	// GetConsolidatedBalances reports per-instrument and global balances.
	GetConsolidatedBalances(ctx context.Context, organizationID string) (*domain.ConsolidatedBalances, error)
	BalanceInvalidator
}

// TreasurySvcFacade combines all treasury service interfaces
type TreasurySvcFacade interface {
	InstrumentSvc
	MovementSvc
	TreasuryQuerySvc
}
