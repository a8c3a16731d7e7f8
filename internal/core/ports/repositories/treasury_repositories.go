package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// InstrumentReader defines read operations for cash boxes and bank accounts
type InstrumentReader interface {
	FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error)
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListCashBoxes retrieves the organization's cash boxes ordered by name.
	ListCashBoxes(ctx context.Context, organizationID string, includeInactive bool) ([]domain.CashBox, error)

	// ListBankAccounts retrieves the organization's bank accounts ordered by name.
	ListBankAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.BankAccount, error)
}

// InstrumentWriter defines write operations for cash boxes and bank accounts
type InstrumentWriter interface {
	SaveCashBoxInTx(ctx context.Context, tx pgx.Tx, cashBox domain.CashBox) error
	SaveBankAccountInTx(ctx context.Context, tx pgx.Tx, bankAccount domain.BankAccount) error

	// DeactivateInstrument soft-deletes a cash box or bank account.
	DeactivateInstrument(ctx context.Context, instrument domain.Instrument, userID string, now time.Time) error
}

// BalanceLedger maintains the per-instrument, per-currency running balances.
type BalanceLedger interface {
	// UpsertBalanceInTx atomically adds delta to the (instrument, currency) row,
	// creating it with value delta when absent. Must run inside tx.
	UpsertBalanceInTx(ctx context.Context, tx pgx.Tx, instrument domain.Instrument, currency domain.Currency, delta decimal.Decimal) error

	// ListBalances returns every balance row for the organization's instruments.
	ListBalances(ctx context.Context, organizationID string) ([]domain.AccountBalance, error)
}

// TransactionLog stores the immutable treasury movement records.
type TransactionLog interface {
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// ListTransactions retrieves movements for the organization, optionally for one instrument.
	ListTransactions(ctx context.Context, organizationID string, instrument *domain.Instrument, limit int, offset int) ([]domain.Transaction, error)
}

// LedgerWriterInTx is what any module needs to book a treasury movement inside its own transaction.
type LedgerWriterInTx interface {
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
	UpsertBalanceInTx(ctx context.Context, tx pgx.Tx, instrument domain.Instrument, currency domain.Currency, delta decimal.Decimal) error
}

// TreasuryRepositoryFacade combines all treasury repository interfaces
type TreasuryRepositoryFacade interface {
	InstrumentReader
	InstrumentWriter
	BalanceLedger
	TransactionLog
}

// TreasuryRepositoryWithTx extends TreasuryRepositoryFacade with transaction capabilities
type TreasuryRepositoryWithTx interface {
	TreasuryRepositoryFacade
	TransactionManager
}
