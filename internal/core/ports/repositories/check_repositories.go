package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CheckReader defines read operations for check data
type CheckReader interface {
	FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error)

	// FindCheckByNumber retrieves a check by its number within an organization.
	FindCheckByNumber(ctx context.Context, organizationID, checkNumber string) (*domain.Check, error)

	// ListChecks retrieves the organization's checks ordered by due date.
	ListChecks(ctx context.Context, organizationID string, filter domain.CheckFilter) ([]domain.Check, error)

	// ListDueChecks retrieves PENDING checks whose due date is on or before asOf.
	ListDueChecks(ctx context.Context, organizationID string, asOf time.Time) ([]domain.Check, error)
}

// CheckWriter defines write operations for check data
type CheckWriter interface {
	SaveCheck(ctx context.Context, check domain.Check) error

	// UpdateCheckStatus sets a new status outside of any ledger transaction.
	UpdateCheckStatus(ctx context.Context, checkID string, status domain.CheckStatus, userID string, now time.Time) error
}

// CheckTransactionSupport defines operations used by the clearing transaction
type CheckTransactionSupport interface {
	// FindCheckByIDForUpdate selects the check and locks its row until tx ends.
	FindCheckByIDForUpdate(ctx context.Context, tx pgx.Tx, checkID string) (*domain.Check, error)

	// MarkClearedInTx moves the check to CLEARED inside tx.
	MarkClearedInTx(ctx context.Context, tx pgx.Tx, checkID string, userID string, now time.Time) error
}

// CheckRepositoryFacade combines all check-related repository interfaces
type CheckRepositoryFacade interface {
	CheckReader
	CheckWriter
	CheckTransactionSupport
}

// CheckRepositoryWithTx extends CheckRepositoryFacade with transaction capabilities
type CheckRepositoryWithTx interface {
	CheckRepositoryFacade
	TransactionManager
}
