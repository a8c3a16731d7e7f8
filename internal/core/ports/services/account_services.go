package services

import (
	"context"

	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/SscSPs/buildledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account within the organization.
	GetAccountByID(ctx context.Context, organizationID string, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts; every id must belong to the organization.
	GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the organization's chart of accounts ordered by code.
	ListAccounts(ctx context.Context, organizationID string, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error

	// SetupDefaultChart seeds the standard chart of accounts for an empty organization.
	SetupDefaultChart(ctx context.Context, organizationID string, userID string) ([]domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
