package services

import (
	"context"

	"github.com/SscSPs/buildledger/internal/core/domain"
)

// OrganizationSvcFacade exposes the organization facts the accounting core relies on.
type OrganizationSvcFacade interface {
	// GetOrganizationByID retrieves an active organization.
	GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// EnsureAccountingEnabled returns the organization, or ErrAccountingDisabled.
	EnsureAccountingEnabled(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListAccountingOrganizations retrieves every organization with accounting enabled.
	ListAccountingOrganizations(ctx context.Context) ([]domain.Organization, error)
}
