package repositories

import (
	"context"

	"github.com/SscSPs/buildledger/internal/core/domain"
)

// OrganizationReader defines read operations for organizations
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListAccountingOrganizations retrieves active organizations with accounting enabled.
	ListAccountingOrganizations(ctx context.Context) ([]domain.Organization, error)
}
