package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/buildledger/internal/apperrors"
	"github.com/SscSPs/buildledger/internal/core/domain"
	portsrepo "github.com/SscSPs/buildledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/buildledger/internal/core/ports/services"
)

type organizationService struct {
	BaseService
	orgRepo portsrepo.OrganizationReader
}

// NewOrganizationService creates a new organization service.
func NewOrganizationService(repo portsrepo.OrganizationReader) portssvc.OrganizationSvcFacade {
	return &organizationService{orgRepo: repo}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		s.LogDebug(ctx, "Organization lookup failed",
			slog.String("organization_id", organizationID),
			slog.String("error", err.Error()))
		return nil, err
	}
	if !org.IsActive {
		return nil, apperrors.ErrNotFound
	}
	return org, nil
}

func (s *organizationService) EnsureAccountingEnabled(ctx context.Context, organizationID string) (*domain.Organization, error) {
	org, err := s.GetOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if !org.AccountingEnabled {
		s.LogDebug(ctx, "Accounting disabled for organization", slog.String("organization_id", organizationID))
		return nil, apperrors.ErrAccountingDisabled
	}
	return org, nil
}

func (s *organizationService) ListAccountingOrganizations(ctx context.Context) ([]domain.Organization, error) {
	orgs, err := s.orgRepo.ListAccountingOrganizations(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounting organizations")
		return nil, err
	}
	return orgs, nil
}
