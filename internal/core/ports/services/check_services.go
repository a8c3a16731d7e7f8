package services

import (
	"context"
	"time"

	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/SscSPs/buildledger/internal/dto"
)

// CheckReaderSvc defines read operations for checks
type CheckReaderSvc interface {
	GetCheckByID(ctx context.Context, organizationID string, checkID string) (*domain.Check, error)
	ListChecks(ctx context.Context, organizationID string, filter domain.CheckFilter) ([]domain.Check, error)
}

// CheckLifecycleSvc moves checks through their states
type CheckLifecycleSvc interface {
	// CreateCheck registers a check; no ledger movement happens until it clears.
	CreateCheck(ctx context.Context, organizationID string, req dto.CreateCheckRequest, userID string) (*domain.Check, error)

	// ClearCheck marks the check CLEARED and applies its amount to the instrument, atomically.
	ClearCheck(ctx context.Context, organizationID string, checkID string, userID string) (*domain.Check, error)

	// RejectCheck marks a non-cleared check REJECTED without any ledger movement.
	RejectCheck(ctx context.Context, organizationID string, checkID string, userID string) (*domain.Check, error)

	// ProcessDueChecks clears every PENDING check due on or before asOf, one transaction each.
	ProcessDueChecks(ctx context.Context, organizationID string, asOf time.Time, userID string) (*domain.DueCheckReport, error)
}

// CheckSvcFacade combines all check service interfaces
type CheckSvcFacade interface {
	CheckReaderSvc
	CheckLifecycleSvc
}
