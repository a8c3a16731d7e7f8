package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/buildledger/internal/core/domain"
	portssvc "github.com/SscSPs/buildledger/internal/core/ports/services"
	"github.com/SscSPs/buildledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Organizations portssvc.OrganizationSvcFacade
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RequireAccounting fails with ErrAccountingDisabled unless the organization has accounting enabled.
// Without an organization service every organization is treated as enabled.
func (s *BaseService) RequireAccounting(ctx context.Context, organizationID string) error {
	if s.Organizations == nil {
		s.LogDebug(ctx, "No organization service provided, accounting check skipped",
			slog.String("organization_id", organizationID))
		return nil
	}
	_, err := s.Organizations.EnsureAccountingEnabled(ctx, organizationID)
	return err
}

// LocalCurrency returns the organization's local currency, defaulting to PESOS.
func (s *BaseService) LocalCurrency(ctx context.Context, organizationID string) domain.Currency {
	if s.Organizations == nil {
		return domain.CurrencyPesos
	}
	org, err := s.Organizations.GetOrganizationByID(ctx, organizationID)
	if err != nil || !org.LocalCurrency.IsValid() {
		return domain.CurrencyPesos
	}
	return org.LocalCurrency
}
