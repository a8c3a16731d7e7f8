package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/buildledger/internal/apperrors"
	"github.com/SscSPs/buildledger/internal/core/domain"
	portsrepo "github.com/SscSPs/buildledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/buildledger/internal/core/ports/services"
	"github.com/SscSPs/buildledger/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryWithTx
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountOrganizations enables the accounting-enabled check and currency defaults.
func WithAccountOrganizations(svc portssvc.OrganizationSvcFacade) AccountServiceOption {
	return func(s *accountService) {
		s.Organizations = svc
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryWithTx, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.RequireAccounting(ctx, organizationID); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = s.LocalCurrency(ctx, organizationID)
	}
	if !currency.IsValid() {
		return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, currency)
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, organizationID, code)
	if err == nil && existing != nil {
		s.LogDebug(ctx, "Account code already in use",
			slog.String("code", code),
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateCode, code)
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code", slog.String("code", code))
		return nil, err
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if _, err := uuid.Parse(parentID); err != nil {
			return nil, apperrors.ErrInvalidParent
		}
		parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrInvalidParent
			}
			s.LogError(ctx, err, "Failed to find parent account", slog.String("parent_id", parentID))
			return nil, err
		}
		if parent.OrganizationID != organizationID {
			s.LogDebug(ctx, "Parent account belongs to different organization",
				slog.String("parent_id", parentID),
				slog.String("requested_organization", organizationID))
			return nil, apperrors.ErrInvalidParent
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		OrganizationID:  organizationID,
		Code:            code,
		Name:            strings.TrimSpace(req.Name),
		AccountType:     req.AccountType,
		SubType:         req.SubType,
		ParentAccountID: parentID,
		CurrencyCode:    currency,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("code", code),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, organizationID string, accountID string) (*domain.Account, error) {
	if err := s.RequireAccounting(ctx, organizationID); err != nil {
		return nil, err
	}
	return s.findOwnedAccount(ctx, organizationID, accountID)
}

func (s *accountService) findOwnedAccount(ctx context.Context, organizationID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}

	// Accounts of other organizations are reported as missing.
	if account.OrganizationID != organizationID {
		s.LogDebug(ctx, "Account found but belongs to different organization",
			slog.String("account_id", accountID),
			slog.String("requested_organization", organizationID))
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs", slog.Int("count", len(accountIDs)))
		return nil, err
	}

	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok || account.OrganizationID != organizationID {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, organizationID string, filter domain.AccountFilter) ([]domain.Account, error) {
	if err := s.RequireAccounting(ctx, organizationID); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list accounts for organization %s: %w", organizationID, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}

	if filter.IncludeChildren {
		all := accounts
		if filter.AccountType != nil || filter.IsActive != nil {
			// Parents and children may fall outside the filter.
			all, err = s.accountRepo.ListAccounts(ctx, organizationID, domain.AccountFilter{})
			if err != nil {
				s.LogError(ctx, err, "Failed to load account hierarchy", slog.String("organization_id", organizationID))
				return nil, err
			}
		}
		attachHierarchy(accounts, all)
	}

	s.LogDebug(ctx, "Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

// attachHierarchy sets Parent and direct Children on each account from the full chart.
// Attached relatives are shallow copies without their own relatives.
func attachHierarchy(accounts []domain.Account, all []domain.Account) {
	byID := make(map[string]domain.Account, len(all))
	children := make(map[string][]domain.Account)
	for _, a := range all {
		byID[a.AccountID] = a
		if a.ParentAccountID != "" {
			children[a.ParentAccountID] = append(children[a.ParentAccountID], a)
		}
	}
	for i := range accounts {
		if p, ok := byID[accounts[i].ParentAccountID]; ok {
			parent := p
			accounts[i].Parent = &parent
		}
		if kids := children[accounts[i].AccountID]; len(kids) > 0 {
			accounts[i].Children = kids
		}
	}
}

func (s *accountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
		updated = true
	}
	if req.SubType != nil {
		account.SubType = *req.SubType
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update", slog.String("account_id", accountID))
		return account, nil
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", account.AccountID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	if _, err := s.GetAccountByID(ctx, organizationID, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) SetupDefaultChart(ctx context.Context, organizationID string, userID string) ([]domain.Account, error) {
	if err := s.RequireAccounting(ctx, organizationID); err != nil {
		return nil, err
	}

	count, err := s.accountRepo.CountAccounts(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count accounts", slog.String("organization_id", organizationID))
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: organization already has a chart of accounts", apperrors.ErrDuplicateCode)
	}

	currency := s.LocalCurrency(ctx, organizationID)
	now := time.Now()
	idsByCode := make(map[string]string, len(defaultChart))
	accounts := make([]domain.Account, 0, len(defaultChart))
	for _, row := range defaultChart {
		id := uuid.NewString()
		idsByCode[row.code] = id
		accounts = append(accounts, domain.Account{
			AccountID:       id,
			OrganizationID:  organizationID,
			Code:            row.code,
			Name:            row.name,
			AccountType:     row.accountType,
			SubType:         row.subType,
			ParentAccountID: idsByCode[parentCode(row.code)],
			CurrencyCode:    currency,
			IsActive:        true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.accountRepo.Rollback(ctx, tx)

	if err := s.accountRepo.SaveAccountsInTx(ctx, tx, accounts); err != nil {
		s.LogError(ctx, err, "Failed to save default chart", slog.String("organization_id", organizationID))
		return nil, err
	}
	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Default chart of accounts created", slog.Int("count", len(accounts)))
	return accounts, nil
}
