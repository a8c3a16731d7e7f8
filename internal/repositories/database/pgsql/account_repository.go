package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/buildledger/internal/apperrors"
	"github.com/SscSPs/buildledger/internal/core/domain"
	portsrepo "github.com/SscSPs/buildledger/internal/core/ports/repositories"
	"github.com/SscSPs/buildledger/internal/models"
	"github.com/SscSPs/buildledger/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	accountColumns         = `account_id, organization_id, code, name, account_type, sub_type, parent_account_id, currency_code, description, is_active, created_at, created_by, last_updated_at, last_updated_by`
	accountCodeConstraint  = "uq_accounts_org_code"
	insertAccountStatement = `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.OrganizationID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.SubType,
		&m.ParentAccountID,
		&m.CurrencyCode,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func accountArgs(a domain.Account) []any {
	m := mapping.ToModelAccount(a)
	return []any{
		m.AccountID,
		m.OrganizationID,
		m.Code,
		m.Name,
		m.AccountType,
		m.SubType,
		m.ParentAccountID,
		m.CurrencyCode,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	if _, err := r.Pool.Exec(ctx, insertAccountStatement, accountArgs(account)...); err != nil {
		if isUniqueViolation(err, accountCodeConstraint) {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateCode, account.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// SaveAccountsInTx inserts accounts in order inside tx, so parents must precede their children.
func (r *PgxAccountRepository) SaveAccountsInTx(ctx context.Context, tx pgx.Tx, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, a := range accounts {
		batch.Queue(insertAccountStatement, accountArgs(a)...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err, accountCodeConstraint) {
			return apperrors.ErrDuplicateCode
		}
		return fmt.Errorf("failed to save account batch: %w", err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &acc, nil
}

// FindAccountByCode retrieves an account by its code within an organization.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE organization_id = $1 AND code = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, organizationID, code))
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
// Missing or malformed IDs are simply absent from the returned map.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	ids := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		if _, err := uuid.Parse(id); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}
	return accountsMap, nil
}

// ListAccounts retrieves the organization's accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, organizationID string, filter domain.AccountFilter) ([]domain.Account, error) {
	conditions := []string{"organization_id = $1"}
	args := []any{organizationID}
	if filter.AccountType != nil {
		args = append(args, string(*filter.AccountType))
		conditions = append(conditions, fmt.Sprintf("account_type = $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", len(args)))
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for organization %s: %w", organizationID, err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for organization %s: %w", organizationID, err)
	}
	return accounts, nil
}

// CountAccounts returns how many accounts the organization has.
func (r *PgxAccountRepository) CountAccounts(ctx context.Context, organizationID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE organization_id = $1;`, organizationID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts for organization %s: %w", organizationID, err)
	}
	return count, nil
}

// UpdateAccount updates the mutable fields of an account.
// Code, type, currency and parent are fixed once created.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, sub_type = $3, description = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.SubType,
		account.Description,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update account %s: %w", account.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either missing or already inactive.
		if _, findErr := r.FindAccountByID(ctx, accountID); findErr != nil {
			return findErr
		}
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrConflict, accountID)
	}
	return nil
}
