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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	checkColumns          = `check_id, organization_id, check_number, amount, currency_code, issuer_name, issuer_bank, issue_date, due_date, status, is_received, cash_box_id, bank_account_id, received_from, issued_to, description, cleared_at, created_at, created_by, last_updated_at, last_updated_by`
	checkNumberConstraint = "uq_checks_org_number"
)

type PgxCheckRepository struct {
	BaseRepository
}

func newPgxCheckRepository(pool *pgxpool.Pool) *PgxCheckRepository {
	return &PgxCheckRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CheckRepositoryWithTx = (*PgxCheckRepository)(nil)

func scanCheck(row pgx.Row) (domain.Check, error) {
	var m models.Check
	err := row.Scan(
		&m.CheckID,
		&m.OrganizationID,
		&m.CheckNumber,
		&m.Amount,
		&m.CurrencyCode,
		&m.IssuerName,
		&m.IssuerBank,
		&m.IssueDate,
		&m.DueDate,
		&m.Status,
		&m.IsReceived,
		&m.CashBoxID,
		&m.BankAccountID,
		&m.ReceivedFrom,
		&m.IssuedTo,
		&m.Description,
		&m.ClearedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Check{}, err
	}
	return mapping.ToDomainCheck(m), nil
}

func collectChecks(rows pgx.Rows) ([]domain.Check, error) {
	defer rows.Close()
	checks := []domain.Check{}
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check row: %w", err)
		}
		checks = append(checks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating check rows: %w", err)
	}
	return checks, nil
}

// SaveCheck inserts a new check.
func (r *PgxCheckRepository) SaveCheck(ctx context.Context, check domain.Check) error {
	m := mapping.ToModelCheck(check)
	query := `
		INSERT INTO checks (` + checkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CheckID,
		m.OrganizationID,
		m.CheckNumber,
		m.Amount,
		m.CurrencyCode,
		m.IssuerName,
		m.IssuerBank,
		m.IssueDate,
		m.DueDate,
		m.Status,
		m.IsReceived,
		m.CashBoxID,
		m.BankAccountID,
		m.ReceivedFrom,
		m.IssuedTo,
		m.Description,
		m.ClearedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, checkNumberConstraint) {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateCheckNumber, check.CheckNumber)
		}
		return fmt.Errorf("failed to save check %s: %w", m.CheckID, err)
	}
	return nil
}

func (r *PgxCheckRepository) FindCheckByID(ctx context.Context, checkID string) (*domain.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks WHERE check_id = $1;`
	c, err := scanCheck(r.Pool.QueryRow(ctx, query, checkID))
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find check %s: %w", checkID, err)
	}
	return &c, nil
}

func (r *PgxCheckRepository) FindCheckByNumber(ctx context.Context, organizationID, checkNumber string) (*domain.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks WHERE organization_id = $1 AND check_number = $2;`
	c, err := scanCheck(r.Pool.QueryRow(ctx, query, organizationID, checkNumber))
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find check %s: %w", checkNumber, err)
	}
	return &c, nil
}

// FindCheckByIDForUpdate locks the check row until tx ends.
// Must be called within a transaction.
func (r *PgxCheckRepository) FindCheckByIDForUpdate(ctx context.Context, tx pgx.Tx, checkID string) (*domain.Check, error) {
	query := `SELECT ` + checkColumns + ` FROM checks WHERE check_id = $1 FOR UPDATE;`
	c, err := scanCheck(tx.QueryRow(ctx, query, checkID))
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock check %s: %w", checkID, err)
	}
	return &c, nil
}

func (r *PgxCheckRepository) ListChecks(ctx context.Context, organizationID string, filter domain.CheckFilter) ([]domain.Check, error) {
	conditions := []string{"organization_id = $1"}
	args := []any{organizationID}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.DueBefore != nil {
		args = append(args, *filter.DueBefore)
		conditions = append(conditions, fmt.Sprintf("due_date <= $%d", len(args)))
	}

	query := `SELECT ` + checkColumns + ` FROM checks WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY due_date, check_number;`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query checks for organization %s: %w", organizationID, err)
	}
	return collectChecks(rows)
}

// ListDueChecks retrieves PENDING checks due on or before asOf (compared by date).
func (r *PgxCheckRepository) ListDueChecks(ctx context.Context, organizationID string, asOf time.Time) ([]domain.Check, error) {
	query := `SELECT ` + checkColumns + `
		FROM checks
		WHERE organization_id = $1 AND status = $2 AND due_date <= $3::date
		ORDER BY due_date, check_number;`
	rows, err := r.Pool.Query(ctx, query, organizationID, string(domain.CheckPending), asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query due checks for organization %s: %w", organizationID, err)
	}
	return collectChecks(rows)
}

// UpdateCheckStatus sets a status outside any ledger transaction. CLEARED is excluded
// so a cleared check can never be moved back.
func (r *PgxCheckRepository) UpdateCheckStatus(ctx context.Context, checkID string, status domain.CheckStatus, userID string, now time.Time) error {
	query := `
		UPDATE checks
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE check_id = $1 AND status <> 'CLEARED';
	`
	cmdTag, err := r.Pool.Exec(ctx, query, checkID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update check %s status: %w", checkID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindCheckByID(ctx, checkID); findErr != nil {
			return findErr
		}
		return apperrors.ErrCheckAlreadyCleared
	}
	return nil
}

// MarkClearedInTx moves the check to CLEARED inside tx.
func (r *PgxCheckRepository) MarkClearedInTx(ctx context.Context, tx pgx.Tx, checkID string, userID string, now time.Time) error {
	query := `
		UPDATE checks
		SET status = 'CLEARED', cleared_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE check_id = $1 AND status <> 'CLEARED';
	`
	cmdTag, err := tx.Exec(ctx, query, checkID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to mark check %s cleared: %w", checkID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCheckAlreadyCleared
	}
	return nil
}
