package pgsql

import (
	"context"
	"fmt"
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
	cashBoxColumns     = `cash_box_id, organization_id, name, currency_code, description, is_active, created_at, created_by, last_updated_at, last_updated_by`
	bankAccountColumns = `bank_account_id, organization_id, name, bank_name, account_number, currency_code, description, is_active, created_at, created_by, last_updated_at, last_updated_by`
)

// PgxTreasuryRepository covers cash boxes, bank accounts, their balance rows and the
// treasury transaction log. Its methods are split across treasury_, balance_ and
// transaction_repository.go.
type PgxTreasuryRepository struct {
	BaseRepository
}

func newPgxTreasuryRepository(pool *pgxpool.Pool) *PgxTreasuryRepository {
	return &PgxTreasuryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TreasuryRepositoryWithTx = (*PgxTreasuryRepository)(nil)

func scanCashBox(row pgx.Row) (domain.CashBox, error) {
	var m models.CashBox
	err := row.Scan(
		&m.CashBoxID,
		&m.OrganizationID,
		&m.Name,
		&m.CurrencyCode,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.CashBox{}, err
	}
	return mapping.ToDomainCashBox(m), nil
}

func scanBankAccount(row pgx.Row) (domain.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.BankAccountID,
		&m.OrganizationID,
		&m.Name,
		&m.BankName,
		&m.AccountNumber,
		&m.CurrencyCode,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.BankAccount{}, err
	}
	return mapping.ToDomainBankAccount(m), nil
}

// SaveCashBoxInTx inserts a cash box inside tx.
func (r *PgxTreasuryRepository) SaveCashBoxInTx(ctx context.Context, tx pgx.Tx, cashBox domain.CashBox) error {
	m := mapping.ToModelCashBox(cashBox)
	query := `INSERT INTO cash_boxes (` + cashBoxColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := tx.Exec(ctx, query,
		m.CashBoxID,
		m.OrganizationID,
		m.Name,
		m.CurrencyCode,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save cash box %s: %w", m.CashBoxID, err)
	}
	return nil
}

// SaveBankAccountInTx inserts a bank account inside tx.
func (r *PgxTreasuryRepository) SaveBankAccountInTx(ctx context.Context, tx pgx.Tx, bankAccount domain.BankAccount) error {
	m := mapping.ToModelBankAccount(bankAccount)
	query := `INSERT INTO bank_accounts (` + bankAccountColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err := tx.Exec(ctx, query,
		m.BankAccountID,
		m.OrganizationID,
		m.Name,
		m.BankName,
		m.AccountNumber,
		m.CurrencyCode,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save bank account %s: %w", m.BankAccountID, err)
	}
	return nil
}

func (r *PgxTreasuryRepository) FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error) {
	query := `SELECT ` + cashBoxColumns + ` FROM cash_boxes WHERE cash_box_id = $1;`
	cb, err := scanCashBox(r.Pool.QueryRow(ctx, query, cashBoxID))
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash box %s: %w", cashBoxID, err)
	}
	return &cb, nil
}

func (r *PgxTreasuryRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`
	ba, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}
	return &ba, nil
}

func (r *PgxTreasuryRepository) ListCashBoxes(ctx context.Context, organizationID string, includeInactive bool) ([]domain.CashBox, error) {
	query := `SELECT ` + cashBoxColumns + `
		FROM cash_boxes
		WHERE organization_id = $1 AND (is_active OR $2)
		ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, organizationID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash boxes for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	boxes := []domain.CashBox{}
	for rows.Next() {
		cb, err := scanCashBox(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash box row: %w", err)
		}
		boxes = append(boxes, cb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash box rows: %w", err)
	}
	return boxes, nil
}

func (r *PgxTreasuryRepository) ListBankAccounts(ctx context.Context, organizationID string, includeInactive bool) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + `
		FROM bank_accounts
		WHERE organization_id = $1 AND (is_active OR $2)
		ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, organizationID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		ba, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		accounts = append(accounts, ba)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank account rows: %w", err)
	}
	return accounts, nil
}

// DeactivateInstrument soft-deletes a cash box or bank account. Balance rows are kept.
func (r *PgxTreasuryRepository) DeactivateInstrument(ctx context.Context, instrument domain.Instrument, userID string, now time.Time) error {
	var query string
	switch instrument.Type {
	case domain.CashBoxInstrument:
		query = `UPDATE cash_boxes SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3 WHERE cash_box_id = $1;`
	case domain.BankAccountInstrument:
		query = `UPDATE bank_accounts SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3 WHERE bank_account_id = $1;`
	default:
		return fmt.Errorf("%w: unknown instrument type %q", apperrors.ErrValidation, instrument.Type)
	}

	cmdTag, err := r.Pool.Exec(ctx, query, instrument.ID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate %s %s: %w", instrument.Type, instrument.ID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
