package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/SscSPs/buildledger/internal/models"
	"github.com/SscSPs/buildledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `transaction_id, organization_id, amount, currency_code, transaction_type, category, description, transaction_date, reference, cash_box_id, bank_account_id, check_id, created_at, created_by`

// SaveTransactionInTx appends a treasury movement inside tx.
func (r *PgxTreasuryRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `INSERT INTO transactions (` + transactionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.OrganizationID,
		m.Amount,
		m.CurrencyCode,
		m.TransactionType,
		m.Category,
		m.Description,
		m.Date,
		m.Reference,
		m.CashBoxID,
		m.BankAccountID,
		m.CheckID,
		m.CreatedAt,
		m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// ListTransactions retrieves movements newest first, optionally for a single instrument.
func (r *PgxTreasuryRepository) ListTransactions(ctx context.Context, organizationID string, instrument *domain.Instrument, limit int, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var cashBoxID, bankAccountID *string
	if instrument != nil {
		id := instrument.ID
		if instrument.Type == domain.CashBoxInstrument {
			cashBoxID = &id
		} else {
			bankAccountID = &id
		}
	}

	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE organization_id = $1
		  AND ($2::uuid IS NULL OR cash_box_id = $2)
		  AND ($3::uuid IS NULL OR bank_account_id = $3)
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $4 OFFSET $5;`
	rows, err := r.Pool.Query(ctx, query, organizationID, cashBoxID, bankAccountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(
			&m.TransactionID,
			&m.OrganizationID,
			&m.Amount,
			&m.CurrencyCode,
			&m.TransactionType,
			&m.Category,
			&m.Description,
			&m.Date,
			&m.Reference,
			&m.CashBoxID,
			&m.BankAccountID,
			&m.CheckID,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}
