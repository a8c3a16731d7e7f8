package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/SscSPs/buildledger/internal/models"
	"github.com/SscSPs/buildledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UpsertBalanceInTx adds delta to the balance row in a single statement, so concurrent
// writers on the same row serialize on the row lock instead of losing updates.
func (r *PgxTreasuryRepository) UpsertBalanceInTx(ctx context.Context, tx pgx.Tx, instrument domain.Instrument, currency domain.Currency, delta decimal.Decimal) error {
	query := `
		INSERT INTO account_balances (account_id, account_type, currency_code, balance, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (account_id, account_type, currency_code)
		DO UPDATE SET balance = account_balances.balance + EXCLUDED.balance, updated_at = NOW();
	`
	if _, err := tx.Exec(ctx, query, instrument.ID, string(instrument.Type), string(currency), delta); err != nil {
		return fmt.Errorf("failed to upsert balance for %s %s (%s): %w", instrument.Type, instrument.ID, currency, err)
	}
	return nil
}

// ListBalances returns every balance row belonging to the organization's instruments,
// active or not; callers decide which instruments to report.
func (r *PgxTreasuryRepository) ListBalances(ctx context.Context, organizationID string) ([]domain.AccountBalance, error) {
	query := `
		SELECT ab.account_id, ab.account_type, ab.currency_code, ab.balance, ab.updated_at
		FROM account_balances ab
		WHERE (ab.account_type = 'CASH_BOX' AND ab.account_id IN (SELECT cash_box_id FROM cash_boxes WHERE organization_id = $1))
		   OR (ab.account_type = 'BANK_ACCOUNT' AND ab.account_id IN (SELECT bank_account_id FROM bank_accounts WHERE organization_id = $1))
		ORDER BY ab.account_type, ab.account_id, ab.currency_code;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	balances := []domain.AccountBalance{}
	for rows.Next() {
		var m models.AccountBalance
		if err := rows.Scan(&m.AccountID, &m.AccountType, &m.CurrencyCode, &m.Balance, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		balances = append(balances, mapping.ToDomainAccountBalance(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}
	return balances, nil
}
