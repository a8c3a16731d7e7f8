package pgsql

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/buildledger/internal/apperrors"
	"github.com/SscSPs/buildledger/internal/core/domain"
	portsrepo "github.com/SscSPs/buildledger/internal/core/ports/repositories"
	"github.com/SscSPs/buildledger/internal/models"
	"github.com/SscSPs/buildledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	journalColumns      = `entry_id, organization_id, entry_number, account_id, debit, credit, currency_code, description, entry_date, is_automatic, source_type, source_id, created_at, created_by, last_updated_at, last_updated_by`
	defaultJournalLimit = 100
)

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournalEntry(row pgx.Row) (domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.EntryNumber,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.CurrencyCode,
		&m.Description,
		&m.EntryDate,
		&m.IsAutomatic,
		&m.SourceType,
		&m.SourceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	return mapping.ToDomainJournalEntry(m), nil
}

func collectJournalEntries(rows pgx.Rows) ([]domain.JournalEntry, error) {
	defer rows.Close()
	entries := []domain.JournalEntry{}
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}
	return entries, nil
}

// SaveEntries inserts all lines in a single transaction using a batch.
func (r *PgxJournalRepository) SaveEntries(ctx context.Context, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO journal_entries (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelJournalEntry(e)
		batch.Queue(query,
			m.EntryID,
			m.OrganizationID,
			m.EntryNumber,
			m.AccountID,
			m.Debit,
			m.Credit,
			m.CurrencyCode,
			m.Description,
			m.EntryDate,
			m.IsAutomatic,
			m.SourceType,
			m.SourceID,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to insert journal entry lines for "+entries[0].EntryNumber, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a single journal entry line.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE entry_id = $1;`
	e, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	return &e, nil
}

// FindEntriesByNumber retrieves every line of an entry number within an organization.
func (r *PgxJournalRepository) FindEntriesByNumber(ctx context.Context, organizationID, entryNumber string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE organization_id = $1 AND entry_number = $2
		ORDER BY created_at, entry_id;`
	rows, err := r.Pool.Query(ctx, query, organizationID, entryNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entry %s: %w", entryNumber, err)
	}
	return collectJournalEntries(rows)
}

// ListEntries retrieves lines matching the filter, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, organizationID string, filter domain.JournalEntryFilter) ([]domain.JournalEntry, error) {
	conditions := []string{"organization_id = $1"}
	args := []any{organizationID}
	add := func(cond string, v any) {
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if filter.AccountID != "" {
		add("account_id = $%d", filter.AccountID)
	}
	if filter.EntryNumber != "" {
		add("entry_number = $%d", filter.EntryNumber)
	}
	if filter.From != nil {
		add("entry_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("entry_date <= $%d", *filter.To)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultJournalLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(`SELECT %s
		FROM journal_entries
		WHERE %s
		ORDER BY entry_date DESC, created_at DESC, entry_id
		LIMIT $%d OFFSET $%d;`, journalColumns, strings.Join(conditions, " AND "), len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries for organization %s: %w", organizationID, err)
	}
	return collectJournalEntries(rows)
}

// ListEntryNumbers returns the distinct entry numbers that start with prefix.
func (r *PgxJournalRepository) ListEntryNumbers(ctx context.Context, organizationID, prefix string) ([]string, error) {
	query := `SELECT DISTINCT entry_number FROM journal_entries WHERE organization_id = $1 AND entry_number LIKE $2;`
	rows, err := r.Pool.Query(ctx, query, organizationID, prefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to list entry numbers: %w", err)
	}
	defer rows.Close()

	numbers := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan entry number: %w", err)
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

// DeleteEntryByID removes one line scoped to the organization.
func (r *PgxJournalRepository) DeleteEntryByID(ctx context.Context, organizationID, entryID string) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM journal_entries WHERE organization_id = $1 AND entry_id = $2;`, organizationID, entryID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	return cmdTag.RowsAffected(), nil
}

// deleteManualEntrySQL removes the lines of a manual entry. Automatic lines never
// share in a manual delete, even when their entry number collides.
const deleteManualEntrySQL = `DELETE FROM journal_entries WHERE organization_id = $1 AND entry_number = $2 AND is_automatic = FALSE;`

// DeleteEntriesByNumber removes every manual line sharing entryNumber within the organization in one statement.
func (r *PgxJournalRepository) DeleteEntriesByNumber(ctx context.Context, organizationID, entryNumber string) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, deleteManualEntrySQL, organizationID, entryNumber)
	if err != nil {
		return 0, fmt.Errorf("failed to delete journal entry %s: %w", entryNumber, err)
	}
	return cmdTag.RowsAffected(), nil
}
