package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/buildledger/internal/apperrors"
	"github.com/SscSPs/buildledger/internal/core/domain"
	portsrepo "github.com/SscSPs/buildledger/internal/core/ports/repositories"
	"github.com/SscSPs/buildledger/internal/models"
	"github.com/SscSPs/buildledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const organizationColumns = `organization_id, name, local_currency, accounting_enabled, is_active, created_at, created_by, last_updated_at, last_updated_by`

// PgxOrganizationRepository reads organizations owned by the wider ERP.
type PgxOrganizationRepository struct {
	BaseRepository
}

func newPgxOrganizationRepository(pool *pgxpool.Pool) *PgxOrganizationRepository {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrganizationReader = (*PgxOrganizationRepository)(nil)

func scanOrganization(row pgx.Row) (domain.Organization, error) {
	var m models.Organization
	err := row.Scan(
		&m.OrganizationID,
		&m.Name,
		&m.LocalCurrency,
		&m.AccountingEnabled,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Organization{}, err
	}
	return mapping.ToDomainOrganization(m), nil
}

// FindOrganizationByID retrieves an organization by its ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE organization_id = $1;`
	org, err := scanOrganization(r.Pool.QueryRow(ctx, query, organizationID))
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization %s: %w", organizationID, err)
	}
	return &org, nil
}

// ListAccountingOrganizations retrieves active organizations with accounting enabled.
func (r *PgxOrganizationRepository) ListAccountingOrganizations(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT ` + organizationColumns + `
		FROM organizations
		WHERE is_active = TRUE AND accounting_enabled = TRUE
		ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounting organizations: %w", err)
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization row: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organization rows: %w", err)
	}
	return orgs, nil
}
