package pgsql

import (
	portsrepo "github.com/SscSPs/buildledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		OrganizationRepo: newPgxOrganizationRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		TreasuryRepo:     newPgxTreasuryRepository(dbPool),
		CheckRepo:        newPgxCheckRepository(dbPool),
	}
}
