package services

import (
	"github.com/SscSPs/buildledger/internal/core/domain"
	portsrepo "github.com/SscSPs/buildledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/buildledger/internal/core/ports/services"
	"github.com/SscSPs/buildledger/internal/platform/cache"
	"github.com/SscSPs/buildledger/internal/platform/config"
	"github.com/SscSPs/buildledger/internal/platform/events"
	"github.com/SscSPs/buildledger/internal/platform/metrics"
)

// ContainerOption configures the shared infrastructure handed to services.
type ContainerOption func(*containerDeps)

type containerDeps struct {
	metrics   *metrics.Metrics
	publisher events.Publisher
}

func WithMetrics(m *metrics.Metrics) ContainerOption {
	return func(d *containerDeps) {
		d.metrics = m
	}
}

func WithEventPublisher(p events.Publisher) ContainerOption {
	return func(d *containerDeps) {
		d.publisher = p
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...ContainerOption) *portssvc.ServiceContainer {
	deps := &containerDeps{publisher: events.NoopPublisher{}}
	for _, option := range options {
		option(deps)
	}

	container := &portssvc.ServiceContainer{}

	// Organization first, the accounting services check it on every call
	container.Organization = NewOrganizationService(repos.OrganizationRepo)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountOrganizations(container.Organization),
	)
	container.Journal = NewJournalService(
		repos.JournalRepo,
		container.Account,
		WithJournalOrganizations(container.Organization),
	)

	container.Treasury = NewTreasuryService(
		repos.TreasuryRepo,
		WithBalanceCache(cache.New[domain.ConsolidatedBalances](cfg.BalanceCacheTTL)),
		WithTreasuryMetrics(deps.metrics),
		WithTreasuryEvents(deps.publisher),
		WithTreasuryOrganizations(container.Organization),
	)

	// Clearing books through the treasury repository inside the check transaction
	container.Check = NewCheckService(
		repos.CheckRepo,
		repos.TreasuryRepo,
		container.Treasury,
		WithCheckMetrics(deps.metrics),
		WithCheckEvents(deps.publisher),
		WithBalanceInvalidator(container.Treasury),
	)

	return container
}
