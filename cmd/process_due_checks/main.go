// Command process_due_checks clears every PENDING check whose due date has
// passed, for each organization with accounting enabled. Meant to run daily
// from cron.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/buildledger/internal/core/services"
	"github.com/SscSPs/buildledger/internal/platform/config"
	"github.com/SscSPs/buildledger/internal/platform/events"
	"github.com/SscSPs/buildledger/internal/platform/metrics"
	"github.com/SscSPs/buildledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/buildledger/pkg/database"
)

const sweepUserID = "system:due-check-sweep"

func main() {
	os.Exit(run())
}

func run() int {
	asOfFlag := flag.String("as-of", "", "sweep date (YYYY-MM-DD), defaults to today")
	orgFlag := flag.String("org", "", "limit the sweep to one organization")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	asOf := time.Now().UTC()
	if *asOfFlag != "" {
		parsed, err := time.Parse("2006-01-02", *asOfFlag)
		if err != nil {
			logger.Error("Invalid -as-of", slog.String("error", err.Error()))
			return 2
		}
		asOf = parsed
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		return 1
	}
	defer database.ClosePgxPool(dbPool)

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer publisher.Close()

	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool),
		services.WithMetrics(metrics.New()),
		services.WithEventPublisher(publisher),
	)

	orgIDs := []string{*orgFlag}
	if *orgFlag == "" {
		orgs, err := container.Organization.ListAccountingOrganizations(ctx)
		if err != nil {
			logger.Error("Failed to list organizations", slog.String("error", err.Error()))
			return 1
		}
		orgIDs = orgIDs[:0]
		for _, org := range orgs {
			orgIDs = append(orgIDs, org.OrganizationID)
		}
	}

	failed := 0
	for _, orgID := range orgIDs {
		report, err := container.Check.ProcessDueChecks(ctx, orgID, asOf, sweepUserID)
		if err != nil {
			attrs := []any{slog.String("organization_id", orgID), slog.String("error", err.Error())}
			if report != nil {
				attrs = append(attrs, slog.Int("cleared", len(report.Processed)), slog.Int("failed", len(report.Failed)))
			}
			logger.Error("Due check sweep aborted", attrs...)
			return 1
		}
		failed += len(report.Failed)
		logger.Info("Due checks processed",
			slog.String("organization_id", orgID),
			slog.Int("cleared", len(report.Processed)),
			slog.Int("failed", len(report.Failed)))
	}

	if failed > 0 {
		return 3
	}
	return 0
}
