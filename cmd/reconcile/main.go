package main

import (
	"context"
	"flag"
	"os"

	"pharaohvault-be/internal/config"
	"pharaohvault-be/internal/pkg/logger"
	"pharaohvault-be/internal/repository/unitofwork"
	"pharaohvault-be/internal/service"
	adminEvents "pharaohvault-be/pkg/admin/events"
	"pharaohvault-be/pkg/database"

	"github.com/fatih/color"
)

// One-off maintenance for checkouts that never completed.
//
//	go run ./cmd/reconcile                  expire pending rows older than PENDING_TTL
//	go run ./cmd/reconcile -older-than 2h   override the cutoff
//	go run ./cmd/reconcile -purge           delete every pending_payment row
func main() {
	cfg := config.Load()

	olderThan := flag.Duration("older-than", cfg.Reconcile.PendingTTL, "expire pending subscriptions created before now minus this")
	purge := flag.Bool("purge", false, "delete all pending_payment subscriptions instead of expiring them")
	flag.Parse()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.Options{})
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	log := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	reconciler := service.NewReconcileService(
		unitofwork.NewRepositoryFactory(db),
		adminEvents.NopPublisher{},
		log,
	)

	ctx := context.Background()

	if *purge {
		color.Yellow("Deleting all pending_payment subscriptions...")
		deleted, err := reconciler.DeletePending(ctx)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		color.Green("Deleted %d subscription(s)", deleted)
		return
	}

	color.Yellow("Expiring pending_payment subscriptions older than %s...", *olderThan)
	expired, err := reconciler.SweepStalePending(ctx, *olderThan)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if expired == 0 {
		color.Cyan("Nothing to expire")
		return
	}
	color.Green("Expired %d subscription(s)", expired)
}
