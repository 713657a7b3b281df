package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pharaohvault-be/internal/bootstrap"
	"pharaohvault-be/internal/config"
	"pharaohvault-be/internal/server"
	"pharaohvault-be/internal/tracer"
	"pharaohvault-be/pkg/database"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 0. Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer(ctx)
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.Options{})
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	// 4. Start Background Services
	log.Println("Background: Starting Consumer Service...")
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}
	go runPendingSweep(ctx, container, cfg.Reconcile)

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}

// runPendingSweep expires abandoned checkouts until ctx is cancelled.
func runPendingSweep(ctx context.Context, c *bootstrap.Container, cfg config.ReconcileConfig) {
	if cfg.SweepInterval <= 0 {
		log.Println("Background: Pending sweep disabled")
		return
	}

	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := c.ReconcileService.SweepStalePending(ctx, cfg.PendingTTL); err != nil {
				c.Logger.Error("RECONCILE", "Pending sweep failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}
