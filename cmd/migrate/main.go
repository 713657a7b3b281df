package main

import (
	"log"

	"pharaohvault-be/internal/config"
	"pharaohvault-be/internal/model"
	"pharaohvault-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.Options{})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	models := []interface{}{
		&model.User{},
		&model.BillingCustomer{},
		&model.Subscription{},
		&model.CancellationRequest{},
		&model.WithdrawalRequest{},
		&model.Order{},
		&model.MetalPrice{},
	}

	log.Printf("Step 2: Running AutoMigrate for %d tables...", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 3: Creating constraints and partial indexes...")
	postMigrationSQL := []string{
		// Requests and orders follow their subscription.
		addForeignKey("cancellation_requests", "fk_cancellation_requests_subscription", "subscription_id", "subscriptions", "CASCADE"),
		addForeignKey("withdrawal_requests", "fk_withdrawal_requests_subscription", "subscription_id", "subscriptions", "CASCADE"),
		addForeignKey("orders", "fk_orders_subscription", "subscription_id", "subscriptions", "SET NULL"),
		addForeignKey("billing_customers", "fk_billing_customers_user", "user_id", "users", "CASCADE"),

		// At most one open request of each kind per subscription.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_cancellation_requests_open
		 ON cancellation_requests (subscription_id)
		 WHERE status IN ('pending', 'in_review', 'approved');`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_withdrawal_requests_open
		 ON withdrawal_requests (subscription_id)
		 WHERE status IN ('pending', 'approved', 'processing', 'out_for_delivery');`,

		`CREATE INDEX IF NOT EXISTS idx_subscriptions_pending_created
		 ON subscriptions (created_at)
		 WHERE status = 'pending_payment';`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("[INFO] Database migration completed")
}

func addForeignKey(table, name, column, ref, onDelete string) string {
	return `DO $$ BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '` + name + `') THEN
		ALTER TABLE ` + table + ` ADD CONSTRAINT ` + name + `
		FOREIGN KEY (` + column + `) REFERENCES ` + ref + `(id) ON DELETE ` + onDelete + `;
	END IF;
	END $$;`
}
