package main

import (
	"context"
	"log"
	"strings"
	"time"

	"pharaohvault-be/internal/config"
	"pharaohvault-be/internal/entity"
	"pharaohvault-be/internal/repository/specification"
	"pharaohvault-be/internal/repository/unitofwork"
	"pharaohvault-be/pkg/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the first admin account from SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD.
// An existing user with that email is promoted instead.
func main() {
	cfg := config.Load()
	if cfg.Auth.AdminEmail == "" || cfg.Auth.AdminSecret == "" {
		log.Fatal("Error: SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.Options{})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	email := strings.ToLower(strings.TrimSpace(cfg.Auth.AdminEmail))

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		log.Fatalf("Error: Failed to look up %s: %v", email, err)
	}
	if existing != nil {
		if existing.IsAdmin() {
			log.Printf("[INFO] %s is already an admin", email)
			return
		}
		if err := uow.UserRepository().UpdateRole(ctx, existing.Id, entity.UserRoleAdmin); err != nil {
			log.Fatalf("Error: Failed to promote %s: %v", email, err)
		}
		log.Printf("[INFO] Promoted %s to admin", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.AdminSecret), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: Failed to hash password: %v", err)
	}

	now := time.Now()
	admin := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Role:         entity.UserRoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.UserRepository().Create(ctx, admin); err != nil {
		log.Fatalf("Error: Failed to create admin: %v", err)
	}

	log.Printf("[INFO] Created admin %s", email)
}
