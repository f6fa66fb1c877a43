package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/anon-inbox/config"
	"github.com/oksasatya/anon-inbox/internal/domain/entity"
	"github.com/oksasatya/anon-inbox/internal/domain/repository"
	pginfra "github.com/oksasatya/anon-inbox/internal/infrastructure/postgres"
	"github.com/oksasatya/anon-inbox/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, nil); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	db := pginfra.NewDB(cfg.PostgresDSN(), pginfra.Options{MaxConns: 2})
	defer db.Close()

	users := pginfra.NewUserRepository(db)
	messages := pginfra.NewMessageRepository(db)

	username := "alice"
	email := "alice@example.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	code, err := helpers.GenOTPCode()
	if err != nil {
		log.Fatalf("failed to generate code: %v", err)
	}

	u := &entity.User{
		Name:              "Alice",
		Username:          username,
		Email:             email,
		Password:          hash,
		VerifyCode:        code,
		VerifyCodeExpires: time.Now().Add(cfg.VerifyCodeTTL),
	}
	err = users.UpsertUnverified(ctx, u)
	switch {
	case errors.Is(err, repository.ErrEmailTaken), errors.Is(err, repository.ErrUsernameTaken):
		fmt.Printf("demo user already seeded: username=%s email=%s\n", username, email)
		return
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	}
	if err := users.MarkVerified(ctx, u.ID); err != nil {
		log.Fatalf("failed to verify user: %v", err)
	}
	if _, err := messages.AppendMessage(ctx, u.ID, "welcome to your anonymous inbox!", time.Now()); err != nil {
		log.Fatalf("failed to seed message: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=%s email=%s password=%s\n", u.ID, username, email, password)
}
