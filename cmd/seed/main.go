package main

import (
	"context"
	"errors"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-content-platform/config"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/entity"
	"github.com/oksasatya/go-ddd-content-platform/internal/domain/errs"
	pginfra "github.com/oksasatya/go-ddd-content-platform/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-content-platform/pkg/helpers"
)

// seed creates the first ADMIN member. Registration only ever creates
// MEMBERs, so an admin has to come from here.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	if cfg.SeedAdminPassword == "" {
		logger.Fatal("SEED_ADMIN_PASSWORD is required")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{DSN: cfg.PostgresDSN(), MaxConns: 2, MinConns: 1})
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	email, err := entity.NewEmail(cfg.SeedAdminEmail)
	if err != nil {
		logger.Fatalf("seed admin email: %v", err)
	}
	password, err := entity.NewPassword(cfg.SeedAdminPassword)
	if err != nil {
		logger.Fatalf("seed admin password: %v", err)
	}
	admin, err := entity.NewMember(email, password, cfg.SeedAdminName, entity.RoleAdmin)
	if err != nil {
		logger.Fatalf("seed admin: %v", err)
	}

	repo := pginfra.NewMemberRepository(pool)
	err = repo.Save(ctx, admin)
	var exists *errs.ResourceAlreadyExistsError
	switch {
	case errors.As(err, &exists):
		logger.WithField("email", helpers.MaskEmail(email.String())).Info("admin already seeded")
	case err != nil:
		logger.Fatalf("failed to seed admin: %v", err)
	default:
		logger.WithField("member_id", admin.ID()).WithField("email", helpers.MaskEmail(email.String())).Info("admin seeded")
	}
}
