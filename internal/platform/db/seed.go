package db

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suvo-Ghosh/EMS/internal/auth"
	"github.com/Suvo-Ghosh/EMS/internal/platform/config"
)

// Seed ensures a super admin account exists so a fresh deployment can be
// administered. Skipped silently when the seed credentials are not set.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		log.Println("seed: SUPER_ADMIN_EMAIL or SUPER_ADMIN_PASSWORD not set, skipping super admin seed")
		return nil
	}

	var existing string
	err := pool.QueryRow(ctx, "SELECT email FROM users WHERE role = 'super_admin' LIMIT 1").Scan(&existing)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(cfg.SeedAdminName)
	if name == "" {
		name = "Super Admin"
	}

	_, err = pool.Exec(ctx, `
    INSERT INTO users (full_name, email, password_hash, role, status)
    VALUES ($1, $2, $3, 'super_admin', 'active')
    ON CONFLICT (email) DO NOTHING
  `, name, strings.ToLower(cfg.SeedAdminEmail), hash)
	if err != nil {
		return err
	}

	log.Printf("seed: super admin ensured for %s", cfg.SeedAdminEmail)
	return nil
}
