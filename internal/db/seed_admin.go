package db

import (
	"context"
	"time"

	"github.com/davesbikeparts/partshub/internal/config"
	"github.com/davesbikeparts/partshub/internal/domain/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureAdminUser upserts the bootstrap admin so at least one caller can
// pass the admin gate on a fresh database. Promotion of further admins
// happens through PUT /user/admin/:email.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" {
		return nil
	}

	now := time.Now().UTC()

	_, err := pool.Exec(ctx,
		`INSERT INTO users (email, name, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO UPDATE
		 SET role = EXCLUDED.role,
		     updated_at = EXCLUDED.updated_at`,
		cfg.AdminEmail, cfg.AdminName, user.RoleAdmin, now, now,
	)

	return err
}
