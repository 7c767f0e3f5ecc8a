package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/claims-service/internal/auth"
	"github.com/spec-kit/claims-service/internal/domain"
)

type seedUser struct {
	email     string
	firstName string
	lastName  string
	role      domain.Role
}

var seedUsers = []seedUser{
	{"customer@test.com", "Bob", "Customer", domain.RoleCustomer},
	{"agent@test.com", "John", "Agent", domain.RoleAgent},
	{"adjuster@test.com", "Jane", "Adjuster", domain.RoleAdjuster},
	{"manager@test.com", "Mike", "Manager", domain.RoleManager},
	{"admin@test.com", "Alice", "Admin", domain.RoleAdmin},
}

// SeedTestUsers creates one user per role for development environments.
// Existing emails are left untouched.
func SeedTestUsers(ctx context.Context, pool *pgxpool.Pool, password string, bcryptCost int, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping seed")
		return nil
	}

	hash, err := auth.HashPassword(password, bcryptCost)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO users (email, password_hash, first_name, last_name, role, active_flag)
        VALUES ($1,$2,$3,$4,$5,TRUE)
        ON CONFLICT (email) DO NOTHING`

	for _, u := range seedUsers {
		cmd, err := pool.Exec(ctx, query, u.email, hash, u.firstName, u.lastName, u.role)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() > 0 {
			logger.Info("seeded test user", zap.String("email", u.email), zap.String("role", string(u.role)))
		}
	}
	return nil
}
