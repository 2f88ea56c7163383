package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/trampo-app/trampo/internal/config"
	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/repository/postgres"
	"github.com/trampo-app/trampo/migrations"
)

// CategoryLimpeza is a category id seeded by the migrations
const CategoryLimpeza = "0b7c1d52-0001-4c1e-9a51-2f8a0c000001"

// NewTestDB creates a migrated SQLite database in a temp dir with the plan
// catalog seeded
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := postgres.New(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "trampo_test.db"),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if _, err := postgres.RunMigrations(db, migrations.Files); err != nil {
		db.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	plans, err := plan.Catalog()
	if err != nil {
		t.Fatalf("Failed to load plan catalog: %v", err)
	}
	if err := postgres.NewPlanRepository(db).Seed(context.Background(), plans); err != nil {
		t.Fatalf("Failed to seed plans: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// CleanupDB closes the test database
func CleanupDB(db *sql.DB) {
	if db != nil {
		db.Close()
	}
}

// NewTestLogger returns a logger that only prints errors
func NewTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

// CreateUser inserts a user with the given role and an empty profile
func CreateUser(t *testing.T, db *sql.DB, role user.Role, name string) *user.User {
	t.Helper()
	u := &user.User{
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "not-a-real-hash",
		Name:         name,
		Role:         role,
		City:         "São Paulo",
		State:        "SP",
	}
	if err := postgres.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("Failed to create user %s: %v", name, err)
	}
	return u
}

// Plan returns a seeded plan by code
func Plan(t *testing.T, db *sql.DB, code plan.Code) *plan.Plan {
	t.Helper()
	p, err := postgres.NewPlanRepository(db).GetByCode(context.Background(), code)
	if err != nil {
		t.Fatalf("Failed to load plan %s: %v", code, err)
	}
	return p
}
