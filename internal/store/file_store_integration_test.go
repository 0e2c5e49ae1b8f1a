package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"invoice-generator/internal/store"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database; the table is truncated before each test.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	if err := store.Migrate(dbURL); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if _, err := pool.Exec(ctx, `TRUNCATE TABLE generated_files`); err != nil {
		pool.Close()
		t.Fatalf("Failed to clean test database: %v", err)
	}
	return pool
}

func TestFileStore_Postgres(t *testing.T) {
	pool := setupTestDB(t) // Skips if TEST_DATABASE_URL is not set
	defer pool.Close()

	exerciseFileStore(t, store.NewFileStore(pool))
}

func TestMigrate_Idempotent(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	if err := store.Migrate(os.Getenv("TEST_DATABASE_URL")); err != nil {
		t.Fatalf("second migration run failed: %v", err)
	}
}
