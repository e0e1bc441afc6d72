package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/light-bringer/catalog-service/internal/config"
	"github.com/light-bringer/catalog-service/internal/pkg/database"
)

// StartPostgres runs a throwaway PostgreSQL container and returns its DSN.
// The container is terminated when the test ends.
func StartPostgres(t *testing.T) string {
	t.Helper()

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("catalog"),
		postgres.WithUsername("catalog"),
		postgres.WithPassword("catalog"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")

	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")
	return dsn
}

// SetupPostgresTest opens GORM on a fresh container with the schema migrated.
func SetupPostgresTest(t *testing.T) *gorm.DB {
	t.Helper()

	ctx := context.Background()
	cfg := config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		DSN:          StartPostgres(t),
		MaxOpenConns: 10,
		MaxIdleConns: 2,
		LogLevel:     "warn",
	}

	db, err := database.OpenPostgres(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err, "failed to open database")
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.AutoMigrate(ctx, db))
	return db
}

// CleanPostgres empties the catalog tables and resets their id sequences.
func CleanPostgres(t *testing.T, db *gorm.DB) {
	t.Helper()

	err := db.Exec("TRUNCATE TABLE products, departments RESTART IDENTITY CASCADE").Error
	require.NoError(t, err, "failed to clean database")
}
