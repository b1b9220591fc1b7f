package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/config"
)

// Интеграционный тест с настоящей DB
func TestOpenDB_WithDSN(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping integration test")
	}

	db, err := config.OpenDB(context.Background(), config.DBConfig{DSN: dsn, MaxOpenConns: 2})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var x int
	require.NoError(t, db.QueryRow("SELECT 1").Scan(&x))
	require.Equal(t, 1, x)
}

func TestMigrate_UnknownDirection(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping integration test")
	}

	db, err := config.OpenDB(context.Background(), config.DBConfig{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.Error(t, config.Migrate(db, "file://../../../migrations/postgres", "sideways"))
}
