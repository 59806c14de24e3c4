package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"coursehub-be/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB returns a migrated, private in-memory database. A single
// connection is used so every query sees the same memory database.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), database.Config(logger.Silent))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

var (
	sharedPostgresDSN  string
	sharedPostgresOnce sync.Once
	sharedPostgresErr  error
)

// NewPostgresDB connects to DB_CONNECTION_STRING when set, otherwise starts a
// throwaway Postgres container shared by the whole test run. It skips in
// -short mode and when no database can be reached.
func NewPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Postgres)")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		sharedPostgresOnce.Do(func() {
			sharedPostgresDSN, sharedPostgresErr = startPostgres()
		})
		if sharedPostgresErr != nil {
			t.Skipf("Skipping integration test, no Postgres available: %v", sharedPostgresErr)
		}
		dsn = sharedPostgresDSN
	}

	db, err := database.NewGormDBFromDSN(dsn, logger.Silent)
	if err != nil {
		t.Skipf("Skipping integration test, cannot connect: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}
	return db
}

func startPostgres() (dsn string, err error) {
	// testcontainers panics when no Docker daemon is reachable.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docker unavailable: %v", r)
		}
	}()

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "coursehub_test",
				"POSTGRES_USER":     "coursehub",
				"POSTGRES_PASSWORD": "test_password",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("container port: %w", err)
	}

	dsn = fmt.Sprintf("postgres://coursehub:test_password@%s:%s/coursehub_test?sslmode=disable", host, port.Port())

	// Wait until the server accepts real connections.
	for i := 0; i < 20; i++ {
		db, openErr := gorm.Open(postgres.Open(dsn), database.Config(logger.Silent))
		if openErr == nil {
			if sqlDB, _ := db.DB(); sqlDB != nil && sqlDB.Ping() == nil {
				_ = sqlDB.Close()
				return dsn, nil
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return "", fmt.Errorf("postgres container never became ready")
}
