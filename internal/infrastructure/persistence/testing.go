//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/pkcs11-spy/internal/domain/trace"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/config"
	"github.com/MGTheTrain/pkcs11-spy/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB        *gorm.DB
	EventRepo trace.EventRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}
		cleanupFunc = func() {}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	if dbType == config.SqliteDbType {
		// Every new connection to :memory: opens an empty database.
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.SetMaxOpenConns(1)
	}

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	eventRepo, err := NewGormCallEventRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create call event repository")

	return &TestContext{
		DB:        db,
		EventRepo: eventRepo,
	}
}

// CreateTestEvent creates a call event of run with default values
func CreateTestEvent(t *testing.T, runID string, seq uint64, operation string, phase trace.Phase) trace.CallEvent {
	t.Helper()

	return trace.CallEvent{
		RunID:     runID,
		Seq:       seq,
		Operation: operation,
		Phase:     phase,
		Records:   []trace.Record{{Name: "hSession", Dir: "in", Text: "0x1"}},
		Time:      time.Now(),
	}
}
