package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"finbar/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	retryInterval = 10 * time.Millisecond
}

// TestBuildDSN_Postgres は個別フィールドからPostgres用DSNが生成されることを検証します。
func TestBuildDSN_Postgres(t *testing.T) {
	t.Parallel()

	cfg := config.DBConfig{
		Driver:   "postgres",
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		Host:     "localhost",
		Port:     "5432",
		SSLMode:  "disable",
	}

	expected := "host=localhost user=testuser password=testpass dbname=testdb port=5432 sslmode=disable TimeZone=UTC"
	assert.Equal(t, expected, BuildDSN(cfg))
}

// TestBuildDSN_SQLite はSQLiteの場合にファイルパスがそのままDSNになることを検証します。
func TestBuildDSN_SQLite(t *testing.T) {
	t.Parallel()

	cfg := config.DBConfig{Driver: "sqlite", SQLitePath: "/var/lib/finbar.db"}
	assert.Equal(t, "/var/lib/finbar.db", BuildDSN(cfg))
}

// TestBuildDSN_ExplicitDSNTakesPrecedence はDSNと個別フィールドが両方ある場合にDSNが優先されることを検証します。
func TestBuildDSN_ExplicitDSNTakesPrecedence(t *testing.T) {
	t.Parallel()

	cfg := config.DBConfig{
		Driver: "postgres",
		DSN:    "postgres://u:p@db:5432/finbar",
		Host:   "localhost",
		Port:   "5432",
	}
	assert.Equal(t, "postgres://u:p@db:5432/finbar", BuildDSN(cfg))
}

func TestOpenerFor_UnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := OpenerFor("mysql")
	assert.Error(t, err)
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)
	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 1, attempts)
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attempts := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)
	require.NoError(t, err)
	assert.Same(t, mockDB, db)
	assert.Equal(t, 3, attempts)
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後に元のエラーを包んで返すことを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	refused := errors.New("connection refused")
	opener := func(dsn string) (*gorm.DB, error) {
		return nil, refused
	}

	_, err := ConnectWithRetry("test-dsn", 30*time.Millisecond, opener)
	require.Error(t, err)
	assert.ErrorIs(t, err, refused)
}

type migrateProbe struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

// TestOpen_SQLiteWithMigrations はSQLiteファイルDBに接続しマイグレーションできることを検証します。
func TestOpen_SQLiteWithMigrations(t *testing.T) {
	t.Parallel()

	cfg := config.DBConfig{
		Driver:         "sqlite",
		SQLitePath:     filepath.Join(t.TempDir(), "finbar.db"),
		RunMigrations:  true,
		ConnectTimeout: time.Second,
	}

	db, err := Open(cfg, &migrateProbe{})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&migrateProbe{}))
}
