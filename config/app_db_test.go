package config

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *log.Logger {
	return log.NewLogger(io.Discard, slog.LevelInfo)
}

func TestDSN_PrefersURL(t *testing.T) {
	cfg := &DBConfig{URL: "postgres://u:p@db:5432/waitlist", Host: "ignored"}

	dsn, err := cfg.DSN()

	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/waitlist", dsn)
}

func TestNewDBConfig_FromParts(t *testing.T) {
	t.Setenv("APP_DATABASE_URL", "")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "")
	t.Setenv("POSTGRES_USER", "waitlist")
	t.Setenv("POSTGRES_PASSWORD", "'secret'")
	t.Setenv("POSTGRES_DB_NAME", "waitlist")
	t.Setenv("POSTGRES_SSLMODE", "")

	dsn, err := NewDBConfig().DSN()

	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=waitlist password=secret dbname=waitlist sslmode=require", dsn)
}

func TestDSN_ReportsMissingVars(t *testing.T) {
	cfg := &DBConfig{Port: "5432", Name: "waitlist"}

	_, err := cfg.DSN()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_HOST, POSTGRES_USER")
}

func TestDSN_InvalidPort(t *testing.T) {
	cfg := &DBConfig{Host: "db", User: "u", Name: "waitlist", Port: "five"}

	_, err := cfg.DSN()

	assert.ErrorContains(t, err, "invalid POSTGRES_PORT")
}

func TestNewDBConfig_PoolFromEnv(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_CONN_MAX_LIFETIME", "5m")

	cfg := NewDBConfig()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
}

func TestNewDatabase_SQLite(t *testing.T) {
	cfg := &DBConfig{Driver: DatabaseDriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "waitlist.db")}

	db, err := NewDatabase(discardLogger(), cfg)
	require.NoError(t, err)
	defer CloseDatabase(db, discardLogger())

	require.NoError(t, AutoMigrate(discardLogger(), db, models.ModelRegistry...))
	assert.True(t, db.Migrator().HasTable(&models.WaitlistEntry{}))
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	_, err := NewDatabase(discardLogger(), &DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestEnvValue(t *testing.T) {
	t.Setenv("QUOTED", `  "value" `)
	t.Setenv("SINGLE", `'value'`)
	t.Setenv("UNBALANCED", `"value`)
	t.Setenv("BLANK", "  ")

	assert.Equal(t, "value", envValue("QUOTED", ""))
	assert.Equal(t, "value", envValue("SINGLE", ""))
	assert.Equal(t, `"value`, envValue("UNBALANCED", ""))
	assert.Equal(t, "fallback", envValue("BLANK", "fallback"))
}
