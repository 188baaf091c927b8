package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DatabaseDriverPostgres = "postgres"
	DatabaseDriverSQLite   = "sqlite"
)

// DBConfig is read from the environment once. URL, when set, wins over the
// individual POSTGRES_* parts.
type DBConfig struct {
	Driver string

	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	SQLitePath string

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

func NewDBConfig() *DBConfig {
	return &DBConfig{
		Driver:          strings.ToLower(envValue("APP_DATABASE_DRIVER", DatabaseDriverPostgres)),
		URL:             envValue("APP_DATABASE_URL", ""),
		Host:            envValue("POSTGRES_HOST", ""),
		Port:            envValue("POSTGRES_PORT", "5432"),
		User:            envValue("POSTGRES_USER", ""),
		Password:        envValue("POSTGRES_PASSWORD", ""),
		Name:            envValue("POSTGRES_DB_NAME", ""),
		SSLMode:         envValue("POSTGRES_SSLMODE", "require"),
		SQLitePath:      envValue("SQLITE_PATH", "waitlist.db"),
		MaxIdleConns:    int(utils.GetEnvPositiveInt("DB_MAX_IDLE_CONNS", 10)),
		MaxOpenConns:    int(utils.GetEnvPositiveInt("DB_MAX_OPEN_CONNS", 100)),
		ConnMaxLifetime: utils.GetEnvPositiveDuration("DB_CONN_MAX_LIFETIME", time.Minute),
	}
}

// DSN returns the postgres connection string.
func (c *DBConfig) DSN() (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}

	var missing []string
	if c.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if c.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if c.Name == "" {
		missing = append(missing, "POSTGRES_DB_NAME")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing required database env vars: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return "", fmt.Errorf("invalid POSTGRES_PORT %q: %w", c.Port, err)
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, port, c.User, c.Password, c.Name, c.SSLMode,
	), nil
}

func (c *DBConfig) dialector(logger *log.Logger) (gorm.Dialector, error) {
	switch c.Driver {
	case "", DatabaseDriverPostgres:
		dsn, err := c.DSN()
		if err != nil {
			return nil, err
		}
		if c.URL != "" {
			logger.Info("Connecting to database", "source", "APP_DATABASE_URL")
		} else {
			logger.Info("Connecting to database", "host", c.Host, "port", c.Port, "dbname", c.Name, "sslmode", c.SSLMode)
		}
		return postgres.Open(dsn), nil
	case DatabaseDriverSQLite:
		logger.Info("Using SQLite database", "path", c.SQLitePath)
		return sqlite.Open(c.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported APP_DATABASE_DRIVER %q (supported: %s, %s)", c.Driver, DatabaseDriverPostgres, DatabaseDriverSQLite)
	}
}

func NewDatabase(logger *log.Logger, cfg *DBConfig) (*gorm.DB, error) {
	if cfg == nil {
		cfg = NewDBConfig()
	}

	dialector, err := cfg.dialector(logger)
	if err != nil {
		logger.Error("Invalid database configuration", "error", err)
		return nil, err
	}

	// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey.
	gdb, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("Failed to connect to database", "driver", cfg.Driver, "error", err)
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}

	if cfg.Driver == DatabaseDriverSQLite {
		// SQLite serialises writers; one connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		logger.Error("Database ping failed", "error", err)
		_ = sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Database connection established", "driver", cfg.Driver)
	return gdb, nil
}

// AutoMigrate creates tables from the gorm models. Shared environments use
// the versioned SQL migrations instead.
func AutoMigrate(logger *log.Logger, db *gorm.DB, models ...interface{}) error {
	if db == nil {
		return errors.New("cannot migrate: db is nil")
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Auto-migration failed", "error", err)
		return fmt.Errorf("auto-migrate: %w", err)
	}

	logger.Info("Auto-migration completed", "models", len(models))
	return nil
}

func CloseDatabase(db *gorm.DB, logger *log.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
		return
	}
	logger.Info("Database closed")
}

// envValue trims whitespace and one pair of matching quotes, which .env
// files written by hand often carry.
func envValue(key, defaultValue string) string {
	s := strings.TrimSpace(GetValueFromEnvironmentVariable(key, defaultValue))

	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		return defaultValue
	}
	return s
}
