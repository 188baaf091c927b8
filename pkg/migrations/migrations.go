package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Embedded holds the schema migrations compiled into the binary. They are
// used unless Config.Dir points at a directory on disk.
//
//go:embed sql/*.sql
var Embedded embed.FS

const embeddedDir = "sql"

type migrator interface {
	Up() error
	Close() (sourceErr error, databaseErr error)
}

// source is either a URL understood by migrate or an embedded filesystem.
type source struct {
	URL string
	FS  *embed.FS
}

func (s source) String() string {
	if s.FS != nil {
		return "embedded"
	}
	return s.URL
}

var driverFactory = func(db *sql.DB, cfg Config) (database.Driver, error) {
	return postgres.WithInstance(db, &postgres.Config{MigrationsTable: cfg.MigrationsTable})
}

var migratorFactory = func(src source, driver database.Driver) (migrator, error) {
	if src.FS != nil {
		sourceDriver, err := iofs.New(*src.FS, embeddedDir)
		if err != nil {
			return nil, err
		}
		return migrate.NewWithInstance("iofs", sourceDriver, "postgres", driver)
	}
	return migrate.NewWithDatabaseInstance(src.URL, "postgres", driver)
}

type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Config struct {
	// Dir overrides the embedded migrations with a directory on disk.
	Dir             string
	MigrationsTable string
	Logger          Logger
}

func resolveSource(dir string) (source, error) {
	if strings.TrimSpace(dir) == "" {
		return source{FS: &Embedded}, nil
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return source{}, fmt.Errorf("migrations: resolve dir: %w", err)
	}

	// ToSlash keeps Windows paths valid inside a file:// URL.
	return source{URL: (&url.URL{Scheme: "file", Path: filepath.ToSlash(absDir)}).String()}, nil
}

// Up applies every pending migration. migrate has no context support, so on
// cancellation the migrator is closed and ctx.Err() returned.
func Up(ctx context.Context, db *sql.DB, cfg Config) error {
	if db == nil {
		return errors.New("migrations: db is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.MigrationsTable) == "" {
		cfg.MigrationsTable = "schema_migrations"
	}

	src, err := resolveSource(cfg.Dir)
	if err != nil {
		return err
	}

	driver, err := driverFactory(db, cfg)
	if err != nil {
		return fmt.Errorf("migrations: postgres driver: %w", err)
	}

	m, err := migratorFactory(src, driver)
	if err != nil {
		return fmt.Errorf("migrations: init: %w", err)
	}

	var closeOnce sync.Once
	closeMigrator := func() {
		closeOnce.Do(func() {
			srcErr, dbErr := m.Close()
			if cfg.Logger == nil {
				return
			}
			if srcErr != nil {
				cfg.Logger.Warn("Migrations source close error", "error", srcErr)
			}
			if dbErr != nil {
				cfg.Logger.Warn("Migrations db close error", "error", dbErr)
			}
		})
	}
	defer closeMigrator()

	logInfo(cfg.Logger, "Running SQL migrations", "source", src.String(), "table", cfg.MigrationsTable)

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Up()
	}()

	select {
	case <-ctx.Done():
		closeMigrator()
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, migrate.ErrNoChange) {
			logInfo(cfg.Logger, "No migrations to apply")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migrations: up: %w", err)
		}
	}

	logInfo(cfg.Logger, "Migrations applied successfully")
	return nil
}

func logInfo(l Logger, msg string, args ...any) {
	if l != nil {
		l.Info(msg, args...)
	}
}
