package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/akeren/waitlist-api/config"
	"github.com/akeren/waitlist-api/domain/waitlist"
	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/pkg/migrations"
	"github.com/akeren/waitlist-api/pkg/utils"
	"gorm.io/gorm"
)

const (
	migrateTimeout = 5 * time.Minute
	commandTimeout = 30 * time.Second
)

var errUsage = errors.New("invalid usage")

func main() {
	logger := log.NewLoggerFromEnv()

	config.InitializeEnvFile(logger)

	if err := run(os.Args[1:], logger, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
		} else {
			logger.Error("Command failed", "error", err)
		}
		os.Exit(1)
	}
}

func run(args []string, logger *log.Logger, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "migrate":
		return withDatabase(logger, func(db *gorm.DB, dbCfg *config.DBConfig) error {
			return migrate(logger, db, dbCfg)
		})

	case "stats":
		return withDatabase(logger, func(db *gorm.DB, _ *config.DBConfig) error {
			return printStats(newService(db, logger), out)
		})

	case "set-status":
		if len(args) != 3 {
			return errUsage
		}
		status := models.WaitlistStatus(args[2])
		return withDatabase(logger, func(db *gorm.DB, _ *config.DBConfig) error {
			return setStatus(newService(db, logger), args[1], status, out)
		})

	case "help", "-h", "--help":
		printUsage(out)
		return nil

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		return errUsage
	}
}

func withDatabase(logger *log.Logger, fn func(db *gorm.DB, dbCfg *config.DBConfig) error) error {
	dbCfg := config.NewDBConfig()

	db, err := config.NewDatabase(logger, dbCfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer config.CloseDatabase(db, logger)

	return fn(db, dbCfg)
}

func newService(db *gorm.DB, logger *log.Logger) waitlist.WaitlistService {
	return waitlist.NewWaitlistServiceFactory(db, logger, nil, "").CreateService()
}

// migrate applies the versioned SQL migrations. SQLite has no migrate driver
// wired, so local sqlite databases are created from the gorm models instead.
func migrate(logger *log.Logger, db *gorm.DB, dbCfg *config.DBConfig) error {
	if dbCfg.Driver == config.DatabaseDriverSQLite {
		return config.AutoMigrate(logger, db, models.ModelRegistry...)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get SQL DB instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	return migrations.Up(ctx, sqlDB, migrations.Config{
		Dir:    utils.GetEnvTrimmed("MIGRATIONS_DIR"),
		Logger: logger,
	})
}

func printStats(service waitlist.WaitlistService, out io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	stats, err := service.GetStats(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(stats)
}

func setStatus(service waitlist.WaitlistService, email string, status models.WaitlistStatus, out io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := service.UpdateEntryStatus(ctx, email, status); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s is now %s\n", waitlist.NormalizeEmail(email), status)
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cli <command>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  migrate                                 Apply database migrations and exit")
	fmt.Fprintln(w, "  stats                                   Print waitlist totals as JSON")
	fmt.Fprintln(w, "  set-status <email> <approved|declined>  Review a pending waitlist entry")
	fmt.Fprintln(w, "  help                                    Show this message")
}
