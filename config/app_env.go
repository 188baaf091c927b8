package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/utils"
	"github.com/joho/godotenv"
)

const AppEnvKey = "APP_ENV"

// InitializeEnvFile loads .env (or the comma-separated files in ENV_FILE)
// without overriding variables already set in the process environment.
func InitializeEnvFile(logger *log.Logger) {
	if utils.GetEnvBool("SKIP_DOTENV", false) {
		logger.Info("Skipping .env file load", "reason", "SKIP_DOTENV")
		return
	}

	files := envFiles(utils.GetEnvTrimmed("ENV_FILE"))

	if err := godotenv.Load(files...); err != nil {
		logger.Warn("No env file loaded", "files", files, "error", err.Error())
		return
	}

	logger.Info("Environment variables loaded", "files", files)
}

func envFiles(raw string) []string {
	if raw == "" {
		return []string{".env"}
	}

	var files []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return []string{".env"}
	}
	return files
}

func GetValueFromEnvironmentVariable(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func GetAppEnv() string {
	return strings.ToLower(utils.GetEnvTrimmed(AppEnvKey))
}

// ValidateAutoMigrateAllowed keeps gorm auto-migration out of shared
// environments, which migrate through `cli migrate` instead.
func ValidateAutoMigrateAllowed(appEnv string) error {
	env := strings.ToLower(strings.TrimSpace(appEnv))

	switch env {
	case "", "dev", "development", "local", "test", "testing":
		return nil
	default:
		return fmt.Errorf("--auto-migrate is not allowed when %s=%q; run `cli migrate` instead", AppEnvKey, env)
	}
}
