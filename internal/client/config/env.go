package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// envConfig mirrors Config for VAULT_* variables. Pointers tell unset
// variables apart from empty ones.
type envConfig struct {
	ServerBaseURL        *string `env:"VAULT_SERVER_URL"`
	DownloadDir          *string `env:"VAULT_DOWNLOAD_DIR"`
	LogLevel             *string `env:"VAULT_LOG_LEVEL"`
	NotificationLifetime *string `env:"VAULT_NOTIFICATION_LIFETIME"`
	RequestTimeout       *string `env:"VAULT_REQUEST_TIMEOUT"`
	S3Region             *string `env:"VAULT_S3_REGION"`
	S3Endpoint           *string `env:"VAULT_S3_ENDPOINT"`
	S3AccessKey          *string `env:"VAULT_S3_ACCESS_KEY"`
	S3SecretKey          *string `env:"VAULT_S3_SECRET_KEY"`
	S3UsePathStyle       *string `env:"VAULT_S3_USE_PATH_STYLE"`
}

// loadDotEnv exports variables from path, or from ./.env when path is
// empty. A missing default .env is fine; a missing explicit one is not.
// Variables already in the environment are kept.
func loadDotEnv(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays cfg with VAULT_* environment variables.
func parseEnv(cfg *Config) error {
	var ec envConfig
	if _, err := env.UnmarshalFromEnviron(&ec); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	overlay := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	overlay(&cfg.ServerBaseURL, ec.ServerBaseURL)
	overlay(&cfg.DownloadDir, ec.DownloadDir)
	overlay(&cfg.LogLevel, ec.LogLevel)
	overlay(&cfg.S3Region, ec.S3Region)
	overlay(&cfg.S3Endpoint, ec.S3Endpoint)
	overlay(&cfg.S3AccessKey, ec.S3AccessKey)
	overlay(&cfg.S3SecretKey, ec.S3SecretKey)

	if err := overlayDuration(&cfg.NotificationLifetime, ec.NotificationLifetime, "VAULT_NOTIFICATION_LIFETIME"); err != nil {
		return err
	}
	if err := overlayDuration(&cfg.RequestTimeout, ec.RequestTimeout, "VAULT_REQUEST_TIMEOUT"); err != nil {
		return err
	}
	if ec.S3UsePathStyle != nil {
		b, err := strconv.ParseBool(*ec.S3UsePathStyle)
		if err != nil {
			return fmt.Errorf("VAULT_S3_USE_PATH_STYLE: %w", err)
		}
		cfg.S3UsePathStyle = b
	}
	return nil
}

func overlayDuration(dst *time.Duration, v *string, name string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}
