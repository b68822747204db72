package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/filevault/internal/flagx"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config holds runtime settings for the vault client.
//
// Fields:
//   - ServerBaseURL: root of the file store API, e.g. http://localhost:5000/api.
//   - DownloadDir: where downloads are saved.
//   - LogLevel: debug, info, warn or error.
//   - NotificationLifetime: how long an error message stays visible.
//   - RequestTimeout: how long to wait for the store to start answering.
//     Transfers of long bodies are not cut off by it.
//   - S3*: optional object-store access for s3:// content refs.
type Config struct {
	ServerBaseURL        string        `validate:"required,url"`
	DownloadDir          string        `validate:"required"`
	LogLevel             string        `validate:"oneof=debug info warn error"`
	NotificationLifetime time.Duration `validate:"gt=0"`
	RequestTimeout       time.Duration `validate:"gt=0"`

	S3Region       string
	S3Endpoint     string `validate:"omitempty,url"`
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000/api"
	c.DownloadDir = "downloads"
	c.LogLevel = "info"
	c.NotificationLifetime = 3 * time.Second
	c.RequestTimeout = 30 * time.Second
	c.S3Region = "us-east-1"
}

// S3Enabled reports whether s3:// refs can be fetched.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" || c.S3AccessKey != ""
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load builds a Config from args (without the program name): defaults,
// then an optional .env file, a JSON file, VAULT_* environment variables
// and finally flags. Later sources win.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotEnv(flagx.EnvFileFlag(args)); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, flagx.ConfigFileFlag(args)); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
