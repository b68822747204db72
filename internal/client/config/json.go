package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/filevault/internal/timex"
)

// JsonConfig is the on-disk JSON shape. Durations accept "3s" or integer
// nanoseconds. Absent fields leave the current value alone.
type JsonConfig struct {
	ServerBaseURL        string          `json:"server_base_url"`
	DownloadDir          string          `json:"download_dir"`
	LogLevel             string          `json:"log_level"`
	NotificationLifetime *timex.Duration `json:"notification_lifetime"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	S3Region             string          `json:"s3_region"`
	S3Endpoint           string          `json:"s3_endpoint"`
	S3AccessKey          string          `json:"s3_access_key"`
	S3SecretKey          string          `json:"s3_secret_key"`
	S3UsePathStyle       *bool           `json:"s3_use_path_style"`
}

// parseJson overlays cfg with the JSON file at path. An empty path is a no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.ServerBaseURL, jc.ServerBaseURL)
	setString(&cfg.DownloadDir, jc.DownloadDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.NotificationLifetime != nil {
		cfg.NotificationLifetime = jc.NotificationLifetime.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.S3UsePathStyle != nil {
		cfg.S3UsePathStyle = *jc.S3UsePathStyle
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
