// Package config loads runtime configuration for the vault client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file: ./.env if present, or the file named by -e / -env.
//  3. Optional JSON file selected via -c or -config.
//  4. VAULT_* environment variables.
//  5. Command-line flags, which override everything else.
//
// The merged result is validated before use.
//
// Supported flags
//
//	-a string   file store base URL
//	-d string   download directory
//	-l string   log level (debug, info, warn, error)
//	-n int      notification lifetime (seconds)
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://localhost:5000/api",
//	  "download_dir": "downloads",
//	  "log_level": "info",
//	  "notification_lifetime": "3s",
//	  "request_timeout": "30s",
//	  "s3_endpoint": "http://127.0.0.1:9000",
//	  "s3_region": "us-east-1",
//	  "s3_access_key": "admin",
//	  "s3_secret_key": "secretpassword",
//	  "s3_use_path_style": true
//	}
//
// # Environment
//
//	VAULT_SERVER_URL, VAULT_DOWNLOAD_DIR, VAULT_LOG_LEVEL,
//	VAULT_NOTIFICATION_LIFETIME, VAULT_REQUEST_TIMEOUT (Go durations),
//	VAULT_S3_REGION, VAULT_S3_ENDPOINT, VAULT_S3_ACCESS_KEY,
//	VAULT_S3_SECRET_KEY, VAULT_S3_USE_PATH_STYLE
package config
