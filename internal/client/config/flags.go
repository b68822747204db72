package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/filevault/internal/flagx"
)

// parseFlags overlays cfg with command-line flags.
//
// Supported flags:
//
//	-a string   file store base URL
//	-d string   download directory
//	-l string   log level
//	-n int      notification lifetime (in seconds)
//	-t int      request timeout (in seconds)
//
// Only these flags are looked at; -c and -e belong to the file loaders.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-l", "-n", "-t"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "file store base URL")
	fs.StringVar(&cfg.DownloadDir, "d", cfg.DownloadDir, "download directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	lifetime := fs.Int("n", int(cfg.NotificationLifetime.Seconds()), "notification lifetime (in seconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			cfg.NotificationLifetime = time.Duration(*lifetime) * time.Second
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
