package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/filevault/internal/client/config"
	"github.com/dmitrijs2005/filevault/internal/client/notify"
	"github.com/dmitrijs2005/filevault/internal/client/store"
	"github.com/dmitrijs2005/filevault/internal/client/vault"
	"github.com/dmitrijs2005/filevault/internal/logging"
)

type App struct {
	config *config.Config
	vault  *vault.Controller
	log    logging.Logger

	outMu sync.Mutex
	out   io.Writer

	uploads sync.WaitGroup
}

// NewApp builds the store client and the controller from c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, out io.Writer) (*App, error) {
	opts := []store.Option{
		store.WithHTTPClient(store.NewHTTPClient(c.RequestTimeout)),
		store.WithLogger(log.With("component", "store")),
	}

	if c.S3Enabled() {
		f, err := store.NewS3Fetcher(ctx, store.S3Config{
			Region:       c.S3Region,
			Endpoint:     c.S3Endpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			UsePathStyle: c.S3UsePathStyle,
		})
		if err != nil {
			return nil, err
		}
		opts = append(opts, store.WithFetcher("s3", f))
	}

	fs, err := store.NewHTTPStore(c.ServerBaseURL, opts...)
	if err != nil {
		return nil, err
	}

	a := &App{config: c, log: log, out: out}
	notes := notify.New(c.NotificationLifetime, notify.WithOnChange(a.onNotification))
	a.vault = vault.New(fs, vault.DirSaver{Dir: c.DownloadDir}, notes, log.With("component", "vault"))

	return a, nil
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

// Run loads the file list, serves the REPL on in and waits for
// background uploads before returning.
func (a *App) Run(ctx context.Context, in io.Reader) {
	a.log.Info(ctx, "vault client started", "server", a.config.ServerBaseURL)

	_ = a.vault.RefreshList(ctx)

	a.Root(ctx, in)

	a.uploads.Wait()
	a.log.Info(ctx, "vault client stopped")
}
