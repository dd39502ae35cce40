package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/vidbatch/internal/buildinfo"
	"github.com/dmitrijs2005/vidbatch/internal/client/bulk"
	"github.com/dmitrijs2005/vidbatch/internal/client/client"
	"github.com/dmitrijs2005/vidbatch/internal/client/config"
	"github.com/dmitrijs2005/vidbatch/internal/client/jobs"
	"github.com/dmitrijs2005/vidbatch/internal/client/localdb"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/client/outputs"
	"github.com/dmitrijs2005/vidbatch/internal/client/repositories/files"
	jobrepo "github.com/dmitrijs2005/vidbatch/internal/client/repositories/jobs"
	"github.com/dmitrijs2005/vidbatch/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vidbatch/internal/client/services"
	"github.com/dmitrijs2005/vidbatch/internal/client/upload"
	"github.com/dmitrijs2005/vidbatch/internal/logging"
)

// IO bundles the streams the App talks to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type App struct {
	config *config.Config
	log    logging.Logger

	files    services.FileService
	folders  services.FolderService
	jobs     services.JobService
	projects services.ProjectService
	auth     services.AuthService

	// selection is the shell's working set of file paths.
	selection models.Selection

	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer

	closers []func() error
}

func NewApp(ctx context.Context, cfg *config.Config, streams IO) (*App, error) {
	log, err := logging.New(cfg.LogFormat, cfg.LogLevel, streams.Err)
	if err != nil {
		return nil, err
	}

	httpClient := http.DefaultClient
	if cfg.RequestTimeout > 0 {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}

	tokens := client.NewTokenStore(cfg.Token)
	api, err := client.New(cfg.ServerURL, tokens,
		client.WithHTTPClient(httpClient),
		client.WithLogger(log),
		client.WithUserAgent("vidbatch/"+buildinfo.Version),
	)
	if err != nil {
		return nil, err
	}

	db, err := localdb.Open(ctx, cfg.CachePath)
	if err != nil {
		log.Error(ctx, "error initializing cache", "path", cfg.CachePath, "error", err)
		return nil, err
	}

	a := &App{
		config:    cfg,
		log:       log,
		selection: models.ExplicitSelection(),
		reader:    bufio.NewReader(streams.In),
		out:       streams.Out,
		errOut:    streams.Err,
		closers:   []func() error{db.Close},
	}

	if err := a.wire(ctx, api, tokens, db, httpClient); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire(ctx context.Context, api *client.HTTPClient, tokens *client.TokenStore, db *sql.DB, httpClient *http.Client) error {
	cfg := a.config

	fileCache := files.NewSQLiteRepository(db)
	synced := metadata.NewSQLiteRepository(db)
	history := jobrepo.NewSQLiteRepository(db)
	rec := bulk.New(cfg.BulkConcurrency, a.log)

	tracker, err := upload.NewTracker(api, upload.Policy{TransferWeight: cfg.TransferWeight}, a.log)
	if err != nil {
		return err
	}

	poller, err := jobs.NewPoller(api,
		jobs.WithInterval(cfg.PollInterval),
		jobs.WithMaxConsecutiveErrors(cfg.PollMaxErrors),
		jobs.WithLogger(a.log),
	)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func() error { poller.StopAll(); return nil })

	var store outputs.Fetcher
	if cfg.S3.Bucket != "" {
		s3f, err := outputs.NewS3Fetcher(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to configure output store: %w", err)
		}
		store = s3f
	}

	a.files = services.NewFileService(api, fileCache, synced, rec, tracker, services.FileOptions{
		CacheTTL:   cfg.CacheTTL,
		PreferBulk: cfg.PreferBulk,
	}, a.log)
	a.folders = services.NewFolderService(api, fileCache, synced, rec, a.log)
	a.jobs = services.NewJobService(api, poller, history, a.log)
	a.projects = services.NewProjectService(api, rec, outputs.HTTPFetcher{Client: httpClient}, store, a.log)
	a.auth = services.NewAuthService(api, tokens)
	return nil
}

// Close stops background polling and releases the cache. Closers run in
// reverse order of registration.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Run executes one command line and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if err := a.execute(ctx, args); err != nil {
		a.report(err)
		return 1
	}
	return 0
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
