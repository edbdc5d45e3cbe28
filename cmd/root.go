package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ebook-indexer/core/catalog"
	"ebook-indexer/core/config"
	"ebook-indexer/core/logger"
	"ebook-indexer/core/reconcile"
	"ebook-indexer/core/storage"
	"ebook-indexer/feature/library"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	catalogPath string
	threads     int
	verbosity   int
	configDir   string
	dryRun      bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ebook-indexer",
	Short: "Catalog EPUB and PDF collections",
	Long: `ebook-indexer keeps a JSON catalog of the EPUB and PDF files in a collection.
Files are identified by path and content hash: a changed file produces a new
record and the previous one is kept as stale history until pruned.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := RootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		// Console output with ISO8601 timestamps regardless of the configured format.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&catalogPath, "db", "", "Catalog file (default from CATALOG_PATH or books.json)")
	flags.IntVarP(&threads, "threads", "t", 0, "Worker threads, 0 for one per CPU")
	flags.IntVarP(&verbosity, "verbose", "v", 1, "Verbosity: 0 warn, 1 info, 2 debug")
	flags.StringVar(&configDir, "config", ".", "Directory holding the .env file")
	flags.BoolVar(&dryRun, "dry-run", false, "Run the operation without writing the catalog")
}

// app bundles what a command needs after configuration is resolved.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *catalog.Store
	client  storage.Client
	service *library.Service
}

// setup loads configuration, applies explicitly set flags on top of it and
// wires the service.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Catalog.Path = catalogPath
	}
	if flags.Changed("threads") {
		cfg.Engine.Threads = threads
	}
	if flags.Changed("verbose") {
		cfg.Log.Level = logger.LevelForVerbosity(verbosity)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	l = logger.WithRunID(l, logger.NewRunID())

	// Object storage is optional; only merge from s3:// and backup need it.
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		l.Debug("Object storage unavailable", zap.Error(err))
		client = nil
	}

	store := catalog.NewStore(cfg.Catalog.Path, cfg.Catalog.Lock)
	engine := reconcile.NewEngine(reconcile.FileProbe{}, cfg.Engine.Threads, l)

	return &app{
		cfg:     cfg,
		logger:  l,
		store:   store,
		client:  client,
		service: library.NewService(store, engine, client, l, dryRun),
	}, nil
}
