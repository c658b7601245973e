package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/hockeyscrape/internal/config"
	"github.com/nao1215/hockeyscrape/internal/fetcher"
	"github.com/nao1215/hockeyscrape/internal/log"
	"github.com/nao1215/hockeyscrape/internal/model"
	"github.com/nao1215/hockeyscrape/internal/pipeline"
	"github.com/nao1215/hockeyscrape/internal/report"
	"github.com/nao1215/hockeyscrape/internal/requestlog"
	"github.com/nao1215/hockeyscrape/internal/store"
	"github.com/nao1215/hockeyscrape/internal/targets"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape every target URL of a site",
		Long: `Scrape fetches every target URL of one site, strictly one at a time,
extracts its tables into flat records and appends them to the site's
collection (nhl, espn or hockeyref).

A failed URL is logged and skipped; the run always continues with the
next URL. After every URL, successful or not, scrape pauses for the
site's stall so the remote site is not hammered.

Examples:
  # Scrape the hockey-reference.com league pages, 1963 to 2019
  hockeyscrape scrape --site hockeyref

  # Scrape a narrower season range with a longer stall
  hockeyscrape scrape --site espn --from 2015 --to 2019 --stall 30s

  # Store records in MongoDB instead of the embedded SQLite database
  hockeyscrape scrape --site nhl --store mongo --mongo-uri mongodb://localhost:27017

  # Write a Markdown summary to a file
  hockeyscrape scrape --site hockeyref --summary markdown -o summary.md`,
		Args: cobra.NoArgs,
		RunE: runScrapeCmd,
	}

	addTargetFlags(cmd)

	// Fetch flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"HTTP client timeout per request (0 disables it)")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with every request")
	cmd.Flags().StringP("proxy", "x", "",
		"Route requests through a SOCKS5 proxy (host:port)")
	cmd.Flags().String("request-log", config.DefaultRequestLogPath,
		"Append-only log of every reachable request")

	// Store flags
	cmd.Flags().String("store", config.DriverSQLite,
		"Document store driver: sqlite or mongo")
	cmd.Flags().String("db-dir", "",
		"SQLite database directory (default: XDG data directory)")
	cmd.Flags().String("mongo-uri", config.DefaultMongoURI,
		"MongoDB connection string for --store mongo")
	cmd.Flags().String("database", config.DefaultDatabase,
		"MongoDB database name for --store mongo")

	// Output flags
	cmd.Flags().String("summary", config.SummaryText,
		"Run summary format: text, markdown, json or none")
	cmd.Flags().StringP("output", "o", "",
		"Write the run summary to a file instead of stdout")
	cmd.Flags().String("log-format", config.LogFormatText,
		"Log format: text or json")

	return cmd
}

// addTargetFlags adds the flags shared by scrape and targets.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("site", "s", "",
		"Site to scrape: nhl, espn or hockeyref")
	cmd.Flags().Int("from", 0,
		"First season of year based targets (default: site default)")
	cmd.Flags().Int("to", 0,
		"Last season of year based targets (default: site default)")
	cmd.Flags().DurationP("stall", "S", 0,
		"Pause after each URL (default: site default)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .hockeyscrape in current or home directory)")
	_ = cmd.MarkFlagRequired("site") //nolint:errcheck // the flag is defined above
}

// runScrapeCmd executes the scrape command.
func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildScrapeConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, finishing current URL...")
			cancel()
		case <-ctx.Done():
		}
	}()

	output, closeOutput, err := summaryOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOutput()

	return runScrape(ctx, cfg, logger, output)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildTargetConfig reads the flags shared by scrape and targets and
// loads the configuration file.
func buildTargetConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	tag, err := flags.GetString("site")
	if err != nil {
		return nil, err
	}
	if cfg.Site, err = model.ParseSite(tag); err != nil {
		return nil, err
	}

	if cfg.FromYear, err = flags.GetInt("from"); err != nil {
		return nil, err
	}
	if cfg.ToYear, err = flags.GetInt("to"); err != nil {
		return nil, err
	}
	if cfg.Stall, err = flags.GetDuration("stall"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	if err := loadSiteConfigs(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadSiteConfigs loads the configuration file into cfg.SiteConfigs.
// An explicitly given file must exist; otherwise a missing file leaves
// an empty configuration.
func loadSiteConfigs(cfg *config.Config) error {
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		siteConfigs, err := config.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.SiteConfigs = siteConfigs
	case explicitConfigPath:
		return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	default:
		cfg.SiteConfigs = &config.File{Sites: make(map[string]config.SiteConfig)}
	}
	return nil
}

// buildScrapeConfig creates a Config from the scrape command flags.
func buildScrapeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildTargetConfig(cmd)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()

	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
		return nil, err
	}
	if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
		return nil, err
	}
	if cfg.RequestLogPath, err = flags.GetString("request-log"); err != nil {
		return nil, err
	}
	if cfg.StoreDriver, err = flags.GetString("store"); err != nil {
		return nil, err
	}

	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	if cfg.MongoURI, err = flags.GetString("mongo-uri"); err != nil {
		return nil, err
	}
	if cfg.Database, err = flags.GetString("database"); err != nil {
		return nil, err
	}
	if cfg.Summary, err = flags.GetString("summary"); err != nil {
		return nil, err
	}
	if cfg.LogFormat, err = flags.GetString("log-format"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// summaryOutput returns the destination of the run summary and a func
// that closes it.
func summaryOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	path, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil //nolint:errcheck // write errors surface from Write
}

// summaryWriter returns the report writer for the configured format.
func summaryWriter(cfg *config.Config, output io.Writer) (report.Writer, error) {
	if cfg.Summary == config.SummaryText {
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose)), nil
	}
	return report.NewWriter(cfg.Summary, output)
}

// runScrape wires the store, request log and fetcher, scrapes every
// target of the configured site and writes the run summary.
func runScrape(ctx context.Context, cfg *config.Config, logger *slog.Logger, output io.Writer) error {
	plan, err := targets.Build(cfg.Site, cfg.SiteSettings())
	if err != nil {
		return err
	}

	writer, err := summaryWriter(cfg, output)
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()
	logger.Info("store opened",
		"driver", cfg.StoreDriver,
		"collection", cfg.Site.Collection(),
		"uri", storeLocation(cfg),
	)

	reqLog, err := requestlog.OpenFile(cfg.RequestLogPath)
	if err != nil {
		return err
	}
	defer reqLog.Close()

	client, err := fetcher.NewHTTPClient(cfg.Timeout, cfg.ProxyAddress)
	if err != nil {
		return fmt.Errorf("failed to create HTTP client: %w", err)
	}

	f := fetcher.New(client,
		fetcher.WithUserAgent(cfg.UserAgent),
		fetcher.WithMaxBodySize(cfg.MaxBodySize),
		fetcher.WithRequestLog(reqLog),
		fetcher.WithLogger(logger),
	)

	dispatcher := pipeline.NewDispatcher(f, st, pipeline.WithDispatcherLogger(logger))
	runner := pipeline.NewRunner(dispatcher, pipeline.WithRunnerLogger(logger))

	summary, runErr := runner.Run(ctx, plan)
	if _, err := writer.Write(summary); err != nil {
		logger.Error("failed to write summary", "error", err)
	}

	if errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("scrape interrupted after %d of %d targets: %w",
			summary.Attempted, summary.Targets, runErr)
	}
	return runErr
}

// storeLocation describes where records go, for logging.
func storeLocation(cfg *config.Config) string {
	if cfg.StoreDriver == config.DriverMongo {
		return cfg.MongoURI
	}
	return filepath.Join(cfg.DBDir, store.DBFileName)
}
