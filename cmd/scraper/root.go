package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/RamithaMN/job-scraper/internal/config"
	"github.com/RamithaMN/job-scraper/internal/enrich"
	"github.com/RamithaMN/job-scraper/internal/fetch"
	"github.com/RamithaMN/job-scraper/internal/notify"
	"github.com/RamithaMN/job-scraper/internal/pipeline"
	"github.com/RamithaMN/job-scraper/internal/scheduler"
	"github.com/RamithaMN/job-scraper/internal/scrape"
	"github.com/RamithaMN/job-scraper/internal/scrape/ashby"
	"github.com/RamithaMN/job-scraper/internal/scrape/util"
	"github.com/RamithaMN/job-scraper/internal/search"
	"github.com/RamithaMN/job-scraper/internal/store"
)

var (
	flagDataDir  string
	flagConfig   string
	flagInterval time.Duration
	flagMax      int
)

var rootCmd = &cobra.Command{
	Use:          "scraper",
	Short:        "Discovers ATS job postings, extracts them, and reports the new ones",
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run [query...]",
	Short: "Run the scrape pipeline once (or repeatedly with --interval)",
	RunE:  runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&flagDataDir, "data-dir", "", "directory for config, cache and CSV artifacts (default $JOBSCRAPER_DATA_DIR or .)")
	runCmd.Flags().StringVar(&flagConfig, "config", "", "path to config file (default <data-dir>/config.yml)")
	runCmd.Flags().DurationVar(&flagInterval, "interval", 0, "rerun the pipeline at this interval (0 = run once)")
	runCmd.Flags().IntVar(&flagMax, "max", 0, "override search.max_results")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = os.Getenv("JOBSCRAPER_DATA_DIR")
	}
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	cfgPath := flagConfig
	if cfgPath == "" {
		var err error
		cfgPath, err = config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			return fmt.Errorf("config bootstrap failed: %w", err)
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", cfgPath, err)
	}
	cfg, validation := config.NormalizeAndValidate(cfg)
	for _, w := range validation.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !validation.OK() {
		return fmt.Errorf("invalid config: %s", strings.Join(validation.Errors, "; "))
	}
	if len(args) > 0 {
		cfg.Search.DefaultQuery = strings.Join(args, " ")
	}
	if flagMax > 0 {
		cfg.Search.MaxResults = flagMax
	}

	// The delta store does a bare read-then-append; the lock is what makes
	// "runs never overlap" true when cron and a manual run collide.
	lock := flock.New(filepath.Join(dataDir, "scraper.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("run lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another run is already in progress (lock held on %s)", lock.Path())
	}
	defer lock.Unlock()

	cache, err := store.Open(filepath.Join(dataDir, cfg.App.CacheDB))
	if err != nil {
		return fmt.Errorf("open enrichment cache: %w", err)
	}
	defer cache.Close()

	fetchLimiter := util.NewHostLimiterEvery(time.Duration(cfg.Pacing.FetchSeconds) * time.Second)
	apiLimiter := util.NewHostLimiterEvery(time.Duration(cfg.Pacing.APIMillis) * time.Millisecond)

	ashbyAPI := ashby.NewClient(apiLimiter)

	deps := pipeline.Deps{
		Search:    search.NewEngine(apiLimiter, cfg.Search.MaxResults),
		AshbyAPI:  ashbyAPI,
		Fetcher:   fetch.NewHTTP(10*time.Second, fetchLimiter),
		Extractor: scrape.NewExtractor(ashbyAPI),
		Enricher:  enrich.NewWebEnricher(apiLimiter, cache),
		Store: store.NewDeltaStore(
			filepath.Join(dataDir, cfg.App.MasterCSV),
			filepath.Join(dataDir, cfg.App.DeltaCSV),
		),
		Notifiers: buildNotifiers(cfg),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagInterval > 0 {
		scheduler.Every(ctx, flagInterval, "pipeline", func(ctx context.Context) error {
			_, err := pipeline.RunOnce(ctx, cfg, deps)
			return err
		})
		return nil
	}

	_, err = pipeline.RunOnce(ctx, cfg, deps)
	return err
}

func buildNotifiers(cfg config.Config) []notify.Notifier {
	var out []notify.Notifier
	if cfg.Notify.WebhookURL != "" {
		out = append(out, notify.NewWebhook(cfg.Notify.WebhookURL))
	}
	if cfg.Notify.Telegram.Enabled {
		tg, err := notify.NewTelegram(cfg.Notify.Telegram.Token, cfg.Notify.Telegram.ChatID)
		if err != nil {
			log.Printf("[notify] telegram disabled: %v", err)
		} else {
			out = append(out, tg)
		}
	}
	return out
}
