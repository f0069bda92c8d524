package scrape

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nicolarischia/f1-analytics/log"
	"github.com/nicolarischia/f1-analytics/pkg/config"
	"github.com/nicolarischia/f1-analytics/pkg/db/postgres"
	"github.com/nicolarischia/f1-analytics/pkg/openf1"
	"github.com/nicolarischia/f1-analytics/pkg/service"
	"github.com/nicolarischia/f1-analytics/pkg/utils"
)

func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "imports upstream data into the database",
	}
	cmd.PersistentFlags().StringVar(&config.LogLevel,
		"log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	cmd.PersistentFlags().StringVar(&config.UpstreamTimeout,
		"upstream-timeout",
		"10s",
		"timeout for upstream telemetry requests")

	cmd.AddCommand(newJobCmd("drivers", "imports the current driver entries",
		func(ctx context.Context, s *service.Scraper) error {
			return s.ScrapeDrivers(ctx)
		}))
	cmd.AddCommand(newJobCmd("teams",
		"imports team entries and recomputes team aggregates",
		func(ctx context.Context, s *service.Scraper) error {
			return s.ScrapeTeams(ctx)
		}))
	cmd.AddCommand(newJobCmd("results",
		"recomputes per-driver season aggregates from race results",
		func(ctx context.Context, s *service.Scraper) error {
			return s.ScrapeResults(ctx)
		}))
	cmd.AddCommand(newAllCmd())
	return cmd
}

func newJobCmd(
	use, short string,
	job func(ctx context.Context, s *service.Scraper) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd.Context(), job)
		},
	}
}

func newAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "runs all import jobs, optionally on an interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ScrapeInterval == "" {
				return runJob(cmd.Context(),
					func(ctx context.Context, s *service.Scraper) error {
						return s.ScrapeAll(ctx)
					})
			}
			return runOnInterval(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&config.ScrapeInterval,
		"interval",
		"",
		"if set (e.g. 24h), rerun all jobs on this interval")
	return cmd
}

func runJob(
	ctx context.Context,
	job func(ctx context.Context, s *service.Scraper) error,
) error {
	logger := log.DevLogger(os.Stderr,
		parseLogLevel(config.LogLevel, log.InfoLevel))
	log.ResetDefault(logger)

	waitForDatabase()

	pool, err := postgres.InitWithURL(config.DB)
	if err != nil {
		log.Error("could not connect to database", log.ErrorField(err))
		return err
	}
	defer pool.Close()

	timeout, err := time.ParseDuration(config.UpstreamTimeout)
	if err != nil {
		timeout = 10 * time.Second
	}
	scraper := service.NewScraper(
		service.WithScraperPool(pool),
		service.WithScraperTelemetry(openf1.NewClient(
			openf1.WithBaseURL(config.OpenF1URL),
			openf1.WithTimeout(timeout))))
	return job(ctx, scraper)
}

func runOnInterval(ctx context.Context) error {
	interval, err := time.ParseDuration(config.ScrapeInterval)
	if err != nil {
		return err
	}
	all := func(ctx context.Context, s *service.Scraper) error {
		return s.ScrapeAll(ctx)
	}
	// first run on startup, like the original scheduler
	if err := runJob(ctx, all); err != nil {
		log.Error("import failed", log.ErrorField(err))
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	for {
		select {
		case <-ticker.C:
			if err := runJob(ctx, all); err != nil {
				log.Error("import failed", log.ErrorField(err))
			}
		case <-sigChan:
			log.Info("terminating")
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func waitForDatabase() {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		timeout = 60 * time.Second
	}
	if postgresAddr := utils.ExtractFromDBURL(config.DB); postgresAddr != "" {
		if err := utils.WaitForTCP(postgresAddr, timeout); err != nil {
			log.Fatal("database not ready", log.ErrorField(err))
		}
	}
}
