package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nicolarischia/f1-analytics/log"
	"github.com/nicolarischia/f1-analytics/pkg/auth"
	"github.com/nicolarischia/f1-analytics/pkg/config"
	"github.com/nicolarischia/f1-analytics/pkg/db/postgres"
	"github.com/nicolarischia/f1-analytics/pkg/openf1"
	"github.com/nicolarischia/f1-analytics/pkg/results"
	"github.com/nicolarischia/f1-analytics/pkg/server"
	"github.com/nicolarischia/f1-analytics/pkg/service"
	"github.com/nicolarischia/f1-analytics/pkg/utils"
)

func NewServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "starts the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startServer()
		},
	}
	cmd.Flags().StringVarP(&config.ServerAddr,
		"server-addr",
		"a",
		"localhost:8080",
		"HTTP server listen address")
	cmd.Flags().StringVar(&config.LogLevel,
		"log-level",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	cmd.Flags().StringVar(&config.SQLLogLevel,
		"sql-log-level",
		"debug",
		"controls the log level for sql methods")
	cmd.Flags().StringVar(&config.LogFormat,
		"log-format",
		"json",
		"controls the log output format")
	cmd.Flags().StringVar(&config.LogConfig,
		"log-config",
		"",
		"log config file with filter rules")
	cmd.Flags().StringVar(&config.JWTSecret,
		"jwt-secret",
		"",
		"secret used to sign session tokens")
	cmd.Flags().StringVar(&config.TokenLifetime,
		"token-lifetime",
		"24h",
		"validity duration of issued session tokens")
	cmd.Flags().StringVar(&config.UpstreamTimeout,
		"upstream-timeout",
		"10s",
		"timeout for upstream telemetry requests")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func parseDuration(s string, defaultVal time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return defaultVal
}

//nolint:funlen // by design
func startServer() error {
	logger, sqlLogger := setupLoggers()
	log.ResetDefault(logger)

	waitForRequiredServices()

	log.Info("Starting server")
	pool, err := postgres.InitWithURL(
		config.DB,
		postgres.WithTracer(sqlLogger, log.DebugLevel),
	)
	if err != nil {
		log.Error("could not connect to database", log.ErrorField(err))
		return err
	}
	defer pool.Close()

	if config.JWTSecret == "" {
		log.Warn("no jwt secret configured, using random value; " +
			"tokens will not survive a restart")
		config.JWTSecret = utils.RandomSecret()
	}
	issuer := auth.NewTokenIssuer(config.JWTSecret,
		auth.WithLifetime(parseDuration(config.TokenLifetime, 24*time.Hour)))

	telemetry := openf1.NewClient(
		openf1.WithBaseURL(config.OpenF1URL),
		openf1.WithTimeout(parseDuration(config.UpstreamTimeout, 10*time.Second)))

	reconciler := results.NewReconciler(
		results.WithTelemetry(telemetry),
		results.WithDriverSource(service.NewCachedDriverSource(pool)))

	srv := server.NewServer(
		server.WithAddr(config.ServerAddr),
		server.WithPool(pool),
		server.WithTokenIssuer(issuer),
		server.WithTelemetryClient(telemetry),
		server.WithReconciler(reconciler))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errChan:
		log.Error("server could not be started", log.ErrorField(err))
		return err
	case v := <-sigChan:
		log.Debug("Got signal", log.Any("signal", v))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("error shutting down server", log.ErrorField(err))
		return err
	}
	log.Info("Server terminated")
	return nil
}

func setupLoggers() (logger, sqlLogger *log.Logger) {
	if config.LogConfig != "" {
		if cfg, err := log.LoadConfig(config.LogConfig); err == nil {
			logger = log.NewWithFilters(os.Stderr,
				parseLogLevel(cfg.DefaultLevel, log.InfoLevel),
				cfg.Filters,
				log.WithCaller(true),
				log.AddCallerSkip(1))
			sqlLogger = logger.Named("sql")
			return logger, sqlLogger
		}
		log.Warn("could not load log config, using defaults")
	}
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
		sqlLogger = log.New(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))

	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))

		sqlLogger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	return logger, sqlLogger
}

func waitForRequiredServices() {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}

	wg := sync.WaitGroup{}
	checkTCP := func(addr string) {
		if err = utils.WaitForTCP(addr, timeout); err != nil {
			log.Fatal("required services not ready", log.ErrorField(err))
		}
		wg.Done()
	}

	if postgresAddr := utils.ExtractFromDBURL(config.DB); postgresAddr != "" {
		wg.Add(1)
		go checkTCP(postgresAddr)
	}
	log.Debug("Waiting for connection checks to return")
	wg.Wait()
	log.Debug("Required services are available")
}
