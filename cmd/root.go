// Package cmd defines the CLI for the maman executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maman-crawler/maman/internal/clock/system"
	"github.com/maman-crawler/maman/internal/config"
	"github.com/maman-crawler/maman/internal/crawler"
	collyfetcher "github.com/maman-crawler/maman/internal/fetcher/colly"
	"github.com/maman-crawler/maman/internal/id/sidekiq"
	"github.com/maman-crawler/maman/internal/job"
	"github.com/maman-crawler/maman/internal/logging"
	redispublisher "github.com/maman-crawler/maman/internal/publisher/redis"
	"github.com/maman-crawler/maman/internal/server"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maman URL",
		Short: "Crawl a domain and queue every page for downstream workers",
		Long: `maman crawls the domain of the given seed URL depth-first and
publishes every fetched page as a Sidekiq job on a Redis queue,
where downstream workers pick them up for processing.`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawl,
	}
	cmd.Flags().StringVar(&cfgFile, "config", "", "config file path")
	return cmd
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	publisher := redispublisher.New(redispublisher.Config{
		Addr:      cfg.Redis.Addr,
		DB:        cfg.Redis.DB,
		QueueName: cfg.QueueName(),
	})
	defer func() {
		if cerr := publisher.Close(); cerr != nil {
			logger.Warn("close publisher", zap.Error(cerr))
		}
	}()

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent: cfg.Crawler.UserAgent,
		Timeout:   cfg.FetchTimeout(),
	})

	engine := crawler.NewEngine(
		crawler.Config{
			Concurrency:  cfg.Crawler.Concurrency,
			StrictOrigin: cfg.Crawler.StrictOrigin,
		},
		fetcher,
		publisher,
		job.NewSerializer(system.New()),
		sidekiq.New(),
		logger.Named("engine"),
	)

	if cfg.Metrics.Listen != "" {
		startOpsServer(ctx, cfg.Metrics.Listen, logger.Named("ops"))
	}

	if err := engine.Run(ctx, args[0]); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run crawl: %w", err)
	}
	return nil
}

func startOpsServer(ctx context.Context, listen string, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              listen,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("ops server started", zap.String("listen", listen))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ops server error", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("ops server shutdown error", zap.Error(err))
		}
	}()
}

// Execute is the main entry point. A missing seed URL prints the usage
// message and exits with status 1 before any crawl state is created.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
