package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Cristiand11/portfolio-sub001/internal/audit"
	"github.com/Cristiand11/portfolio-sub001/internal/config"
	dbpkg "github.com/Cristiand11/portfolio-sub001/internal/db"
	"github.com/Cristiand11/portfolio-sub001/internal/notification"
	"github.com/Cristiand11/portfolio-sub001/internal/routes"
	"github.com/Cristiand11/portfolio-sub001/internal/timezone"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), cfg, logger, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run migrations before serving")
	return cmd
}

// notificationSink picks the delivery channel from NOTIFY_DRIVER. The
// returned closer releases the sink's connections, if any.
func notificationSink(cfg *config.Config, logger zerolog.Logger) (notification.Sink, func() error, error) {
	switch cfg.NotifyDriver {
	case "", "log":
		return notification.NewLogSink(logger), func() error { return nil }, nil
	case "smtp":
		return notification.NewSMTPSink(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom), func() error { return nil }, nil
	case "kafka":
		sink := notification.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		return sink, sink.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown NOTIFY_DRIVER %q", cfg.NotifyDriver)
}

func newRedis(cfg *config.Config, logger zerolog.Logger) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		logger.Warn().Msg("REDIS_URL not set, login rate limit disabled")
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func serve(ctx context.Context, cfg *config.Config, logger zerolog.Logger, migrate bool) error {
	if !timezone.IsValid(cfg.Timezone) {
		return fmt.Errorf("invalid APP_TIMEZONE %q", cfg.Timezone)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	if migrate {
		if err := dbpkg.Migrate(db); err != nil {
			return err
		}
	}

	rdb, err := newRedis(cfg, logger)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// ======================================================
	// ASYNC SIDE EFFECTS
	// ======================================================
	auditDispatcher := audit.NewDispatcher(audit.New(db), logger)
	defer auditDispatcher.Close()

	sink, closeSink, err := notificationSink(cfg, logger)
	if err != nil {
		return err
	}
	notifier := notification.NewDispatcher(sink, logger)
	defer func() {
		notifier.Close()
		if err := closeSink(); err != nil {
			logger.Warn().Err(err).Msg("notification sink close failed")
		}
	}()

	// ======================================================
	// HTTP
	// ======================================================
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Logger:   logger,
		Audit:    auditDispatcher,
		Notifier: notifier,
		Redis:    rdb,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Str("timezone", cfg.Timezone).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
