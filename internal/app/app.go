// Package app wires configuration, storage, services and transport together
// and runs the HTTP server plus the background review notifier.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/relearnapp/backend/internal/adapter/notify"
	"github.com/relearnapp/backend/internal/adapter/postgres"
	"github.com/relearnapp/backend/internal/adapter/postgres/reviewlog"
	sessionrepo "github.com/relearnapp/backend/internal/adapter/postgres/session"
	settingsrepo "github.com/relearnapp/backend/internal/adapter/postgres/settings"
	userrepo "github.com/relearnapp/backend/internal/adapter/postgres/user"
	wordrepo "github.com/relearnapp/backend/internal/adapter/postgres/word"
	"github.com/relearnapp/backend/internal/adapter/provider/analysis"
	internalauth "github.com/relearnapp/backend/internal/auth"
	"github.com/relearnapp/backend/internal/config"
	authsvc "github.com/relearnapp/backend/internal/service/auth"
	"github.com/relearnapp/backend/internal/service/capture"
	"github.com/relearnapp/backend/internal/service/review"
	settingssvc "github.com/relearnapp/backend/internal/service/settings"
	"github.com/relearnapp/backend/internal/transport/middleware"
	"github.com/relearnapp/backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, builds the service graph and serves HTTP until ctx is
// cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(cfg.Database.DSN); err != nil {
			return fmt.Errorf("app: migrate: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("app: connect database: %w", err)
	}
	defer pool.Close()

	clock := clockwork.NewRealClock()

	sessions := sessionrepo.New(pool)
	words := wordrepo.New(pool)
	settings := settingsrepo.New(pool)
	users := userrepo.New(pool)
	reviewLogs := reviewlog.New(pool)
	txManager := postgres.NewTxManager(pool)

	jwtManager := internalauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	analysisClient := analysis.NewClient(cfg.Analysis.BaseURL, cfg.Analysis.APIKey, logger)

	var sink notify.Sink
	if cfg.Notify.GatewayURL != "" {
		sink = notify.NewPushSink(cfg.Notify.GatewayURL, cfg.Notify.APIKey, logger)
	} else {
		sink = notify.NewNoopSink(logger)
		logger.Warn("push gateway not configured, alerts will be dropped")
	}

	intervals := review.IntervalTable(cfg.Review.Intervals)

	reviewSvc, err := review.NewService(logger, sessions, words, settings, reviewLogs, sink, txManager, clock, intervals)
	if err != nil {
		return fmt.Errorf("app: review service: %w", err)
	}
	captureSvc := capture.NewService(logger, sessions, words, analysisClient, clock, intervals)
	authSvc := authsvc.NewService(logger, users, settings, txManager, jwtManager, internalauth.HashToken, clock, cfg.Auth)
	settingsSvc := settingssvc.NewService(logger, settings, clock)

	handlers := rest.Handlers{
		Health:   rest.NewHealthHandler(pool, BuildVersion()),
		Auth:     rest.NewAuthHandler(authSvc, logger),
		Capture:  rest.NewCaptureHandler(captureSvc, logger),
		Review:   rest.NewReviewHandler(reviewSvc, logger),
		Settings: rest.NewSettingsHandler(settingsSvc, logger),
		Practice: rest.NewPracticeHandler(captureSvc, logger),
	}

	router := rest.NewRouter(handlers, middleware.Auth(jwtManager))
	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(router)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	notifierCtx, stopNotifier := context.WithCancel(ctx)
	defer stopNotifier()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runNotifier(notifierCtx, logger, reviewSvc, clock, cfg.Review.TickInterval)
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("http server listening", slog.String("addr", srv.Addr))

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			stopNotifier()
			wg.Wait()
			return fmt.Errorf("app: http server: %w", err)
		}
	}

	logger.Info("shutting down")

	// Stop the notifier before draining the server so no new alert pass
	// starts mid-shutdown.
	stopNotifier()
	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// runNotifier drives the review notifier on a fixed cadence until ctx is
// cancelled. Tick failures are logged and the loop keeps going; a single bad
// pass must not kill alerting for good.
func runNotifier(ctx context.Context, log *slog.Logger, svc *review.Service, clock clockwork.Clock, interval time.Duration) {
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if err := svc.Tick(ctx); err != nil {
				log.Error("notifier tick failed", slog.String("error", err.Error()))
			}
		}
	}
}
