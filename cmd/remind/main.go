// Command remind runs a single review notifier pass and exits. Useful for
// cron-style deployments where the long-running server is not wanted.
//
// Configuration comes from the same sources as the server.
package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/relearnapp/backend/internal/adapter/notify"
	"github.com/relearnapp/backend/internal/adapter/postgres"
	"github.com/relearnapp/backend/internal/adapter/postgres/reviewlog"
	sessionrepo "github.com/relearnapp/backend/internal/adapter/postgres/session"
	settingsrepo "github.com/relearnapp/backend/internal/adapter/postgres/settings"
	wordrepo "github.com/relearnapp/backend/internal/adapter/postgres/word"
	"github.com/relearnapp/backend/internal/app"
	"github.com/relearnapp/backend/internal/config"
	"github.com/relearnapp/backend/internal/service/review"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("remind: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("remind: connect database: %v", err)
	}
	defer pool.Close()

	var sink notify.Sink
	if cfg.Notify.GatewayURL != "" {
		sink = notify.NewPushSink(cfg.Notify.GatewayURL, cfg.Notify.APIKey, logger)
	} else {
		sink = notify.NewNoopSink(logger)
	}

	svc, err := review.NewService(
		logger,
		sessionrepo.New(pool),
		wordrepo.New(pool),
		settingsrepo.New(pool),
		reviewlog.New(pool),
		sink,
		postgres.NewTxManager(pool),
		clockwork.NewRealClock(),
		review.IntervalTable(cfg.Review.Intervals),
	)
	if err != nil {
		log.Fatalf("remind: %v", err)
	}

	if err := svc.Tick(ctx); err != nil {
		log.Fatalf("remind: tick: %v", err)
	}

	logger.Info("notifier pass complete", slog.String("version", app.BuildVersion()))
}
