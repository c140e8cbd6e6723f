// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal services packages.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"bulletin/internal/email"
	"bulletin/internal/platform/config"
	"bulletin/internal/platform/httpserver"
	"bulletin/internal/platform/logger"
	"bulletin/internal/platform/metrics"
	"bulletin/internal/platform/postgres"
	"bulletin/internal/subscription/handler"
	"bulletin/internal/subscription/service"
	"bulletin/internal/subscription/store"
	"bulletin/internal/subscription/token"
	httptransport "bulletin/internal/transport/http"
	"bulletin/migrations"
	"bulletin/pkg/domain"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Server.LogLevel)

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.Database.URL())
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.Database.URL(), migrations.FS); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	sender, err := domain.ParseSubscriberEmail(cfg.Email.Sender)
	if err != nil {
		log.Error("invalid sender email address", "error", err)
		os.Exit(1)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	notifier := email.NewClient(cfg.Email.BaseURL, sender, cfg.Email.AuthToken, cfg.Email.Timeout)

	subscriptions := service.New(
		store.NewPostgres(pool),
		store.NewPostgresTx(pool),
		notifier,
		token.NewGenerator(),
		cfg.App.BaseURL,
		log,
		m,
	)

	router := httptransport.NewRouter(handler.New(subscriptions, log), log)
	srv := httpserver.New(cfg.Server.Addr, router)

	log.Info("starting bulletin", "addr", cfg.Server.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
