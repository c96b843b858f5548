package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/layoutdev-pt/prospout/internal/analytics"
	"github.com/layoutdev-pt/prospout/internal/config"
	"github.com/layoutdev-pt/prospout/internal/httpx"
	"github.com/layoutdev-pt/prospout/internal/ingest"
	"github.com/layoutdev-pt/prospout/internal/store"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	cl := ingest.NewHTTPClient(cfg.HTTPTimeout)
	st := store.NewMemoryStore()
	svc := analytics.NewService(st)
	feed := ingest.NewFeed(cl, st, svc, logger, cfg)

	r := httpx.NewRouter(logger, st, svc, feed)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
