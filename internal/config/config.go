package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	FeedURL     string
	SinkURL     string
	SinkSecret  string
	Port        string
	HTTPTimeout time.Duration
	LogLevel    slog.Level
}

func FromEnv() Config {
	_ = godotenv.Load()

	to := 15 * time.Second
	if v := os.Getenv("HTTP_TIMEOUT_SECONDS"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil {
			to = d
		}
	}
	lvl := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		lvl = slog.LevelDebug
	}
	return Config{
		FeedURL:     os.Getenv("FEED_URL"),
		SinkURL:     os.Getenv("SINK_URL"),
		SinkSecret:  os.Getenv("SINK_SECRET"),
		Port:        envOr("PORT", "8080"),
		HTTPTimeout: to,
		LogLevel:    lvl,
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
