// Sattrackd is the satellite tracking daemon. It ingests two-line element
// sets from CelesTrak with Space-Track as fallback, derives orbital
// parameters, and serves the enriched catalog over HTTP and WebSocket.
// Shutdown is handled gracefully on SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/orbview/sattrack/internal/app"
	"github.com/orbview/sattrack/internal/cache"
	"github.com/orbview/sattrack/internal/config"
	"github.com/orbview/sattrack/internal/ingest"
	"github.com/orbview/sattrack/internal/source"
	"github.com/orbview/sattrack/internal/tle"
	"github.com/orbview/sattrack/internal/ws"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "/etc/sattrack/sattrack.toml", "Path to config TOML")
		bind       = pflag.String("bind", "", "HTTP bind address (overrides config)")
		strictTLE  = pflag.Bool("strict-checksum", false, "Reject TLE entries with checksum mismatches")
	)
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// A missing config file is fine; defaults cover everything except
		// Space-Track credentials.
		if !errors.Is(err, os.ErrNotExist) {
			slog.Error("config load failed", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = config.Default()
	}

	logger := newLogger(cfg.Logging)

	store, err := cache.Open(cfg.Cache.Path, logger)
	if err != nil {
		logger.Error("cache open failed", "path", cfg.Cache.Path, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	parser := tle.NewParser(logger, tle.Options{StrictChecksum: *strictTLE})

	providers := []source.Provider{
		source.NewCelestrak(source.CelestrakOptions{
			BaseURL:    cfg.Celestrak.BaseURL,
			Groups:     cfg.Celestrak.Groups,
			Timeout:    cfg.Celestrak.Timeout(),
			Retries:    uint64(cfg.Celestrak.Retries),
			RetryDelay: cfg.Celestrak.RetryDelay(),
		}, logger),
		source.NewSpacetrack(source.SpacetrackOptions{
			BaseURL:    cfg.Spacetrack.BaseURL,
			Username:   cfg.Spacetrack.Username,
			Password:   cfg.Spacetrack.Password,
			Timeout:    cfg.Spacetrack.Timeout(),
			Retries:    uint64(cfg.Spacetrack.Retries),
			RetryDelay: cfg.Spacetrack.RetryDelay(),
		}, logger),
	}

	hub := ws.NewHub()

	svc := ingest.New(ingest.Options{
		Providers: providers,
		Parser:    parser,
		Cache:     store,
		TTL: ingest.TTLConfig{
			Collection: cfg.Cache.CollectionTTL(),
			Record:     cfg.Cache.RecordTTL(),
			Metadata:   cfg.Cache.MetadataTTL(),
		},
		Logger: logger,
		Events: hub,
	})

	a := app.New(app.Options{
		Logger:  logger,
		Cfg:     cfg,
		Bind:    *bind,
		Service: svc,
		Cache:   store,
		Hub:     hub,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("sattrackd failed", "error", err)
		os.Exit(1)
	}

	// Brief pause so in-flight log writes can flush before exit.
	time.Sleep(50 * time.Millisecond)
}

// newLogger builds the process logger from the logging config. Unknown
// levels fall back to info, unknown formats to text.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
