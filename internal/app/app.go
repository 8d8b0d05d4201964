// Package app wires together the HTTP server, the WebSocket telemetry hub,
// and the ingestion service. It owns the daemon's lifecycle.
package app

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/orbview/sattrack/internal/cache"
	"github.com/orbview/sattrack/internal/config"
	"github.com/orbview/sattrack/internal/ingest"
	"github.com/orbview/sattrack/internal/metrics"
	"github.com/orbview/sattrack/internal/telemetry"
	"github.com/orbview/sattrack/internal/ws"
)

// Options holds everything the App needs from the caller. The service,
// cache, and hub are constructed at process start and injected; the App
// never reaches for global state.
type Options struct {
	Logger  *slog.Logger
	Cfg     config.Config
	Bind    string
	Service *ingest.Service
	Cache   *cache.Store
	Hub     *ws.Hub
}

// App is the top-level daemon process. It manages the HTTP server, the
// WebSocket event hub, and the ingestion service behind the API.
type App struct {
	log    *slog.Logger
	cfg    config.Config
	bind   string
	server *http.Server

	startedAt time.Time

	svc   *ingest.Service
	cache *cache.Store
	wsHub *ws.Hub
}

// New creates an App. Call Run to start serving.
func New(opts Options) *App {
	return &App{
		log:       opts.Logger,
		cfg:       opts.Cfg,
		bind:      opts.Bind,
		startedAt: time.Now(),
		svc:       opts.Service,
		cache:     opts.Cache,
		wsHub:     opts.Hub,
	}
}

// Run starts the HTTP server, WebSocket hub, and heartbeat ticker. It
// blocks until the context is cancelled or the server returns an error.
func (a *App) Run(ctx context.Context) error {
	bind := a.bind
	if bind == "" && a.cfg.Server.Bind != "" {
		bind = a.cfg.Server.Bind
	}
	if bind == "" {
		bind = "0.0.0.0:8080"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", a.handleHealthz)
	mux.HandleFunc("/api/status", a.handleStatus)
	mux.HandleFunc("/api/version", a.handleVersion)
	mux.HandleFunc("/api/satellites", a.handleSatellites)
	mux.HandleFunc("/api/satellites/", a.handleSatelliteByID)
	mux.HandleFunc("/api/stats", a.handleStats)
	mux.HandleFunc("/api/cache/clear", a.handleCacheClear)
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/ws", a.wsHub.Handler())

	a.server = &http.Server{
		Addr:              bind,
		Handler:           metrics.Middleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", bind)
	if err != nil {
		return err
	}

	a.log.Info("listening", "addr", "http://"+bind)

	go a.wsHub.Run(ctx)
	go a.heartbeatLoop(ctx)

	go func() {
		<-ctx.Done()
		a.log.Info("shutdown requested")
		_ = a.server.Shutdown(context.Background())
	}()

	return a.server.Serve(ln)
}

// heartbeatLoop sends a periodic heartbeat event so clients can detect
// connectivity and track uptime without polling.
func (a *App) heartbeatLoop(ctx context.Context) {
	interval := time.Duration(a.cfg.Telemetry.HeartbeatSeconds) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.wsHub.BroadcastJSON(telemetry.Heartbeat{
				Event:         telemetry.NewEvent(telemetry.EventHeartbeat),
				UptimeSeconds: int64(time.Since(a.startedAt).Seconds()),
			})
		}
	}
}
