package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/orbview/sattrack/internal/catalog"
	"github.com/orbview/sattrack/internal/ingest"
)

// ---------------------------------------------------------------------------
// Core handlers
// ---------------------------------------------------------------------------

func (a *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	// If the client asks for JSON, return component-level health checks.
	if r.Header.Get("Accept") == "application/json" {
		a.handleHealthDetailed(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (a *App) handleHealthDetailed(w http.ResponseWriter, r *http.Request) {
	checks := map[string]any{}
	allOK := true

	// Round-trip a probe key through the cache store. The probe lives
	// outside the /satellites namespace so an administrative clear never
	// races with it.
	probe := []byte("ok")
	a.cache.Set(r.Context(), "/health/probe", probe, 30*time.Second)
	if v, ok := a.cache.Get(r.Context(), "/health/probe"); ok && string(v) == "ok" {
		checks["cache"] = map[string]any{"ok": true}
	} else {
		checks["cache"] = map[string]any{"ok": false, "error": "cache round-trip failed"}
		allOK = false
	}

	checks["providers"] = map[string]any{
		"ok":      true,
		"order":   []string{"celestrak", "spacetrack"},
		"groups":  a.cfg.Celestrak.Groups,
		"primary": a.cfg.Celestrak.BaseURL,
	}

	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"healthy": allOK,
		"checks":  checks,
	})
}

func (a *App) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"name":           "sattrack",
		"uptime_seconds": int64(time.Since(a.startedAt).Seconds()),
		"cache_path":     a.cfg.Cache.Path,
		"providers":      []string{"celestrak", "spacetrack"},
		"groups":         a.cfg.Celestrak.Groups,
	}
	if info, ok := a.svc.LastFetch(r.Context()); ok {
		resp["last_fetch"] = info
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (a *App) handleVersion(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{
		"version":    Version,
		"go_version": runtime.Version(),
		"built_at":   BuiltAt,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// ---------------------------------------------------------------------------
// Satellite API
// ---------------------------------------------------------------------------

func (a *App) handleSatellites(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := a.svc.ActiveSatellites(r.Context(), filter)
	if err != nil {
		writeFetchError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"count":      len(records),
		"satellites": records,
	})
}

func (a *App) handleSatelliteByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/satellites/")
	if id == "" || strings.Contains(id, "/") {
		jsonError(w, "catalog id required", http.StatusBadRequest)
		return
	}

	rec, found, err := a.svc.SatelliteByID(r.Context(), id)
	if err != nil {
		writeFetchError(w, err)
		return
	}
	if !found {
		jsonError(w, fmt.Sprintf("satellite %s not found", id), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rec)
}

func (a *App) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := a.svc.Stats(r.Context(), filter)
	if err != nil {
		writeFetchError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stats)
}

func (a *App) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	n, err := a.svc.ClearCache(r.Context())
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":              true,
		"entries_removed": n,
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// parseFilter builds a catalog.Filter from query parameters. List-valued
// parameters are comma-separated; numeric bounds are inclusive.
func parseFilter(r *http.Request) (*catalog.Filter, error) {
	q := r.URL.Query()
	f := &catalog.Filter{}

	for _, v := range splitList(q.Get("mission")) {
		f.MissionTypes = append(f.MissionTypes, catalog.MissionType(v))
	}
	for _, v := range splitList(q.Get("regime")) {
		f.Regimes = append(f.Regimes, catalog.OrbitRegime(v))
	}
	f.Countries = splitList(q.Get("country"))
	f.Operators = splitList(q.Get("operator"))

	if v := q.Get("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid active parameter %q", v)
		}
		f.Active = &b
	}

	var err error
	if f.MinAltitudeKm, err = parseFloatParam(q.Get("min_altitude_km"), "min_altitude_km"); err != nil {
		return nil, err
	}
	if f.MaxAltitudeKm, err = parseFloatParam(q.Get("max_altitude_km"), "max_altitude_km"); err != nil {
		return nil, err
	}
	if f.MinInclinationDeg, err = parseFloatParam(q.Get("min_inclination_deg"), "min_inclination_deg"); err != nil {
		return nil, err
	}
	if f.MaxInclinationDeg, err = parseFloatParam(q.Get("max_inclination_deg"), "max_inclination_deg"); err != nil {
		return nil, err
	}

	if f.IsZero() {
		return nil, nil
	}
	return f, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloatParam(s, name string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter %q", name, s)
	}
	return &v, nil
}

// writeFetchError maps orchestrator errors to HTTP responses. The
// all-providers-exhausted error becomes a 502 carrying the error code so
// clients can tell it apart from local failures.
func writeFetchError(w http.ResponseWriter, err error) {
	if ingest.IsFetchFailed(err) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":    false,
			"code":  ingest.CodeFetchFailed,
			"error": err.Error(),
		})
		return
	}
	jsonError(w, err.Error(), http.StatusInternalServerError)
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":    false,
		"error": msg,
	})
}
