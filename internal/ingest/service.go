// Package ingest orchestrates the fetch → parse → derive → classify →
// cache → filter pipeline. It composes the upstream providers, the TLE
// parser, and the cache store into the four public operations the serving
// layer exposes: list active satellites, look one up by catalog ID, compute
// statistics, and clear the cache.
package ingest

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/orbview/sattrack/internal/cache"
	"github.com/orbview/sattrack/internal/catalog"
	"github.com/orbview/sattrack/internal/metrics"
	"github.com/orbview/sattrack/internal/orbit"
	"github.com/orbview/sattrack/internal/source"
	"github.com/orbview/sattrack/internal/telemetry"
	"github.com/orbview/sattrack/internal/tle"
)

// Cache key namespaces. Everything lives under /satellites so the
// administrative clear removes collections and per-id records together.
const (
	namespacePrefix  = "/satellites"
	activePrefix     = namespacePrefix + "/active/"
	recordPrefix     = namespacePrefix + "/record/"
	lastFetchMetaKey = namespacePrefix + "/meta/last_fetch"
)

// activeWindow is how recent an element-set epoch must be for a satellite
// to count as active. Decayed objects stop being published, so epoch
// staleness is the best available proxy.
const activeWindow = 30 * 24 * time.Hour

// FetchInfo describes the most recent successful upstream fetch. It is kept
// in the cache under the long-lived metadata TTL so status reporting
// survives collection expiry.
type FetchInfo struct {
	Provider  string    `json:"provider"`
	Records   int       `json:"records"`
	FetchedAt time.Time `json:"fetched_at"`
}

// TTLConfig carries the externally configured expiry per data class.
type TTLConfig struct {
	Collection time.Duration
	Record     time.Duration
	Metadata   time.Duration
}

// EventSink receives ingestion lifecycle events. *ws.Hub satisfies it.
type EventSink interface {
	BroadcastJSON(v any)
}

// Service is the ingestion orchestrator. Construct it once at process
// start and share it; all state lives in the injected cache store.
type Service struct {
	providers []source.Provider
	parser    *tle.Parser
	cache     *cache.Store
	ttl       TTLConfig
	log       *slog.Logger
	events    EventSink

	now func() time.Time
}

// Options holds the Service's collaborators. Providers are attempted in
// slice order; the second and later entries are true fallbacks, never
// raced concurrently against earlier ones.
type Options struct {
	Providers []source.Provider
	Parser    *tle.Parser
	Cache     *cache.Store
	TTL       TTLConfig
	Logger    *slog.Logger
	Events    EventSink // optional
}

// New creates a Service.
func New(opts Options) *Service {
	return &Service{
		providers: opts.Providers,
		parser:    opts.Parser,
		cache:     opts.Cache,
		ttl:       opts.TTL,
		log:       opts.Logger,
		events:    opts.Events,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ActiveSatellites returns the current satellite collection matching the
// filter. A cache hit short-circuits the providers entirely; on a miss the
// providers are tried strictly in order and the first success is filtered,
// written through to the cache, and returned. When every provider fails
// the caller gets a *FetchFailedError and the cache is left untouched.
func (s *Service) ActiveSatellites(ctx context.Context, f *catalog.Filter) ([]catalog.SatelliteRecord, error) {
	key := activePrefix + f.Fingerprint()

	if b, ok := s.cache.Get(ctx, key); ok {
		var records []catalog.SatelliteRecord
		if err := json.Unmarshal(b, &records); err == nil {
			metrics.CacheHit("collection")
			return records, nil
		}
		s.log.Warn("corrupt cached collection, refetching", "key", key)
	}
	metrics.CacheMiss("collection")

	var causes []error
	for _, p := range s.providers {
		start := s.now()
		s.emit(telemetry.FetchStarted{
			Event:    telemetry.NewEvent(telemetry.EventFetchStarted),
			Provider: p.Name(),
		})
		metrics.FetchAttempt(p.Name())

		entries, err := p.FetchRaw(ctx)
		if err != nil {
			metrics.FetchFailure(p.Name())
			s.log.Warn("provider fetch failed", "provider", p.Name(), "error", err)
			s.emit(telemetry.ProviderFailed{
				Event:    telemetry.NewEvent(telemetry.EventProviderFailed),
				Provider: p.Name(),
				Error:    err.Error(),
			})
			causes = append(causes, err)
			continue
		}

		records := s.buildRecords(entries, catalog.Provider(p.Name()))
		filtered := catalog.Apply(records, f)

		if b, err := json.Marshal(filtered); err == nil {
			s.cache.Set(ctx, key, b, s.ttl.Collection)
		}
		if b, err := json.Marshal(FetchInfo{
			Provider:  p.Name(),
			Records:   len(records),
			FetchedAt: s.now(),
		}); err == nil {
			s.cache.Set(ctx, lastFetchMetaKey, b, s.ttl.Metadata)
		}

		s.emit(telemetry.FetchCompleted{
			Event:      telemetry.NewEvent(telemetry.EventFetchCompleted),
			Provider:   p.Name(),
			Records:    len(filtered),
			DurationMS: float64(s.now().Sub(start)) / float64(time.Millisecond),
		})
		s.log.Info("satellite collection refreshed",
			"provider", p.Name(), "parsed", len(records), "returned", len(filtered))
		return filtered, nil
	}

	return nil, &FetchFailedError{Causes: causes}
}

// SatelliteByID returns the record with the given catalog ID. The second
// return value reports whether it was found; absence is not an error. On a
// per-id cache miss the full unfiltered collection is consulted and the
// found record is written to the per-id cache.
func (s *Service) SatelliteByID(ctx context.Context, id string) (*catalog.SatelliteRecord, bool, error) {
	key := recordPrefix + id

	if b, ok := s.cache.Get(ctx, key); ok {
		var rec catalog.SatelliteRecord
		if err := json.Unmarshal(b, &rec); err == nil {
			metrics.CacheHit("record")
			return &rec, true, nil
		}
		s.log.Warn("corrupt cached record, refetching", "key", key)
	}
	metrics.CacheMiss("record")

	records, err := s.ActiveSatellites(ctx, nil)
	if err != nil {
		return nil, false, err
	}

	for i := range records {
		if records[i].CatalogID == id {
			if b, err := json.Marshal(records[i]); err == nil {
				s.cache.Set(ctx, key, b, s.ttl.Record)
			}
			return &records[i], true, nil
		}
	}
	return nil, false, nil
}

// LastFetch returns metadata about the most recent successful upstream
// fetch, if one is still within the metadata TTL.
func (s *Service) LastFetch(ctx context.Context) (*FetchInfo, bool) {
	b, ok := s.cache.Get(ctx, lastFetchMetaKey)
	if !ok {
		metrics.CacheMiss("metadata")
		return nil, false
	}
	var info FetchInfo
	if err := json.Unmarshal(b, &info); err != nil {
		return nil, false
	}
	metrics.CacheHit("metadata")
	return &info, true
}

// Stats recomputes aggregate statistics from the filtered collection on
// every call; statistics themselves are never cached.
func (s *Service) Stats(ctx context.Context, f *catalog.Filter) (catalog.Stats, error) {
	records, err := s.ActiveSatellites(ctx, f)
	if err != nil {
		return catalog.Stats{}, err
	}
	return catalog.ComputeStats(records), nil
}

// ClearCache removes every cache entry under the satellites namespace,
// collections and per-id records alike, and returns how many were removed.
func (s *Service) ClearCache(ctx context.Context) (int, error) {
	n, err := s.cache.DeletePrefix(ctx, namespacePrefix)
	if err != nil {
		return n, err
	}
	s.emit(telemetry.CacheCleared{
		Event:          telemetry.NewEvent(telemetry.EventCacheCleared),
		EntriesRemoved: n,
	})
	s.log.Info("satellite cache cleared", "entries", n)
	return n, nil
}

// buildRecords runs parse, derivation, and classification over raw
// entries. Unparseable entries are dropped silently at the record level.
func (s *Service) buildRecords(entries []tle.Entry, origin catalog.Provider) []catalog.SatelliteRecord {
	now := s.now()
	records := make([]catalog.SatelliteRecord, 0, len(entries))

	for _, e := range entries {
		rec, err := s.parser.ParseEntry(e)
		if err != nil {
			metrics.RecordRejected()
			s.log.Debug("dropping malformed TLE entry", "name", e.Name, "error", err)
			continue
		}
		metrics.RecordParsed()

		sma := orbit.SemiMajorAxis(rec.MeanMotion)
		alt := orbit.Altitude(sma)

		country := rec.Country
		if country == "" {
			country = "Unknown"
		}

		records = append(records, catalog.SatelliteRecord{
			CatalogID:   rec.CatalogNumber,
			Name:        rec.Name,
			MissionType: orbit.ClassifyMission(rec.Name),
			OrbitRegime: orbit.ClassifyRegime(alt, rec.InclinationDeg),
			Elements: catalog.OrbitalElements{
				SemiMajorAxisKm:     sma,
				Eccentricity:        rec.Eccentricity,
				InclinationDeg:      rec.InclinationDeg,
				RAANDeg:             rec.RAANDeg,
				ArgPerigeeDeg:       rec.ArgPerigeeDeg,
				MeanAnomalyDeg:      rec.MeanAnomalyDeg,
				Epoch:               rec.Epoch,
				MeanMotionRevPerDay: rec.MeanMotion,
				PeriodMinutes:       orbit.Period(rec.MeanMotion),
			},
			Metadata: catalog.Metadata{
				IntlDesignator: rec.IntlDesignator,
				Country:        country,
				Operator:       "Unknown",
				Mission:        "Unknown",
			},
			AltitudeKm:  alt,
			Active:      now.Sub(rec.Epoch) <= activeWindow,
			LastUpdated: now,
			Origin:      origin,
		})
	}
	return records
}

func (s *Service) emit(ev any) {
	if s.events != nil {
		s.events.BroadcastJSON(ev)
	}
}
