package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbview/sattrack/internal/cache"
	"github.com/orbview/sattrack/internal/catalog"
	"github.com/orbview/sattrack/internal/source"
	"github.com/orbview/sattrack/internal/telemetry"
	"github.com/orbview/sattrack/internal/tle"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// rawEntry builds one valid raw entry with the given epoch (TLE format,
// e.g. "24010.00000000").
func rawEntry(name, catalog, epoch string) tle.Entry {
	l1 := fmt.Sprintf("1 %5sU %-8s %14s %10s %8s %8s 0 %4s",
		catalog, "98067A", epoch, ".00016717", "00000-0", "10270-3", "999")
	l2 := fmt.Sprintf("2 %5s %8s %8s %7s %8s %8s %11s%5s",
		catalog, "51.6400", "208.9163", "0006317", "69.9862", "25.2906", "15.49560532", "15")
	return tle.Entry{
		Name:  name,
		Line1: l1 + strconv.Itoa(tle.Checksum(l1)),
		Line2: l2 + strconv.Itoa(tle.Checksum(l2)),
	}
}

type fakeProvider struct {
	name    string
	entries []tle.Entry
	err     error
	calls   int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) FetchRaw(_ context.Context) ([]tle.Entry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

type eventRecorder struct {
	events []any
}

func (r *eventRecorder) BroadcastJSON(v any) { r.events = append(r.events, v) }

func newTestService(t *testing.T, providers ...source.Provider) (*Service, *eventRecorder) {
	t.Helper()

	store, err := cache.Open(t.TempDir(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	rec := &eventRecorder{}
	svc := New(Options{
		Providers: providers,
		Parser:    tle.NewParser(testLogger(), tle.Options{}),
		Cache:     store,
		TTL: TTLConfig{
			Collection: time.Minute,
			Record:     time.Minute,
			Metadata:   time.Minute,
		},
		Logger: testLogger(),
		Events: rec,
	})
	// Pin the clock shortly after the test epochs so the activity window is
	// deterministic.
	svc.now = func() time.Time { return time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC) }
	return svc, rec
}

func TestActiveSatellitesPrimarySuccess(t *testing.T) {
	primary := &fakeProvider{
		name:    "celestrak",
		entries: []tle.Entry{rawEntry("ISS (ZARYA)", "25544", "24010.00000000")},
	}
	svc, _ := newTestService(t, primary)

	records, err := svc.ActiveSatellites(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "25544", r.CatalogID)
	assert.Equal(t, "ISS (ZARYA)", r.Name)
	assert.Equal(t, catalog.MissionSpaceStation, r.MissionType)
	assert.Equal(t, catalog.RegimeLEO, r.OrbitRegime)
	assert.Equal(t, catalog.Provider("celestrak"), r.Origin)
	assert.Equal(t, "Unknown", r.Metadata.Country)
	assert.True(t, r.Active, "epoch within the activity window")
	assert.InDelta(t, 425, r.AltitudeKm, 3)
	assert.InDelta(t, 92.92, r.Elements.PeriodMinutes, 0.1)
}

func TestActiveSatellitesStaleEpochInactive(t *testing.T) {
	primary := &fakeProvider{
		name:    "celestrak",
		entries: []tle.Entry{rawEntry("COSMOS 2251 DEB", "40001", "23001.00000000")},
	}
	svc, _ := newTestService(t, primary)

	records, err := svc.ActiveSatellites(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Active)
}

func TestActiveSatellitesFallback(t *testing.T) {
	primary := &fakeProvider{name: "celestrak", err: errors.New("network down")}
	fallback := &fakeProvider{
		name:    "spacetrack",
		entries: []tle.Entry{rawEntry("ISS (ZARYA)", "25544", "24010.00000000")},
	}
	svc, rec := newTestService(t, primary, fallback)

	records, err := svc.ActiveSatellites(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, catalog.Provider("spacetrack"), records[0].Origin)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)

	// The failover is visible in the event stream: started, failed,
	// started, completed.
	require.Len(t, rec.events, 4)
	assert.IsType(t, telemetry.FetchStarted{}, rec.events[0])
	assert.IsType(t, telemetry.ProviderFailed{}, rec.events[1])
	assert.IsType(t, telemetry.FetchStarted{}, rec.events[2])
	assert.IsType(t, telemetry.FetchCompleted{}, rec.events[3])
}

func TestActiveSatellitesAllProvidersFail(t *testing.T) {
	primary := &fakeProvider{name: "celestrak", err: errors.New("network down")}
	fallback := &fakeProvider{name: "spacetrack", err: errors.New("bad credentials")}
	svc, _ := newTestService(t, primary, fallback)

	_, err := svc.ActiveSatellites(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsFetchFailed(err))
	assert.Contains(t, err.Error(), CodeFetchFailed)
	assert.Contains(t, err.Error(), "network down")
	assert.Contains(t, err.Error(), "bad credentials")

	// Nothing was cached, so a second call hits the providers again.
	_, err = svc.ActiveSatellites(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, 2, primary.calls)
	assert.Equal(t, 2, fallback.calls)
}

func TestActiveSatellitesCacheHit(t *testing.T) {
	primary := &fakeProvider{
		name:    "celestrak",
		entries: []tle.Entry{rawEntry("ISS (ZARYA)", "25544", "24010.00000000")},
	}
	svc, _ := newTestService(t, primary)
	ctx := context.Background()

	first, err := svc.ActiveSatellites(ctx, nil)
	require.NoError(t, err)

	second, err := svc.ActiveSatellites(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, primary.calls, "cache hit must not reach the provider")
	assert.Equal(t, first, second)
}

func TestActiveSatellitesFilterKeysCacheSeparately(t *testing.T) {
	primary := &fakeProvider{
		name: "celestrak",
		entries: []tle.Entry{
			rawEntry("ISS (ZARYA)", "25544", "24010.00000000"),
			rawEntry("NOAA 18", "28654", "24010.00000000"),
		},
	}
	svc, _ := newTestService(t, primary)
	ctx := context.Background()

	weather := &catalog.Filter{MissionTypes: []catalog.MissionType{catalog.MissionWeather}}
	records, err := svc.ActiveSatellites(ctx, weather)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "28654", records[0].CatalogID)

	// The unfiltered collection is a different cache entry.
	all, err := svc.ActiveSatellites(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, primary.calls)

	// Both keys are now warm.
	_, err = svc.ActiveSatellites(ctx, weather)
	require.NoError(t, err)
	assert.Equal(t, 2, primary.calls)
}

func TestSatelliteByID(t *testing.T) {
	primary := &fakeProvider{
		name: "celestrak",
		entries: []tle.Entry{
			rawEntry("ISS (ZARYA)", "25544", "24010.00000000"),
			rawEntry("NOAA 18", "28654", "24010.00000000"),
		},
	}
	svc, _ := newTestService(t, primary)
	ctx := context.Background()

	rec, found, err := svc.SatelliteByID(ctx, "28654")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "NOAA 18", rec.Name)

	// The per-id entry is now cached on its own.
	_, found, err = svc.SatelliteByID(ctx, "28654")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, primary.calls)

	// Absence is not an error.
	rec, found, err = svc.SatelliteByID(ctx, "99999")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, rec)
}

func TestStats(t *testing.T) {
	primary := &fakeProvider{
		name: "celestrak",
		entries: []tle.Entry{
			rawEntry("ISS (ZARYA)", "25544", "24010.00000000"),
			rawEntry("NOAA 18", "28654", "23001.00000000"),
		},
	}
	svc, _ := newTestService(t, primary)

	stats, err := svc.Stats(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Inactive)
	assert.Equal(t, 1, stats.ByMissionType[catalog.MissionSpaceStation])
	assert.Equal(t, 1, stats.ByMissionType[catalog.MissionWeather])
}

func TestClearCache(t *testing.T) {
	primary := &fakeProvider{
		name:    "celestrak",
		entries: []tle.Entry{rawEntry("ISS (ZARYA)", "25544", "24010.00000000")},
	}
	svc, rec := newTestService(t, primary)
	ctx := context.Background()

	_, err := svc.ActiveSatellites(ctx, nil)
	require.NoError(t, err)

	_, found, err := svc.SatelliteByID(ctx, "25544")
	require.NoError(t, err)
	require.True(t, found)

	n, err := svc.ClearCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n, "collection entry, per-id entry, and fetch metadata")

	cleared := rec.events[len(rec.events)-1]
	require.IsType(t, telemetry.CacheCleared{}, cleared)
	assert.Equal(t, 3, cleared.(telemetry.CacheCleared).EntriesRemoved)

	// The next read is a miss and reaches the provider again.
	_, err = svc.ActiveSatellites(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, primary.calls)
}

func TestLastFetch(t *testing.T) {
	primary := &fakeProvider{
		name:    "celestrak",
		entries: []tle.Entry{rawEntry("ISS (ZARYA)", "25544", "24010.00000000")},
	}
	svc, _ := newTestService(t, primary)
	ctx := context.Background()

	_, ok := svc.LastFetch(ctx)
	assert.False(t, ok, "no fetch has happened yet")

	_, err := svc.ActiveSatellites(ctx, nil)
	require.NoError(t, err)

	info, ok := svc.LastFetch(ctx)
	require.True(t, ok)
	assert.Equal(t, "celestrak", info.Provider)
	assert.Equal(t, 1, info.Records)
	assert.Equal(t, svc.now(), info.FetchedAt)
}

func TestBuildRecordsDropsMalformed(t *testing.T) {
	primary := &fakeProvider{
		name: "celestrak",
		entries: []tle.Entry{
			rawEntry("ISS (ZARYA)", "25544", "24010.00000000"),
			{Name: "GARBAGE", Line1: "not a tle", Line2: "still not"},
		},
	}
	svc, _ := newTestService(t, primary)

	records, err := svc.ActiveSatellites(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
