package tle

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// checksummed appends the mod-10 checksum digit to a 68-character line body.
func checksummed(t *testing.T, body string) string {
	t.Helper()
	require.Len(t, body, lineLength-1)
	return body + strconv.Itoa(Checksum(body))
}

func issLine1(t *testing.T) string {
	return checksummed(t, fmt.Sprintf("1 %5sU %-8s %14s %10s %8s %8s 0 %4s",
		"25544", "98067A", "24001.50000000", ".00016717", "00000-0", "10270-3", "999"))
}

func issLine2(t *testing.T) string {
	return checksummed(t, fmt.Sprintf("2 %5s %8s %8s %7s %8s %8s %11s%5s",
		"25544", "51.6400", "208.9163", "0006317", "69.9862", "25.2906", "15.49560532", "15"))
}

func TestChecksum(t *testing.T) {
	// Digits count as their value, '-' as 1, everything else as 0.
	assert.Equal(t, 5, Checksum("123456789"))
	assert.Equal(t, 4, Checksum("12-"))
	assert.Equal(t, 3, Checksum("AB 3"))
	assert.Equal(t, 0, Checksum(""))
}

func TestSplit(t *testing.T) {
	text := "ISS (ZARYA)\r\n" +
		issLine1(t) + "\n" +
		issLine2(t) + "\n" +
		"NOAA 19\n" +
		issLine1(t) + "\n" +
		issLine2(t) + "\n" +
		"TRUNCATED\n" +
		issLine1(t) + "\n"

	entries := Split(text)
	require.Len(t, entries, 2)
	assert.Equal(t, "ISS (ZARYA)", entries[0].Name)
	assert.Equal(t, "NOAA 19", entries[1].Name)
	assert.Equal(t, issLine1(t), entries[0].Line1)
	assert.Equal(t, issLine2(t), entries[0].Line2)
}

func TestParseEntryFields(t *testing.T) {
	p := NewParser(testLogger(), Options{})

	rec, err := p.ParseEntry(Entry{
		Name:    "ISS (ZARYA)",
		Line1:   issLine1(t),
		Line2:   issLine2(t),
		Country: "US",
	})
	require.NoError(t, err)

	assert.Equal(t, "25544", rec.CatalogNumber)
	assert.Equal(t, "ISS (ZARYA)", rec.Name)
	assert.Equal(t, "98067A", rec.IntlDesignator)
	assert.Equal(t, "US", rec.Country)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), rec.Epoch)
	assert.InDelta(t, 0.00016717, rec.MeanMotionDot, 1e-12)
	assert.InDelta(t, 1.0270e-4, rec.BStar, 1e-12)
	assert.Equal(t, 999, rec.ElementSet)

	assert.InDelta(t, 51.6400, rec.InclinationDeg, 1e-9)
	assert.InDelta(t, 208.9163, rec.RAANDeg, 1e-9)
	assert.InDelta(t, 0.0006317, rec.Eccentricity, 1e-12)
	assert.InDelta(t, 69.9862, rec.ArgPerigeeDeg, 1e-9)
	assert.InDelta(t, 25.2906, rec.MeanAnomalyDeg, 1e-9)
	assert.InDelta(t, 15.49560532, rec.MeanMotion, 1e-9)
	assert.Equal(t, 15, rec.RevNumber)
}

func TestParseEntryRejects(t *testing.T) {
	p := NewParser(testLogger(), Options{})
	l1, l2 := issLine1(t), issLine2(t)

	cases := map[string]Entry{
		"short line 1":  {Line1: l1[:40], Line2: l2},
		"short line 2":  {Line1: l1, Line2: l2[:68]},
		"wrong line id": {Line1: "9" + l1[1:], Line2: l2},
		"swapped lines": {Line1: l2, Line2: l1},
	}
	for name, e := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := p.ParseEntry(e)
			assert.Error(t, err)
		})
	}
}

func TestParseEntryEpochPivot(t *testing.T) {
	p := NewParser(testLogger(), Options{})

	mk := func(epoch string) Entry {
		return Entry{
			Line1: checksummed(t, fmt.Sprintf("1 %5sU %-8s %14s %10s %8s %8s 0 %4s",
				"25544", "98067A", epoch, ".00016717", "00000-0", "10270-3", "999")),
			Line2: issLine2(t),
		}
	}

	rec, err := p.ParseEntry(mk("57001.00000000"))
	require.NoError(t, err)
	assert.Equal(t, 1957, rec.Epoch.Year())

	rec, err = p.ParseEntry(mk("56001.00000000"))
	require.NoError(t, err)
	assert.Equal(t, 2056, rec.Epoch.Year())
}

func TestParseEntryChecksumLeniency(t *testing.T) {
	l1 := issLine1(t)
	// Corrupt the checksum digit without touching any data column.
	bad := l1[:lineLength-1] + strconv.Itoa((Checksum(l1)+1)%10)

	lenient := NewParser(testLogger(), Options{})
	rec, err := lenient.ParseEntry(Entry{Line1: bad, Line2: issLine2(t)})
	require.NoError(t, err)
	assert.Equal(t, "25544", rec.CatalogNumber)

	strict := NewParser(testLogger(), Options{StrictChecksum: true})
	_, err = strict.ParseEntry(Entry{Line1: bad, Line2: issLine2(t)})
	assert.Error(t, err)
}

func TestParseBatchDropsMalformed(t *testing.T) {
	p := NewParser(testLogger(), Options{})

	entries := []Entry{
		{Name: "GOOD", Line1: issLine1(t), Line2: issLine2(t)},
		{Name: "BAD", Line1: "garbage", Line2: "garbage"},
		{Name: "ALSO GOOD", Line1: issLine1(t), Line2: issLine2(t)},
	}

	records := p.ParseBatch(entries)
	require.Len(t, records, 2)
	assert.Equal(t, "GOOD", records[0].Name)
	assert.Equal(t, "ALSO GOOD", records[1].Name)
}

func TestParseAssumedDecimal(t *testing.T) {
	assert.InDelta(t, 0.36258e-4, parseAssumedDecimal(" 36258-4"), 1e-12)
	assert.InDelta(t, -0.11606e-4, parseAssumedDecimal("-11606-4"), 1e-12)
	assert.InDelta(t, 0.12345e+2, parseAssumedDecimal(" 12345+2"), 1e-12)
	assert.Zero(t, parseAssumedDecimal(" 00000-0"))
	assert.Zero(t, parseAssumedDecimal(""))
	assert.Zero(t, parseAssumedDecimal("garbage"))
}
