// Package tle parses NORAD Two-Line Element sets: fixed-column field
// extraction, mod-10 checksum validation, and splitting of bulk text dumps
// into individual records.
package tle

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const lineLength = 69

// Entry is one raw provider record: a satellite name plus the two element
// lines, optionally annotated with provider-side metadata.
type Entry struct {
	Name    string
	Line1   string
	Line2   string
	Country string
}

// Record is a fully parsed element set. Angles are in degrees, mean motion
// in revolutions per day.
type Record struct {
	CatalogNumber  string
	Name           string
	IntlDesignator string
	Epoch          time.Time
	MeanMotionDot  float64
	MeanMotionDDot float64
	BStar          float64
	ElementSet     int
	InclinationDeg float64
	RAANDeg        float64
	Eccentricity   float64
	ArgPerigeeDeg  float64
	MeanAnomalyDeg float64
	MeanMotion     float64
	RevNumber      int
	Country        string
}

// Options controls parser behavior.
type Options struct {
	// StrictChecksum rejects records whose checksum digit does not match.
	// The default is to log a warning and keep the record, matching the
	// upstream feeds' own tolerance for stale checksum digits.
	StrictChecksum bool
}

// Parser converts raw entries into records. Malformed entries produce
// errors which callers are expected to treat as record-level: skip the
// entry, keep the batch.
type Parser struct {
	log  *slog.Logger
	opts Options
}

// NewParser returns a Parser that logs through the given logger.
func NewParser(logger *slog.Logger, opts Options) *Parser {
	return &Parser{log: logger, opts: opts}
}

// Split groups a raw TLE text dump into consecutive 3-line entries
// (name, line 1, line 2). A truncated trailing group is dropped silently.
// No per-record validation happens here; that is ParseEntry's job.
func Split(text string) []Entry {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(l, "\r ")
		if l != "" {
			lines = append(lines, l)
		}
	}

	entries := make([]Entry, 0, len(lines)/3)
	for i := 0; i+2 < len(lines); i += 3 {
		entries = append(entries, Entry{
			Name:  strings.TrimSpace(lines[i]),
			Line1: lines[i+1],
			Line2: lines[i+2],
		})
	}
	return entries
}

// ParseEntry validates and parses one entry. Entries whose lines are not
// exactly 69 characters or whose leading characters are not '1' and '2' are
// rejected. A checksum mismatch is logged and tolerated unless
// StrictChecksum is set.
func (p *Parser) ParseEntry(e Entry) (Record, error) {
	if len(e.Line1) != lineLength || len(e.Line2) != lineLength {
		return Record{}, fmt.Errorf("tle: lines must be %d characters, got %d and %d",
			lineLength, len(e.Line1), len(e.Line2))
	}
	if e.Line1[0] != '1' {
		return Record{}, fmt.Errorf("tle: line 1 must start with '1', got %q", e.Line1[0])
	}
	if e.Line2[0] != '2' {
		return Record{}, fmt.Errorf("tle: line 2 must start with '2', got %q", e.Line2[0])
	}

	for i, line := range []string{e.Line1, e.Line2} {
		if err := verifyChecksum(line); err != nil {
			if p.opts.StrictChecksum {
				return Record{}, fmt.Errorf("tle: line %d: %w", i+1, err)
			}
			p.log.Warn("TLE checksum mismatch, keeping record",
				"name", e.Name, "line", i+1, "error", err)
		}
	}

	rec := Record{
		CatalogNumber:  strings.TrimSpace(e.Line1[2:7]),
		Name:           strings.TrimSpace(e.Name),
		IntlDesignator: strings.TrimSpace(e.Line1[9:17]),
		Country:        strings.TrimSpace(e.Country),
	}
	if rec.CatalogNumber == "" {
		return Record{}, fmt.Errorf("tle: empty catalog number")
	}

	epoch, err := parseEpoch(e.Line1[18:32])
	if err != nil {
		return Record{}, err
	}
	rec.Epoch = epoch

	// Line 1 remainder. The derivative and drag fields are informational
	// here; a garbled one does not reject the record.
	rec.MeanMotionDot, _ = parseField(e.Line1[33:43])
	rec.MeanMotionDDot = parseAssumedDecimal(e.Line1[44:52])
	rec.BStar = parseAssumedDecimal(e.Line1[53:61])
	if n, err := strconv.Atoi(strings.TrimSpace(e.Line1[64:68])); err == nil {
		rec.ElementSet = n
	}

	// Line 2: the element set proper. These columns must parse.
	if rec.InclinationDeg, err = parseField(e.Line2[8:16]); err != nil {
		return Record{}, fmt.Errorf("tle: inclination: %w", err)
	}
	if rec.RAANDeg, err = parseField(e.Line2[17:25]); err != nil {
		return Record{}, fmt.Errorf("tle: RAAN: %w", err)
	}
	// Eccentricity is printed with an implicit leading "0.".
	if rec.Eccentricity, err = parseField("0." + strings.TrimSpace(e.Line2[26:33])); err != nil {
		return Record{}, fmt.Errorf("tle: eccentricity: %w", err)
	}
	if rec.ArgPerigeeDeg, err = parseField(e.Line2[34:42]); err != nil {
		return Record{}, fmt.Errorf("tle: argument of perigee: %w", err)
	}
	if rec.MeanAnomalyDeg, err = parseField(e.Line2[43:51]); err != nil {
		return Record{}, fmt.Errorf("tle: mean anomaly: %w", err)
	}
	if rec.MeanMotion, err = parseField(e.Line2[52:63]); err != nil {
		return Record{}, fmt.Errorf("tle: mean motion: %w", err)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(e.Line2[63:68])); err == nil {
		rec.RevNumber = n
	}

	return rec, nil
}

// ParseBatch parses every entry it can, dropping rejected entries with a
// debug log. Rejection is never fatal to the batch.
func (p *Parser) ParseBatch(entries []Entry) []Record {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		rec, err := p.ParseEntry(e)
		if err != nil {
			p.log.Debug("dropping malformed TLE entry", "name", e.Name, "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// Checksum computes the mod-10 checksum of a TLE line: digits count as
// their value, '-' counts as 1, everything else as 0. The line's own
// checksum column (the last character) is excluded.
func Checksum(line string) int {
	sum := 0
	end := len(line)
	if end == lineLength {
		end--
	}
	for _, c := range line[:end] {
		switch {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	return sum % 10
}

func verifyChecksum(line string) error {
	want := int(line[lineLength-1] - '0')
	if want < 0 || want > 9 {
		return fmt.Errorf("checksum column is %q, not a digit", line[lineLength-1])
	}
	if got := Checksum(line); got != want {
		return fmt.Errorf("checksum %d does not match line digit %d", got, want)
	}
	return nil
}

// parseEpoch decodes the 14-character epoch field: 2-digit year with the
// standard pivot (00-56 => 2000s, 57-99 => 1900s) followed by a 1-based
// fractional day of year.
func parseEpoch(s string) (time.Time, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s[:2]))
	if err != nil {
		return time.Time{}, fmt.Errorf("tle: epoch year %q: %w", s[:2], err)
	}
	if year < 57 {
		year += 2000
	} else {
		year += 1900
	}

	day, err := strconv.ParseFloat(strings.TrimSpace(s[2:]), 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("tle: epoch day %q: %w", s[2:], err)
	}

	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return start.Add(time.Duration((day - 1) * float64(24*time.Hour))), nil
}

func parseField(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseAssumedDecimal decodes the TLE exponent notation used for the second
// derivative and B* columns, e.g. " 36258-4" meaning 0.36258e-4. Garbled
// input yields 0.
func parseAssumedDecimal(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	sign := 1.0
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}

	// Split off the exponent, which is a trailing sign+digit pair.
	expIdx := strings.LastIndexAny(s, "+-")
	if expIdx <= 0 {
		return 0
	}
	mantissa, err := strconv.ParseFloat("0."+strings.TrimSpace(s[:expIdx]), 64)
	if err != nil {
		return 0
	}
	exp, err := strconv.Atoi(s[expIdx:])
	if err != nil {
		return 0
	}

	return sign * mantissa * pow10(exp)
}

func pow10(exp int) float64 {
	out := 1.0
	for i := 0; i < abs(exp); i++ {
		out *= 10
	}
	if exp < 0 {
		return 1 / out
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
