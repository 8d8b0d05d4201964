package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/orbview/sattrack/internal/tle"
)

// gpQueryPath is the Space-Track general-perturbations query: every object
// currently on orbit, as JSON, ordered by catalog number.
const gpQueryPath = "/basicspacedata/query/class/gp/decay_date/null-val/orderby/norad_cat_id/format/json"

// SpacetrackOptions configures the Space-Track client, including the Basic
// auth credentials. Timeout and retry settings are independent from every
// other provider.
type SpacetrackOptions struct {
	BaseURL    string
	Username   string
	Password   string
	Timeout    time.Duration
	Retries    uint64
	RetryDelay time.Duration
}

// Spacetrack fetches the full catalog in one authenticated JSON request.
// Unlike CelesTrak there is no partial aggregation: any failure fails the
// provider call.
type Spacetrack struct {
	opts   SpacetrackOptions
	client *http.Client
	log    *slog.Logger
}

// NewSpacetrack returns a client with its own HTTP client and timeout.
func NewSpacetrack(opts SpacetrackOptions, logger *slog.Logger) *Spacetrack {
	return &Spacetrack{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		log:    logger,
	}
}

func (s *Spacetrack) Name() string { return "spacetrack" }

// gpObject is one element of the Space-Track gp response. TLE_LINE0 is the
// name line prefixed with "0 ".
type gpObject struct {
	ObjectName  string `json:"OBJECT_NAME"`
	CountryCode string `json:"COUNTRY_CODE"`
	Line0       string `json:"TLE_LINE0"`
	Line1       string `json:"TLE_LINE1"`
	Line2       string `json:"TLE_LINE2"`
}

// FetchRaw issues the single authenticated query and maps the JSON objects
// to raw entries. Objects missing either element line are skipped.
func (s *Spacetrack) FetchRaw(ctx context.Context) ([]tle.Entry, error) {
	endpoint := strings.TrimRight(s.opts.BaseURL, "/") + gpQueryPath

	var body string
	op := func() error {
		b, err := fetchText(ctx, s.client, endpoint, s.opts.Username, s.opts.Password)
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.opts.RetryDelay), s.opts.Retries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, &ProviderError{Provider: s.Name(), Err: err}
	}

	var objects []gpObject
	if err := json.Unmarshal([]byte(body), &objects); err != nil {
		return nil, &ProviderError{Provider: s.Name(), Err: fmt.Errorf("decoding response: %w", err)}
	}

	entries := make([]tle.Entry, 0, len(objects))
	for _, o := range objects {
		if o.Line1 == "" || o.Line2 == "" {
			continue
		}
		name := o.ObjectName
		if name == "" {
			name = strings.TrimPrefix(o.Line0, "0 ")
		}
		entries = append(entries, tle.Entry{
			Name:    strings.TrimSpace(name),
			Line1:   o.Line1,
			Line2:   o.Line2,
			Country: strings.TrimSpace(o.CountryCode),
		})
	}

	return entries, nil
}
