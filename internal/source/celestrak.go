package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/orbview/sattrack/internal/tle"
)

// CelestrakOptions configures the CelesTrak client. The timeout and retry
// settings apply to this provider only; they are never shared with other
// providers.
type CelestrakOptions struct {
	BaseURL    string
	Groups     []string
	Timeout    time.Duration
	Retries    uint64
	RetryDelay time.Duration
}

// Celestrak fetches plain-text TLE dumps, one HTTP GET per configured
// satellite group. A failing group is logged and skipped; the provider call
// fails only when no group yields any entries.
type Celestrak struct {
	opts   CelestrakOptions
	client *http.Client
	log    *slog.Logger
}

// NewCelestrak returns a client with its own HTTP client and timeout.
func NewCelestrak(opts CelestrakOptions, logger *slog.Logger) *Celestrak {
	return &Celestrak{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		log:    logger,
	}
}

func (c *Celestrak) Name() string { return "celestrak" }

// FetchRaw fetches every configured group and aggregates the resulting
// entries. Ordering across groups follows the configured group order, but a
// group failure does not abort the remaining groups.
func (c *Celestrak) FetchRaw(ctx context.Context) ([]tle.Entry, error) {
	var (
		entries []tle.Entry
		lastErr error
		failed  int
	)

	for _, group := range c.opts.Groups {
		body, err := c.fetchGroup(ctx, group)
		if err != nil {
			c.log.Warn("celestrak group fetch failed, skipping",
				"group", group, "error", err)
			lastErr = err
			failed++
			continue
		}
		entries = append(entries, tle.Split(body)...)
	}

	if len(entries) == 0 {
		if lastErr != nil {
			return nil, &ProviderError{
				Provider: c.Name(),
				Err:      fmt.Errorf("all %d groups failed, last error: %w", failed, lastErr),
			}
		}
		return nil, &ProviderError{Provider: c.Name(), Err: errors.New("no TLE entries returned")}
	}
	return entries, nil
}

// fetchGroup downloads one group's TLE text, retrying transient failures
// with a constant delay up to the configured attempt count.
func (c *Celestrak) fetchGroup(ctx context.Context, group string) (string, error) {
	endpoint := fmt.Sprintf("%s/NORAD/elements/gp.php?GROUP=%s&FORMAT=tle",
		strings.TrimRight(c.opts.BaseURL, "/"), url.QueryEscape(group))

	var body string
	op := func() error {
		b, err := fetchText(ctx, c.client, endpoint, "", "")
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.opts.RetryDelay), c.opts.Retries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}
	return body, nil
}

// fetchText issues a GET and returns the response body as a string. When
// user is non-empty the request carries HTTP Basic credentials. Client-side
// errors (4xx) are permanent; retrying them cannot help.
func fetchText(ctx context.Context, client *http.Client, endpoint, user, pass string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", backoff.Permanent(err)
	}
	if user != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected HTTP %d from %s", resp.StatusCode, endpoint)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
