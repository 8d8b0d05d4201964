// Package source implements the upstream TLE providers. Both expose the
// same narrow contract to the ingestion service: a name and a FetchRaw that
// yields (name, line1, line2) entries. CelesTrak aggregates several
// unauthenticated plain-text group endpoints and tolerates individual group
// failures; Space-Track is a single authenticated JSON query that fails as
// a whole.
package source

import (
	"context"
	"fmt"

	"github.com/orbview/sattrack/internal/tle"
)

// Provider is one upstream TLE source.
type Provider interface {
	Name() string
	FetchRaw(ctx context.Context) ([]tle.Entry, error)
}

// ProviderError wraps a provider-level failure with the provider's name so
// callers can tell which upstream produced the underlying cause.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
