package ingest

import (
	"errors"
	"strings"
)

// CodeFetchFailed is the terminal error code surfaced when every upstream
// provider has been exhausted.
const CodeFetchFailed = "SATELLITE_FETCH_FAILED"

// FetchFailedError is returned when no provider could serve a fetch. It
// carries every provider's underlying failure so callers can distinguish
// "no data available" from "transient, retry later".
type FetchFailedError struct {
	Causes []error
}

func (e *FetchFailedError) Error() string {
	var b strings.Builder
	b.WriteString(CodeFetchFailed)
	b.WriteString(": all upstream providers failed")
	for _, c := range e.Causes {
		b.WriteString("; ")
		b.WriteString(c.Error())
	}
	return b.String()
}

// Unwrap exposes the per-provider causes to errors.Is and errors.As.
func (e *FetchFailedError) Unwrap() []error { return e.Causes }

// IsFetchFailed reports whether err is the all-providers-exhausted error.
func IsFetchFailed(err error) bool {
	var ffe *FetchFailedError
	return errors.As(err, &ffe)
}
