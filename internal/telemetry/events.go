// Package telemetry defines the typed events broadcast over the WebSocket
// connection between sattrackd and its clients: heartbeats plus the
// ingestion lifecycle (fetch started, provider failed over, fetch
// completed, cache cleared).
package telemetry

import "time"

// EventType identifies the kind of WebSocket event.
type EventType string

const (
	EventHeartbeat      EventType = "heartbeat"
	EventFetchStarted   EventType = "fetch_started"
	EventProviderFailed EventType = "provider_failed"
	EventFetchCompleted EventType = "fetch_completed"
	EventCacheCleared   EventType = "cache_cleared"
	EventLog            EventType = "log"
)

// Event is the base envelope shared by every event type.
type Event struct {
	Type EventType `json:"type"`
	TS   string    `json:"ts"`
}

// NowTS returns the current UTC time as an RFC 3339 nano string, matching
// the timestamp format used across all events.
func NowTS() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// NewEvent builds the envelope for the given type, stamped with now.
func NewEvent(t EventType) Event {
	return Event{Type: t, TS: NowTS()}
}

// Heartbeat is sent periodically so clients can detect connectivity and
// monitor daemon uptime.
type Heartbeat struct {
	Event
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// FetchStarted is emitted when a cache miss triggers an upstream fetch
// against a provider.
type FetchStarted struct {
	Event
	Provider string `json:"provider"`
}

// ProviderFailed is emitted when a provider call fails entirely and the
// orchestrator falls back to the next provider in the chain (or gives up).
type ProviderFailed struct {
	Event
	Provider string `json:"provider"`
	Error    string `json:"error"`
}

// FetchCompleted reports a successful upstream fetch.
type FetchCompleted struct {
	Event
	Provider   string  `json:"provider"`
	Records    int     `json:"records"`
	DurationMS float64 `json:"duration_ms"`
}

// CacheCleared reports an administrative cache clear.
type CacheCleared struct {
	Event
	EntriesRemoved int `json:"entries_removed"`
}

// LogLine carries a human-readable log message at a severity level.
type LogLine struct {
	Event
	Level   string `json:"level"`
	Message string `json:"message"`
}
