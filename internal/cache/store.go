// Package cache wraps a TTL-capable key/value datastore behind the
// best-effort semantics the ingestion path needs: reads that can only miss,
// writes that can only log, and prefix deletion for namespace clears.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ipfs/go-datastore"
	dsq "github.com/ipfs/go-datastore/query"
	badger "github.com/ipfs/go-ds-badger"
)

// Store is a thin wrapper over a TTL datastore. It never propagates store
// errors through the read path; corruption and unavailability both degrade
// to a cache miss so callers can fall back to an upstream fetch.
type Store struct {
	ds  datastore.TTLDatastore
	log *slog.Logger
}

// Open creates a badger-backed store rooted at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	d, err := badger.NewDatastore(path, &badger.DefaultOptions)
	if err != nil {
		return nil, err
	}
	return &Store{ds: d, log: logger}, nil
}

// NewWithDatastore wraps an existing TTL datastore. Used by tests and by
// callers that manage the datastore lifecycle themselves.
func NewWithDatastore(d datastore.TTLDatastore, logger *slog.Logger) *Store {
	return &Store{ds: d, log: logger}
}

// Get returns the value for key, or a miss. Store errors other than
// not-found are logged and reported as a miss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	v, err := s.ds.Get(ctx, datastore.NewKey(key))
	if err != nil {
		if !errors.Is(err, datastore.ErrNotFound) {
			s.log.Warn("cache read failed, treating as miss", "key", key, "error", err)
		}
		return nil, false
	}
	return v, true
}

// Set stores value under key with the given TTL. Caching is best effort:
// failures are logged and swallowed so they never block the data path.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.ds.PutWithTTL(ctx, datastore.NewKey(key), value, ttl); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
}

// DeletePrefix removes every entry whose key starts with prefix and returns
// the number of entries removed.
func (s *Store) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	res, err := s.ds.Query(ctx, dsq.Query{Prefix: prefix, KeysOnly: true})
	if err != nil {
		return 0, err
	}
	defer res.Close()

	deleted := 0
	for r := range res.Next() {
		if r.Error != nil {
			return deleted, r.Error
		}
		if err := s.ds.Delete(ctx, datastore.NewKey(r.Key)); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// Close flushes and closes the underlying datastore.
func (s *Store) Close() error {
	return s.ds.Close()
}
