package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpacetrackFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "request must carry Basic auth")
		assert.Equal(t, "observer@example.com", user)
		assert.Equal(t, "hunter2", pass)
		assert.Equal(t, gpQueryPath, r.URL.Path)

		_ = json.NewEncoder(w).Encode([]map[string]string{
			{
				"OBJECT_NAME":  "ISS (ZARYA)",
				"COUNTRY_CODE": "US",
				"TLE_LINE1":    "1 ...",
				"TLE_LINE2":    "2 ...",
			},
			{
				// No OBJECT_NAME: the name comes from the "0 " line.
				"TLE_LINE0": "0 NOAA 18",
				"TLE_LINE1": "1 ...",
				"TLE_LINE2": "2 ...",
			},
			{
				// Missing an element line: skipped.
				"OBJECT_NAME": "BROKEN",
				"TLE_LINE1":   "1 ...",
			},
		})
	}))
	defer srv.Close()

	s := NewSpacetrack(SpacetrackOptions{
		BaseURL:  srv.URL,
		Username: "observer@example.com",
		Password: "hunter2",
		Timeout:  5 * time.Second,
	}, testLogger())

	entries, err := s.FetchRaw(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "ISS (ZARYA)", entries[0].Name)
	assert.Equal(t, "US", entries[0].Country)
	assert.Equal(t, "NOAA 18", entries[1].Name)
}

func TestSpacetrackFailureIsAllOrNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewSpacetrack(SpacetrackOptions{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, testLogger())

	_, err := s.FetchRaw(context.Background())
	require.Error(t, err)

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "spacetrack", perr.Provider)
}

func TestSpacetrackRejectsMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	s := NewSpacetrack(SpacetrackOptions{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, testLogger())

	_, err := s.FetchRaw(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}
