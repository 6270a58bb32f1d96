package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(ClientOptions{BaseURL: srv.URL, Attempts: 3, RetryDelay: time.Millisecond})
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_LocationsRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/locations", r.URL.Path)
		if calls.Add(1) < 3 {
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "warming up"})
			return
		}
		writeJSON(w, http.StatusOK, LocationsResponse{Locations: []string{"USA", "Canada"}})
	}))

	locs, err := c.Locations(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"USA", "Canada"}, locs)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_LocationsGivesUpAfterAttempts(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "down"})
	}))

	_, err := c.Locations(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "no such route"})
	}))

	_, err := c.Locations(context.Background())

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_IsNameValidSendsName(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		writeJSON(w, http.StatusOK, NameCheckResponse{Name: name, Valid: name != "invalid name"})
	}))

	ok, err := c.IsNameValid(context.Background(), "Alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.IsNameValid(context.Background(), "invalid name")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_IsNameValidCanceled(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := c.IsNameValid(ctx, "Alice")

	require.Error(t, err)
	assert.True(t, IsCanceled(err))
}

func TestNewClient_RequiresAbsoluteURL(t *testing.T) {
	_, err := NewClient(ClientOptions{BaseURL: "/api"})
	assert.Error(t, err)
}
