package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/entryform/internal/app/services"
)

func newTestServer(t *testing.T, mutate func(*services.MockOptions), staticDir string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	opts := services.DefaultMockOptions()
	opts.MinLatency, opts.MaxLatency = 0, 0
	opts.Seed = 11
	if mutate != nil {
		mutate(&opts)
	}
	mock, err := services.NewMock(opts)
	require.NoError(t, err)

	return New(Options{
		Addr:      ":0",
		StaticDir: staticDir,
		Locations: mock,
		Names:     mock,
		Logger:    zerolog.Nop(),
	})
}

func get(t *testing.T, s *Server, target string, out any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestServer_Locations(t *testing.T) {
	s := newTestServer(t, nil, "")

	var body services.LocationsResponse
	code := get(t, s, "/api/locations", &body)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"Canada", "China", "USA", "Brazil"}, body.Locations)
}

func TestServer_NameValid(t *testing.T) {
	s := newTestServer(t, nil, "")

	var body services.NameCheckResponse
	require.Equal(t, http.StatusOK, get(t, s, "/api/names/valid?name=Alice", &body))
	assert.Equal(t, services.NameCheckResponse{Name: "Alice", Valid: true}, body)

	require.Equal(t, http.StatusOK, get(t, s, "/api/names/valid?name=invalid+name", &body))
	assert.False(t, body.Valid)

	require.Equal(t, http.StatusOK, get(t, s, "/api/names/valid?name=", &body))
	assert.True(t, body.Valid)
}

func TestServer_NameValidRequiresName(t *testing.T) {
	s := newTestServer(t, nil, "")

	var body services.ErrorResponse
	code := get(t, s, "/api/names/valid", &body)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, body.Error)
}

func TestServer_MockFailuresAre503(t *testing.T) {
	s := newTestServer(t, func(o *services.MockOptions) { o.FailureRate = 1 }, "")

	var body services.ErrorResponse
	assert.Equal(t, http.StatusServiceUnavailable, get(t, s, "/api/locations", &body))
	assert.Equal(t, "locations unavailable", body.Error)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, s, "/api/names/valid?name=Alice", &body))
}

func TestServer_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t, nil, "")

	assert.Equal(t, http.StatusOK, get(t, s, "/healthz", nil))

	get(t, s, "/api/names/valid?name=Alice", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "entryform_names_checks_total")
}

func TestServer_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<div id=\"app\"></div>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.wasm"), []byte("\x00asm"), 0o600))
	s := newTestServer(t, nil, dir)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="app"`)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/main.wasm", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/wasm", rec.Header().Get("Content-Type"))
}

// TestServer_ClientRoundTrip drives the HTTP client against the real routes.
func TestServer_ClientRoundTrip(t *testing.T) {
	s := newTestServer(t, nil, "")
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	client, err := services.NewClient(services.ClientOptions{BaseURL: srv.URL})
	require.NoError(t, err)

	locs, err := client.Locations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Canada", locs[0])

	ok, err := client.IsNameValid(context.Background(), "invalid name")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNormalizeOrigins(t *testing.T) {
	assert.Equal(t, []string{"http://a.test", "http://b.test"},
		normalizeOrigins([]string{" http://a.test/ ", "", "http://b.test"}))
	assert.Equal(t, []string{"http://localhost:8080"}, normalizeOrigins(nil))
}
