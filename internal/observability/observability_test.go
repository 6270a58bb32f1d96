package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	before := testutil.ToFloat64(nameChecks.WithLabelValues(OutcomeTaken))
	RecordNameCheck(OutcomeTaken)
	RecordLocationFetch(true)
	RecordHTTPRequest("GET", "/api/locations", 200, 12*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(nameChecks.WithLabelValues(OutcomeTaken)))
}

func TestInitLogger_LevelAndFallback(t *testing.T) {
	var buf bytes.Buffer

	logger := initLogger(&buf, "test", "warn")
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	logger = initLogger(&buf, "test", "nonsense")
	logger.Info().Msg("info fallback")
	assert.Contains(t, buf.String(), "info fallback")
}

func TestRequestLogger_LevelsByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := initLogger(&buf, "test", "debug")

	r := gin.New()
	r.Use(RequestLogger(logger), RequestMetricsMiddleware())
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "ERR")
	assert.Contains(t, buf.String(), "/boom")
}
