package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveOperation(t *testing.T) {
	m := New()

	m.ObserveOperation(OpExport, "employee", OutcomeSuccess, 3)
	m.ObserveOperation(OpExport, "employee", OutcomeSuccess, 2)
	m.ObserveOperation(OpExport, "employee", OutcomeInvalid, 4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues(OpExport, "employee", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(OpExport, "employee", OutcomeInvalid)))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.records.WithLabelValues(OpExport, "employee")))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveOperation(OpImport, "vehicle", OutcomeError, 0) })
}

func TestMetrics_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(w.Body)
	assert.Contains(t, string(body), "badge_http_requests_total")
}
