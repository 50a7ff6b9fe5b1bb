package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chupchup_backend/internal/platform/metrics"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestRequestID(t *testing.T) {
	t.Run("generates an id when absent", func(t *testing.T) {
		var buf bytes.Buffer
		r := gin.New()
		r.Use(RequestID(zerolog.New(&buf)))
		r.GET("/x", func(c *gin.Context) {
			zerolog.Ctx(c.Request.Context()).Info().Msg("inside")
			c.Status(http.StatusNoContent)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		id := w.Header().Get(HeaderXRequestID)
		_, err := uuid.Parse(id)
		require.NoError(t, err, "generated id must be a uuid")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, id, line["request_id"])
		assert.Equal(t, "inside", line["message"])
	})

	t.Run("reuses caller id", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestID(zerolog.Nop()))
		var seen string
		r.GET("/x", func(c *gin.Context) {
			seen = c.GetString(ContextRequestID)
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(HeaderXRequestID, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(HeaderXRequestID))
		assert.Equal(t, "abc-123", seen)
	})

	t.Run("oversized caller id is replaced", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestID(zerolog.Nop()))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(HeaderXRequestID, strings.Repeat("a", maxRequestIDLen+1))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		_, err := uuid.Parse(w.Header().Get(HeaderXRequestID))
		assert.NoError(t, err)
	})
}

func TestAccessLog(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		expectedLevel string
	}{
		{"success", http.StatusOK, "info"},
		{"client error", http.StatusBadRequest, "warn"},
		{"server error", http.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := gin.New()
			r.Use(RequestID(zerolog.New(&buf)), AccessLog())
			r.GET("/api/produtos", func(c *gin.Context) { c.Status(tt.status) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/produtos", nil))

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.expectedLevel, line["level"])
			assert.Equal(t, "GET", line["method"])
			assert.Equal(t, "/api/produtos", line["path"])
			assert.Equal(t, float64(tt.status), line["status"])
			assert.NotEmpty(t, line["request_id"])
		})
	}
}

func counterValue(t *testing.T, method, route, status string) float64 {
	t.Helper()

	var m dto.Metric
	require.NoError(t, metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.DELETE("/api/produtos/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	beforeRoute := counterValue(t, http.MethodDelete, "/api/produtos/:id", "200")
	beforeUnmatched := counterValue(t, http.MethodGet, unmatchedRoute, "404")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/produtos/7", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nao-existe", nil))

	assert.Equal(t, beforeRoute+1, counterValue(t, http.MethodDelete, "/api/produtos/:id", "200"),
		"route label must be the template, not the raw path")
	assert.Equal(t, beforeUnmatched+1, counterValue(t, http.MethodGet, unmatchedRoute, "404"))
}
