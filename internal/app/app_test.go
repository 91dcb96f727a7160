package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRouter(t *testing.T) {
	t.Setenv("CPI_LOGGING_LEVEL", "error")

	app, err := NewApplication(nil)
	require.NoError(t, err)
	require.NotNil(t, app.Router)

	get := func(target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		return w
	}

	t.Run("health endpoints", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get("/api/health").Code)
		assert.Equal(t, http.StatusOK, get("/api/health/live").Code)
		assert.Equal(t, http.StatusOK, get("/api/health/ready").Code)
		assert.Equal(t, http.StatusOK, get("/api/version").Code)
	})

	t.Run("dashboard routes mounted", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get("/api/dashboard/bounds").Code)
		assert.Equal(t, http.StatusOK, get("/api/dashboard/summary").Code)
		assert.Equal(t, http.StatusOK, get("/api/dashboard/table?derived=true").Code)
	})

	t.Run("unknown api route returns the error envelope", func(t *testing.T) {
		w := get("/api/nope")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		w := get("/metrics")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "cpipulse_http_requests_total")
	})

	t.Run("request id header set", func(t *testing.T) {
		w := get("/api/health")
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}
