package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quarter-service/internal/mocks"
	"github.com/jsamuelsen/quarter-service/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveOps(t *testing.T, h *HealthHandler, path string) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	h.Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))

	return w
}

func TestBuildInfo(t *testing.T) {
	bi := NewBuildInfo("1.0.0", "abc123", "2024-01-15T10:00:00Z")

	assert.Equal(t, BuildInfo{
		Version:   "1.0.0",
		Commit:    "abc123",
		BuildTime: "2024-01-15T10:00:00Z",
		GoVersion: runtime.Version(),
	}, bi)

	withQuarter := bi.WithQuarter("Europe/London", "now")
	assert.Equal(t, "Europe/London", withQuarter.DefaultZone)
	assert.Equal(t, "now", withQuarter.Engine)
	assert.Empty(t, bi.DefaultZone, "WithQuarter must not modify the receiver")
}

func TestHealthHandler_Liveness(t *testing.T) {
	w := serveOps(t, NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{}), "/-/live")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		result     *ports.HealthResult
		wantStatus int
		wantBody   string
	}{
		{
			name: "all checks healthy",
			result: &ports.HealthResult{
				Status: ports.HealthStatusHealthy,
				Checks: map[string]*ports.CheckResult{
					"tzdata":  {Status: ports.HealthStatusHealthy},
					"metrics": {Status: ports.HealthStatusHealthy},
				},
			},
			wantStatus: http.StatusOK,
			wantBody:   "healthy",
		},
		{
			name: "tzdata unhealthy",
			result: &ports.HealthResult{
				Status: ports.HealthStatusUnhealthy,
				Checks: map[string]*ports.CheckResult{
					"tzdata": {Status: ports.HealthStatusUnhealthy, Message: "loading UTC: unknown time zone"},
				},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "loading UTC",
		},
		{
			name:       "no checks registered",
			result:     &ports.HealthResult{Status: ports.HealthStatusHealthy},
			wantStatus: http.StatusOK,
			wantBody:   "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.result)

			w := serveOps(t, NewHealthHandler(registry, BuildInfo{}), "/-/ready")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHealthHandler_BuildInfo(t *testing.T) {
	bi := BuildInfo{
		Version:   "1.2.3",
		Commit:    "def456",
		BuildTime: "2024-02-01T12:00:00Z",
		GoVersion: "go1.25.7",
	}.WithQuarter("UTC", "builtin")

	w := serveOps(t, NewHealthHandler(mocks.NewMockHealthRegistry(t), bi), "/-/build")

	require.Equal(t, http.StatusOK, w.Code)

	var got BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, bi, got)
}

func TestHealthHandler_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quarter_test_total",
		Help: "Test counter.",
	})
	reg.MustRegister(counter)
	counter.Add(3)

	h := NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{}).WithGatherer(reg)
	w := serveOps(t, h, "/-/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "quarter_test_total 3")
}

func TestHealthHandler_Register(t *testing.T) {
	router := gin.New()
	NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{}).Register(router)

	var got []string
	for _, r := range router.Routes() {
		got = append(got, r.Method+" "+r.Path)
	}

	assert.ElementsMatch(t, []string{
		"GET /-/live",
		"GET /-/ready",
		"GET /-/build",
		"GET /-/metrics",
	}, got)
}
