package telemetry

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quarter-service/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/quarter-service/internal/platform/telemetry"

	// ContextKeyTraceID is the gin.Context key holding the active trace ID.
	ContextKeyTraceID = "trace_id"

	// HeaderTraceID carries the trace ID back to the caller.
	HeaderTraceID = "X-Trace-ID"

	// opsPrefix is where the health and metrics endpoints live.
	opsPrefix = "/-/"
)

// Metrics are the HTTP server instruments recorded by Middleware.
type Metrics struct {
	duration metric.Float64Histogram
	requests metric.Int64Counter
	inFlight metric.Int64UpDownCounter
}

// NewMetrics creates the HTTP server instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(instrumentationName)

	var (
		m    Metrics
		errs [3]error
	)

	m.duration, errs[0] = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("Duration of HTTP requests."),
		metric.WithUnit("s"),
	)
	m.requests, errs[1] = meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Number of HTTP requests served."),
	)
	m.inFlight, errs[2] = meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Number of HTTP requests in flight."),
	)

	if err := errors.Join(errs[:]...); err != nil {
		return nil, err
	}

	return &m, nil
}

// Middleware exposes the trace ID started by TracingMiddleware to handlers
// (gin key, request logger and X-Trace-ID header) and records request
// metrics on the global meter provider.
func Middleware() gin.HandlerFunc {
	m, err := NewMetrics(otel.GetMeterProvider())
	if err != nil {
		otel.Handle(err)
	}

	return m.middleware()
}

func (m *Metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			id := sc.TraceID().String()

			c.Set(ContextKeyTraceID, id)
			c.Header(HeaderTraceID, id)
			c.Request = c.Request.WithContext(logging.WithTraceID(ctx, id))
		}

		if m == nil {
			c.Next()
			return
		}

		route := metric.WithAttributes(
			attribute.String("http.request.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
		)

		m.inFlight.Add(ctx, 1, route)
		defer m.inFlight.Add(ctx, -1, route)

		c.Next()

		done := metric.WithAttributes(
			attribute.String("http.request.method", c.Request.Method),
			attribute.String("http.route", c.FullPath()),
			attribute.Int("http.response.status_code", c.Writer.Status()),
		)
		m.duration.Record(ctx, time.Since(start).Seconds(), done)
		m.requests.Add(ctx, 1, done)
	}
}

// TracingMiddleware starts a server span per request. Probes and scrapes
// under /-/ are not traced.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, otelgin.WithFilter(func(r *http.Request) bool {
		return !strings.HasPrefix(r.URL.Path, opsPrefix)
	}))
}
