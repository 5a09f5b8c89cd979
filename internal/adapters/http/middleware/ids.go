package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quarter-service/internal/platform/logging"
)

const (
	// HeaderRequestID identifies one HTTP request.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID identifies a caller transaction spanning several
	// requests, such as a reporting job asking for many quarters.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin key holding the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin key holding the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// maxIDLength bounds caller-supplied IDs echoed into headers and logs.
const maxIDLength = 128

type idKey int

const (
	requestIDKey idKey = iota
	correlationIDKey
)

// traceHeader describes one identifier carried in a request header.
type traceHeader struct {
	header string
	ginKey string
	ctxKey idKey
	logAs  func(context.Context, string) context.Context
}

var (
	requestIDHeader = traceHeader{
		header: HeaderRequestID,
		ginKey: ContextKeyRequestID,
		ctxKey: requestIDKey,
		logAs:  logging.WithRequestID,
	}
	correlationIDHeader = traceHeader{
		header: HeaderCorrelationID,
		ginKey: ContextKeyCorrelationID,
		ctxKey: correlationIDKey,
		logAs:  logging.WithCorrelationID,
	}
)

// RequestID returns middleware that accepts the caller's X-Request-ID or
// generates a UUID when it is missing or unusable. The ID is echoed in the
// response and attached to the gin context, the request context and the
// request logger.
func RequestID() gin.HandlerFunc {
	return requestIDHeader.middleware()
}

// CorrelationID is RequestID for X-Correlation-ID. Upstream values are
// propagated; a generated one marks this request as the transaction origin.
func CorrelationID() gin.HandlerFunc {
	return correlationIDHeader.middleware()
}

func (h traceHeader) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(h.header)
		if !validID(id) {
			id = uuid.New().String()
		}

		c.Set(h.ginKey, id)
		c.Header(h.header, id)

		ctx := context.WithValue(c.Request.Context(), h.ctxKey, id)
		c.Request = c.Request.WithContext(h.logAs(ctx, id))

		c.Next()
	}
}

// validID accepts non-empty printable ASCII without spaces.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	return !strings.ContainsFunc(id, func(r rune) bool {
		return r <= ' ' || r > '~'
	})
}

// GetRequestID returns the request ID set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID set by CorrelationID, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

// RequestIDFromContext returns the request ID stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	return idFromContext(ctx, requestIDKey)
}

// CorrelationIDFromContext returns the correlation ID stored in ctx, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return idFromContext(ctx, correlationIDKey)
}

// ContextWithRequestID stores a request ID in ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithCorrelationID stores a correlation ID in ctx.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func idFromContext(ctx context.Context, key idKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}
