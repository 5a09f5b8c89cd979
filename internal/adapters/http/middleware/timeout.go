package middleware

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quarter-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quarter-service/internal/platform/logging"
)

// Timeout puts a deadline on the request context. The handler runs on the
// request goroutine; if the deadline has passed when it returns and nothing
// was written, the caller gets 504 TIMEOUT. Requests for skipPaths get no
// deadline.
func Timeout(timeout time.Duration, skipPaths ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if slices.Contains(skipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if c.Writer.Written() || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		traceID := dto.GetTraceID(c)

		logging.FromContext(ctx).WarnContext(ctx, "request deadline exceeded",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Duration("timeout", timeout),
			slog.String("trace_id", traceID),
		)

		c.AbortWithStatusJSON(dto.HTTPStatusFromCode(dto.ErrorCodeTimeout),
			dto.NewErrorResponse(dto.ErrorCodeTimeout, "request timeout exceeded").WithTraceID(traceID))
	}
}
