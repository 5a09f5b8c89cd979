package dto

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quarter-service/internal/domain"
	"github.com/jsamuelsen/quarter-service/internal/platform/logging"
	"github.com/jsamuelsen/quarter-service/internal/platform/telemetry"
)

// ContextKeyTraceID is the gin.Context key the telemetry middleware stores the trace ID under.
const ContextKeyTraceID = telemetry.ContextKeyTraceID

// FromDomainError maps a domain error to an HTTP status code and error envelope.
// Unknown errors become 500 with a generic message.
func FromDomainError(err error) (int, *ErrorResponse) {
	switch {
	case err == nil:
		return http.StatusOK, nil

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var (
			validationErr *domain.ValidationError
			zoneErr       *domain.ZoneError
		)

		switch {
		case errors.As(err, &zoneErr):
			resp.Error.Details = map[string]string{zoneErr.Field(): "unknown time zone"}
		case errors.As(err, &validationErr) && validationErr.Field != "":
			resp.Error.Details = map[string]string{validationErr.Field: validationErr.Message}
		}

		return HTTPStatusFromCode(ErrorCodeValidation), resp

	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return HTTPStatusFromCode(ErrorCodeTimeout),
			NewErrorResponse(ErrorCodeTimeout, "request timeout exceeded")

	case domain.IsUnavailable(err):
		return HTTPStatusFromCode(ErrorCodeUnavailable),
			NewErrorResponse(ErrorCodeUnavailable, "service temporarily unavailable")

	default:
		return HTTPStatusFromCode(ErrorCodeInternal),
			NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}
}

// GetTraceID returns the trace ID for the request: the value stored by the
// telemetry middleware, else the active span's trace ID, else the request ID header.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyTraceID); ok {
		if id, ok := v.(string); ok {
			return id
		}

		return ""
	}

	if c.Request == nil {
		return ""
	}

	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return c.GetHeader("X-Request-ID")
}

// HandleError writes the error envelope for err. Internal errors are logged.
func HandleError(c *gin.Context, err error) {
	status, resp := FromDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			"error", err.Error(),
			"status", status,
			"trace_id", resp.TraceID,
		)
	}

	c.JSON(status, resp)
}

// HandleBindError writes a 400 for a failed BindAndValidate or BindQueryAndValidate.
// Validator failures carry field-level details; anything else is a malformed request.
func HandleBindError(c *gin.Context, err error) {
	if IsValidationError(err) {
		c.JSON(http.StatusBadRequest, NewErrorResponseWithDetails(
			ErrorCodeValidation,
			"request validation failed",
			ValidationErrors(err),
		).WithTraceID(GetTraceID(c)))

		return
	}

	c.JSON(http.StatusBadRequest, NewErrorResponse(
		ErrorCodeBadRequest,
		"malformed request",
	).WithTraceID(GetTraceID(c)))
}
