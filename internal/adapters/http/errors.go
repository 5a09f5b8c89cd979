package http

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quarter-service/internal/adapters/http/dto"
)

// RespondWithErrorCode writes an error envelope for an adapter-level error
// code, with the status taken from the code.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	c.JSON(dto.HTTPStatusFromCode(code), dto.NewErrorResponse(code, message).WithTraceID(dto.GetTraceID(c)))
}

// notFound answers requests that match no route.
func notFound(c *gin.Context) {
	RespondWithErrorCode(c, dto.ErrorCodeNotFound, "no route for "+c.Request.Method+" "+c.Request.URL.Path)
}
