package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quarter-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quarter-service/internal/app"
	"github.com/jsamuelsen/quarter-service/internal/domain"
)

// QuarterHandler handles quarter boundary HTTP endpoints.
type QuarterHandler struct {
	service *app.QuarterService
}

// NewQuarterHandler creates a new quarter handler.
func NewQuarterHandler(service *app.QuarterService) *QuarterHandler {
	return &QuarterHandler{
		service: service,
	}
}

// GetBoundary handles GET /api/v1/quarters/boundary
// Returns the start or end of the quarter containing an instant.
//
// @Summary Get a quarter boundary
// @Description Computes the start or end of the current, previous or next quarter
// @Tags quarters
// @Produce json
// @Param at query string false "RFC 3339 timestamp or YYYY-MM-DD date, defaults to now"
// @Param tz query string false "IANA time zone; empty keeps the frame of at"
// @Param edge query string false "start or end"
// @Param offset query string false "previous, current or next"
// @Success 200 {object} dto.BoundaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quarters/boundary [get]
func (h *QuarterHandler) GetBoundary(c *gin.Context) {
	var req dto.BoundaryRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	query, err := req.ToQuery(h.service.Now())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	boundary, err := h.service.Boundary(c.Request.Context(), query)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBoundaryResponse(boundary))
}

// GetWindow handles GET /api/v1/quarters/window
// Returns the quarter containing an instant and the quarters either side.
//
// @Summary Get a quarter window
// @Tags quarters
// @Produce json
// @Param at query string false "RFC 3339 timestamp or YYYY-MM-DD date, defaults to now"
// @Param tz query string false "IANA time zone, defaults to the configured zone"
// @Success 200 {object} dto.WindowResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quarters/window [get]
func (h *QuarterHandler) GetWindow(c *gin.Context) {
	var req dto.WindowRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	at := h.service.Now()
	if req.At != "" {
		var err error

		at, err = domain.ParseInstant(req.At, nil)
		if err != nil {
			dto.HandleError(c, err)
			return
		}
	}

	window, err := h.service.Window(c.Request.Context(), at, req.TZ)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewWindowResponse(window))
}

// GetCurrent handles GET /api/v1/quarters/current
//
// @Summary Get the current quarter window
// @Tags quarters
// @Produce json
// @Param tz query string false "IANA time zone, defaults to the configured zone"
// @Success 200 {object} dto.WindowResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quarters/current [get]
func (h *QuarterHandler) GetCurrent(c *gin.Context) {
	var req dto.WindowRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	window, err := h.service.Current(c.Request.Context(), req.TZ)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewWindowResponse(window))
}

// GetQuarter handles GET /api/v1/quarters/:label
//
// @Summary Get the bounds of a named quarter
// @Tags quarters
// @Produce json
// @Param label path string true "Quarter label such as 2023-Q1"
// @Param tz query string false "IANA time zone, defaults to the configured zone"
// @Success 200 {object} dto.QuarterSpanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quarters/{label} [get]
func (h *QuarterHandler) GetQuarter(c *gin.Context) {
	var req dto.QuarterRequest
	if err := dto.BindPathAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	span, err := h.service.Quarter(c.Request.Context(), req.Label, req.TZ)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuarterSpanResponse(*span))
}

// PostBoundaries handles POST /api/v1/quarters/boundaries
// Computes several boundaries in one request. Items fail independently.
//
// @Summary Compute a batch of boundaries
// @Tags quarters
// @Accept json
// @Produce json
// @Param request body dto.BatchRequest true "Boundary requests"
// @Success 200 {object} dto.BatchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quarters/boundaries [post]
func (h *QuarterHandler) PostBoundaries(c *gin.Context) {
	var req dto.BatchRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	now := h.service.Now()
	queries := make([]domain.BoundaryQuery, len(req.Items))

	for i, item := range req.Items {
		q, err := item.ToQuery(now)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		queries[i] = q
	}

	results, err := h.service.Boundaries(c.Request.Context(), queries)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBatchResponse(results))
}

// RegisterQuarterRoutes registers quarter routes on the given router group.
func (h *QuarterHandler) RegisterQuarterRoutes(rg *gin.RouterGroup) {
	quarters := rg.Group("/quarters")
	quarters.GET("/boundary", h.GetBoundary)
	quarters.GET("/window", h.GetWindow)
	quarters.GET("/current", h.GetCurrent)
	quarters.POST("/boundaries", h.PostBoundaries)
	quarters.GET("/:label", h.GetQuarter)
}
