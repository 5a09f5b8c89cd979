package dto

import (
	"time"

	"github.com/jsamuelsen/quarter-service/internal/domain"
)

// MaxBatchItems caps a batch request body regardless of configuration.
const MaxBatchItems = 1000

// BoundaryRequest describes one boundary, from query parameters or a batch item.
// An empty At means now.
type BoundaryRequest struct {
	At     string `form:"at"     json:"at"     validate:"omitempty,instant"`
	TZ     string `form:"tz"     json:"tz"     validate:"omitempty,max=64"`
	Edge   string `form:"edge"   json:"edge"   validate:"omitempty,oneof=start end"`
	Offset string `form:"offset" json:"offset" validate:"omitempty,offset"`
}

// ToQuery converts the request into a domain query. now fills a missing At.
func (r BoundaryRequest) ToQuery(now time.Time) (domain.BoundaryQuery, error) {
	at := now
	if r.At != "" {
		var err error

		at, err = domain.ParseInstant(r.At, nil)
		if err != nil {
			return domain.BoundaryQuery{}, err
		}
	}

	edge, err := domain.ParseEdge(r.Edge)
	if err != nil {
		return domain.BoundaryQuery{}, err
	}

	offset, err := domain.ParseOffset(r.Offset)
	if err != nil {
		return domain.BoundaryQuery{}, err
	}

	return domain.BoundaryQuery{At: at, Zone: r.TZ, Edge: edge, Offset: offset}, nil
}

// WindowRequest binds GET /quarters/window and /quarters/current.
type WindowRequest struct {
	At string `form:"at" json:"at" validate:"omitempty,instant"`
	TZ string `form:"tz" json:"tz" validate:"omitempty,max=64"`
}

// QuarterRequest binds GET /quarters/:label.
type QuarterRequest struct {
	Label string `uri:"label" json:"quarter" validate:"required,quarterlabel"`
	TZ    string `form:"tz"   json:"tz"      validate:"omitempty,max=64"`
}

// BatchRequest is the body of POST /quarters/boundaries.
type BatchRequest struct {
	Items []BoundaryRequest `json:"items" validate:"required,min=1,max=1000,dive"`
}

// BoundaryResponse is one computed boundary.
type BoundaryResponse struct {
	At      string `json:"at"`
	Quarter string `json:"quarter"`
	Edge    string `json:"edge"`
	Offset  string `json:"offset"`
	TZ      string `json:"tz,omitempty"`
	Input   string `json:"input"`
}

// NewBoundaryResponse renders b with nanosecond precision.
func NewBoundaryResponse(b *domain.Boundary) *BoundaryResponse {
	return &BoundaryResponse{
		At:      formatInstant(b.At),
		Quarter: b.Quarter,
		Edge:    string(b.Query.Edge),
		Offset:  b.Query.Offset.String(),
		TZ:      b.Zone,
		Input:   formatInstant(b.Query.At),
	}
}

// QuarterSpanResponse is a quarter with both edges.
type QuarterSpanResponse struct {
	Quarter string `json:"quarter"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// NewQuarterSpanResponse renders s.
func NewQuarterSpanResponse(s domain.QuarterSpan) QuarterSpanResponse {
	return QuarterSpanResponse{
		Quarter: s.Quarter,
		Start:   formatInstant(s.Start),
		End:     formatInstant(s.End),
	}
}

// WindowResponse is the quarter containing an instant and its neighbours.
type WindowResponse struct {
	At       string              `json:"at"`
	TZ       string              `json:"tz"`
	Previous QuarterSpanResponse `json:"previous"`
	Current  QuarterSpanResponse `json:"current"`
	Next     QuarterSpanResponse `json:"next"`
}

// NewWindowResponse renders w.
func NewWindowResponse(w *domain.Window) *WindowResponse {
	return &WindowResponse{
		At:       formatInstant(w.At),
		TZ:       w.Zone,
		Previous: NewQuarterSpanResponse(w.Previous),
		Current:  NewQuarterSpanResponse(w.Current),
		Next:     NewQuarterSpanResponse(w.Next),
	}
}

// BatchItemResponse carries either a boundary or an error.
type BatchItemResponse struct {
	Index    int               `json:"index"`
	Boundary *BoundaryResponse `json:"boundary,omitempty"`
	Error    *ErrorDetail      `json:"error,omitempty"`
}

// BatchResponse is the body returned by POST /quarters/boundaries.
type BatchResponse struct {
	Items  []BatchItemResponse `json:"items"`
	Failed int                 `json:"failed"`
}

// NewBatchResponse renders results. Failed items use the same error detail as
// a single request would.
func NewBatchResponse(results []domain.BoundaryResult) *BatchResponse {
	resp := &BatchResponse{Items: make([]BatchItemResponse, len(results))}

	for i, r := range results {
		item := BatchItemResponse{Index: r.Index}

		if r.Err != nil {
			_, errResp := FromDomainError(r.Err)
			item.Error = &errResp.Error
			resp.Failed++
		} else {
			item.Boundary = NewBoundaryResponse(r.Boundary)
		}

		resp.Items[i] = item
	}

	return resp
}

func formatInstant(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
