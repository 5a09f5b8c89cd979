// Package app contains application services that orchestrate use cases.
// It coordinates the quarter calculator with zone resolution, metrics and
// logging through ports. HTTP and CLI specifics live in adapters and cmd.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	appctx "github.com/jsamuelsen/quarter-service/internal/app/context"
	"github.com/jsamuelsen/quarter-service/internal/domain"
	"github.com/jsamuelsen/quarter-service/internal/platform/logging"
	"github.com/jsamuelsen/quarter-service/internal/ports"
	"github.com/jsamuelsen/quarter-service/internal/quarter"
)

const tracerName = "github.com/jsamuelsen/quarter-service/internal/app"

// Batch defaults used when the configuration leaves them unset.
const (
	DefaultMaxBatchSize     = 100
	DefaultBatchConcurrency = 8
)

// QuarterService answers quarter boundary questions.
type QuarterService struct {
	resolver    ports.ZoneResolver
	clock       ports.Clock
	metrics     ports.QuarterMetrics
	calc        *quarter.Calculator
	logger      *slog.Logger
	maxBatch    int
	concurrency int
}

// QuarterServiceConfig contains the dependencies of the quarter service.
// Only Resolver is required.
type QuarterServiceConfig struct {
	Resolver         ports.ZoneResolver
	Clock            ports.Clock
	Metrics          ports.QuarterMetrics
	Calculator       *quarter.Calculator
	Logger           *slog.Logger
	MaxBatchSize     int
	BatchConcurrency int
}

// NewQuarterService creates a quarter service. It panics without a resolver.
func NewQuarterService(cfg QuarterServiceConfig) *QuarterService {
	if cfg.Resolver == nil {
		panic("app: QuarterService requires a ZoneResolver")
	}

	s := &QuarterService{
		resolver:    cfg.Resolver,
		clock:       cfg.Clock,
		metrics:     cfg.Metrics,
		calc:        cfg.Calculator,
		logger:      cfg.Logger,
		maxBatch:    cfg.MaxBatchSize,
		concurrency: cfg.BatchConcurrency,
	}

	if s.clock == nil {
		s.clock = ports.SystemClock
	}

	if s.metrics == nil {
		s.metrics = ports.NopQuarterMetrics{}
	}

	if s.calc == nil {
		s.calc = quarter.New(nil)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.logger = s.logger.With(slog.String("component", "app.QuarterService"))

	if s.maxBatch <= 0 {
		s.maxBatch = DefaultMaxBatchSize
	}

	if s.concurrency <= 0 {
		s.concurrency = DefaultBatchConcurrency
	}

	return s
}

type resolveFunc func(ctx context.Context, name string) (*time.Location, error)

// Boundary computes one quarter boundary.
//
// With a zone, the quarter is taken on that zone's wall clock and the result
// is UTC. Without one, the quarter is taken in the frame At carries and the
// result keeps that frame. Next and previous offsets move the current
// boundary by three calendar months, clamping the day to the target month.
func (s *QuarterService) Boundary(ctx context.Context, q domain.BoundaryQuery) (*domain.Boundary, error) {
	return s.boundary(ctx, q, s.resolver.Resolve)
}

func (s *QuarterService) boundary(ctx context.Context, q domain.BoundaryQuery, resolve resolveFunc) (*domain.Boundary, error) {
	logger := logging.FromContextOr(ctx, s.logger).With(
		slog.String("edge", string(q.Edge)),
		slog.String("offset", q.Offset.String()),
		slog.String("tz", q.Zone),
	)

	if err := q.Validate(); err != nil {
		logger.WarnContext(ctx, "rejected boundary query", slog.Any("error", err))
		return nil, err
	}

	var (
		at    time.Time
		label quarter.Label
		zone  string
	)

	zoned := q.Zone != ""
	if zoned {
		loc, err := s.resolveZone(ctx, logger, resolve, q.Zone)
		if err != nil {
			return nil, err
		}

		at = s.zoned(q, loc)
		label = quarter.Of(at.In(loc))
		zone = loc.String()
	} else {
		at = s.native(q)
		label = quarter.Of(at)
	}

	if err := domain.CheckYear("at", at); err != nil {
		logger.WarnContext(ctx, "boundary outside supported range", slog.Any("error", err))
		return nil, err
	}

	s.metrics.BoundaryComputed(string(q.Edge), q.Offset.String(), zoned)

	logger.DebugContext(ctx, "computed quarter boundary",
		slog.Time("at", q.At),
		slog.Time("boundary", at),
		slog.String("quarter", label.String()),
	)

	return &domain.Boundary{
		Query:   q,
		Zone:    zone,
		Quarter: label.String(),
		At:      at,
	}, nil
}

func (s *QuarterService) zoned(q domain.BoundaryQuery, loc *time.Location) time.Time {
	switch {
	case q.Edge == domain.EdgeStart && q.Offset == domain.OffsetNext:
		return s.calc.StartOfNextTz(q.At, loc)
	case q.Edge == domain.EdgeStart && q.Offset == domain.OffsetPrevious:
		return s.calc.StartOfPreviousTz(q.At, loc)
	case q.Edge == domain.EdgeStart:
		return s.calc.StartTz(q.At, loc)
	case q.Offset == domain.OffsetNext:
		return s.calc.EndOfNextTz(q.At, loc)
	case q.Offset == domain.OffsetPrevious:
		return s.calc.EndOfPreviousTz(q.At, loc)
	default:
		return s.calc.EndTz(q.At, loc)
	}
}

func (s *QuarterService) native(q domain.BoundaryQuery) time.Time {
	at := s.calc.Start(q.At)
	if q.Edge == domain.EdgeEnd {
		at = s.calc.End(q.At)
	}

	return quarter.AddMonths(at, int(q.Offset)*3)
}

func (s *QuarterService) resolveZone(
	ctx context.Context,
	logger *slog.Logger,
	resolve resolveFunc,
	name string,
) (*time.Location, error) {
	loc, err := resolve(ctx, name)
	if err != nil {
		if domain.IsZoneError(err) {
			s.metrics.ZoneLookupFailed()
		}

		logger.WarnContext(ctx, "time zone lookup failed", slog.Any("error", err))

		return nil, err
	}

	return loc, nil
}

// Window returns the quarter containing at on zone's wall clock together with
// the quarters either side of it. An empty zone uses the configured default.
// All instants are UTC.
func (s *QuarterService) Window(ctx context.Context, at time.Time, zone string) (*domain.Window, error) {
	logger := logging.FromContextOr(ctx, s.logger).With(slog.String("tz", zone))

	if at.IsZero() {
		return nil, domain.NewValidationError("at", "is required")
	}

	if err := domain.CheckYear("at", at); err != nil {
		return nil, err
	}

	loc, err := s.resolveZone(ctx, logger, s.resolver.Resolve, zone)
	if err != nil {
		return nil, err
	}

	current := quarter.Of(at.In(loc))
	prev, next := current.Prev(), current.Next()

	if prev.Year < domain.MinYear || next.Year > domain.MaxYear {
		return nil, domain.NewValidationErrorWithValue("at",
			fmt.Sprintf("neighbouring quarters fall outside years %d-%d", domain.MinYear, domain.MaxYear),
			current.String())
	}

	w := &domain.Window{
		At:       at,
		Zone:     loc.String(),
		Previous: s.span(prev, loc, domain.OffsetPrevious),
		Current:  s.span(current, loc, domain.OffsetCurrent),
		Next:     s.span(next, loc, domain.OffsetNext),
	}

	logger.DebugContext(ctx, "computed quarter window",
		slog.Time("at", at),
		slog.String("quarter", current.String()),
	)

	return w, nil
}

// Now returns the service clock's current instant.
func (s *QuarterService) Now() time.Time {
	return s.clock.Now()
}

// Current is Window at the clock's current instant.
func (s *QuarterService) Current(ctx context.Context, zone string) (*domain.Window, error) {
	return s.Window(ctx, s.clock.Now(), zone)
}

// Quarter returns the edges of a named quarter such as "2023-Q1" on zone's
// wall clock. An empty zone uses the configured default.
func (s *QuarterService) Quarter(ctx context.Context, name, zone string) (*domain.QuarterSpan, error) {
	logger := logging.FromContextOr(ctx, s.logger).With(
		slog.String("quarter", name),
		slog.String("tz", zone),
	)

	label, err := quarter.Parse(name)
	if err != nil {
		return nil, domain.NewValidationErrorWithValue("quarter", "must look like 2023-Q1", name)
	}

	if label.Year < domain.MinYear || label.Year > domain.MaxYear {
		return nil, domain.NewValidationErrorWithValue("quarter",
			fmt.Sprintf("year must be between %d and %d", domain.MinYear, domain.MaxYear), name)
	}

	loc, err := s.resolveZone(ctx, logger, s.resolver.Resolve, zone)
	if err != nil {
		return nil, err
	}

	span := s.span(label, loc, domain.OffsetCurrent)

	return &span, nil
}

func (s *QuarterService) span(label quarter.Label, loc *time.Location, offset domain.Offset) domain.QuarterSpan {
	wall, _ := label.Bounds(loc)

	s.metrics.BoundaryComputed(string(domain.EdgeStart), offset.String(), true)
	s.metrics.BoundaryComputed(string(domain.EdgeEnd), offset.String(), true)

	return domain.QuarterSpan{
		Quarter: label.String(),
		Start:   s.calc.StartTz(wall, loc),
		End:     s.calc.EndTz(wall, loc),
	}
}

// Boundaries computes a batch of boundaries with bounded concurrency.
// Item failures are reported per item; only an unusable batch fails as a whole.
// Zone names are resolved once per call.
func (s *QuarterService) Boundaries(ctx context.Context, queries []domain.BoundaryQuery) ([]domain.BoundaryResult, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "QuarterService.Boundaries",
		trace.WithAttributes(attribute.Int("quarter.batch.items", len(queries))))
	defer span.End()

	logger := logging.FromContextOr(ctx, s.logger)

	var err error

	switch {
	case len(queries) == 0:
		err = domain.NewValidationError("items", "must not be empty")
	case len(queries) > s.maxBatch:
		err = domain.NewValidationErrorWithValue("items",
			fmt.Sprintf("must contain at most %d entries", s.maxBatch), len(queries))
	}

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	rc := appctx.FromContext(ctx)
	if rc == nil {
		rc = appctx.New(ctx)
		ctx = appctx.WithContext(ctx, rc)
	}

	resolve := func(_ context.Context, name string) (*time.Location, error) {
		return rc.Zone(s.resolver, name)
	}

	fns := make([]func(context.Context) (*domain.Boundary, error), len(queries))
	for i, q := range queries {
		fns[i] = func(ctx context.Context) (*domain.Boundary, error) {
			return s.boundary(ctx, q, resolve)
		}
	}

	partial := ParallelPartialLimit(ctx, s.concurrency, fns...)

	results := make([]domain.BoundaryResult, len(partial))
	failed := 0

	for i, p := range partial {
		results[i] = domain.BoundaryResult{Index: i, Boundary: p.Value, Err: p.Err}
		if p.Err != nil {
			results[i].Boundary = nil
			failed++
		}
	}

	span.SetAttributes(attribute.Int("quarter.batch.failed", failed))

	logger.InfoContext(ctx, "computed boundary batch",
		slog.Int("items", len(queries)),
		slog.Int("failed", failed),
	)

	return results, nil
}
