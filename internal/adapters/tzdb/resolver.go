// Package tzdb resolves IANA time zone names against the zone database
// linked into the binary.
package tzdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen/quarter-service/internal/domain"
)

// DefaultZone is used when no default is configured.
const DefaultZone = "UTC"

var errLocalZone = errors.New(`"Local" depends on the host and is not accepted`)

// Loader looks a zone up by name.
type Loader func(name string) (*time.Location, error)

// Option configures a Resolver.
type Option func(*Resolver)

// WithLoader replaces time.LoadLocation.
func WithLoader(l Loader) Option {
	return func(r *Resolver) {
		r.load = l
	}
}

// Resolver implements ports.ZoneResolver and ports.HealthChecker.
// Successful lookups are cached for the lifetime of the Resolver.
type Resolver struct {
	defaultZone string
	load        Loader
	cache       sync.Map
}

// NewResolver creates a resolver whose empty-name lookups resolve to defaultZone.
func NewResolver(defaultZone string, opts ...Option) *Resolver {
	defaultZone = strings.TrimSpace(defaultZone)
	if defaultZone == "" {
		defaultZone = DefaultZone
	}

	r := &Resolver{
		defaultZone: defaultZone,
		load:        time.LoadLocation,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// DefaultZone returns the zone used for empty names.
func (r *Resolver) DefaultZone() string {
	return r.defaultZone
}

// Resolve returns the location for name.
func (r *Resolver) Resolve(ctx context.Context, name string) (*time.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = r.defaultZone
	}

	if cached, ok := r.cache.Load(name); ok {
		return cached.(*time.Location), nil
	}

	loc, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	r.cache.Store(name, loc)

	return loc, nil
}

func (r *Resolver) lookup(name string) (*time.Location, error) {
	if strings.EqualFold(name, "Local") {
		return nil, domain.NewZoneError(name, errLocalZone)
	}

	loc, err := r.load(name)
	if err == nil {
		return loc, nil
	}

	// An unreadable database is our problem, not the caller's.
	if strings.Contains(err.Error(), "malformed") {
		return nil, fmt.Errorf("%w: %w", domain.NewUnavailableError(r.Name(), "zone database unreadable"), err)
	}

	return nil, domain.NewZoneError(name, err)
}

// Name implements ports.HealthChecker.
func (r *Resolver) Name() string {
	return "tzdata"
}

// Check implements ports.HealthChecker. It loads the default zone
// without consulting the cache.
func (r *Resolver) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := r.lookup(r.defaultZone)

	return err
}
