package context

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jsamuelsen/quarter-service/internal/ports"
)

// ErrUnexpectedType is returned by Get when the memoized value for a key
// has a different type than requested.
var ErrUnexpectedType = errors.New("request context: unexpected cached type")

type ctxKey struct{}

// RequestContext memoizes lookups for the lifetime of one request.
type RequestContext struct {
	ctx    context.Context
	values sync.Map
	group  singleflight.Group
}

func New(ctx context.Context) *RequestContext {
	return &RequestContext{ctx: ctx}
}

// FromContext returns the RequestContext stored in ctx, or nil.
func FromContext(ctx context.Context) *RequestContext {
	if ctx == nil {
		return nil
	}

	rc, _ := ctx.Value(ctxKey{}).(*RequestContext)

	return rc
}

func WithContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// Context is the context fetches run with.
func (rc *RequestContext) Context() context.Context {
	return rc.ctx
}

// GetOrFetch returns the value memoized under key, running fetch on the
// first call. Concurrent callers for one key share a single fetch. Errors
// are returned to every waiter but not memoized.
func (rc *RequestContext) GetOrFetch(key string, fetch func(context.Context) (any, error)) (any, error) {
	if v, ok := rc.values.Load(key); ok {
		return v, nil
	}

	v, err, _ := rc.group.Do(key, func() (any, error) {
		if v, ok := rc.values.Load(key); ok {
			return v, nil
		}

		v, err := fetch(rc.ctx)
		if err == nil {
			rc.values.Store(key, v)
		}

		return v, err
	})
	if err != nil {
		return nil, err
	}

	return v, nil
}

// Get is GetOrFetch with the result asserted to T.
func Get[T any](rc *RequestContext, key string, fetch func(context.Context) (any, error)) (T, error) {
	var zero T

	v, err := rc.GetOrFetch(key, fetch)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T", ErrUnexpectedType, key, v)
	}

	return typed, nil
}

// ZoneKey is the memo key for a zone name. Surrounding blanks are ignored.
func ZoneKey(name string) string {
	return "zone:" + strings.TrimSpace(name)
}

// Zone resolves name through resolver at most once per RequestContext.
func (rc *RequestContext) Zone(resolver ports.ZoneResolver, name string) (*time.Location, error) {
	return Get[*time.Location](rc, ZoneKey(name), func(ctx context.Context) (any, error) {
		return resolver.Resolve(ctx, name)
	})
}
