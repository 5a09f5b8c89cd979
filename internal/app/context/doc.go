// Package context memoizes per-request lookups for the application services.
//
// A batch request often names the same time zone many times. Storing a
// RequestContext in the request's context lets every item share one lookup:
//
//	rc := context.New(ctx)
//	ctx = context.WithContext(ctx, rc)
//	loc, err := rc.Zone(resolver, "Asia/Tokyo")
package context
