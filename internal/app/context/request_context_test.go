package context

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quarter-service/internal/domain"
	"github.com/jsamuelsen/quarter-service/internal/mocks"
)

func counting(calls *atomic.Int32, fn func(n int32) (any, error)) func(context.Context) (any, error) {
	return func(context.Context) (any, error) {
		return fn(calls.Add(1))
	}
}

func TestFromContext(t *testing.T) {
	ctx := context.Background()
	rc := New(ctx)

	assert.Equal(t, ctx, rc.Context())
	assert.Nil(t, FromContext(nil)) //nolint:staticcheck // nil context
	assert.Nil(t, FromContext(ctx))
	assert.Same(t, rc, FromContext(WithContext(ctx, rc)))
}

func TestGetOrFetch(t *testing.T) {
	rc := New(context.Background())

	var calls atomic.Int32
	fetch := counting(&calls, func(n int32) (any, error) { return n, nil })

	for range 3 {
		v, err := rc.GetOrFetch("a", fetch)
		require.NoError(t, err)
		assert.Equal(t, int32(1), v)
	}

	v, err := rc.GetOrFetch("b", fetch)
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)
}

func TestGetOrFetch_ErrorsAreNotMemoized(t *testing.T) {
	rc := New(context.Background())
	transient := errors.New("transient")

	var calls atomic.Int32
	fetch := counting(&calls, func(n int32) (any, error) {
		if n == 1 {
			return nil, transient
		}

		return "ok", nil
	})

	v, err := rc.GetOrFetch("k", fetch)
	require.ErrorIs(t, err, transient)
	assert.Nil(t, v)

	v, err = rc.GetOrFetch("k", fetch)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetOrFetch_ConcurrentCallersShareOneFetch(t *testing.T) {
	rc := New(context.Background())
	release := make(chan struct{})

	var calls atomic.Int32
	fetch := counting(&calls, func(int32) (any, error) {
		<-release
		return "shared", nil
	})

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			v, err := rc.GetOrFetch("zone:UTC", fetch)
			assert.NoError(t, err)
			assert.Equal(t, "shared", v)
		})
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestGetOrFetch_FetchSeesWrappedContext(t *testing.T) {
	type key struct{}

	rc := New(context.WithValue(context.Background(), key{}, "outer"))

	v, err := rc.GetOrFetch("k", func(ctx context.Context) (any, error) {
		return ctx.Value(key{}), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "outer", v)
}

func TestGet(t *testing.T) {
	rc := New(context.Background())
	answer := func(context.Context) (any, error) { return 42, nil }

	n, err := Get[int](rc, "answer", answer)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = Get[string](rc, "answer", answer)
	require.ErrorIs(t, err, ErrUnexpectedType)
	assert.Contains(t, err.Error(), `"answer"`)

	boom := errors.New("boom")
	loc, err := Get[*time.Location](rc, "zone:X", func(context.Context) (any, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Nil(t, loc)
}

func TestZoneKey(t *testing.T) {
	assert.Equal(t, "zone:Asia/Tokyo", ZoneKey(" Asia/Tokyo "))
	assert.Equal(t, "zone:", ZoneKey(""))
}

func TestZone_ResolvesOncePerRequest(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	resolver := mocks.NewMockZoneResolver(t)
	resolver.EXPECT().Resolve(mock.Anything, "Asia/Tokyo").Return(tokyo, nil).Once()

	rc := New(context.Background())

	for range 3 {
		loc, err := rc.Zone(resolver, "Asia/Tokyo")
		require.NoError(t, err)
		assert.Same(t, tokyo, loc)
	}
}

func TestZone_FailuresAreRetried(t *testing.T) {
	resolver := mocks.NewMockZoneResolver(t)
	resolver.EXPECT().Resolve(mock.Anything, "Bad/Zone").
		Return(nil, domain.NewZoneError("Bad/Zone", nil)).Twice()

	rc := New(context.Background())

	for range 2 {
		loc, err := rc.Zone(resolver, "Bad/Zone")
		require.Error(t, err)
		assert.True(t, domain.IsZoneError(err))
		assert.Nil(t, loc)
	}
}
