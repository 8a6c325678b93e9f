package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestCache() (*Cache, *clock) {
	clk := &clock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	c := New()
	c.now = clk.now
	return c, clk
}

func counter(calls *int32, value string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		atomic.AddInt32(calls, 1)
		return value, nil
	}
}

func TestKeyHasPrefix(t *testing.T) {
	tests := []struct {
		key, prefix Key
		want        bool
	}{
		{K("orders", "r1", "all"), K("orders", "r1"), true},
		{K("orders", "r1"), K("orders", "r1"), true},
		{K("orders", "r1"), nil, true},
		{K("orders", "r10"), K("orders", "r1"), false},
		{K("orders"), K("orders", "r1"), false},
		{K("order", "x"), K("orders"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.key.HasPrefix(tt.prefix), "%s prefix %s", tt.key, tt.prefix)
	}
}

func TestFetchServesFreshEntryUntilStale(t *testing.T) {
	c, clk := newTestCache()
	ctx := context.Background()
	var calls int32
	key := K("tables", "r1")

	v, err := Fetch(ctx, c, key, 30*time.Second, counter(&calls, "a"))
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	clk.advance(10 * time.Second)
	v, _ = Fetch(ctx, c, key, 30*time.Second, counter(&calls, "b"))
	assert.Equal(t, "a", v)
	assert.EqualValues(t, 1, calls)

	clk.advance(25 * time.Second)
	v, _ = Fetch(ctx, c, key, 30*time.Second, counter(&calls, "b"))
	assert.Equal(t, "b", v)
	assert.EqualValues(t, 2, calls)
}

func TestFetchErrorIsNotCached(t *testing.T) {
	c, _ := newTestCache()
	boom := errors.New("boom")

	_, err := Fetch(context.Background(), c, K("menu", "r1"), time.Minute, func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Has(K("menu", "r1")))
}

func TestInvalidatePrefix(t *testing.T) {
	c, _ := newTestCache()
	ctx := context.Background()
	var calls int32

	for _, k := range []Key{K("orders", "r1", "all"), K("orders", "r1", "pending"), K("orders", "r2", "all"), K("tables", "r1")} {
		_, err := Fetch(ctx, c, k, time.Minute, counter(&calls, "x"))
		require.NoError(t, err)
	}
	require.Equal(t, 4, c.Len())

	c.Invalidate(K("orders", "r1"))
	assert.False(t, c.Has(K("orders", "r1", "all")))
	assert.False(t, c.Has(K("orders", "r1", "pending")))
	assert.True(t, c.Has(K("orders", "r2", "all")))
	assert.True(t, c.Has(K("tables", "r1")))

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestInvalidateDuringFetchDiscardsResult(t *testing.T) {
	c, _ := newTestCache()
	ctx := context.Background()
	key := K("orders", "r1", "all")

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string)
	go func() {
		v, _ := Fetch(ctx, c, key, time.Minute, func(context.Context) (string, error) {
			close(started)
			<-release
			return "old", nil
		})
		done <- v
	}()

	<-started
	c.Invalidate(K("orders", "r1"))
	close(release)

	assert.Equal(t, "old", <-done)
	assert.False(t, c.Has(key))

	var calls int32
	v, err := Fetch(ctx, c, key, time.Minute, counter(&calls, "new"))
	require.NoError(t, err)
	assert.Equal(t, "new", v)
	assert.True(t, c.Has(key))
}

func TestConcurrentFetchesAreCoalesced(t *testing.T) {
	c, _ := newTestCache()
	ctx := context.Background()
	key := K("restaurants", "all")

	var calls int32
	release := make(chan struct{})
	fn := func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "v", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 5)
	entered := make(chan struct{}, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entered <- struct{}{}
			results[i], _ = Fetch(ctx, c, key, time.Minute, fn)
		}(i)
	}
	for range results {
		<-entered
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "v", r)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&calls), int32(5))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(1))
	assert.True(t, c.Has(key))
}

func TestGenerationsArePrunedWithTheirEntries(t *testing.T) {
	c, _ := newTestCache()
	ctx := context.Background()
	var calls int32

	for _, tenant := range []string{"r1", "r2", "r3"} {
		_, err := Fetch(ctx, c, K("orders", tenant, "all"), time.Minute, counter(&calls, "v"))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, c.tracked())

	c.Invalidate(K("orders", "r1"))
	assert.Equal(t, 2, c.tracked())

	_, err := Fetch(ctx, c, K("orders", "r4", "all"), time.Minute, func(context.Context) (string, error) {
		return "", errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 2, c.tracked())

	c.Clear()
	assert.Zero(t, c.tracked())
}

func TestGenerationSurvivesInvalidationWhileFetching(t *testing.T) {
	c, _ := newTestCache()
	ctx := context.Background()
	key := K("tables", "r1")

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = Fetch(ctx, c, key, time.Minute, func(context.Context) (string, error) {
			close(started)
			<-release
			return "old", nil
		})
	}()

	<-started
	c.Invalidate(K("tables"))
	assert.Equal(t, 1, c.tracked())

	close(release)
	<-done
	assert.False(t, c.Has(key))
	assert.Zero(t, c.tracked())
}
