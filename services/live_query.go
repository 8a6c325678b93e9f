package services

import (
	"context"
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-console/gateway"
	"github.com/yeremiapane/restaurant-console/querycache"
	"github.com/yeremiapane/restaurant-console/realtime"
)

// liveConfig describes one live view: how it is fetched, where it is
// cached, and which change channel keeps the cache honest.
type liveConfig[T any] struct {
	channel   func(tenant string) string
	bindings  func(tenant string) []gateway.Binding
	prefix    func(tenant string) querycache.Key
	key       func(tenant string) querycache.Key
	staleTime time.Duration
	empty     func() T
	fetch     func(ctx context.Context, tenant string) (T, error)
}

// LiveQuery is a tenant-scoped view that stays subscribed to row changes
// while open. Every matching change invalidates the view's cache prefix so
// the next Get refetches.
type LiveQuery[T any] struct {
	gw    *gateway.Gateway
	cache *querycache.Cache
	cfg   liveConfig[T]

	mu      sync.Mutex
	tenant  string
	channel *gateway.Channel
	closed  bool
	changes chan struct{}
}

func newLiveQuery[T any](gw *gateway.Gateway, cache *querycache.Cache, tenant string, cfg liveConfig[T]) *LiveQuery[T] {
	lq := &LiveQuery[T]{
		gw:      gw,
		cache:   cache,
		cfg:     cfg,
		changes: make(chan struct{}, 1),
	}
	lq.SetTenant(tenant)
	return lq
}

// Get returns the current result. An empty tenant yields the empty result.
func (l *LiveQuery[T]) Get(ctx context.Context) (T, error) {
	l.mu.Lock()
	tenant := l.tenant
	l.mu.Unlock()

	if tenant == "" {
		return l.cfg.empty(), nil
	}
	return querycache.Fetch(ctx, l.cache, l.cfg.key(tenant), l.cfg.staleTime, func(ctx context.Context) (T, error) {
		return l.cfg.fetch(ctx, tenant)
	})
}

// Tenant returns the tenant the view is scoped to.
func (l *LiveQuery[T]) Tenant() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tenant
}

// Changes signals after each invalidation. Signals coalesce.
func (l *LiveQuery[T]) Changes() <-chan struct{} {
	return l.changes
}

// SetTenant rescopes the view, replacing its change channel.
func (l *LiveQuery[T]) SetTenant(tenant string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if l.channel != nil && tenant == l.tenant {
		return
	}

	l.gw.RemoveChannel(l.channel)
	l.channel = nil
	l.tenant = tenant
	if tenant == "" {
		return
	}

	prefix := l.cfg.prefix(tenant)
	ch := l.gw.Channel(l.cfg.channel(tenant))
	for _, b := range l.cfg.bindings(tenant) {
		ch.On(b, func(realtime.ChangeEvent) {
			l.cache.Invalidate(prefix)
			l.notify()
		})
	}
	l.channel = ch.Subscribe()
}

func (l *LiveQuery[T]) notify() {
	select {
	case l.changes <- struct{}{}:
	default:
	}
}

// Close removes the change channel. No invalidation happens through this
// view afterwards.
func (l *LiveQuery[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	l.gw.RemoveChannel(l.channel)
	l.channel = nil
}
