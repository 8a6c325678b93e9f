package services

import (
	"github.com/yeremiapane/restaurant-console/querycache"
	"github.com/yeremiapane/restaurant-console/realtime"
)

// CacheInvalidator keeps the shared query cache coherent with captured row
// changes, including changes made by other instances.
type CacheInvalidator struct {
	cache *querycache.Cache
	unsub func()
}

func NewCacheInvalidator(cache *querycache.Cache) *CacheInvalidator {
	return &CacheInvalidator{cache: cache}
}

// Attach subscribes to hub. It returns the invalidator for chaining.
func (ci *CacheInvalidator) Attach(hub *realtime.Hub) *CacheInvalidator {
	ci.unsub = hub.Subscribe(ci.Handle)
	return ci
}

func (ci *CacheInvalidator) Detach() {
	if ci.unsub != nil {
		ci.unsub()
	}
}

// Handle invalidates the cache entries the changed row can appear under.
// Tenant lists of orders, tables and waiter calls are left alone: an open
// live view refreshes them through its own channel, and once the view is
// closed nothing touches them until a local mutation does.
func (ci *CacheInvalidator) Handle(evt realtime.ChangeEvent) {
	rid := evt.RestaurantID
	switch evt.Table {
	case "orders":
		ci.cache.Invalidate(orderKey(evt.RecordID))
	case "order_items":
		ci.cache.Invalidate(querycache.K("order"))
	case "tables":
		ci.cache.Invalidate(tableKey(evt.RecordID))
	case "categories":
		ci.cache.Invalidate(scoped("categories", rid))
		ci.cache.Invalidate(scoped("menu_items", rid))
	case "menu_items":
		ci.cache.Invalidate(scoped("menu_items", rid))
	case "feedback":
		ci.cache.Invalidate(scoped("feedback", rid))
	case "restaurants":
		ci.cache.Invalidate(querycache.K("restaurant"))
		ci.cache.Invalidate(restaurantsKey())
	}
}
