package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-console/database"
	"github.com/yeremiapane/restaurant-console/gateway"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/querycache"
	"github.com/yeremiapane/restaurant-console/realtime"
	"gorm.io/gorm"
)

type testEnv struct {
	db      *gorm.DB
	hub     *realtime.Hub
	gw      *gateway.Gateway
	cache   *querycache.Cache
	monitor *ChangeMonitor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)

	hub := realtime.NewHub()
	cache := querycache.New()
	inv := NewCacheInvalidator(cache).Attach(hub)
	t.Cleanup(inv.Detach)
	return &testEnv{
		db:      db,
		hub:     hub,
		gw:      gateway.New(db, hub),
		cache:   cache,
		monitor: NewChangeMonitor(db, hub, time.Second),
	}
}

// flush publishes every captured change.
func (e *testEnv) flush(t *testing.T) {
	t.Helper()
	for {
		n, err := e.monitor.CheckChanges()
		require.NoError(t, err)
		if n == 0 {
			return
		}
	}
}

func (e *testEnv) restaurant(t *testing.T, slug string) models.Restaurant {
	t.Helper()
	r := models.Restaurant{Name: slug, Slug: slug, SubscriptionTier: models.TierPro, IsActive: true}
	require.NoError(t, e.db.Create(&r).Error)
	return r
}

func (e *testEnv) table(t *testing.T, restaurantID, number string) models.Table {
	t.Helper()
	tb := models.Table{RestaurantID: restaurantID, TableNumber: number}
	require.NoError(t, e.db.Create(&tb).Error)
	return tb
}

func (e *testEnv) order(t *testing.T, restaurantID string, status models.OrderStatus, createdAt time.Time) models.Order {
	t.Helper()
	o := models.Order{
		RestaurantID:  restaurantID,
		Status:        status,
		PaymentStatus: models.PaymentPending,
		TotalAmount:   100,
		CreatedAt:     createdAt.UTC(),
		OrderItems:    []models.OrderItem{{Name: "Thali", Quantity: 1, Price: 100}},
	}
	require.NoError(t, e.db.Create(&o).Error)
	return o
}

func ids(orders []models.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func realtimeOrderEvent(restaurantID string) realtime.ChangeEvent {
	return realtime.ChangeEvent{Schema: "public", Table: "orders", Action: models.ActionUpdate, RestaurantID: restaurantID}
}

func seededCache(t *testing.T, keys []querycache.Key) *querycache.Cache {
	t.Helper()
	c := querycache.New()
	for _, k := range keys {
		_, err := querycache.Fetch(context.Background(), c, k, time.Hour, func(context.Context) (int, error) { return 1, nil })
		require.NoError(t, err)
	}
	return c
}
