package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-console/gateway"
	"github.com/yeremiapane/restaurant-console/models"
)

func TestKitchenActions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r := env.restaurant(t, "kitchen")
	o := env.order(t, r.ID, models.StatusConfirmed, time.Now())

	stamp := time.Date(2026, 6, 1, 19, 0, 0, 0, time.UTC)
	k := NewKitchenService(env.gw, env.cache)
	k.now = func() time.Time { return stamp }

	orders := NewOrderService(env.gw, env.cache, time.UTC)
	_, err := orders.List(ctx, r.ID)
	require.NoError(t, err)
	require.True(t, env.cache.Has(ordersKey(r.ID, nil)))

	got, err := k.StartPreparing(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, got.Status)
	require.NotNil(t, got.StartedPreparingAt)
	assert.True(t, stamp.Equal(*got.StartedPreparingAt))
	assert.False(t, env.cache.Has(ordersKey(r.ID, nil)))

	got, err = k.MarkReady(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, got.Status)
	require.NotNil(t, got.ReadyAt)

	got, err = k.MarkServed(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusServed, got.Status)

	_, err = k.MarkReady(ctx, "nope")
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestKitchenLastWriteWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r := env.restaurant(t, "lww")
	o := env.order(t, r.ID, models.StatusServed, time.Now())
	k := NewKitchenService(env.gw, env.cache)

	// no transition guard: moving backwards is accepted
	got, err := k.StartPreparing(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparing, got.Status)
}

func TestKitchenTimestampsAreStoredInUTC(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r := env.restaurant(t, "zones")
	o := env.order(t, r.ID, models.StatusConfirmed, time.Now())

	ist := time.FixedZone("IST", 5*3600+1800)
	stamp := time.Date(2026, 6, 2, 0, 30, 0, 0, ist)
	k := NewKitchenService(env.gw, env.cache)
	k.now = func() time.Time { return stamp }

	_, err := k.StartPreparing(ctx, o.ID)
	require.NoError(t, err)
	_, err = k.MarkReady(ctx, o.ID)
	require.NoError(t, err)

	for _, col := range []string{"started_preparing_at", "ready_at"} {
		var n int64
		require.NoError(t, env.db.Model(&models.Order{}).Where(col+" = ?", stamp.UTC()).Count(&n).Error)
		assert.EqualValues(t, 1, n, col)
	}
}
