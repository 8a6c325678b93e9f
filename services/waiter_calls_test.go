package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-console/models"
)

func TestWaiterCallLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r := env.restaurant(t, "calls")
	tb := env.table(t, r.ID, "T7")
	svc := NewWaiterCallService(env.gw, env.cache)
	stamp := time.Date(2026, 6, 2, 20, 15, 0, 0, time.UTC)
	svc.now = func() time.Time { return stamp }

	reason := "water"
	call, err := svc.Create(ctx, CreateWaiterCallInput{RestaurantID: r.ID, TableID: tb.ID, Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, models.CallPending, call.Status)

	pending, err := svc.Pending(ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NotNil(t, pending[0].Table)
	assert.Equal(t, "T7", pending[0].Table.TableNumber)

	acked, err := svc.Acknowledge(ctx, call.ID, "waiter-1")
	require.NoError(t, err)
	assert.Equal(t, models.CallAcknowledged, acked.Status)
	require.NotNil(t, acked.RespondedBy)
	assert.Equal(t, "waiter-1", *acked.RespondedBy)
	require.NotNil(t, acked.RespondedAt)
	assert.True(t, stamp.Equal(*acked.RespondedAt))

	pending, err = svc.Pending(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)

	resolved, err := svc.Resolve(ctx, call.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CallResolved, resolved.Status)

	all, err := svc.List(ctx, r.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.CallResolved, all[0].Status)
}

func TestWaiterCallWatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r := env.restaurant(t, "watch-calls")
	tb := env.table(t, r.ID, "T1")
	env.flush(t)

	svc := NewWaiterCallService(env.gw, env.cache)
	lq := svc.Watch(r.ID, models.CallPending)
	defer lq.Close()

	got, err := lq.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, env.db.Create(&models.WaiterCall{RestaurantID: r.ID, TableID: tb.ID}).Error)
	env.flush(t)

	got, err = lq.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWaiterCallValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewWaiterCallService(env.gw, env.cache)
	_, err := svc.Create(context.Background(), CreateWaiterCallInput{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"restaurant_id", "table_id"}, verr.Fields)
}
