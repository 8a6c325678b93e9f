package gateway_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-console/database"
	"github.com/yeremiapane/restaurant-console/gateway"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/realtime"
)

func setup(t *testing.T) (*gateway.Gateway, *realtime.Hub) {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)
	hub := realtime.NewHub()
	return gateway.New(db, hub), hub
}

func seedOrders(t *testing.T, gw *gateway.Gateway, restaurantID string) []models.Order {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	statuses := []models.OrderStatus{models.StatusPending, models.StatusPreparing, models.StatusPending, models.StatusServed}

	var out []models.Order
	for i, st := range statuses {
		o := models.Order{
			RestaurantID: restaurantID,
			Status:       st,
			TotalAmount:  float64(100 * (i + 1)),
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
			OrderItems:   []models.OrderItem{{Name: "Idli", Quantity: 1, Price: 50}},
		}
		require.NoError(t, gw.Insert(ctx, &o))
		out = append(out, o)
	}
	return out
}

func TestSelectFiltersOrdersAndExpands(t *testing.T) {
	gw, _ := setup(t)
	ctx := context.Background()
	orders := seedOrders(t, gw, "r1")
	seedOrders(t, gw, "r2")

	var got []models.Order
	q := gateway.Query{Resource: gateway.Orders, Expand: []string{"OrderItems"}}.
		Where(gateway.Eq("restaurant_id", "r1"), gateway.In("status", []models.OrderStatus{models.StatusPending})).
		OrderBy("created_at", true)
	require.NoError(t, gw.Select(ctx, q, &got))

	require.Len(t, got, 2)
	assert.Equal(t, orders[2].ID, got[0].ID)
	assert.Equal(t, orders[0].ID, got[1].ID)
	assert.Len(t, got[0].OrderItems, 1)
}

func TestSelectRangeAndLimit(t *testing.T) {
	gw, _ := setup(t)
	ctx := context.Background()
	orders := seedOrders(t, gw, "r1")

	var got []models.Order
	q := gateway.Query{Resource: gateway.Orders}.
		Where(gateway.Gte("created_at", orders[1].CreatedAt), gateway.Lte("created_at", orders[3].CreatedAt)).
		OrderBy("created_at", false)
	q.Limit = 2
	require.NoError(t, gw.Select(ctx, q, &got))

	require.Len(t, got, 2)
	assert.Equal(t, orders[1].ID, got[0].ID)
	assert.Equal(t, orders[2].ID, got[1].ID)

	n, err := gw.Count(ctx, gateway.Query{Resource: gateway.Orders}.Where(gateway.Eq("restaurant_id", "r1")))
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}

func TestFirstNotFound(t *testing.T) {
	gw, _ := setup(t)

	var o models.Order
	err := gw.First(context.Background(), gateway.Query{Resource: gateway.Orders}.Where(gateway.Eq("id", "missing")), &o)
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestUpdateAndDeleteByID(t *testing.T) {
	gw, _ := setup(t)
	ctx := context.Background()
	orders := seedOrders(t, gw, "r1")

	var updated models.Order
	require.NoError(t, gw.Update(ctx, orders[0].ID, map[string]interface{}{"status": models.StatusReady}, &updated))
	assert.Equal(t, models.StatusReady, updated.Status)
	assert.Equal(t, orders[0].ID, updated.ID)

	err := gw.Update(ctx, "missing", map[string]interface{}{"status": models.StatusReady}, &models.Order{})
	assert.ErrorIs(t, err, gateway.ErrNotFound)

	require.NoError(t, gw.Delete(ctx, orders[3].ID, &models.Order{}))
	n, err := gw.Count(ctx, gateway.Query{Resource: gateway.Orders})
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	assert.ErrorIs(t, gw.Delete(ctx, orders[3].ID, &models.Order{}), gateway.ErrNotFound)
}

func TestSelectRejectsUnknownOperator(t *testing.T) {
	gw, _ := setup(t)
	q := gateway.Query{Resource: gateway.Orders, Filters: []gateway.Filter{{Column: "status", Op: "like", Value: "x"}}}
	var got []models.Order
	assert.Error(t, gw.Select(context.Background(), q, &got))
}
