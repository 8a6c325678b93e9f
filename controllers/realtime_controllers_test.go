package controllers_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-console/controllers"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/realtime"
	"github.com/yeremiapane/restaurant-console/services"
)

type wsMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func dialWS(t *testing.T, app *testApp, tenant, path string) *websocket.Conn {
	t.Helper()
	router := gin.New()
	rc := controllers.NewRealtimeController(app.hub, app.orders)
	ws := router.Group("/ws", as("u-1", models.RoleKitchen, tenant))
	ws.GET("/changes", rc.ChangesHandler)
	ws.GET("/orders", rc.LiveOrdersHandler)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestChangesSocketIsScopedToTenant(t *testing.T) {
	app := newTestApp(t)
	r := app.restaurant(t, "socket")
	conn := dialWS(t, app, r.ID, "/ws/changes")

	assert.Equal(t, realtime.EventConnected, readWS(t, conn).Event)

	app.hub.Publish(realtime.ChangeEvent{Table: "orders", Action: "INSERT", RecordID: "other-order", RestaurantID: "someone-else"})
	app.hub.Publish(realtime.ChangeEvent{Table: "orders", Action: "INSERT", RecordID: "own-order", RestaurantID: r.ID})

	msg := readWS(t, conn)
	assert.Equal(t, realtime.EventChange, msg.Event)
	evt := decode[realtime.ChangeEvent](t, msg.Data)
	assert.Equal(t, "own-order", evt.RecordID)
	assert.Equal(t, app.hub.ID(), evt.Origin)
}

func TestLiveOrdersSocketPushesSnapshots(t *testing.T) {
	app := newTestApp(t)
	r := app.restaurant(t, "live")
	conn := dialWS(t, app, r.ID, "/ws/orders?status=pending")

	msg := readWS(t, conn)
	assert.Equal(t, controllers.EventOrders, msg.Event)
	assert.Empty(t, decode[[]models.Order](t, msg.Data))

	_, err := app.orders.Create(context.Background(), services.CreateOrderInput{
		RestaurantID: r.ID,
		TotalAmount:  90,
		Items:        []services.OrderItemInput{{Name: "Filter Coffee", Quantity: 3, Price: 30}},
	})
	require.NoError(t, err)
	_, err = app.monitor.CheckChanges()
	require.NoError(t, err)

	msg = readWS(t, conn)
	require.Equal(t, controllers.EventOrders, msg.Event)
	orders := decode[[]models.Order](t, msg.Data)
	require.Len(t, orders, 1)
	assert.Equal(t, models.StatusPending, orders[0].Status)
}
