package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-console/controllers"
	"github.com/yeremiapane/restaurant-console/models"
)

func TestStaffCannotReachAnotherRestaurant(t *testing.T) {
	app := newTestApp(t)
	home := app.restaurant(t, "home")
	other := app.restaurant(t, "other")

	order := placeOrder(t, setupOrderRouter(app, other.ID), other.ID)
	table := models.Table{RestaurantID: other.ID, TableNumber: "B1", Status: "available"}
	require.NoError(t, app.db.Create(&table).Error)
	call := models.WaiterCall{RestaurantID: other.ID, TableID: table.ID, Status: models.CallPending}
	require.NoError(t, app.db.Create(&call).Error)

	orderCtrl := controllers.NewOrderController(app.orders)
	kitchenCtrl := controllers.NewKitchenController(app.kitchen, app.orders)
	tableCtrl := controllers.NewTableController(app.tables, "https://order.example.com")
	callCtrl := controllers.NewWaiterCallController(app.calls)
	register := func(g *gin.RouterGroup) {
		g.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		g.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		g.PATCH("/orders/:order_id/payment", orderCtrl.UpdatePayment)
		g.POST("/kitchen/orders/:order_id/start", kitchenCtrl.StartPreparing)
		g.POST("/kitchen/orders/:order_id/ready", kitchenCtrl.MarkReady)
		g.POST("/kitchen/orders/:order_id/served", kitchenCtrl.MarkServed)
		g.GET("/tables/:table_id", tableCtrl.GetTableByID)
		g.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
		g.PATCH("/tables/:table_id/status", tableCtrl.UpdateTableStatus)
		g.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
		g.GET("/tables/:table_id/qr", tableCtrl.GetTableQR)
		g.POST("/waiter-calls/:call_id/acknowledge", callCtrl.Acknowledge)
		g.POST("/waiter-calls/:call_id/resolve", callCtrl.Resolve)
	}
	router := gin.New()
	register(router.Group("/staff", as("u-a", models.RoleAdmin, home.ID)))
	register(router.Group("/root", as("u-root", models.RoleSuperAdmin, "")))

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"read order", http.MethodGet, "/orders/" + order.ID, nil},
		{"set order status", http.MethodPatch, "/orders/" + order.ID + "/status", gin.H{"status": "cancelled"}},
		{"pay order", http.MethodPatch, "/orders/" + order.ID + "/payment", gin.H{"payment_method": "cash", "payment_status": "paid"}},
		{"start cooking", http.MethodPost, "/kitchen/orders/" + order.ID + "/start", nil},
		{"mark ready", http.MethodPost, "/kitchen/orders/" + order.ID + "/ready", nil},
		{"mark served", http.MethodPost, "/kitchen/orders/" + order.ID + "/served", nil},
		{"read table", http.MethodGet, "/tables/" + table.ID, nil},
		{"edit table", http.MethodPatch, "/tables/" + table.ID, gin.H{"capacity": 2}},
		{"set table status", http.MethodPatch, "/tables/" + table.ID + "/status", gin.H{"status": "occupied"}},
		{"delete table", http.MethodDelete, "/tables/" + table.ID, nil},
		{"table qr", http.MethodGet, "/tables/" + table.ID + "/qr", nil},
		{"acknowledge call", http.MethodPost, "/waiter-calls/" + call.ID + "/acknowledge", nil},
		{"resolve call", http.MethodPost, "/waiter-calls/" + call.ID + "/resolve", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := doJSON(t, router, tt.method, "/staff"+tt.path, tt.body)
			assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
		})
	}

	var storedOrder models.Order
	require.NoError(t, app.db.First(&storedOrder, "id = ?", order.ID).Error)
	assert.Equal(t, models.StatusPending, storedOrder.Status)
	assert.Equal(t, models.PaymentPending, storedOrder.PaymentStatus)
	assert.Nil(t, storedOrder.StartedPreparingAt)

	var storedTable models.Table
	require.NoError(t, app.db.First(&storedTable, "id = ?", table.ID).Error)
	assert.Equal(t, "available", storedTable.Status)

	var storedCall models.WaiterCall
	require.NoError(t, app.db.First(&storedCall, "id = ?", call.ID).Error)
	assert.Equal(t, models.CallPending, storedCall.Status)

	w, env := doJSON(t, router, http.MethodGet, "/root/orders/"+order.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, order.ID, decode[models.Order](t, env.Data).ID)
	w, _ = doJSON(t, router, http.MethodPost, "/root/waiter-calls/"+call.ID+"/acknowledge", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
