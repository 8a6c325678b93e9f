package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-console/middlewares"
	"github.com/yeremiapane/restaurant-console/realtime"
	"github.com/yeremiapane/restaurant-console/services"
	"github.com/yeremiapane/restaurant-console/utils"
)

// EventOrders carries a full order list snapshot on the live orders socket.
const EventOrders = "orders"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// origins are checked by the CORS middleware and the token
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type RealtimeController struct {
	Hub    *realtime.Hub
	Orders *services.OrderService
}

func NewRealtimeController(hub *realtime.Hub, orders *services.OrderService) *RealtimeController {
	return &RealtimeController{Hub: hub, Orders: orders}
}

// ChangesHandler -> websocket streaming change events of the tenant
func (rc *RealtimeController) ChangesHandler(c *gin.Context) {
	tenant := tenantID(c)
	if tenant == "" {
		utils.RespondError(c, http.StatusBadRequest, errTenantRequired)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	rc.Hub.RegisterClient(ws, tenant, c.GetString(middlewares.CtxRole))
	defer rc.Hub.UnregisterClient(ws)

	// incoming messages are ignored; reading detects the disconnect
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}

// LiveOrdersHandler -> websocket pushing the tenant's order list whenever it
// changes, ?status= narrows it as on GET /orders
func (rc *RealtimeController) LiveOrdersHandler(c *gin.Context) {
	tenant := tenantID(c)
	if tenant == "" {
		utils.RespondError(c, http.StatusBadRequest, errTenantRequired)
		return
	}
	statuses, err := parseStatuses(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}
	defer ws.Close()

	live := rc.Orders.Watch(tenant, statuses...)
	defer live.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := c.Request.Context()
	for {
		orders, err := live.Get(ctx)
		if err != nil {
			utils.ErrorLogger.Printf("Live orders fetch failed for %s: %v", tenant, err)
			return
		}
		if err := ws.WriteJSON(realtime.Message{Event: EventOrders, Data: orders}); err != nil {
			return
		}

		select {
		case <-live.Changes():
		case <-done:
			return
		}
	}
}
