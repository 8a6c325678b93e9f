package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/services"
	"github.com/yeremiapane/restaurant-console/utils"
)

// kitchenStatuses are the orders shown on the kitchen display.
var kitchenStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusReady,
}

type KitchenController struct {
	Kitchen *services.KitchenService
	Orders  *services.OrderService
}

func NewKitchenController(kitchen *services.KitchenService, orders *services.OrderService) *KitchenController {
	return &KitchenController{Kitchen: kitchen, Orders: orders}
}

// GetKitchenDisplay -> open orders for the kitchen
func (kc *KitchenController) GetKitchenDisplay(c *gin.Context) {
	orders, err := kc.Orders.List(c.Request.Context(), tenantID(c), kitchenStatuses...)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen display", orders)
}

func (kc *KitchenController) StartPreparing(c *gin.Context) {
	kc.transition(c, "Order is being prepared", kc.Kitchen.StartPreparing)
}

func (kc *KitchenController) MarkReady(c *gin.Context) {
	kc.transition(c, "Order is ready", kc.Kitchen.MarkReady)
}

func (kc *KitchenController) MarkServed(c *gin.Context) {
	kc.transition(c, "Order served", kc.Kitchen.MarkServed)
}

func (kc *KitchenController) transition(c *gin.Context, message string, fn func(context.Context, string) (*models.Order, error)) {
	if _, ok := ownOrder(c, kc.Orders); !ok {
		return
	}
	order, err := fn(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Order %s moved to %s", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, message, order)
}
