package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-console/analytics"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/services"
	"github.com/yeremiapane/restaurant-console/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// parseStatuses reads ?status=a,b or repeated ?status= values. "all" means
// no filter.
func parseStatuses(c *gin.Context) ([]models.OrderStatus, error) {
	var out []models.OrderStatus
	for _, raw := range c.QueryArray("status") {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" || part == "all" {
				continue
			}
			s := models.OrderStatus(part)
			if !s.Valid() {
				return nil, fmt.Errorf("unknown order status %q", part)
			}
			out = append(out, s)
		}
	}
	return out, nil
}

// GetAllOrders -> orders of the tenant, newest first, optionally by status
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	statuses, err := parseStatuses(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orders, err := oc.Orders.List(c.Request.Context(), tenantID(c), statuses...)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetTodayOrders -> orders placed since local midnight
func (oc *OrderController) GetTodayOrders(c *gin.Context) {
	orders, err := oc.Orders.Today(c.Request.Context(), tenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Today's orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	order, ok := ownOrder(c, oc.Orders)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order details", order)
}

// TrackOrder -> public order status with its position in the pipeline
func (oc *OrderController) TrackOrder(c *gin.Context) {
	order, err := oc.Orders.Order(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status", gin.H{
		"order": order,
		"step":  analytics.PipelineStep(order.Status),
		"steps": analytics.PipelineSteps,
	})
}

// CreateOrder -> customer places an order with its items
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req services.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	// staff always order into their own restaurant
	if t := tenantID(c); t != "" {
		req.RestaurantID = t
	}

	order, err := oc.Orders.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// UpdateOrderStatus -> set any status; transitions are not guarded
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var body struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, ok := ownOrder(c, oc.Orders); !ok {
		return
	}

	order, err := oc.Orders.UpdateStatus(c.Request.Context(), c.Param("order_id"), body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// UpdatePayment -> billing records the payment and completes the order
func (oc *OrderController) UpdatePayment(c *gin.Context) {
	var body struct {
		PaymentMethod string `json:"payment_method" binding:"required"`
		PaymentStatus string `json:"payment_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, ok := ownOrder(c, oc.Orders); !ok {
		return
	}

	order, err := oc.Orders.UpdatePayment(c.Request.Context(), c.Param("order_id"), body.PaymentMethod, body.PaymentStatus)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment updated", order)
}
