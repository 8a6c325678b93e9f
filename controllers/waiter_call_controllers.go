package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-console/middlewares"
	"github.com/yeremiapane/restaurant-console/services"
	"github.com/yeremiapane/restaurant-console/utils"
)

type WaiterCallController struct {
	Calls *services.WaiterCallService
}

func NewWaiterCallController(calls *services.WaiterCallService) *WaiterCallController {
	return &WaiterCallController{Calls: calls}
}

// GetWaiterCalls -> calls of the tenant, ?status=pending|acknowledged|resolved|all
func (wc *WaiterCallController) GetWaiterCalls(c *gin.Context) {
	calls, err := wc.Calls.List(c.Request.Context(), tenantID(c), c.DefaultQuery("status", "pending"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of waiter calls", calls)
}

// CreateWaiterCall -> customer asks for a waiter from their table
func (wc *WaiterCallController) CreateWaiterCall(c *gin.Context) {
	var req services.CreateWaiterCallInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	call, err := wc.Calls.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Waiter has been called", call)
}

// ownCall checks the caller may act on the :call_id call.
func (wc *WaiterCallController) ownCall(c *gin.Context) bool {
	call, err := wc.Calls.Get(c.Request.Context(), c.Param("call_id"))
	if err != nil {
		respondServiceError(c, err)
		return false
	}
	return ownedBy(c, call.RestaurantID)
}

func (wc *WaiterCallController) Acknowledge(c *gin.Context) {
	if !wc.ownCall(c) {
		return
	}
	call, err := wc.Calls.Acknowledge(c.Request.Context(), c.Param("call_id"), c.GetString(middlewares.CtxUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waiter call acknowledged", call)
}

func (wc *WaiterCallController) Resolve(c *gin.Context) {
	if !wc.ownCall(c) {
		return
	}
	call, err := wc.Calls.Resolve(c.Request.Context(), c.Param("call_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waiter call resolved", call)
}
