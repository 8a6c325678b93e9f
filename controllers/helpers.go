package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-console/gateway"
	"github.com/yeremiapane/restaurant-console/middlewares"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/services"
	"github.com/yeremiapane/restaurant-console/storage"
	"github.com/yeremiapane/restaurant-console/utils"
)

var errTenantRequired = &services.ValidationError{Fields: []string{"restaurant_id"}}

// respondServiceError maps service errors onto HTTP status codes.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.As(err, &verr):
		utils.RespondErrorData(c, http.StatusBadRequest, err, gin.H{"fields": verr.Fields})
	case errors.Is(err, storage.ErrTooLarge):
		utils.RespondError(c, http.StatusRequestEntityTooLarge, err)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondError(c, http.StatusUnauthorized, err)
	default:
		utils.ErrorLogger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Errorf("Request failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
	_ = c.Error(err)
}

// tenantID resolves the restaurant a request works on. Staff are pinned to
// the tenant in their token; super admins and public callers pass
// ?restaurant_id=.
func tenantID(c *gin.Context) string {
	claimed := c.GetString(middlewares.CtxRestaurantID)
	if claimed != "" && c.GetString(middlewares.CtxRole) != models.RoleSuperAdmin {
		return claimed
	}
	if q := c.Query("restaurant_id"); q != "" {
		return q
	}
	return claimed
}

var errOtherTenant = errors.New("resource belongs to another restaurant")

// ownedBy answers 403 and reports false when the caller's token is pinned
// to a restaurant other than restaurantID. Super admins and public callers
// are not pinned.
func ownedBy(c *gin.Context, restaurantID string) bool {
	role := c.GetString(middlewares.CtxRole)
	if role == "" || role == models.RoleSuperAdmin {
		return true
	}
	if c.GetString(middlewares.CtxRestaurantID) == restaurantID {
		return true
	}
	utils.RespondError(c, http.StatusForbidden, errOtherTenant)
	return false
}

// ownOrder loads the :order_id order and checks the caller may touch it.
// On false the response has been written.
func ownOrder(c *gin.Context, orders *services.OrderService) (*models.Order, bool) {
	order, err := orders.Order(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	if !ownedBy(c, order.RestaurantID) {
		return nil, false
	}
	return order, true
}
