package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-console/services"
	"github.com/yeremiapane/restaurant-console/utils"
)

type RestaurantController struct {
	Restaurants *services.RestaurantService
}

func NewRestaurantController(restaurants *services.RestaurantService) *RestaurantController {
	return &RestaurantController{Restaurants: restaurants}
}

// GetRestaurants -> every tenant, super admin only
func (rc *RestaurantController) GetRestaurants(c *gin.Context) {
	list, err := rc.Restaurants.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of restaurants", list)
}

// GetCurrentRestaurant -> the caller's own tenant
func (rc *RestaurantController) GetCurrentRestaurant(c *gin.Context) {
	rc.respond(c, func() (interface{}, error) {
		id := tenantID(c)
		if id == "" {
			return nil, errTenantRequired
		}
		return rc.Restaurants.Get(c.Request.Context(), id)
	})
}

// GetRestaurantBySlug -> public lookup used by the customer menu
func (rc *RestaurantController) GetRestaurantBySlug(c *gin.Context) {
	rc.respond(c, func() (interface{}, error) {
		return rc.Restaurants.BySlug(c.Request.Context(), c.Param("slug"))
	})
}

func (rc *RestaurantController) respond(c *gin.Context, fn func() (interface{}, error)) {
	r, err := fn()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant details", r)
}

func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	var req services.RestaurantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	r, err := rc.Restaurants.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created successfully", r)
}

// UpdateRestaurant -> admins update their own tenant, super admins any
func (rc *RestaurantController) UpdateRestaurant(c *gin.Context) {
	var req services.RestaurantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id := c.Param("restaurant_id")
	if own := tenantID(c); own != "" && own != id {
		utils.RespondError(c, http.StatusForbidden, errors.New("cannot update another restaurant"))
		return
	}

	r, err := rc.Restaurants.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant updated", r)
}
