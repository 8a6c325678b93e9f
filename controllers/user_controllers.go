package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-console/middlewares"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/services"
	"github.com/yeremiapane/restaurant-console/utils"
)

type UserController struct {
	Staff *services.StaffService
}

func NewUserController(staff *services.StaffService) *UserController {
	return &UserController{Staff: staff}
}

// Register -> admins add staff to their own restaurant; super admins to any
func (uc *UserController) Register(c *gin.Context) {
	var req services.RegisterStaffInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if c.GetString(middlewares.CtxRole) != models.RoleSuperAdmin {
		if req.Role == models.RoleSuperAdmin {
			utils.RespondError(c, http.StatusForbidden, errors.New("only super admins can create super admins"))
			return
		}
		tenant := c.GetString(middlewares.CtxRestaurantID)
		req.RestaurantID = &tenant
	}

	user, err := uc.Staff.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// Login -> returns a JWT carrying the user's tenant and role
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res, err := uc.Staff.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Login successful", res)
}

// Logout -> revokes the current token
func (uc *UserController) Logout(c *gin.Context) {
	utils.BlacklistToken(c.GetString(middlewares.CtxToken))
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := uc.Staff.Profile(c.Request.Context(), c.GetString(middlewares.CtxUserID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"role":          user.Role,
		"restaurant_id": user.RestaurantID,
	})
}

// GetAllUsers -> staff of the tenant
func (uc *UserController) GetAllUsers(c *gin.Context) {
	users, err := uc.Staff.List(c.Request.Context(), tenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", users)
}
