package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-console/services"
	"github.com/yeremiapane/restaurant-console/utils"
)

type BrandingController struct {
	Branding *services.BrandingService
}

func NewBrandingController(branding *services.BrandingService) *BrandingController {
	return &BrandingController{Branding: branding}
}

// UploadLogo -> multipart field "logo", replaces the current logo
func (bc *BrandingController) UploadLogo(c *gin.Context) {
	file, err := c.FormFile("logo")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("logo file is required: %w", err))
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	defer src.Close()

	r, err := bc.Branding.UploadLogo(c.Request.Context(), tenantID(c), file.Filename, src, file.Size)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Logo uploaded", r)
}

func (bc *BrandingController) SetColor(c *gin.Context) {
	var body struct {
		PrimaryColor string `json:"primary_color" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	r, err := bc.Branding.SetColor(c.Request.Context(), tenantID(c), body.PrimaryColor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Brand colour updated", r)
}
