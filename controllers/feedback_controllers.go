package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-console/services"
	"github.com/yeremiapane/restaurant-console/utils"
)

type FeedbackController struct {
	Feedback *services.FeedbackService
}

func NewFeedbackController(feedback *services.FeedbackService) *FeedbackController {
	return &FeedbackController{Feedback: feedback}
}

func (fc *FeedbackController) GetAllFeedback(c *gin.Context) {
	rows, err := fc.Feedback.List(c.Request.Context(), tenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of feedback", rows)
}

// GetRecentFeedback -> newest entries, ?limit= defaults to 10
func (fc *FeedbackController) GetRecentFeedback(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := fc.Feedback.Recent(c.Request.Context(), tenantID(c), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Recent feedback", rows)
}

func (fc *FeedbackController) GetFeedbackStats(c *gin.Context) {
	stats, err := fc.Feedback.Stats(c.Request.Context(), tenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Feedback stats", stats)
}

// CreateFeedback -> customer rates their visit
func (fc *FeedbackController) CreateFeedback(c *gin.Context) {
	var req services.CreateFeedbackInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fb, err := fc.Feedback.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Thank you for your feedback", fb)
}
