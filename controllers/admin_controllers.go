package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-console/analytics"
	"github.com/yeremiapane/restaurant-console/export"
	"github.com/yeremiapane/restaurant-console/services"
	"github.com/yeremiapane/restaurant-console/utils"
)

// AdminController serves dashboard analytics and report exports.
type AdminController struct {
	Analytics *services.AnalyticsService
	Exports   *services.ExportService
	Loc       *time.Location
	now       func() time.Time
}

func NewAdminController(a *services.AnalyticsService, e *services.ExportService, loc *time.Location) *AdminController {
	if loc == nil {
		loc = time.Local
	}
	return &AdminController{Analytics: a, Exports: e, Loc: loc, now: time.Now}
}

func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// GetRevenueTrends -> day-over-day revenue table, ?days= defaults to 7
func (ac *AdminController) GetRevenueTrends(c *gin.Context) {
	rows, err := ac.Analytics.RevenueTrends(c.Request.Context(), tenantID(c), queryInt(c, "days", analytics.DefaultDays))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Revenue trends", rows)
}

// GetRevenueSeries -> chart points, oldest first
func (ac *AdminController) GetRevenueSeries(c *gin.Context) {
	points, err := ac.Analytics.RevenueSeries(c.Request.Context(), tenantID(c), queryInt(c, "days", analytics.DefaultDays))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Revenue series", points)
}

// GetRevenueChart -> the revenue series rendered as PNG
func (ac *AdminController) GetRevenueChart(c *gin.Context) {
	png, err := ac.Analytics.RevenueChart(c.Request.Context(), tenantID(c), queryInt(c, "days", analytics.DefaultDays))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// GetPlatformOverview -> tenant counts, MRR and monthly growth
func (ac *AdminController) GetPlatformOverview(c *gin.Context) {
	overview, err := ac.Analytics.Platform(c.Request.Context(), queryInt(c, "months", analytics.DefaultMonths))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Platform overview", overview)
}

// exportOptions reads ?preset=today|yesterday|last7days|last30days|thisMonth|custom
// with ?start= and ?end= (YYYY-MM-DD) for custom ranges, and ?status=.
func (ac *AdminController) exportOptions(c *gin.Context) (services.ExportOptions, error) {
	opts := services.ExportOptions{RestaurantID: tenantID(c), Status: c.Query("status")}

	start, err := ac.queryDate(c, "start")
	if err != nil {
		return opts, err
	}
	end, err := ac.queryDate(c, "end")
	if err != nil {
		return opts, err
	}
	if end != nil {
		e := end.Add(24*time.Hour - time.Millisecond)
		end = &e
	}

	preset := export.Preset(c.Query("preset"))
	if preset == "" && (start != nil || end != nil) {
		preset = export.PresetCustom
	}
	if preset == "" {
		// no range: export everything
		return opts, nil
	}

	r, err := export.RangeFor(preset, ac.now(), ac.Loc, start, end)
	if err != nil {
		return opts, err
	}
	opts.Start, opts.End = &r.Start, &r.End
	return opts, nil
}

func (ac *AdminController) queryDate(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, ac.Loc)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q, expected YYYY-MM-DD", key, raw)
	}
	return &t, nil
}

func (ac *AdminController) ExportOrders(c *gin.Context) {
	ac.export(c, ac.Exports.Orders)
}

func (ac *AdminController) ExportOrdersPDF(c *gin.Context) {
	ac.export(c, ac.Exports.OrdersPDF)
}

func (ac *AdminController) ExportRevenue(c *gin.Context) {
	ac.export(c, ac.Exports.Revenue)
}

func (ac *AdminController) ExportMenu(c *gin.Context) {
	result, err := ac.Exports.MenuItems(c.Request.Context(), tenantID(c))
	ac.sendExport(c, result, err)
}

func (ac *AdminController) export(c *gin.Context, fn func(context.Context, services.ExportOptions) (*services.ExportResult, error)) {
	opts, err := ac.exportOptions(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	result, err := fn(c.Request.Context(), opts)
	ac.sendExport(c, result, err)
}

// sendExport streams the file as an attachment. An export without rows is
// answered with a message instead of an empty file.
func (ac *AdminController) sendExport(c *gin.Context, result *services.ExportResult, err error) {
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if result.Count == 0 {
		utils.RespondJSON(c, http.StatusOK, "No data to export", gin.H{"count": 0})
		return
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"file":  result.Filename,
		"count": result.Count,
	}).Info("Export downloaded")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Header("X-Export-Count", strconv.Itoa(result.Count))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
