package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/services"
	"github.com/yeremiapane/restaurant-console/tableqr"
	"github.com/yeremiapane/restaurant-console/utils"
)

type TableController struct {
	Tables *services.TableService
	// BaseURL is the customer-facing origin encoded into table QR codes.
	BaseURL string
}

func NewTableController(tables *services.TableService, baseURL string) *TableController {
	return &TableController{Tables: tables, BaseURL: baseURL}
}

// CreateTable -> adds a table to the tenant
func (tc *TableController) CreateTable(c *gin.Context) {
	var req services.TableInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	req.RestaurantID = tenantID(c)

	table, err := tc.Tables.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> tables ordered by number
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Tables.List(c.Request.Context(), tenantID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) ownTable(c *gin.Context) (*models.Table, bool) {
	table, err := tc.Tables.Get(c.Request.Context(), c.Param("table_id"))
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	if !ownedBy(c, table.RestaurantID) {
		return nil, false
	}
	return table, true
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	table, ok := tc.ownTable(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// GetTableByNumber -> resolves the table a customer scanned
func (tc *TableController) GetTableByNumber(c *gin.Context) {
	table, err := tc.Tables.ByNumber(c.Request.Context(), tenantID(c), c.Param("number"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if table == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("table not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

func (tc *TableController) UpdateTable(c *gin.Context) {
	var req services.TableInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, ok := tc.ownTable(c); !ok {
		return
	}

	table, err := tc.Tables.Update(c.Request.Context(), c.Param("table_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// UpdateTableStatus -> idle, occupied, reserved and so on
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, ok := tc.ownTable(c); !ok {
		return
	}

	table, err := tc.Tables.UpdateStatus(c.Request.Context(), c.Param("table_id"), body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	if _, ok := tc.ownTable(c); !ok {
		return
	}
	tableID := c.Param("table_id")
	if err := tc.Tables.Delete(c.Request.Context(), tableID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": tableID})
}

// GetTableQR -> PNG QR code pointing customers at the table's menu
func (tc *TableController) GetTableQR(c *gin.Context) {
	table, ok := tc.ownTable(c)
	if !ok {
		return
	}

	png, err := tableqr.PNG(tableqr.Payload(tc.BaseURL, table.RestaurantID, table.TableNumber))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tableqr.Filename(table.TableNumber)))
	c.Data(http.StatusOK, "image/png", png)
}
