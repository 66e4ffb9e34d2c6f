package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/billiard-club-app/events"
	"github.com/yeremiapane/billiard-club-app/models"
	"github.com/yeremiapane/billiard-club-app/services"
	"github.com/yeremiapane/billiard-club-app/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB        *gorm.DB
	Scheduler *services.SchedulerService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{
		DB:        db,
		Scheduler: services.NewSchedulerService(db),
	}
}

// schedulerStatusCode memetakan error scheduling ke HTTP status.
func schedulerStatusCode(err error) int {
	var conflict *services.WalkInConflictError
	var tooSoon *services.OpenTimeTooSoonError

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.As(err, &conflict), errors.As(err, &tooSoon):
		return http.StatusConflict
	case errors.Is(err, services.ErrTableInUse), errors.Is(err, services.ErrTableOccupied),
		errors.Is(err, services.ErrTableNameTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrEmptyTableName), errors.Is(err, services.ErrMissingGuestName),
		errors.Is(err, services.ErrMissingDateOrTime), errors.Is(err, services.ErrOutsideAllowedWindow),
		errors.Is(err, services.ErrInvalidTime), errors.Is(err, services.ErrInvalidDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseTableID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("table_id"))
	if err != nil || id <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table id"))
		return 0, false
	}
	return uint(id), true
}

// CreateTable -> menambahkan meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Scheduler.AddTable(req.Name)
	if err != nil {
		utils.RespondError(c, schedulerStatusCode(err), err)
		return
	}

	tc.broadcastTableEvent(events.EventTableCreate, table)

	utils.InfoLogger.Printf("New table created: %s (id=%d)", table.Name, table.ID)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> menampilkan seluruh meja
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Scheduler.ListTables()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, ok := parseTableID(c)
	if !ok {
		return
	}

	table, err := tc.Scheduler.GetTable(id)
	if err != nil {
		utils.RespondError(c, schedulerStatusCode(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// RenameTable -> ganti nama meja + cascade ke reservasi
func (tc *TableController) RenameTable(c *gin.Context) {
	id, ok := parseTableID(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Scheduler.RenameTable(id, req.Name)
	if err != nil {
		utils.RespondError(c, schedulerStatusCode(err), err)
		return
	}

	tc.broadcastTableEvent(events.EventTableUpdate, table)

	utils.InfoLogger.Printf("Table %d renamed to %s", table.ID, table.Name)
	utils.RespondJSON(c, http.StatusOK, "Table renamed", table)
}

// DeleteTable -> hapus meja (ditolak kalau occupied / masih ada reservasi)
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, ok := parseTableID(c)
	if !ok {
		return
	}

	if err := tc.Scheduler.DeleteTable(id); err != nil {
		utils.RespondError(c, schedulerStatusCode(err), err)
		return
	}

	events.BroadcastMessage(events.Message{
		Event: events.EventTableDelete,
		Data: map[string]interface{}{
			"table_id": id,
			"stats":    tc.Scheduler.DashboardStats(),
		},
	})

	utils.InfoLogger.Printf("Table %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"id": id,
	})
}

// ResetTable -> operator mengembalikan meja ke Available
func (tc *TableController) ResetTable(c *gin.Context) {
	id, ok := parseTableID(c)
	if !ok {
		return
	}

	table, err := tc.Scheduler.ResetTable(id)
	if err != nil {
		utils.RespondError(c, schedulerStatusCode(err), err)
		return
	}

	tc.broadcastTableEvent(events.EventTableUpdate, table)

	utils.InfoLogger.Printf("Table %d reset to available", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table reset to available", table)
}

// WalkIn -> admisi sesi walk-in (durasi tetap atau open time)
func (tc *TableController) WalkIn(c *gin.Context) {
	id, ok := parseTableID(c)
	if !ok {
		return
	}

	var req struct {
		DurationHours float64 `json:"duration_hours"`
		OpenTime      bool    `json:"open_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !req.OpenTime && req.DurationHours <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("duration_hours must be positive"))
		return
	}

	table, err := tc.Scheduler.RequestWalkIn(id, req.DurationHours, req.OpenTime)
	if err != nil {
		utils.RespondError(c, schedulerStatusCode(err), err)
		return
	}

	tc.broadcastTableEvent(events.EventTableUpdate, table)

	until := ""
	if table.OccupiedUntil != nil {
		until = *table.OccupiedUntil
	}
	utils.InfoLogger.Printf("Walk-in admitted on table %d until %s", table.ID, until)
	utils.RespondJSON(c, http.StatusOK, "Walk-in admitted", table)
}

// OpenTimePreview -> read-only helper untuk warning open time di UI
func (tc *TableController) OpenTimePreview(c *gin.Context) {
	id, ok := parseTableID(c)
	if !ok {
		return
	}

	preview, err := tc.Scheduler.PreviewOpenTime(id)
	if err != nil {
		utils.RespondError(c, schedulerStatusCode(err), err)
		return
	}
	if preview == nil {
		utils.RespondJSON(c, http.StatusOK, "No upcoming reservation today", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Upcoming reservation today", preview)
}

func (tc *TableController) broadcastTableEvent(event string, table *models.Table) {
	events.BroadcastMessage(events.Message{
		Event: event,
		Data: map[string]interface{}{
			"table": table,
			"stats": tc.Scheduler.DashboardStats(),
		},
	})
}
