package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/billiard-club-app/controllers"
	"github.com/yeremiapane/billiard-club-app/models"
	"github.com/yeremiapane/billiard-club-app/utils"
)

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time { return f.t }

// clockNow -> 14:00 waktu lokal, dipakai semua test controller
var clockNow = time.Date(2026, 3, 14, 14, 0, 0, 0, time.Local)

var testDBSeq int64

// setupTestDBForTables menggunakan SQLite in-memory dengan nama unik per test
// (cache=shared supaya seluruh connection pool melihat database yang sama).
func setupTestDBForTables() *gorm.DB {
	dsn := fmt.Sprintf("file:tabletest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Table{}, &models.Reservation{})
	if err != nil {
		panic(err)
	}
	return db
}

func setupTableRouter(db *gorm.DB) (*gin.Engine, *controllers.TableController) {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db)
	tableCtrl.Scheduler.Clock = fixedClock{t: clockNow}

	router.POST("/tables", tableCtrl.CreateTable)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.GET("/tables/:table_id", tableCtrl.GetTableByID)
	router.PATCH("/tables/:table_id/name", tableCtrl.RenameTable)
	router.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	router.POST("/tables/:table_id/reset", tableCtrl.ResetTable)
	router.POST("/tables/:table_id/walk-in", tableCtrl.WalkIn)
	router.GET("/tables/:table_id/open-time-preview", tableCtrl.OpenTimePreview)
	return router, tableCtrl
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	return response
}

func TestCreateAndListTables(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router, _ := setupTableRouter(db)

	w := doJSON(t, router, "POST", "/tables", map[string]string{"name": "Table 1"})
	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeResponse(t, w)
	assert.Equal(t, "Table created successfully", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Available", data["status"])

	// Nama duplikat ditolak
	w = doJSON(t, router, "POST", "/tables", map[string]string{"name": "Table 1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Nama kosong ditolak
	w = doJSON(t, router, "POST", "/tables", map[string]string{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "GET", "/tables", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response = decodeResponse(t, w)
	assert.Equal(t, "List of tables", response["message"])
	assert.Len(t, response["data"].([]interface{}), 1)
}

func TestWalkInEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router, _ := setupTableRouter(db)

	table := models.Table{Name: "Table 1", Status: models.TableStatusAvailable}
	db.Create(&table)
	url := fmt.Sprintf("/tables/%d/walk-in", table.ID)

	w := doJSON(t, router, "POST", url, map[string]interface{}{"duration_hours": 2})
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Occupied", data["status"])
	assert.Equal(t, "4:00 PM", data["occupied_until"])

	// Meja yang sudah occupied ditolak
	w = doJSON(t, router, "POST", url, map[string]interface{}{"duration_hours": 1})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWalkInConflictEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router, _ := setupTableRouter(db)

	table := models.Table{Name: "Table 1", Status: models.TableStatusAvailable}
	db.Create(&table)
	db.Create(&models.Reservation{
		ID:        "res-1",
		TableName: "Table 1",
		GuestName: "Budi",
		RawDate:   clockNow.Format("2006-01-02"),
		RawTime:   "15:00",
	})

	url := fmt.Sprintf("/tables/%d/walk-in", table.ID)
	w := doJSON(t, router, "POST", url, map[string]interface{}{"duration_hours": 2})
	assert.Equal(t, http.StatusConflict, w.Code)
	response := decodeResponse(t, w)
	assert.Equal(t, "Conflict! Only 1H available before reservation at 3:00 PM", response["message"])

	// Open time juga ditolak: kurang dari satu jam? Tidak -> tepat 1 jam, boleh
	w = doJSON(t, router, "POST", url, map[string]interface{}{"open_time": true})
	assert.Equal(t, http.StatusOK, w.Code)
	response = decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "3:00 PM", data["occupied_until"])
}

func TestRenameTableEndpointCascades(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router, _ := setupTableRouter(db)

	table := models.Table{Name: "Table 1", Status: models.TableStatusAvailable}
	db.Create(&table)
	db.Create(&models.Reservation{
		ID:        "res-1",
		TableName: "Table 1",
		GuestName: "Budi",
		RawDate:   "2026-04-01",
		RawTime:   "19:00",
	})

	url := fmt.Sprintf("/tables/%d/name", table.ID)
	w := doJSON(t, router, "PATCH", url, map[string]string{"name": "VIP 1"})
	assert.Equal(t, http.StatusOK, w.Code)

	var res models.Reservation
	db.First(&res, "id = ?", "res-1")
	assert.Equal(t, "VIP 1", res.TableName)
}

func TestDeleteTableEndpointGuards(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router, _ := setupTableRouter(db)

	table := models.Table{Name: "Table 1", Status: models.TableStatusAvailable}
	db.Create(&table)

	// Occupy dulu lewat walk-in
	walkInURL := fmt.Sprintf("/tables/%d/walk-in", table.ID)
	w := doJSON(t, router, "POST", walkInURL, map[string]interface{}{"open_time": true})
	assert.Equal(t, http.StatusOK, w.Code)

	deleteURL := fmt.Sprintf("/tables/%d", table.ID)
	w = doJSON(t, router, "DELETE", deleteURL, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Reset lalu hapus
	w = doJSON(t, router, "POST", fmt.Sprintf("/tables/%d/reset", table.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Available", data["status"])
	assert.Nil(t, data["occupied_until"])

	w = doJSON(t, router, "DELETE", deleteURL, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/tables", nil)
	response = decodeResponse(t, w)
	assert.Empty(t, response["data"])
}

func TestOpenTimePreviewEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router, _ := setupTableRouter(db)

	table := models.Table{Name: "Table 1", Status: models.TableStatusAvailable}
	db.Create(&table)

	url := fmt.Sprintf("/tables/%d/open-time-preview", table.ID)
	w := doJSON(t, router, "GET", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.Equal(t, "No upcoming reservation today", response["message"])

	db.Create(&models.Reservation{
		ID:        "res-1",
		TableName: "Table 1",
		GuestName: "Budi",
		RawDate:   clockNow.Format("2006-01-02"),
		RawTime:   "16:00",
	})

	w = doJSON(t, router, "GET", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	response = decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "2H", data["available_duration"])
}
