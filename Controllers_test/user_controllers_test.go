package Controllers_test

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/billiard-club-app/controllers"
	"github.com/yeremiapane/billiard-club-app/models"
	"github.com/yeremiapane/billiard-club-app/utils"
)

var userDBSeq int64

func setupUserRouter() (*gin.Engine, *gorm.DB) {
	dsn := fmt.Sprintf("file:usertest%d?mode=memory&cache=shared", atomic.AddInt64(&userDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)
	return router, db
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	router, _ := setupUserRouter()

	w := doJSON(t, router, "POST", "/register", map[string]string{
		"name":     "Admin",
		"email":    "admin@club.test",
		"password": "secret123",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/login", map[string]string{
		"email":    "admin@club.test",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "admin", data["user_role"])
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitLogger()
	router, _ := setupUserRouter()

	w := doJSON(t, router, "POST", "/register", map[string]string{
		"name":     "Staff",
		"email":    "staff@club.test",
		"password": "secret123",
		"role":     "staff",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/login", map[string]string{
		"email":    "staff@club.test",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	utils.InitLogger()
	router, _ := setupUserRouter()

	w := doJSON(t, router, "POST", "/register", map[string]string{
		"name":     "Chef",
		"email":    "chef@club.test",
		"password": "secret123",
		"role":     "chef",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
