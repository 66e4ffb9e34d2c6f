package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/billiard-club-app/config"
	"github.com/yeremiapane/billiard-club-app/models"
	"github.com/yeremiapane/billiard-club-app/router"
	"github.com/yeremiapane/billiard-club-app/utils"
	"gorm.io/gorm"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedTables(db)

	r := router.SetupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	utils.InfoLogger.Printf("Billiard club app listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatalf("Server stopped: %v", err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Reservation{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Auto migration failed: %v", err)
	}
}

// seedTables mengisi enam meja awal saat database masih kosong.
func seedTables(db *gorm.DB) {
	var count int64
	db.Model(&models.Table{}).Count(&count)
	if count > 0 {
		return
	}

	for i := 1; i <= 6; i++ {
		table := models.Table{
			Name:   fmt.Sprintf("Table %d", i),
			Status: models.TableStatusAvailable,
		}
		if err := db.Create(&table).Error; err != nil {
			utils.ErrorLogger.Printf("Failed to seed table %d: %v", i, err)
		}
	}
	utils.InfoLogger.Printf("Seeded 6 default tables")
}
