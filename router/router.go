package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/billiard-club-app/controllers"
	"github.com/yeremiapane/billiard-club-app/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	reservationCtrl := controllers.NewReservationController(db)
	eventsCtrl := controllers.NewEventsController(db)

	// WebSocket events untuk dashboard real-time. Didaftarkan sebelum rate
	// limiter dipasang: koneksinya hidup selama sesi dashboard, bukan
	// request biasa yang pantas dihitung limiter.
	r.GET("/events/ws", middlewares.WebSocketAuthMiddleware(), eventsCtrl.Handle)

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Dashboard reads
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)
	r.GET("/tables/:table_id/open-time-preview", tableCtrl.OpenTimePreview)
	r.GET("/reservations", reservationCtrl.GetAllReservations)

	// ----------------------------------------------------------------
	//                      PROTECTED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/tables", tableCtrl.CreateTable)
		auth.PATCH("/tables/:table_id/name", tableCtrl.RenameTable)
		auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
		auth.POST("/tables/:table_id/reset", tableCtrl.ResetTable)
		auth.POST("/tables/:table_id/walk-in", tableCtrl.WalkIn)
		auth.POST("/tables/:table_id/reservations", reservationCtrl.CreateReservation)
		auth.DELETE("/reservations/:reservation_id", reservationCtrl.CancelReservation)
	}

	return r
}
