package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/billiard-club-app/events"
	"github.com/yeremiapane/billiard-club-app/services"
	"gorm.io/gorm"
)

type EventsController struct {
	DB        *gorm.DB
	Scheduler *services.SchedulerService
}

func NewEventsController(db *gorm.DB) *EventsController {
	return &EventsController{
		DB:        db,
		Scheduler: services.NewSchedulerService(db),
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handle -> endpoint WebSocket untuk dashboard real-time
func (ec *EventsController) Handle(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	if role != "staff" && role != "admin" {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	// Snapshot awal supaya dashboard yang baru connect tidak mulai kosong
	snapshot := events.Message{
		Event: events.EventDashboardUpdate,
		Data: map[string]interface{}{
			"stats": ec.Scheduler.DashboardStats(),
		},
	}
	if err := ws.WriteJSON(snapshot); err != nil {
		ws.Close()
		return
	}

	events.RegisterClient(ws, role)

	for {
		_, _, err := ws.ReadMessage()
		if err != nil {
			break
		}
	}

	events.UnregisterClient(ws)
}
