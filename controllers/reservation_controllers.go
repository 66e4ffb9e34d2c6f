package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/billiard-club-app/events"
	"github.com/yeremiapane/billiard-club-app/services"
	"github.com/yeremiapane/billiard-club-app/utils"
	"gorm.io/gorm"
)

type ReservationController struct {
	DB        *gorm.DB
	Scheduler *services.SchedulerService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{
		DB:        db,
		Scheduler: services.NewSchedulerService(db),
	}
}

// GetAllReservations -> seluruh reservasi, terurut naik by (raw_date, raw_time)
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	reservations, err := rc.Scheduler.ListReservations()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// CreateReservation -> booking reservasi untuk satu meja
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	id, ok := parseTableID(c)
	if !ok {
		return
	}

	var req struct {
		GuestName string `json:"guest_name"`
		Date      string `json:"date"` // YYYY-MM-DD
		Time      string `json:"time"` // HH:MM (24h)
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Scheduler.RequestReservation(id, req.GuestName, req.Date, req.Time)
	if err != nil {
		utils.RespondError(c, schedulerStatusCode(err), err)
		return
	}

	events.BroadcastMessage(events.Message{
		Event: events.EventReservationCreate,
		Data: map[string]interface{}{
			"reservation": reservation,
			"stats":       rc.Scheduler.DashboardStats(),
		},
	})

	utils.InfoLogger.Printf("Reservation %s created for %s on %s %s",
		reservation.ID, reservation.TableName, reservation.RawDate, reservation.RawTime)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// CancelReservation -> batalkan reservasi; id yang tidak ada tetap 200
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	id := c.Param("reservation_id")

	if err := rc.Scheduler.CancelReservation(id); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastMessage(events.Message{
		Event: events.EventReservationCancel,
		Data: map[string]interface{}{
			"reservation_id": id,
			"stats":          rc.Scheduler.DashboardStats(),
		},
	})

	utils.InfoLogger.Printf("Reservation %s cancelled", id)
	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", gin.H{
		"id": id,
	})
}
