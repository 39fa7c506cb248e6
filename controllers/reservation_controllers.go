package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/models"
	"github.com/prasetyadi/delivery-app/utils"
)

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

// SubmitReservation books a table and drops a confirmation into the
// caller's notifications.
func (rc *ReservationController) SubmitReservation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Phone     string `json:"phone" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Date      string `json:"date" binding:"required"`
		Time      string `json:"time" binding:"required"`
		People    int    `json:"people" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
		return
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("time must be HH:MM"))
		return
	}
	if req.People <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("people must be positive"))
		return
	}

	reservation := models.Reservation{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Date:      date,
		Time:      req.Time,
		People:    req.People,
		Status:    models.ReservationPending,
	}

	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		note := models.Notification{
			UserID: userID,
			Message: fmt.Sprintf("Reservation #%d booked for %s at %s",
				reservation.ID, date.Format("2006-01-02"), reservation.Time),
		}
		return tx.Create(&note).Error
	})
	if err != nil {
		utils.ErrorLogger.Printf("submit reservation: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Reservation submitted", gin.H{
		"reservation_id": reservation.ID,
	})
}

// GetReservations lists the caller's reservations, newest first.
func (rc *ReservationController) GetReservations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var reservations []models.Reservation
	if err := rc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		utils.ErrorLogger.Printf("list reservations: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservations", reservations)
}

// CancelReservation flips a pending reservation to Cancelled. Already
// cancelled rows are rejected rather than silently re-cancelled.
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		ReservationID uint `json:"reservation_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var reservation models.Reservation
	if err := rc.DB.Where("id = ? AND user_id = ?", req.ReservationID, userID).
		First(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
		return
	}

	if reservation.Status != models.ReservationPending {
		utils.RespondError(c, http.StatusBadRequest, errors.New("reservation is not pending"))
		return
	}

	reservation.Status = models.ReservationCancelled

	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}
		note := models.Notification{
			UserID:  userID,
			Message: fmt.Sprintf("Reservation #%d has been cancelled", reservation.ID),
		}
		return tx.Create(&note).Error
	})
	if err != nil {
		utils.ErrorLogger.Printf("cancel reservation: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", reservation)
}
