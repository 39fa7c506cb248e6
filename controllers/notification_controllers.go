package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/models"
	"github.com/prasetyadi/delivery-app/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetNotifications lists the caller's notifications, newest first.
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var notifications []models.Notification
	if err := nc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		utils.ErrorLogger.Printf("list notifications: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications", notifications)
}

// AddNotification creates a notification for the caller.
func (nc *NotificationController) AddNotification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	note := models.Notification{UserID: userID, Message: req.Message}
	if err := nc.DB.Create(&note).Error; err != nil {
		utils.ErrorLogger.Printf("create notification: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Notification added", gin.H{"notification_id": note.ID})
}

// MarkNotificationRead flips is_read on one of the caller's rows.
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		NotificationID uint `json:"notification_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var note models.Notification
	if err := nc.DB.Where("id = ? AND user_id = ?", req.NotificationID, userID).
		First(&note).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}

	if err := nc.DB.Model(&note).Update("is_read", true).Error; err != nil {
		utils.ErrorLogger.Printf("mark notification read: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", nil)
}
