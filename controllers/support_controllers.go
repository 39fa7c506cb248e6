package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/models"
	"github.com/prasetyadi/delivery-app/utils"
)

type SupportController struct {
	DB *gorm.DB
}

func NewSupportController(db *gorm.DB) *SupportController {
	return &SupportController{DB: db}
}

// SubmitRequest files a support ticket for the caller.
func (sc *SupportController) SubmitRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		Subject string `json:"subject" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ticket := models.SupportRequest{
		UserID:  userID,
		Subject: req.Subject,
		Message: req.Message,
		Status:  "Pending",
	}
	if err := sc.DB.Create(&ticket).Error; err != nil {
		utils.ErrorLogger.Printf("create support request: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Support request submitted", gin.H{
		"request_id": ticket.ID,
	})
}

// GetRequests lists the caller's tickets, newest first.
func (sc *SupportController) GetRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var tickets []models.SupportRequest
	if err := sc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error; err != nil {
		utils.ErrorLogger.Printf("list support requests: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Support requests", tickets)
}
