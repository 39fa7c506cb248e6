package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/models"
	"github.com/prasetyadi/delivery-app/utils"
)

type RewardController struct {
	DB *gorm.DB
}

func NewRewardController(db *gorm.DB) *RewardController {
	return &RewardController{DB: db}
}

// GetRewards returns the catalog plus the caller's balance. The balance
// row is created lazily on first read so every account starts at zero.
func (rc *RewardController) GetRewards(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var rewards []models.Reward
	if err := rc.DB.Order("points_required ASC").Find(&rewards).Error; err != nil {
		utils.ErrorLogger.Printf("list rewards: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	var balance models.UserReward
	if err := rc.DB.Where(models.UserReward{UserID: userID}).
		FirstOrCreate(&balance).Error; err != nil {
		utils.ErrorLogger.Printf("load reward balance: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	var redeemed []models.RedeemedReward
	if err := rc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&redeemed).Error; err != nil {
		utils.ErrorLogger.Printf("list redeemed rewards: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Rewards", gin.H{
		"points":   balance.Points,
		"rewards":  rewards,
		"redeemed": redeemed,
	})
}

// AddPoints credits the caller's balance.
func (rc *RewardController) AddPoints(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		Points int `json:"points" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Points <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("points must be positive"))
		return
	}

	var balance models.UserReward
	if err := rc.DB.Where(models.UserReward{UserID: userID}).
		FirstOrCreate(&balance).Error; err != nil {
		utils.ErrorLogger.Printf("load reward balance: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	if err := rc.DB.Model(&balance).
		Update("points", gorm.Expr("points + ?", req.Points)).Error; err != nil {
		utils.ErrorLogger.Printf("add points: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Points added", gin.H{
		"points": balance.Points + req.Points,
	})
}

// RedeemReward spends points on a catalog entry. The debit is a
// conditional update checked by rows affected, so two concurrent
// redemptions can never spend the same points twice.
func (rc *RewardController) RedeemReward(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		RewardID uint `json:"reward_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var reward models.Reward
	if err := rc.DB.First(&reward, req.RewardID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("reward not found"))
		return
	}

	var balance models.UserReward
	if err := rc.DB.Where(models.UserReward{UserID: userID}).
		FirstOrCreate(&balance).Error; err != nil {
		utils.ErrorLogger.Printf("load reward balance: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	var insufficientErr error
	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.UserReward{}).
			Where("id = ? AND points >= ?", balance.ID, reward.PointsRequired).
			Update("points", gorm.Expr("points - ?", reward.PointsRequired))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var current models.UserReward
			if err := tx.First(&current, balance.ID).Error; err != nil {
				return err
			}
			insufficientErr = fmt.Errorf("not enough points, you need %d more points",
				reward.PointsRequired-current.Points)
			return insufficientErr
		}
		ledger := models.RedeemedReward{
			UserID:      userID,
			RewardID:    reward.ID,
			PointsSpent: reward.PointsRequired,
		}
		return tx.Create(&ledger).Error
	})
	if err != nil {
		if insufficientErr != nil {
			utils.RespondError(c, http.StatusBadRequest, insufficientErr)
			return
		}
		utils.ErrorLogger.Printf("redeem reward: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	var updated models.UserReward
	rc.DB.First(&updated, balance.ID)

	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("Redeemed %s", reward.Name), gin.H{
		"points_remaining": updated.Points,
	})
}
