package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/models"
	"github.com/prasetyadi/delivery-app/utils"
)

type FavoriteController struct {
	DB *gorm.DB
}

func NewFavoriteController(db *gorm.DB) *FavoriteController {
	return &FavoriteController{DB: db}
}

// GetFavorites lists the caller's favorite dishes.
func (fc *FavoriteController) GetFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var favorites []models.Favorite
	if err := fc.DB.Preload("Dish").
		Where("user_id = ?", userID).
		Find(&favorites).Error; err != nil {
		utils.ErrorLogger.Printf("list favorites: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Favorites", favorites)
}

// AddFavorite marks a dish as a favorite. Adding it twice answers with
// a soft error and the pair stays unique.
func (fc *FavoriteController) AddFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		DishID uint `json:"dish_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var dish models.Dish
	if err := fc.DB.First(&dish, req.DishID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("dish not found"))
		return
	}

	var existing models.Favorite
	err := fc.DB.Where("user_id = ? AND dish_id = ?", userID, dish.ID).First(&existing).Error
	if err == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Dish already in favorites"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.ErrorLogger.Printf("lookup favorite: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	favorite := models.Favorite{UserID: userID, DishID: dish.ID}
	if err := fc.DB.Create(&favorite).Error; err != nil {
		utils.ErrorLogger.Printf("create favorite: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Added to favorites", gin.H{"favorite_id": favorite.ID})
}

// RemoveFavorite unmarks a dish. Removing one that was never a favorite
// answers with a soft error.
func (fc *FavoriteController) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	dishID, err := strconv.Atoi(c.Param("dish_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid dish id"))
		return
	}

	var dish models.Dish
	if err := fc.DB.First(&dish, dishID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("dish not found"))
		return
	}

	res := fc.DB.Where("user_id = ? AND dish_id = ?", userID, dishID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		utils.ErrorLogger.Printf("delete favorite: %v", res.Error)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Dish not in favorites"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Removed from favorites", nil)
}
