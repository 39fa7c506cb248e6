package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/models"
	"github.com/prasetyadi/delivery-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllCategories lists the menu categories.
func (mc *MenuController) GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := mc.DB.Order("name ASC").Find(&categories).Error; err != nil {
		utils.ErrorLogger.Printf("list categories: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Categories", categories)
}

// GetAllDishes lists the menu, optionally filtered by ?category_id=.
func (mc *MenuController) GetAllDishes(c *gin.Context) {
	query := mc.DB.Preload("Category")
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var dishes []models.Dish
	if err := query.Order("name ASC").Find(&dishes).Error; err != nil {
		utils.ErrorLogger.Printf("list dishes: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu", dishes)
}
