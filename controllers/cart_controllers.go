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

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

// AddToCart creates a (user, dish) row or increments an existing one.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		DishID   uint `json:"dish_id" binding:"required"`
		Quantity int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("quantity must be positive"))
		return
	}

	var dish models.Dish
	if err := cc.DB.First(&dish, req.DishID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("dish not found"))
		return
	}

	var item models.CartItem
	err := cc.DB.Where("user_id = ? AND dish_id = ?", userID, dish.ID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity += req.Quantity
		if err := cc.DB.Save(&item).Error; err != nil {
			utils.ErrorLogger.Printf("update cart item: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{UserID: userID, DishID: dish.ID, Quantity: req.Quantity}
		if err := cc.DB.Create(&item).Error; err != nil {
			utils.ErrorLogger.Printf("create cart item: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
			return
		}
	default:
		utils.ErrorLogger.Printf("lookup cart item: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item added to cart", gin.H{"item_id": item.ID})
}

// UpdateCartItem applies a signed quantity delta. A result of zero or
// below deletes the row, the cart never stores a non-positive quantity.
func (cc *CartController) UpdateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req struct {
		ItemID uint `json:"item_id" binding:"required"`
		Change int  `json:"change" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Owner-scoped lookup: someone else's item reads as absent.
	var item models.CartItem
	if err := cc.DB.Where("id = ? AND user_id = ?", req.ItemID, userID).First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("cart item not found"))
		return
	}

	item.Quantity += req.Change
	if item.Quantity <= 0 {
		if err := cc.DB.Delete(&item).Error; err != nil {
			utils.ErrorLogger.Printf("delete cart item: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Item removed from cart", nil)
		return
	}

	if err := cc.DB.Save(&item).Error; err != nil {
		utils.ErrorLogger.Printf("save cart item: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Quantity updated", gin.H{"quantity": item.Quantity})
}

// DeleteCartItem removes one row from the caller's cart.
func (cc *CartController) DeleteCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	var item models.CartItem
	if err := cc.DB.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("cart item not found"))
		return
	}

	if err := cc.DB.Delete(&item).Error; err != nil {
		utils.ErrorLogger.Printf("delete cart item: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", nil)
}

// GetCartItems lists the cart with per-item and overall totals.
func (cc *CartController) GetCartItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var items []models.CartItem
	if err := cc.DB.Preload("Dish").Where("user_id = ?", userID).Find(&items).Error; err != nil {
		utils.ErrorLogger.Printf("list cart: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	var total float64
	cartItems := make([]gin.H, 0, len(items))
	for i := range items {
		lineTotal := items[i].TotalPrice()
		total += lineTotal
		cartItems = append(cartItems, gin.H{
			"id":          items[i].ID,
			"dish_id":     items[i].DishID,
			"dish_name":   items[i].Dish.Name,
			"price":       items[i].Dish.Price,
			"quantity":    items[i].Quantity,
			"total_price": lineTotal,
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Cart items", gin.H{
		"cart_items": cartItems,
		"total":      total,
	})
}
