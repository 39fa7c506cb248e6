package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/models"
	"github.com/prasetyadi/delivery-app/orderfeed"
	"github.com/prasetyadi/delivery-app/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// SubmitOrder turns the caller's cart into an order. Order row, item
// snapshots and cart clearing happen in one transaction, so a failure
// leaves neither a partial order nor a half-emptied cart.
func (oc *OrderController) SubmitOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var cartItems []models.CartItem
	if err := oc.DB.Preload("Dish").Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
		utils.ErrorLogger.Printf("load cart: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	if len(cartItems) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cart is empty"))
		return
	}

	var total float64
	for i := range cartItems {
		total += cartItems[i].TotalPrice()
	}

	order := models.Order{
		UserID: userID,
		Status: models.StatusPending,
		Total:  total,
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range cartItems {
			item := models.OrderItem{
				OrderID:  order.ID,
				DishID:   cartItems[i].DishID,
				DishName: cartItems[i].Dish.Name,
				Quantity: cartItems[i].Quantity,
				Price:    cartItems[i].Dish.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		utils.ErrorLogger.Printf("submit order: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.InfoLogger.Printf("Order #%d submitted by user %d (total %.2f)", order.ID, userID, total)

	utils.RespondJSON(c, http.StatusCreated, "Order submitted successfully", gin.H{
		"order_id": order.ID,
	})
}

// GetOrderHistory lists the caller's orders, newest first, with item
// snapshots.
func (oc *OrderController) GetOrderHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		utils.ErrorLogger.Printf("list orders: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order history", orders)
}

// GetOrderByID -> detail of one of the caller's orders.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus lets staff/admin move an order through the status
// vocabulary, then broadcasts the change to the order's subscribers.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "admin" && role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidOrderStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown order status %q", req.Status))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	order.Status = req.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.ErrorLogger.Printf("update order status: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	orderfeed.BroadcastStatus(order.ID, order.Status)

	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("Order %d updated to %s", order.ID, order.Status), order)
}
