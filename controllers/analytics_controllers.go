package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/models"
	"github.com/prasetyadi/delivery-app/utils"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

type dailySalesRow struct {
	Day   string
	Total float64
}

type popularItemRow struct {
	DishName string
	Sold     int
}

// GetDashboard is the admin sales dashboard: delivered revenue, a
// 7-day daily series and the top five dishes by quantity sold.
func (ac *AnalyticsController) GetDashboard(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var totalSales float64
	if err := ac.DB.Model(&models.Order{}).
		Where("status = ?", models.StatusDelivered).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalSales).Error; err != nil {
		utils.ErrorLogger.Printf("total sales: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	since := time.Now().AddDate(0, 0, -6).Truncate(24 * time.Hour)

	var dailyRows []dailySalesRow
	if err := ac.DB.Model(&models.Order{}).
		Select("DATE(created_at) AS day, SUM(total) AS total").
		Where("status = ? AND created_at >= ?", models.StatusDelivered, since).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&dailyRows).Error; err != nil {
		utils.ErrorLogger.Printf("daily sales: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	// Dense 7-day series, zero-filled where no orders landed.
	byDay := make(map[string]float64, len(dailyRows))
	for _, row := range dailyRows {
		byDay[row.Day] = row.Total
	}
	labels := make([]string, 0, 7)
	data := make([]float64, 0, 7)
	for i := 0; i < 7; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		labels = append(labels, day)
		data = append(data, byDay[day])
	}

	var popularRows []popularItemRow
	if err := ac.DB.Table("order_items").
		Select("order_items.dish_name, SUM(order_items.quantity) AS sold").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ?", models.StatusDelivered).
		Group("order_items.dish_name").
		Order("sold DESC").
		Limit(5).
		Scan(&popularRows).Error; err != nil {
		utils.ErrorLogger.Printf("popular items: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	popularLabels := make([]string, 0, len(popularRows))
	popularData := make([]int, 0, len(popularRows))
	for _, row := range popularRows {
		popularLabels = append(popularLabels, row.DishName)
		popularData = append(popularData, row.Sold)
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard", gin.H{
		"total_sales": totalSales,
		"daily_sales_data": gin.H{
			"labels": labels,
			"data":   data,
		},
		"popular_items_data": gin.H{
			"labels": popularLabels,
			"data":   popularData,
		},
	})
}

// ExportDailySales streams the 7-day daily sales series as CSV.
func (ac *AnalyticsController) ExportDailySales(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	since := time.Now().AddDate(0, 0, -6).Truncate(24 * time.Hour)

	var dailyRows []dailySalesRow
	if err := ac.DB.Model(&models.Order{}).
		Select("DATE(created_at) AS day, SUM(total) AS total").
		Where("status = ? AND created_at >= ?", models.StatusDelivered, since).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&dailyRows).Error; err != nil {
		utils.ErrorLogger.Printf("export daily sales: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, utils.ErrInternal)
		return
	}

	byDay := make(map[string]float64, len(dailyRows))
	for _, row := range dailyRows {
		byDay[row.Day] = row.Total
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="daily_sales.csv"`)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"date", "total_sales"})
	for i := 0; i < 7; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		w.Write([]string{day, fmt.Sprintf("%.2f", byDay[day])})
	}
	w.Flush()
}
