package database

import (
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/models"
)

// Seed inserts the menu and reward catalogs on an empty database so the
// browse and redemption surfaces work out of the box. Idempotent.
func Seed(db *gorm.DB) error {
	var count int64

	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		categories := []models.Category{
			{Name: "Starters"},
			{Name: "Mains"},
			{Name: "Desserts"},
			{Name: "Drinks"},
		}
		if err := db.Create(&categories).Error; err != nil {
			return err
		}

		dishes := []models.Dish{
			{CategoryID: &categories[0].ID, Name: "Spring Rolls", Price: 4.50, Description: "Crispy vegetable rolls"},
			{CategoryID: &categories[0].ID, Name: "Tomato Soup", Price: 3.90, Description: "With basil and croutons"},
			{CategoryID: &categories[1].ID, Name: "Margherita Pizza", Price: 9.90, Description: "Tomato, mozzarella, basil"},
			{CategoryID: &categories[1].ID, Name: "Chicken Curry", Price: 11.50, Description: "Served with rice"},
			{CategoryID: &categories[1].ID, Name: "Beef Burger", Price: 10.90, Description: "With fries"},
			{CategoryID: &categories[2].ID, Name: "Cheesecake", Price: 5.50, Description: "Baked, lemon glaze"},
			{CategoryID: &categories[3].ID, Name: "Fresh Lemonade", Price: 2.90, Description: "House made"},
		}
		if err := db.Create(&dishes).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.Reward{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		rewards := []models.Reward{
			{Name: "Free Drink", PointsRequired: 50, Description: "Any soft drink on the house"},
			{Name: "Free Dessert", PointsRequired: 100, Description: "One dessert of your choice"},
			{Name: "10% Off Order", PointsRequired: 200, Description: "Discount on your next order"},
		}
		if err := db.Create(&rewards).Error; err != nil {
			return err
		}
	}

	return nil
}
