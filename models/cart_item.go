package models

import "time"

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	DishID    uint      `gorm:"not null" json:"dish_id"`
	Dish      Dish      `gorm:"foreignKey:DishID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"dish"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalPrice is the line total at the dish's current price.
func (ci *CartItem) TotalPrice() float64 {
	return float64(ci.Quantity) * ci.Dish.Price
}
