package models

import "time"

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_dish" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	DishID    uint      `gorm:"not null;uniqueIndex:idx_user_dish" json:"dish_id"`
	Dish      Dish      `gorm:"foreignKey:DishID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"dish"`
	CreatedAt time.Time `json:"added_at"`
}
