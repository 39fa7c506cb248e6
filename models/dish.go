package models

import "time"

type Dish struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	ImageUrl    *string   `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
