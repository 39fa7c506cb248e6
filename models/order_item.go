package models

import "time"

// OrderItem is a snapshot of a cart line at checkout time. DishName and
// Price are copied so later dish edits don't rewrite order history.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	Order     Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	DishID    uint      `gorm:"not null" json:"dish_id"`
	DishName  string    `gorm:"type:varchar(100);not null" json:"dish_name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
}
