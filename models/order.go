package models

import "time"

// Order status vocabulary. Status updates are rejected unless the new
// value is one of these.
const (
	StatusPending   = "pending"
	StatusReceived  = "received"
	StatusKitchen   = "kitchen"
	StatusDelivery  = "delivery"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

var orderStatuses = map[string]bool{
	StatusPending:   true,
	StatusReceived:  true,
	StatusKitchen:   true,
	StatusDelivery:  true,
	StatusDelivered: true,
	StatusCancelled: true,
}

// ValidOrderStatus reports whether s belongs to the order status vocabulary.
func ValidOrderStatus(s string) bool {
	return orderStatuses[s]
}

type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uint        `gorm:"not null;index" json:"user_id"`
	User       User        `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Status     string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Total      float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt  time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"not null" json:"updated_at"`
}
