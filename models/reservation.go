package models

import "time"

const (
	ReservationPending   = "Pending"
	ReservationCancelled = "Cancelled"
)

type Reservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FirstName string    `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(50);not null" json:"last_name"`
	Phone     string    `gorm:"type:varchar(15);not null" json:"phone"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	Time      string    `gorm:"type:varchar(5);not null" json:"time"`
	People    int       `gorm:"not null" json:"people"`
	Status    string    `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
