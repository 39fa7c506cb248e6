package models

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"type:varchar(150);unique;not null" json:"username"`
	Email     string `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"`
	Phone     string `gorm:"type:varchar(15)" json:"phone"`
	Address   string `gorm:"type:text" json:"address"`
	Role      string `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
