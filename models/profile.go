package models

import "time"

type Profile struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User    `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Photo     *string `gorm:"type:varchar(255)" json:"photo,omitempty"`
	Phone     string  `gorm:"type:varchar(15)" json:"phone"`
	Location  string  `gorm:"type:varchar(100)" json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
