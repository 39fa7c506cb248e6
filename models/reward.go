package models

import "time"

// Reward is a catalog entry that points can be exchanged for.
type Reward struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	PointsRequired int       `gorm:"not null" json:"points_required"`
	Description    string    `gorm:"type:text" json:"description"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserReward holds a user's running point balance. Created lazily on
// first read or first credit; the balance never goes below zero.
type UserReward struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Points    int       `gorm:"not null;default:0" json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RedeemedReward is an append-only ledger row recording a point spend.
type RedeemedReward struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	RewardID    uint      `gorm:"not null" json:"reward_id"`
	Reward      Reward    `gorm:"foreignKey:RewardID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"reward"`
	PointsSpent int       `gorm:"not null" json:"points_spent"`
	CreatedAt   time.Time `json:"redeemed_at"`
}
