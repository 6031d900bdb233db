package models

import "time"

// LoyaltyEvent records points granted to a user. The running total is kept
// on User.LoyaltyPoints.
type LoyaltyEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	EventType   string    `gorm:"type:varchar(50);not null" json:"eventType" validate:"required,max=50"`
	Points      int       `gorm:"not null" json:"points"`
	Description string    `gorm:"type:varchar(255);default:null" json:"description" validate:"max=255"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}
