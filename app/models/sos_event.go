package models

import "time"

const (
	SOS_STATUS_ACTIVE       = "ACTIVE"
	SOS_STATUS_ACKNOWLEDGED = "ACKNOWLEDGED"
	SOS_STATUS_RESOLVED     = "RESOLVED"
	SOS_STATUS_CANCELLED    = "CANCELLED"
)

type SOSEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Type      string    `gorm:"type:varchar(50);not null" json:"type" validate:"required,max=50"`
	Location  string    `gorm:"type:varchar(255);default:null" json:"location" validate:"max=255"`
	Status    string    `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status" validate:"oneof=ACTIVE ACKNOWLEDGED RESOLVED CANCELLED"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (SOSEvent) TableName() string {
	return "sos_events"
}

// IsValidSOSStatus reports whether status is one of the known SOS states.
func IsValidSOSStatus(status string) bool {
	switch status {
	case SOS_STATUS_ACTIVE, SOS_STATUS_ACKNOWLEDGED, SOS_STATUS_RESOLVED, SOS_STATUS_CANCELLED:
		return true
	default:
		return false
	}
}
