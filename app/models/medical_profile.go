package models

import "time"

// MedicalProfile holds the emergency medical information of a user.
type MedicalProfile struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex" json:"userId"`
	BloodGroup  string    `gorm:"type:varchar(8);default:null" json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Allergies   string    `gorm:"type:text;default:null" json:"allergies" validate:"max=5000"`
	Conditions  string    `gorm:"type:text;default:null" json:"conditions" validate:"max=5000"`
	Medications string    `gorm:"type:text;default:null" json:"medications" validate:"max=5000"`
	History     string    `gorm:"type:text;default:null" json:"history" validate:"max=10000"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
