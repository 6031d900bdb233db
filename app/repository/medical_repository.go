package repository

import (
	"github.com/itzsam-lol/com-app/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type medicalRepository struct {
	db *gorm.DB
}

// NewMedicalRepository creates a new medical profile repository instance
func NewMedicalRepository(db *gorm.DB) MedicalRepository {
	return &medicalRepository{db: db}
}

// GetByUserID returns the medical profile of a user
func (r *medicalRepository) GetByUserID(userID uint) (*models.MedicalProfile, error) {
	var profile models.MedicalProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates the profile or overwrites the existing one for the same user
func (r *medicalRepository) Upsert(profile *models.MedicalProfile) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"blood_group",
			"allergies",
			"conditions",
			"medications",
			"history",
			"updated_at",
		}),
	}).Create(profile).Error; err != nil {
		return err
	}

	return r.db.Where("user_id = ?", profile.UserID).First(profile).Error
}
