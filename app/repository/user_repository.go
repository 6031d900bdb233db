package repository

import (
	"errors"
	"strings"

	"github.com/itzsam-lol/com-app/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByFirebaseUID retrieves a user by their Firebase uid
func (r *userRepository) GetByFirebaseUID(uid string) (*models.User, error) {
	var user models.User
	err := r.db.Where("firebase_uid = ?", uid).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreateByFirebaseUID returns the user for uid, creating a STARTER
// account on first sight. Concurrent first requests resolve to the same row.
func (r *userRepository) GetOrCreateByFirebaseUID(uid, email, name string) (*models.User, bool, error) {
	uid = strings.TrimSpace(uid)
	user, err := r.GetByFirebaseUID(uid)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	fresh, err := models.NewUser(uid, email, name)
	if err != nil {
		return nil, false, err
	}
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "firebase_uid"}},
		DoNothing: true,
	}).Create(fresh)
	if tx.Error != nil {
		return nil, false, tx.Error
	}
	if tx.RowsAffected > 0 {
		return fresh, true, nil
	}

	user, err = r.GetByFirebaseUID(uid)
	if err != nil {
		return nil, false, err
	}
	return user, false, nil
}

// UpdateProfile applies the non-nil profile fields and returns the fresh row
func (r *userRepository) UpdateProfile(id uint, profile ProfileUpdate) (*models.User, error) {
	updates := map[string]interface{}{}
	if profile.DisplayName != nil {
		updates["display_name"] = strings.TrimSpace(*profile.DisplayName)
	}
	if profile.Phone != nil {
		updates["phone"] = strings.TrimSpace(*profile.Phone)
	}
	if profile.Age != nil {
		updates["age"] = *profile.Age
	}
	if profile.Gender != nil {
		updates["gender"] = strings.TrimSpace(*profile.Gender)
	}
	if profile.Address != nil {
		updates["address"] = strings.TrimSpace(*profile.Address)
	}
	if profile.EmergencyContact != nil {
		updates["emergency_contact"] = strings.TrimSpace(*profile.EmergencyContact)
	}

	if len(updates) > 0 {
		tx := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if tx.Error != nil {
			return nil, tx.Error
		}
	}
	return r.GetByID(id)
}
