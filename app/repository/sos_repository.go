package repository

import (
	"github.com/itzsam-lol/com-app/app/models"
	"gorm.io/gorm"
)

type sosRepository struct {
	db *gorm.DB
}

// NewSOSRepository creates a new SOS event repository instance
func NewSOSRepository(db *gorm.DB) SOSRepository {
	return &sosRepository{db: db}
}

func (r *sosRepository) Create(event *models.SOSEvent) error {
	return r.db.Create(event).Error
}

// ListByUserID returns a user's SOS events, newest first
func (r *sosRepository) ListByUserID(userID uint) ([]models.SOSEvent, error) {
	var events []models.SOSEvent
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&events).Error
	return events, err
}

// UpdateStatus changes the status of an event owned by userID. It returns
// gorm.ErrRecordNotFound for events of other users.
func (r *sosRepository) UpdateStatus(id, userID uint, status string) (*models.SOSEvent, error) {
	var event models.SOSEvent
	if err := r.db.First(&event, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&event).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &event, nil
}
