package repository

import (
	"github.com/itzsam-lol/com-app/app/models"
	"gorm.io/gorm"
)

type loyaltyRepository struct {
	db *gorm.DB
}

// NewLoyaltyRepository creates a new loyalty repository instance
func NewLoyaltyRepository(db *gorm.DB) LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

// ListByUserID returns a user's loyalty events, newest first
func (r *loyaltyRepository) ListByUserID(userID uint) ([]models.LoyaltyEvent, error) {
	var events []models.LoyaltyEvent
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&events).Error
	return events, err
}

// Record stores the event and adds its points to the user's running total in
// one transaction. It returns the new total.
func (r *loyaltyRepository) Record(event *models.LoyaltyEvent) (int, error) {
	total := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		res := tx.Model(&models.User{}).
			Where("id = ?", event.UserID).
			Update("loyalty_points", gorm.Expr("loyalty_points + ?", event.Points))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.User{}).Select("loyalty_points").Where("id = ?", event.UserID).Scan(&total).Error
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Points returns the running loyalty total of a user
func (r *loyaltyRepository) Points(userID uint) (int, error) {
	var user models.User
	if err := r.db.Select("id", "loyalty_points").First(&user, userID).Error; err != nil {
		return 0, err
	}
	return user.LoyaltyPoints, nil
}
