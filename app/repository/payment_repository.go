package repository

import (
	"github.com/itzsam-lol/com-app/app/models"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// ListByUserID returns a user's payments in storage order
func (r *paymentRepository) ListByUserID(userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("user_id = ?", userID).Find(&payments).Error
	return payments, err
}

// HistoryByUserID returns a user's payments, newest first
func (r *paymentRepository) HistoryByUserID(userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&payments).Error
	return payments, err
}
