package billing

import (
	"context"
	"errors"
	"time"

	"github.com/itzsam-lol/com-app/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the billing service.
type Repository interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdateUserPlan(ctx context.Context, userID uint, plan string) error
	ApplyPlanChange(ctx context.Context, change PlanChange) (bool, error)
	CreateWebhookEventIfNotExists(ctx context.Context, event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error)
	MarkWebhookProcessed(ctx context.Context, id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) UpdateUserPlan(ctx context.Context, userID uint, plan string) error {
	tx := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("plan", plan)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ApplyPlanChange appends the payment and updates the user in one transaction.
// It returns false without touching the user when a payment with the same
// reference already exists.
func (r *gormRepository) ApplyPlanChange(ctx context.Context, change PlanChange) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if change.Payment != nil {
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "reference"}},
				DoNothing: true,
			}).Create(change.Payment)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil
			}
		}

		updates := map[string]interface{}{
			"plan": string(change.Plan),
		}
		if change.PlanExpiry != nil {
			updates["plan_expiry"] = *change.PlanExpiry
		}
		if change.LastPaymentID != nil {
			updates["last_payment_id"] = *change.LastPaymentID
		}
		if err := tx.Model(&models.User{}).Where("id = ?", change.UserID).Updates(updates).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func (r *gormRepository) CreateWebhookEventIfNotExists(ctx context.Context, event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error) {
	db := r.db.WithContext(ctx)
	tx := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	if created {
		return true, event, nil
	}
	var stored models.BillingWebhookEvent
	if err := db.Where("provider = ? AND provider_event_id = ?", event.Provider, event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return false, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(ctx context.Context, id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.WithContext(ctx).Model(&models.BillingWebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}
