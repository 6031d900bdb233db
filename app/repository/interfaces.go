package repository

import (
	"github.com/itzsam-lol/com-app/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByFirebaseUID(uid string) (*models.User, error)
	GetOrCreateByFirebaseUID(uid, email, name string) (*models.User, bool, error)
	UpdateProfile(id uint, profile ProfileUpdate) (*models.User, error)
}

// PaymentRepository defines the interface for the payment ledger
type PaymentRepository interface {
	ListByUserID(userID uint) ([]models.Payment, error)
	HistoryByUserID(userID uint) ([]models.Payment, error)
}

// MedicalRepository defines the interface for medical profile operations
type MedicalRepository interface {
	GetByUserID(userID uint) (*models.MedicalProfile, error)
	Upsert(profile *models.MedicalProfile) error
}

// SOSRepository defines the interface for SOS event operations
type SOSRepository interface {
	Create(event *models.SOSEvent) error
	ListByUserID(userID uint) ([]models.SOSEvent, error)
	UpdateStatus(id, userID uint, status string) (*models.SOSEvent, error)
}

// LoyaltyRepository defines the interface for loyalty ledger operations
type LoyaltyRepository interface {
	ListByUserID(userID uint) ([]models.LoyaltyEvent, error)
	Record(event *models.LoyaltyEvent) (int, error)
	Points(userID uint) (int, error)
}

// ProfileUpdate carries the user editable profile fields. Nil fields are
// left unchanged.
type ProfileUpdate struct {
	DisplayName      *string `json:"displayName" validate:"omitempty,max=150"`
	Phone            *string `json:"phone" validate:"omitempty,max=32"`
	Age              *int    `json:"age" validate:"omitempty,min=0,max=150"`
	Gender           *string `json:"gender" validate:"omitempty,max=32"`
	Address          *string `json:"address" validate:"omitempty,max=1000"`
	EmergencyContact *string `json:"emergencyContact" validate:"omitempty,max=200"`
}

// Repositories struct holds all repository instances
type Repositories struct {
	User    UserRepository
	Payment PaymentRepository
	Medical MedicalRepository
	SOS     SOSRepository
	Loyalty LoyaltyRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Payment: NewPaymentRepository(db),
		Medical: NewMedicalRepository(db),
		SOS:     NewSOSRepository(db),
		Loyalty: NewLoyaltyRepository(db),
	}
}
