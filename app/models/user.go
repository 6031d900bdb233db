package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	PLAN_STARTER    = "STARTER"
	PLAN_PREMIUM    = "PREMIUM"
	PLAN_ENTERPRISE = "ENTERPRISE"
)

// User is the local account of a Firebase identity. It is created lazily on
// the first authenticated request and never deleted through the API.
type User struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	FirebaseUID      string     `gorm:"type:varchar(128);not null;uniqueIndex" json:"firebaseUid" validate:"required,max=128"`
	Email            string     `gorm:"type:varchar(200);index" json:"email" validate:"omitempty,email,max=200"`
	DisplayName      string     `gorm:"type:varchar(150)" json:"displayName" validate:"max=150"`
	Phone            string     `gorm:"type:varchar(32);default:null" json:"phone" validate:"max=32"`
	Age              *int       `gorm:"default:null" json:"age" validate:"omitempty,min=0,max=150"`
	Gender           string     `gorm:"type:varchar(32);default:null" json:"gender" validate:"max=32"`
	Address          string     `gorm:"type:text;default:null" json:"address" validate:"max=1000"`
	EmergencyContact string     `gorm:"type:varchar(200);default:null" json:"emergencyContact" validate:"max=200"`
	Plan             string     `gorm:"type:varchar(20);not null;default:'STARTER'" json:"plan" validate:"oneof=STARTER PREMIUM ENTERPRISE"`
	PlanExpiry       *time.Time `gorm:"type:timestamp;default:null" json:"planExpiry"`
	LastPaymentID    *string    `gorm:"type:varchar(191);default:null" json:"lastPaymentId"`
	LoyaltyPoints    int        `gorm:"not null;default:0" json:"loyaltyPoints"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// NewUser builds a STARTER account for a freshly seen Firebase identity.
// The display name falls back to the email address when the token has none.
func NewUser(firebaseUID, email, name string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(email)
	}

	u := &User{
		FirebaseUID: strings.TrimSpace(firebaseUID),
		Email:       strings.TrimSpace(email),
		DisplayName: name,
		Plan:        PLAN_STARTER,
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	return u, nil
}
