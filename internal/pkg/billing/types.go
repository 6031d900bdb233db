package billing

import (
	"strconv"
	"strings"
	"time"

	"github.com/itzsam-lol/com-app/app/models"
	"github.com/itzsam-lol/com-app/internal/pkg/entitlements"
)

const (
	// BillingMonth is the fixed length of one purchased month.
	BillingMonth = 30 * 24 * time.Hour

	// DefaultMonths is used when a checkout omits months or sends 0.
	DefaultMonths = 1
	// MaxMonths is the longest period a single checkout may buy.
	MaxMonths = 12

	metadataUserID = "userId"
	metadataPlan   = "plan"
	metadataMonths = "months"

	// EventCheckoutSessionCompleted is the only event kind that changes a plan.
	EventCheckoutSessionCompleted = "checkout.session.completed"
)

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}

// SessionMetadata is attached to a checkout session and read back from the
// completion webhook.
type SessionMetadata struct {
	UserID uint
	Plan   entitlements.Plan
	Months int
}

// Map encodes the metadata in the processor's string map form.
func (m SessionMetadata) Map() map[string]string {
	return map[string]string{
		metadataUserID: strconv.FormatUint(uint64(m.UserID), 10),
		metadataPlan:   string(m.Plan),
		metadataMonths: strconv.Itoa(m.Months),
	}
}

// ParseSessionMetadata decodes metadata from a completed session. A missing
// or malformed months value falls back to DefaultMonths.
func ParseSessionMetadata(raw map[string]string) (SessionMetadata, error) {
	userID, err := strconv.ParseUint(strings.TrimSpace(raw[metadataUserID]), 10, 64)
	if err != nil || userID == 0 {
		return SessionMetadata{}, ErrMissingMetadata
	}
	plan, ok := entitlements.ParsePlan(raw[metadataPlan])
	if !ok {
		return SessionMetadata{}, ErrMissingMetadata
	}

	months, err := strconv.Atoi(strings.TrimSpace(raw[metadataMonths]))
	if err != nil || months < 1 {
		months = DefaultMonths
	}

	return SessionMetadata{UserID: uint(userID), Plan: plan, Months: months}, nil
}

// PlanChange is applied atomically: the payment row is appended and the
// user's plan fields are updated in one transaction. Nil fields are left
// untouched on the user.
type PlanChange struct {
	UserID        uint
	Plan          entitlements.Plan
	PlanExpiry    *time.Time
	LastPaymentID *string
	Payment       *models.Payment
}

// PeriodEnd returns start plus the given number of billing months.
func PeriodEnd(start time.Time, months int) time.Time {
	return start.Add(time.Duration(months) * BillingMonth)
}

// MajorUnits converts a minor currency amount (paise, cents) to major units.
func MajorUnits(minor int64) float64 {
	return float64(minor) / 100
}
