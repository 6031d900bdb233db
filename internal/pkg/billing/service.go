package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itzsam-lol/com-app/app/models"
	"github.com/itzsam-lol/com-app/internal/pkg/entitlements"
	"github.com/itzsam-lol/com-app/internal/pkg/logging"
	"github.com/itzsam-lol/com-app/internal/pkg/metrics"
)

// DefaultCurrency is used for payments that never reach the processor.
const DefaultCurrency = "inr"

// PlanObserver is notified after a user's plan has been persisted.
type PlanObserver func(ctx context.Context, user *models.User)

// Service applies plan transitions and reconciles processor webhooks.
type Service struct {
	repo     Repository
	parser   WebhookParser
	observer PlanObserver
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithWebhookParser sets the verifier used by HandleWebhook.
func WithWebhookParser(p WebhookParser) Option {
	return func(s *Service) { s.parser = p }
}

// WithPlanObserver registers a callback fired after every plan write.
func WithPlanObserver(fn PlanObserver) Option {
	return func(s *Service) { s.observer = fn }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a billing service from an injected repository.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, opts ...Option) *Service {
	return NewService(NewRepository(db), opts...)
}

// SetPlan is the synchronous plan switch guarded by Decide. The expiry is
// left as is.
func (s *Service) SetPlan(ctx context.Context, userID uint, requested string) (*models.User, error) {
	plan, ok := entitlements.ParsePlan(requested)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlan, requested)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := Decide(entitlements.Plan(user.Plan), plan).Err(); err != nil {
		return nil, err
	}
	if user.Plan == string(plan) {
		return user, nil
	}

	if err := s.repo.UpdateUserPlan(ctx, user.ID, string(plan)); err != nil {
		return nil, err
	}
	user.Plan = string(plan)

	metrics.PlanChanges.WithLabelValues(string(plan), "direct").Inc()
	logging.WithUser("billing", user.ID).WithField("plan", plan).Info("plan set directly")
	s.notify(ctx, user)
	return user, nil
}

// ActivateStarter records a zero amount STARTER period for the user and
// moves the plan, expiry and last payment to it in the same transaction.
func (s *Service) ActivateStarter(ctx context.Context, userID uint) (*models.Payment, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := Decide(entitlements.Plan(user.Plan), entitlements.PlanStarter).Err(); err != nil {
		return nil, err
	}

	start := s.now()
	payment := &models.Payment{
		UserID:      user.ID,
		Plan:        string(entitlements.PlanStarter),
		Amount:      0,
		Currency:    DefaultCurrency,
		Status:      models.PAYMENT_STATUS_SUCCESS,
		Reference:   "starter_" + uuid.NewString(),
		PeriodStart: start,
		PeriodEnd:   PeriodEnd(start, 1),
	}
	if _, err := s.repo.ApplyPlanChange(ctx, PlanChange{
		UserID:        user.ID,
		Plan:          entitlements.PlanStarter,
		PlanExpiry:    &payment.PeriodEnd,
		LastPaymentID: &payment.Reference,
		Payment:       payment,
	}); err != nil {
		return nil, err
	}
	user.Plan = string(entitlements.PlanStarter)
	user.PlanExpiry = &payment.PeriodEnd
	user.LastPaymentID = &payment.Reference

	metrics.PlanChanges.WithLabelValues(user.Plan, "starter").Inc()
	logging.WithUser("billing", user.ID).Info("starter plan activated")
	s.notify(ctx, user)
	return payment, nil
}

// RecordWebhookEvent persists webhook payloads idempotently.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.BillingWebhookEvent, error) {
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.BillingWebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(ctx, event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(ctx, webhookEventID, errMsg)
}

func (s *Service) notify(ctx context.Context, user *models.User) {
	if s.observer != nil {
		s.observer(ctx, user)
	}
}
