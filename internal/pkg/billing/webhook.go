package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/itzsam-lol/com-app/app/models"
	"github.com/itzsam-lol/com-app/internal/pkg/logging"
	"github.com/itzsam-lol/com-app/internal/pkg/metrics"
)

// WebhookResult summarizes how a delivery was handled.
type WebhookResult struct {
	EventID   string
	EventType string
	Applied   bool
	Duplicate bool
	Ignored   bool
}

func (r *WebhookResult) outcome() string {
	switch {
	case r.Applied:
		return metrics.OutcomeApplied
	case r.Duplicate:
		return metrics.OutcomeDuplicate
	default:
		return metrics.OutcomeIgnored
	}
}

// HandleWebhook verifies a delivery, records it and applies completed
// checkouts exactly once. Signature and decoding failures return an error
// wrapping ErrInvalidSignature or ErrInvalidPayload without touching state.
// Deliveries that can never succeed are acknowledged and marked processed
// with the failure; transient failures are returned so the processor retries.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	if s.parser == nil {
		return nil, errors.New("billing: webhook parser not configured")
	}

	event, err := s.parser.ParseWebhook(payload, signature)
	if err != nil {
		metrics.WebhookEvents.WithLabelValues("unknown", metrics.OutcomeRejected).Inc()
		logging.For("billing").WithError(err).Warn("stripe webhook rejected")
		return nil, err
	}
	result := &WebhookResult{EventID: event.EventID(), EventType: event.EventType()}
	log := logging.For("billing").WithField("event_id", result.EventID).WithField("event_type", result.EventType)

	created, stored, err := s.RecordWebhookEvent(ctx, WebhookEventInput{
		Provider:        models.BillingProviderStripe,
		ProviderEventID: event.EventID(),
		EventType:       event.EventType(),
		PayloadJSON:     string(payload),
		SignatureValid:  true,
	})
	if err != nil {
		metrics.WebhookEvents.WithLabelValues(result.EventType, metrics.OutcomeFailed).Inc()
		return nil, fmt.Errorf("billing: record webhook event: %w", err)
	}
	if !created && stored.IsProcessed() {
		result.Duplicate = true
		metrics.WebhookEvents.WithLabelValues(result.EventType, result.outcome()).Inc()
		log.Info("duplicate webhook delivery skipped")
		return result, nil
	}

	var processingErr error
	switch ev := event.(type) {
	case CheckoutCompleted:
		applied, err := s.applyCheckout(ctx, ev)
		switch {
		case err == nil:
			result.Applied = applied
			result.Duplicate = !applied
		case isPermanent(err):
			result.Ignored = true
			processingErr = err
			log.WithError(err).Warn("checkout session not applied")
		default:
			metrics.WebhookEvents.WithLabelValues(result.EventType, metrics.OutcomeFailed).Inc()
			log.WithError(err).Error("checkout session apply failed")
			return nil, err
		}
	default:
		result.Ignored = true
	}

	if err := s.MarkWebhookProcessed(ctx, stored.ID, processingErr); err != nil {
		log.WithError(err).Warn("failed to mark webhook event processed")
	}
	metrics.WebhookEvents.WithLabelValues(result.EventType, result.outcome()).Inc()
	return result, nil
}

func (s *Service) applyCheckout(ctx context.Context, ev CheckoutCompleted) (bool, error) {
	meta, err := ParseSessionMetadata(ev.Metadata)
	if err != nil {
		return false, err
	}
	user, err := s.repo.GetUserByID(ctx, meta.UserID)
	if err != nil {
		return false, err
	}

	start := s.now()
	end := PeriodEnd(start, meta.Months)
	var lastPaymentID *string
	if ev.PaymentIntentID != "" {
		pi := ev.PaymentIntentID
		lastPaymentID = &pi
	}

	applied, err := s.repo.ApplyPlanChange(ctx, PlanChange{
		UserID:        user.ID,
		Plan:          meta.Plan,
		PlanExpiry:    &end,
		LastPaymentID: lastPaymentID,
		Payment: &models.Payment{
			UserID:      user.ID,
			Plan:        string(meta.Plan),
			Amount:      MajorUnits(ev.AmountTotal),
			Currency:    ev.Currency,
			Status:      models.PAYMENT_STATUS_SUCCESS,
			Reference:   ev.PaymentReference(),
			PeriodStart: start,
			PeriodEnd:   end,
		},
	})
	if err != nil || !applied {
		return false, err
	}

	user.Plan = string(meta.Plan)
	user.PlanExpiry = &end
	user.LastPaymentID = lastPaymentID

	metrics.PlanChanges.WithLabelValues(user.Plan, "checkout").Inc()
	logging.WithUser("billing", user.ID).WithFields(map[string]interface{}{
		"plan":   user.Plan,
		"months": meta.Months,
		"expiry": end,
	}).Info("plan purchased")
	s.notify(ctx, user)
	return true, nil
}

func isPermanent(err error) bool {
	return errors.Is(err, ErrMissingMetadata) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrInvalidPlan)
}
