package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/itzsam-lol/com-app/internal/pkg/entitlements"
	"github.com/itzsam-lol/com-app/internal/pkg/metrics"
)

// PriceMap maps purchasable plans to processor price identifiers.
type PriceMap map[entitlements.Plan]string

// SessionParams is what the builder hands to the payment processor.
type SessionParams struct {
	PriceID       string
	Quantity      int64
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// CheckoutSession is a hosted payment page created by the processor.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentProcessor creates hosted checkout sessions.
type PaymentProcessor interface {
	CreateCheckoutSession(ctx context.Context, params SessionParams) (*CheckoutSession, error)
}

// CheckoutRequest describes a plan purchase by an existing user.
type CheckoutRequest struct {
	UserID uint
	Email  string
	Plan   string
	Months int
}

// CheckoutConfig holds the static settings of the builder.
type CheckoutConfig struct {
	Prices     PriceMap
	SuccessURL string
	CancelURL  string
}

// CheckoutBuilder turns plan purchases into processor checkout sessions.
type CheckoutBuilder struct {
	processor PaymentProcessor
	cfg       CheckoutConfig
}

// NewCheckoutBuilder creates a builder backed by the given processor.
func NewCheckoutBuilder(processor PaymentProcessor, cfg CheckoutConfig) *CheckoutBuilder {
	return &CheckoutBuilder{processor: processor, cfg: cfg}
}

// NormalizeMonths applies the default of one month and enforces the upper bound.
func NormalizeMonths(months int) (int, error) {
	if months == 0 {
		return DefaultMonths, nil
	}
	if months < 1 || months > MaxMonths {
		return 0, fmt.Errorf("%w: %d (allowed 1-%d)", ErrInvalidMonths, months, MaxMonths)
	}
	return months, nil
}

// CreateSession validates the request and asks the processor for a session.
// Nothing is persisted locally; the plan only changes once the completion
// webhook arrives.
func (b *CheckoutBuilder) CreateSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	plan, ok := entitlements.ParsePlan(req.Plan)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlan, req.Plan)
	}
	priceID := strings.TrimSpace(b.cfg.Prices[plan])
	if priceID == "" {
		return nil, fmt.Errorf("%w: %s cannot be purchased", ErrInvalidPlan, plan)
	}
	months, err := NormalizeMonths(req.Months)
	if err != nil {
		return nil, err
	}
	if req.UserID == 0 {
		return nil, ErrUserNotFound
	}

	meta := SessionMetadata{UserID: req.UserID, Plan: plan, Months: months}
	session, err := b.processor.CreateCheckoutSession(ctx, SessionParams{
		PriceID:       priceID,
		Quantity:      int64(months),
		CustomerEmail: strings.TrimSpace(req.Email),
		SuccessURL:    b.cfg.SuccessURL,
		CancelURL:     b.cfg.CancelURL,
		Metadata:      meta.Map(),
	})
	if err != nil {
		metrics.CheckoutSessions.WithLabelValues(string(plan), metrics.OutcomeFailed).Inc()
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	metrics.CheckoutSessions.WithLabelValues(string(plan), metrics.OutcomeCreated).Inc()
	return session, nil
}
