package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// WebhookParser verifies a raw webhook delivery and decodes it into an Event.
type WebhookParser interface {
	ParseWebhook(payload []byte, signature string) (Event, error)
}

// StripeGateway implements PaymentProcessor and WebhookParser on top of Stripe.
type StripeGateway struct {
	sc            *stripe.Client
	webhookSecret string
}

// NewStripeGateway returns a gateway with its own client for apiKey.
func NewStripeGateway(apiKey, webhookSecret string) *StripeGateway {
	return NewStripeGatewayWithClient(stripe.NewClient(apiKey), webhookSecret)
}

// NewStripeGatewayWithClient wraps an already configured client.
func NewStripeGatewayWithClient(sc *stripe.Client, webhookSecret string) *StripeGateway {
	return &StripeGateway{sc: sc, webhookSecret: webhookSecret}
}

// CreateCheckoutSession creates a one-off payment session for the given price.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p SessionParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionCreateParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(p.Quantity),
			},
		},
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		Metadata:   p.Metadata,
	}
	if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}

	s, err := g.sc.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("billing: create stripe checkout session: %w", err)
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// ParseWebhook validates the Stripe-Signature header and decodes the event.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                webhook.DefaultTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if string(event.Type) != EventCheckoutSessionCompleted {
		return UnhandledEvent{ID: event.ID, Type: string(event.Type)}, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	out := CheckoutCompleted{
		ID:          event.ID,
		SessionID:   cs.ID,
		AmountTotal: cs.AmountTotal,
		Currency:    strings.ToLower(string(cs.Currency)),
		Metadata:    cs.Metadata,
	}
	if cs.PaymentIntent != nil {
		out.PaymentIntentID = cs.PaymentIntent.ID
	}
	return out, nil
}
