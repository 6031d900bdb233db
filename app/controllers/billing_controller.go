package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/itzsam-lol/com-app/internal/pkg/billing"
)

const stripeSignatureHeader = "Stripe-Signature"

// WebhookHandler verifies and applies processor webhook deliveries.
type WebhookHandler interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*billing.WebhookResult, error)
}

// BillingController receives Stripe webhooks.
type BillingController struct {
	webhooks WebhookHandler
}

// NewBillingController creates a new billing controller
func NewBillingController(webhooks WebhookHandler) *BillingController {
	return &BillingController{webhooks: webhooks}
}

// HandleStripeWebhook verifies the signature over the raw body and applies
// completed checkouts. Redeliveries are acknowledged without side effects.
func (bc *BillingController) HandleStripeWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := c.Get(stripeSignatureHeader)

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := bc.webhooks.HandleWebhook(ctx, rawBody, signature)
	if err != nil {
		if errors.Is(err, billing.ErrInvalidSignature) || errors.Is(err, billing.ErrInvalidPayload) {
			return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: " + err.Error())
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_processing_failed"})
	}

	resp := fiber.Map{"received": true}
	if result.Duplicate {
		resp["duplicate"] = true
	}
	if result.Ignored {
		resp["ignored"] = true
	}
	return c.JSON(resp)
}
