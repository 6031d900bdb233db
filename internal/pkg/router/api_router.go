package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itzsam-lol/com-app/internal/pkg/middleware"
)

type ApiRouter struct {
	deps Dependencies
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	d := h.deps

	// Stripe retries on its own schedule, keep the webhook out of auth and limits.
	app.Post("/payment/stripe/webhook", d.Billing.HandleStripeWebhook)

	auth := []fiber.Handler{
		newLimiter(d.RateLimit, d.LimiterStorage),
		middleware.FirebaseAuth(d.Verifier),
		middleware.UserContextMiddleware(d.Users),
		middleware.RequireAPIAuth,
	}

	user := app.Group("/user", auth...)
	user.Get("/me", d.User.HandleGetMe)
	user.Put("/me", d.User.HandleUpdateMe)
	user.Put("/me/plan", d.User.HandleSetPlan)

	payment := app.Group("/payment", auth...)
	payment.Post("/stripe/checkout", d.Payment.HandleCreateCheckout)
	payment.Get("/me/plan", d.Payment.HandleGetPlan)
	payment.Get("/me/history", d.Payment.HandlePaymentHistory)
	payment.Get("/me", d.Payment.HandleListPayments)
	payment.Post("/me", d.Payment.HandleActivateStarter)

	medical := app.Group("/medical", auth...)
	medical.Get("/me", d.Medical.HandleGetMedical)
	medical.Put("/me", d.Medical.HandleUpsertMedical)

	sos := app.Group("/sos", auth...)
	sos.Get("/me", d.SOS.HandleListSOS)
	sos.Post("/me", d.SOS.HandleCreateSOS)
	sos.Put("/:id/status", d.SOS.HandleUpdateSOSStatus)

	loyalty := app.Group("/loyalty", auth...)
	loyalty.Get("/me", d.Loyalty.HandleListLoyalty)
	loyalty.Post("/me", d.Loyalty.HandleAddLoyalty)
	loyalty.Get("/me/points", d.Loyalty.HandleGetPoints)
}

func NewApiRouter(deps Dependencies) *ApiRouter {
	return &ApiRouter{deps: deps}
}
