package controllers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/itzsam-lol/com-app/app/models"
	"github.com/itzsam-lol/com-app/app/repository"
	"github.com/itzsam-lol/com-app/internal/pkg/billing"
	"github.com/itzsam-lol/com-app/internal/pkg/entitlements"
	"github.com/itzsam-lol/com-app/internal/pkg/logging"
	"github.com/itzsam-lol/com-app/internal/pkg/usercontext"
)

// PlanService applies synchronous plan changes.
type PlanService interface {
	SetPlan(ctx context.Context, userID uint, requested string) (*models.User, error)
	ActivateStarter(ctx context.Context, userID uint) (*models.Payment, error)
}

// CheckoutCreator creates hosted checkout sessions.
type CheckoutCreator interface {
	CreateSession(ctx context.Context, req billing.CheckoutRequest) (*billing.CheckoutSession, error)
}

// PlanCache is a read-through cache of the current plan per Firebase uid.
type PlanCache interface {
	Get(ctx context.Context, uid string) (string, bool)
	Set(ctx context.Context, uid, plan string) error
}

// PaymentController serves checkout, plan lookup and the payment ledger.
type PaymentController struct {
	checkout CheckoutCreator
	plans    PlanService
	users    repository.UserRepository
	payments repository.PaymentRepository
	cache    PlanCache
}

// NewPaymentController creates a new payment controller. cache may be nil.
func NewPaymentController(checkout CheckoutCreator, plans PlanService, users repository.UserRepository, payments repository.PaymentRepository, cache PlanCache) *PaymentController {
	return &PaymentController{checkout: checkout, plans: plans, users: users, payments: payments, cache: cache}
}

type checkoutRequest struct {
	Plan   string `json:"plan" validate:"required"`
	Months int    `json:"months" validate:"min=0,max=12"`
}

// HandleCreateCheckout starts a hosted checkout for a paid plan.
func (pc *PaymentController) HandleCreateCheckout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	userCtx := usercontext.GetUserContext(c)
	ctx, cancel := requestContext(c)
	defer cancel()

	session, err := pc.checkout.CreateSession(ctx, billing.CheckoutRequest{
		UserID: userCtx.UserID,
		Email:  userCtx.Email,
		Plan:   req.Plan,
		Months: req.Months,
	})
	if err != nil {
		if errors.Is(err, billing.ErrUpstreamUnavailable) {
			logging.WithUser("payment", userCtx.UserID).WithError(err).Error("stripe checkout session failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create Stripe session",
				"details": err.Error(),
			})
		}
		return writeBillingError(c, err, "Failed to create checkout session")
	}
	return c.JSON(fiber.Map{"url": session.URL})
}

// HandleGetPlan returns the current plan and its features.
func (pc *PaymentController) HandleGetPlan(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	uid := usercontext.GetUID(c)
	ctx, cancel := requestContext(c)
	defer cancel()

	plan, hit := "", false
	if pc.cache != nil {
		plan, hit = pc.cache.Get(ctx, uid)
	}
	if !hit {
		user, err := pc.users.GetByID(userID)
		if err != nil {
			return writeBillingError(c, err, "Failed to load plan")
		}
		plan = user.Plan
		if pc.cache != nil {
			if err := pc.cache.Set(ctx, uid, plan); err != nil {
				logging.WithUser("payment", userID).WithError(err).Warn("plan cache write failed")
			}
		}
	}

	p, valid := entitlements.ParsePlan(plan)
	if !valid {
		p = entitlements.DefaultPlan
	}
	return c.JSON(fiber.Map{"plan": string(p), "features": entitlements.Features(p)})
}

// HandlePaymentHistory lists the caller's payments, newest first.
func (pc *PaymentController) HandlePaymentHistory(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	payments, err := pc.payments.HistoryByUserID(userID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load payments")
	}
	return c.JSON(nonNilPayments(payments))
}

// HandleListPayments lists the caller's payments in storage order.
func (pc *PaymentController) HandleListPayments(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	payments, err := pc.payments.ListByUserID(userID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load payments")
	}
	return c.JSON(nonNilPayments(payments))
}

// HandleActivateStarter records a free STARTER period.
func (pc *PaymentController) HandleActivateStarter(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	payment, err := pc.plans.ActivateStarter(ctx, userID)
	if err != nil {
		return writeBillingError(c, err, "Failed to activate plan")
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

func nonNilPayments(p []models.Payment) []models.Payment {
	if p == nil {
		return []models.Payment{}
	}
	return p
}
