package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/itzsam-lol/com-app/app/models"
	"github.com/itzsam-lol/com-app/app/repository"
	"github.com/itzsam-lol/com-app/internal/pkg/logging"
	"github.com/itzsam-lol/com-app/internal/pkg/usercontext"
)

// UserController serves the caller's own account.
type UserController struct {
	users repository.UserRepository
	plans PlanService
}

// NewUserController creates a new user controller
func NewUserController(users repository.UserRepository, plans PlanService) *UserController {
	return &UserController{users: users, plans: plans}
}

type setPlanRequest struct {
	Plan string `json:"plan" validate:"required"`
}

// HandleGetMe returns the profile of the caller, creating the account on
// first sight.
func (uc *UserController) HandleGetMe(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return errorJSON(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
	}

	user, created, err := uc.users.GetOrCreateByFirebaseUID(userCtx.UID, userCtx.Email, userCtx.Name)
	if err != nil {
		logging.For("user").WithError(err).WithField("uid", userCtx.UID).Error("failed to load user")
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user")
	}
	if created {
		logging.WithUser("user", user.ID).Info("user account created")
	}
	return c.JSON(userResponse(user))
}

// HandleUpdateMe applies profile edits.
func (uc *UserController) HandleUpdateMe(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req repository.ProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	user, err := uc.users.UpdateProfile(userID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update profile")
	}
	return c.JSON(userResponse(user))
}

// HandleSetPlan switches the plan directly. Paid users cannot drop back to
// STARTER here.
func (uc *UserController) HandleSetPlan(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req setPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()
	user, err := uc.plans.SetPlan(ctx, userID, req.Plan)
	if err != nil {
		return writeBillingError(c, err, "Failed to update plan")
	}
	return c.JSON(userResponse(user))
}

func userResponse(u *models.User) fiber.Map {
	return fiber.Map{
		"id":               u.ID,
		"firebaseUid":      u.FirebaseUID,
		"email":            u.Email,
		"displayName":      u.DisplayName,
		"phone":            u.Phone,
		"age":              u.Age,
		"gender":           u.Gender,
		"address":          u.Address,
		"emergencyContact": u.EmergencyContact,
		"plan":             u.Plan,
		"planExpiry":       formatTimePtr(u.PlanExpiry),
		"lastPaymentId":    u.LastPaymentID,
		"loyaltyPoints":    u.LoyaltyPoints,
	}
}
