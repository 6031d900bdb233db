package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/itzsam-lol/com-app/internal/pkg/billing"
	"github.com/itzsam-lol/com-app/internal/pkg/usercontext"
)

const requestTimeout = 15 * time.Second

var validate = validator.New()

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

// requestContext bounds DB and processor calls of a single request.
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

// requireUser returns the local account ID of the caller or writes a 404.
func requireUser(c *fiber.Ctx) (uint, bool) {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		_ = errorJSON(c, fiber.StatusUnauthorized, "unauthorized", "Missing or invalid authentication")
		return 0, false
	}
	if userCtx.UserID == 0 {
		_ = errorJSON(c, fiber.StatusNotFound, "not_found", "User not found")
		return 0, false
	}
	return userCtx.UserID, true
}

// writeBillingError maps billing and storage errors to API responses.
func writeBillingError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, billing.ErrInvalidPlan), errors.Is(err, billing.ErrInvalidMonths):
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, billing.ErrPolicyViolation):
		return errorJSON(c, fiber.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, billing.ErrUserNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return errorJSON(c, fiber.StatusNotFound, "not_found", "User not found")
	default:
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", fallback)
	}
}

func validationError(c *fiber.Ctx, err error) error {
	return errorJSON(c, fiber.StatusBadRequest, "invalid_request", err.Error())
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
