package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/itzsam-lol/com-app/app/models"
	"github.com/itzsam-lol/com-app/app/repository"
	"github.com/itzsam-lol/com-app/internal/pkg/logging"
)

// LoyaltyController serves the caller's loyalty ledger.
type LoyaltyController struct {
	loyalty repository.LoyaltyRepository
}

// NewLoyaltyController creates a new loyalty controller
func NewLoyaltyController(loyalty repository.LoyaltyRepository) *LoyaltyController {
	return &LoyaltyController{loyalty: loyalty}
}

type loyaltyRequest struct {
	EventType   string `json:"eventType" validate:"required,max=50"`
	Points      int    `json:"points" validate:"required,min=1,max=10000"`
	Description string `json:"description" validate:"max=255"`
}

func (lc *LoyaltyController) HandleListLoyalty(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	events, err := lc.loyalty.ListByUserID(userID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load loyalty events")
	}
	if events == nil {
		events = []models.LoyaltyEvent{}
	}
	return c.JSON(events)
}

// HandleAddLoyalty records an event and returns it with the new total.
func (lc *LoyaltyController) HandleAddLoyalty(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req loyaltyRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	req.EventType = strings.TrimSpace(req.EventType)
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	event := &models.LoyaltyEvent{
		UserID:      userID,
		EventType:   req.EventType,
		Points:      req.Points,
		Description: strings.TrimSpace(req.Description),
	}
	total, err := lc.loyalty.Record(event)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		logging.WithUser("loyalty", userID).WithError(err).Error("failed to record loyalty event")
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to record loyalty event")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"event": event, "points": total})
}

func (lc *LoyaltyController) HandleGetPoints(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	points, err := lc.loyalty.Points(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load points")
	}
	return c.JSON(fiber.Map{"points": points})
}
