package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/itzsam-lol/com-app/app/models"
	"github.com/itzsam-lol/com-app/app/repository"
	"github.com/itzsam-lol/com-app/internal/pkg/logging"
	"github.com/itzsam-lol/com-app/internal/pkg/metrics"
)

// SOSController serves the caller's emergency events.
type SOSController struct {
	sos repository.SOSRepository
}

// NewSOSController creates a new SOS controller
func NewSOSController(sos repository.SOSRepository) *SOSController {
	return &SOSController{sos: sos}
}

type sosCreateRequest struct {
	Type     string `json:"type" validate:"required,max=50"`
	Location string `json:"location" validate:"max=255"`
}

type sosStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (sc *SOSController) HandleListSOS(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	events, err := sc.sos.ListByUserID(userID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load SOS events")
	}
	if events == nil {
		events = []models.SOSEvent{}
	}
	return c.JSON(events)
}

// HandleCreateSOS raises a new ACTIVE emergency event.
func (sc *SOSController) HandleCreateSOS(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req sosCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	req.Type = strings.TrimSpace(req.Type)
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	event := &models.SOSEvent{
		UserID:   userID,
		Type:     req.Type,
		Location: strings.TrimSpace(req.Location),
		Status:   models.SOS_STATUS_ACTIVE,
	}
	if err := sc.sos.Create(event); err != nil {
		logging.WithUser("sos", userID).WithError(err).Error("failed to create SOS event")
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to create SOS event")
	}
	metrics.SOSEvents.WithLabelValues(event.Type).Inc()
	logging.WithUser("sos", userID).WithField("sos_id", event.ID).WithField("type", event.Type).Warn("SOS raised")
	return c.Status(fiber.StatusCreated).JSON(event)
}

// HandleUpdateSOSStatus moves one of the caller's events to a new status.
func (sc *SOSController) HandleUpdateSOSStatus(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "Invalid SOS event id")
	}

	var req sosStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !models.IsValidSOSStatus(status) {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "Unknown SOS status")
	}

	event, err := sc.sos.UpdateStatus(uint(id), userID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "SOS event not found")
		}
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to update SOS event")
	}
	return c.JSON(event)
}
