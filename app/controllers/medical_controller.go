package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/itzsam-lol/com-app/app/models"
	"github.com/itzsam-lol/com-app/app/repository"
	"github.com/itzsam-lol/com-app/internal/pkg/logging"
)

// MedicalController serves the caller's medical profile.
type MedicalController struct {
	medical repository.MedicalRepository
}

// NewMedicalController creates a new medical profile controller
func NewMedicalController(medical repository.MedicalRepository) *MedicalController {
	return &MedicalController{medical: medical}
}

type medicalRequest struct {
	BloodGroup  string `json:"bloodGroup" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Allergies   string `json:"allergies" validate:"max=5000"`
	Conditions  string `json:"conditions" validate:"max=5000"`
	Medications string `json:"medications" validate:"max=5000"`
	History     string `json:"history" validate:"max=10000"`
}

func (mc *MedicalController) HandleGetMedical(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	profile, err := mc.medical.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(nil)
		}
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load medical profile")
	}
	return c.JSON(profile)
}

// HandleUpsertMedical replaces the medical profile of the caller.
func (mc *MedicalController) HandleUpsertMedical(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req medicalRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid_request", "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	profile := &models.MedicalProfile{
		UserID:      userID,
		BloodGroup:  req.BloodGroup,
		Allergies:   req.Allergies,
		Conditions:  req.Conditions,
		Medications: req.Medications,
		History:     req.History,
	}
	if err := mc.medical.Upsert(profile); err != nil {
		logging.WithUser("medical", userID).WithError(err).Error("failed to save medical profile")
		return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to save medical profile")
	}
	return c.JSON(profile)
}
