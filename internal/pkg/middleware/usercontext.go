package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/itzsam-lol/com-app/app/models"
	"github.com/itzsam-lol/com-app/internal/pkg/logging"
	"github.com/itzsam-lol/com-app/internal/pkg/usercontext"
)

// UserLookup finds the local account of a Firebase identity.
type UserLookup interface {
	GetByFirebaseUID(uid string) (*models.User, error)
}

// UserContextMiddleware attaches the local user ID to an authenticated
// request. Callers without an account keep UserID 0; GET /user/me creates it.
func UserContextMiddleware(users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uc := usercontext.GetUserContext(c)
		if !uc.IsLoggedIn || uc.UID == "" {
			return c.Next()
		}

		user, err := users.GetByFirebaseUID(uc.UID)
		switch {
		case err == nil:
			uc.UserID = user.ID
			usercontext.SetUserContext(c, uc)
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			logging.For("auth").WithError(err).WithField("uid", uc.UID).Error("user lookup failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "internal_server_error",
				"message": "User lookup failed",
			})
		}
		return c.Next()
	}
}
