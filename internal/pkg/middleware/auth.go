package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/itzsam-lol/com-app/internal/pkg/firebase"
	"github.com/itzsam-lol/com-app/internal/pkg/logging"
	"github.com/itzsam-lol/com-app/internal/pkg/usercontext"
)

const verifyTimeout = 5 * time.Second

// TokenVerifier validates bearer ID tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*firebase.Claims, error)
}

// FirebaseAuth verifies the bearer ID token and stores the caller identity in
// the user context. Requests without a valid token get a JSON 401.
func FirebaseAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := extractBearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c, "Missing bearer token")
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), verifyTimeout)
		defer cancel()
		claims, err := verifier.Verify(ctx, token)
		if err != nil {
			logging.For("auth").WithError(err).Debug("id token rejected")
			return unauthorized(c, "Invalid or expired token")
		}

		usercontext.SetUserContext(c, usercontext.UserContext{
			UID:        claims.UID,
			Email:      claims.Email,
			Name:       claims.Name,
			IsLoggedIn: true,
		})
		return c.Next()
	}
}

// RequireAPIAuth rejects requests that did not pass FirebaseAuth.
func RequireAPIAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return unauthorized(c, "login required")
	}
	return c.Next()
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "unauthorized",
		"message": message,
	})
}

func extractBearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
