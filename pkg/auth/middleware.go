package auth

import (
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const localUserID = "user_id"

// Middleware rejects requests without a valid bearer token
func Middleware(tokens TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return ErrMissingToken()
		}

		claims, err := tokens.ValidateAccessToken(token)
		if err != nil {
			return err
		}

		c.Locals(localUserID, claims.UserID)
		return c.Next()
	}
}

// OptionalMiddleware resolves the identity when a valid token is present
// and lets anonymous requests through. Services decide what anonymity means.
func OptionalMiddleware(tokens TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c); ok {
			if claims, err := tokens.ValidateAccessToken(token); err == nil {
				c.Locals(localUserID, claims.UserID)
			}
		}
		return c.Next()
	}
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(c *fiber.Ctx) (kernel.UserID, bool) {
	userID, ok := c.Locals(localUserID).(kernel.UserID)
	return userID, ok && !userID.IsEmpty()
}

// UserID returns the authenticated user ID or an empty one
func UserID(c *fiber.Ctx) kernel.UserID {
	userID, _ := GetUserID(c)
	return userID
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
