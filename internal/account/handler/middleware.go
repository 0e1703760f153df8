package handler

import (
	"strings"

	"github.com/annrbk/Auth-app-backend/internal/account/service"
	"github.com/gofiber/fiber/v2"
)

// accountIDKey is the fiber.Ctx locals key the guard stores the resolved
// account id under.
const accountIDKey = "accountID"

// RequireAuth gates privileged routes on a valid bearer token. A missing
// token and an invalid one are distinct outcomes: 401 for "nothing supplied",
// 403 for "supplied but failed verification". The guard does not re-check the
// account row; authorization is token validity only.
func RequireAuth(tokens service.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthenticated",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}

		accountID, err := tokens.Verify(tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}

		c.Locals(accountIDKey, accountID)

		return c.Next()
	}
}
