package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"hrms/tenant"
	"hrms/utils"
)

const tenantLocalsKey = "tenant"

// Protected resolves the bearer token into a tenant context. Requests without
// a valid token never reach the next handler.
func Protected(tokens *utils.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authorization required")
		}

		tokenParts := strings.Fields(authHeader)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid authorization format")
		}

		claims, err := tokens.Verify(tokenParts[1])
		if err != nil {
			if errors.Is(err, utils.ErrExpiredToken) {
				return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Token expired")
			}
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token")
		}

		tc := tenant.Context{UserID: claims.UserID, OrgID: claims.OrgID}
		c.Locals(tenantLocalsKey, tc)
		c.Locals("userID", tc.UserID)
		c.Locals("orgID", tc.OrgID)
		c.SetUserContext(tenant.WithContext(c.UserContext(), tc))

		return c.Next()
	}
}

// Tenant returns the context resolved by Protected for this request.
func Tenant(c *fiber.Ctx) (tenant.Context, bool) {
	tc, ok := c.Locals(tenantLocalsKey).(tenant.Context)
	return tc, ok
}
