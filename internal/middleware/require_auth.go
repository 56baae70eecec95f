package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/authctx"
)

// RequireAuth rejects requests that carry no authenticated identity.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := authctx.EmailFrom(c); !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized access")
		}
		return c.Next()
	}
}

// RequireOwnEmail guards identity-scoped routes: the authenticated email must
// equal the :param email. Mismatch is 403, distinct from the 401 above.
func RequireOwnEmail(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := authctx.EmailFrom(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized access")
		}
		if email != c.Params(param) {
			return fiber.NewError(fiber.StatusForbidden, "forbidden access")
		}
		return c.Next()
	}
}
