// Package authctx carries the authenticated identity through a request.
package authctx

import "github.com/gofiber/fiber/v2"

const emailLocal = "auth_email"

// SetEmail attaches the authenticated email to the request context.
func SetEmail(c *fiber.Ctx, email string) {
	c.Locals(emailLocal, email)
}

// EmailFrom returns the authenticated email, if any.
func EmailFrom(c *fiber.Ctx) (string, bool) {
	if v := c.Locals(emailLocal); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}
