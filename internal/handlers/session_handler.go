package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Hossain-Md-Shahriar/volunteer-management-server/configs"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/dto"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/middleware"
)

const credentialLifetime = 365 * 24 * time.Hour

// IssueSession signs a credential for the supplied identity and delivers it
// as the token cookie.
//
// POST /session {"email": "..."}
func IssueSession(cfg configs.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.SessionDTO
		if err := c.BodyParser(&body); err != nil || body.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "email is required")
		}

		now := time.Now()
		claims := middleware.Claims{
			Email: body.Email,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(credentialLifetime)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not sign credential")
		}

		c.Cookie(sessionCookie(cfg, signed, now.Add(credentialLifetime)))
		return c.JSON(dto.AckResponse{Success: true})
	}
}

// Logout tells the client to drop the credential by overwriting the cookie
// with an already-expired one of the same name and attributes.
//
// GET /session/logout
func Logout(cfg configs.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(sessionCookie(cfg, "", time.Now().Add(-time.Hour)))
		return c.JSON(dto.AckResponse{Success: true})
	}
}

func sessionCookie(cfg configs.Config, value string, expires time.Time) *fiber.Cookie {
	sameSite := fiber.CookieSameSiteStrictMode
	if cfg.Production {
		// cross-site frontend deployments need None+Secure
		sameSite = fiber.CookieSameSiteNoneMode
	}
	return &fiber.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   cfg.Production,
		SameSite: sameSite,
	}
}
