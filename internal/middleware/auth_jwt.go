package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/authctx"
)

// CookieName is the credential cookie shared by issue, verify and revoke.
const CookieName = "token"

// Claims is the credential payload: the identity email plus standard
// registered claims (expiry, issued-at).
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTFromCookie decodes the credential cookie and stores the identity for
// downstream handlers. A missing cookie passes through anonymously (public
// routes stay reachable with a stale browser state); RequireAuth is the gate
// on protected routes. A present-but-invalid credential fails closed.
func JWTFromCookie(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(CookieName)
		if tokenStr == "" {
			return c.Next()
		}

		var claims Claims
		token, err := jwt.ParseWithClaims(
			tokenStr,
			&claims,
			func(t *jwt.Token) (any, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, fiber.ErrUnauthorized
				}
				return []byte(secret), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid || claims.Email == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized access")
		}

		authctx.SetEmail(c, claims.Email)
		return c.Next()
	}
}
