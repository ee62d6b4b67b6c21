package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"pmportal/internal/model"
)

const principalKey = "principal"

// Claims is the token payload: the full principal snapshot, so handlers
// never need a directory lookup to know who is calling.
type Claims struct {
	Principal model.Principal `json:"principal"`
	jwt.RegisteredClaims
}

// Authenticated parses the Bearer token and stores the principal in
// request locals. Requests without a valid token are rejected; this is the
// route-guard boundary, the stores do not authorize beyond session checks.
func Authenticated(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}

		tokenStr := strings.TrimSpace(auth[7:])
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
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		c.Locals(principalKey, claims.Principal)
		return c.Next()
	}
}

// AdminOnly rejects callers whose token does not carry the admin role.
// Must sit behind Authenticated.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := Principal(c)
		if !ok || principal.Role != model.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin role required",
			})
		}
		return c.Next()
	}
}

// Principal returns the principal stored by Authenticated.
func Principal(c *fiber.Ctx) (model.Principal, bool) {
	principal, ok := c.Locals(principalKey).(model.Principal)
	return principal, ok
}
