package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pmportal/internal/middleware"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login checks the credential table through the session store and, on
// success, issues a bearer token carrying the principal snapshot.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := h.validate.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email and password are required",
		})
	}

	if !h.sessions.Login(c.Context(), req.Email, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid email or password",
		})
	}

	principal, _ := h.sessions.Current()

	now := time.Now()
	claims := middleware.Claims{
		Principal: principal,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   principal.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.cfg.Auth.TokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(h.cfg.Auth.JWTSecret))
	if err != nil {
		h.logger.Error("failed to sign token", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create session token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  principal,
	})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	h.sessions.Logout(c.Context())
	return c.JSON(fiber.Map{"success": true})
}

// Me returns the session principal, or 401 once the session is gone.
func (h *Handler) Me(c *fiber.Ctx) error {
	principal, ok := h.sessions.Current()
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "no active session",
		})
	}
	return c.JSON(fiber.Map{"user": principal})
}
