package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"pmportal/internal/config"
	"pmportal/internal/directory"
	"pmportal/internal/document"
	"pmportal/internal/mission"
	"pmportal/internal/session"
	"pmportal/internal/validator"
)

// Handler wires the four stores to the HTTP surface. All role checks live
// here; the stores only care whether a session exists.
type Handler struct {
	logger    *slog.Logger
	cfg       *config.Config
	validate  *validator.Validator
	sessions  *session.Store
	directory *directory.Store
	documents *document.Store
	missions  *mission.Store
}

func NewHandler(
	logger *slog.Logger,
	cfg *config.Config,
	sessions *session.Store,
	dir *directory.Store,
	documents *document.Store,
	missions *mission.Store,
) *Handler {
	return &Handler{
		logger:    logger,
		cfg:       cfg,
		validate:  validator.New(),
		sessions:  sessions,
		directory: dir,
		documents: documents,
		missions:  missions,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
