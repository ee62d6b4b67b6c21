package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"pmportal/internal/middleware"
	"pmportal/internal/mission"
	"pmportal/internal/model"
)

// Dashboard returns the landing-page counters: document status totals over
// the caller-visible collection, plus how many of the caller's missions
// are expired (due date passed, nothing submitted).
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	principal, _ := middleware.Principal(c)

	var docs []model.Document
	if principal.Role == model.RoleAdmin {
		docs = h.documents.All()
	} else {
		docs = h.documents.ByUser(principal.ID)
	}

	counts := map[model.DocumentStatus]int{}
	for _, doc := range docs {
		counts[doc.Status]++
	}

	expired := 0
	now := time.Now()
	for _, m := range h.missions.ForUser(principal.Unit.ID) {
		if mission.ExpiredFor(m, principal.ID, now) {
			expired++
		}
	}

	return c.JSON(fiber.Map{
		"documents": fiber.Map{
			"total":     len(docs),
			"pending":   counts[model.StatusPending],
			"approved":  counts[model.StatusApproved],
			"revision":  counts[model.StatusRevision],
			"completed": counts[model.StatusCompleted],
		},
		"expiredMissions": expired,
	})
}
