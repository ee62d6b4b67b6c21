package api

import (
	"github.com/gofiber/fiber/v2"

	"pmportal/internal/middleware"
	"pmportal/internal/mission"
	"pmportal/internal/model"
)

// ListMissions returns all missions for admins (`?unit=` narrows to exact
// unit matches, excluding "all" missions). Regular users get their unit's
// missions plus the "all" ones; `?day=` narrows to one weekday.
func (h *Handler) ListMissions(c *fiber.Ctx) error {
	principal, _ := middleware.Principal(c)

	var missions []model.Mission
	switch {
	case principal.Role != model.RoleAdmin:
		if day := c.Query("day"); day != "" {
			missions = h.missions.ForUserOnDay(principal.Unit.ID, day)
		} else {
			missions = h.missions.ForUser(principal.Unit.ID)
		}
	case c.Query("unit") != "":
		missions = h.missions.ForUnit(c.Query("unit"))
	default:
		missions = h.missions.All()
	}

	return c.JSON(fiber.Map{"missions": missions})
}

func (h *Handler) GetMission(c *fiber.Ctx) error {
	m, ok := h.missions.MissionByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "mission not found",
		})
	}
	return c.JSON(fiber.Map{"mission": m})
}

type createMissionRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Day         string `json:"day"`
	UnitID      string `json:"unitId" validate:"required"`
	UnitName    string `json:"unitName" validate:"required"`
	DueDate     string `json:"dueDate" validate:"required"`
}

func (h *Handler) CreateMission(c *fiber.Ctx) error {
	var req createMissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := h.validate.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing or invalid fields",
		})
	}
	if req.Day != "" && !model.ValidDay(req.Day) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown weekday token",
		})
	}

	principal, _ := middleware.Principal(c)
	ok := h.missions.AddMission(c.Context(), principal, mission.AddParams{
		Title:       req.Title,
		Description: req.Description,
		Day:         req.Day,
		UnitID:      req.UnitID,
		UnitName:    req.UnitName,
		DueDate:     req.DueDate,
	})
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "no active session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

type updateMissionRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Day         *string `json:"day"`
	UnitID      *string `json:"unitId"`
	UnitName    *string `json:"unitName"`
	DueDate     *string `json:"dueDate"`
}

func (h *Handler) UpdateMission(c *fiber.Ctx) error {
	var req updateMissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.Day != nil && *req.Day != "" && !model.ValidDay(*req.Day) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown weekday token",
		})
	}

	ok := h.missions.UpdateMission(c.Context(), c.Params("id"), mission.Patch{
		Title:       req.Title,
		Description: req.Description,
		Day:         req.Day,
		UnitID:      req.UnitID,
		UnitName:    req.UnitName,
		DueDate:     req.DueDate,
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "mission not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) DeleteMission(c *fiber.Ctx) error {
	if !h.missions.DeleteMission(c.Context(), c.Params("id")) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "delete failed",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

type addSubmissionRequest struct {
	FileURL  string `json:"fileUrl" validate:"required"`
	FileName string `json:"fileName" validate:"required,upload_name"`
	FileType string `json:"fileType" validate:"required,upload_type"`
	FileSize int64  `json:"fileSize" validate:"required,gt=0,lte=10485760"`
}

// AddSubmission uploads a report against a mission for the calling user.
func (h *Handler) AddSubmission(c *fiber.Ctx) error {
	principal, _ := middleware.Principal(c)

	var req addSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := h.validate.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "tipo de arquivo não permitido ou campos obrigatórios ausentes",
		})
	}

	ok := h.missions.AddSubmission(c.Context(), principal, c.Params("id"), mission.SubmissionParams{
		FileName: req.FileName,
		FileURL:  req.FileURL,
		FileType: req.FileType,
		FileSize: req.FileSize,
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "mission not found or no active session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

func (h *Handler) GetSubmission(c *fiber.Ctx) error {
	sub, ok := h.missions.SubmissionByID(c.Params("id"), c.Params("sid"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "submission not found",
		})
	}
	return c.JSON(fiber.Map{"submission": sub})
}

type updateSubmissionRequest struct {
	FileName *string `json:"fileName"`
	FileURL  *string `json:"fileUrl"`
	FileType *string `json:"fileType"`
	FileSize *int64  `json:"fileSize"`
}

// UpdateSubmission renames or re-points a report. Admins can touch any
// submission; users only their own.
func (h *Handler) UpdateSubmission(c *fiber.Ctx) error {
	if err := h.requireSubmissionAccess(c); err != nil {
		return err
	}

	var req updateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	ok := h.missions.UpdateSubmission(c.Context(), c.Params("id"), c.Params("sid"), mission.SubmissionPatch{
		FileName: req.FileName,
		FileURL:  req.FileURL,
		FileType: req.FileType,
		FileSize: req.FileSize,
	})
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "submission not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// DeleteSubmission removes a report. Deleting an unknown submission id on
// an existing mission is a silent no-op, same as the store.
func (h *Handler) DeleteSubmission(c *fiber.Ctx) error {
	if err := h.requireSubmissionAccess(c); err != nil {
		return err
	}

	if !h.missions.DeleteSubmission(c.Context(), c.Params("id"), c.Params("sid")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "mission not found",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

// requireSubmissionAccess lets admins through and otherwise insists the
// submission belongs to the caller. An absent submission is left for the
// store to handle so no-op deletes keep their semantics.
func (h *Handler) requireSubmissionAccess(c *fiber.Ctx) error {
	principal, _ := middleware.Principal(c)
	if principal.Role == model.RoleAdmin {
		return nil
	}

	sub, ok := h.missions.SubmissionByID(c.Params("id"), c.Params("sid"))
	if ok && sub.UserID != principal.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "not your submission",
		})
	}
	return nil
}
