package api

import (
	"github.com/gofiber/fiber/v2"

	"pmportal/internal/directory"
	"pmportal/internal/model"
)

func (h *Handler) ListUnits(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"units": h.directory.Units()})
}

func (h *Handler) ListUsers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"users": h.directory.Accounts()})
}

func (h *Handler) GetUser(c *fiber.Ctx) error {
	account, ok := h.directory.AccountByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "user not found",
		})
	}
	return c.JSON(fiber.Map{"user": account})
}

type createUserRequest struct {
	Name   string     `json:"name" validate:"required"`
	Email  string     `json:"email" validate:"required,email"`
	Role   model.Role `json:"role" validate:"required,oneof=admin user"`
	UnitID string     `json:"unitId" validate:"required"`
	Active bool       `json:"active"`
}

func (h *Handler) CreateUser(c *fiber.Ctx) error {
	var req createUserRequest
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

	unit, ok := h.unitByID(req.UnitID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown unit",
		})
	}

	ok = h.directory.AddAccount(c.Context(), directory.AddParams{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Unit:   unit,
		Active: req.Active,
	})
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "já existe um usuário com este e-mail",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

type updateUserRequest struct {
	Name   *string     `json:"name"`
	Email  *string     `json:"email"`
	Role   *model.Role `json:"role"`
	UnitID *string     `json:"unitId"`
	Active *bool       `json:"active"`
}

func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	patch := directory.Patch{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Active: req.Active,
	}
	if req.UnitID != nil {
		unit, ok := h.unitByID(*req.UnitID)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown unit",
			})
		}
		patch.Unit = &unit
	}

	if !h.directory.UpdateAccount(c.Context(), c.Params("id"), patch) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "update rejected",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	if !h.directory.DeleteAccount(c.Context(), c.Params("id")) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "delete failed",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) ToggleUserActive(c *fiber.Ctx) error {
	if !h.directory.ToggleActive(c.Context(), c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "user not found",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *Handler) unitByID(id string) (model.Unit, bool) {
	for _, unit := range h.directory.Units() {
		if unit.ID == id {
			return unit, true
		}
	}
	return model.Unit{}, false
}
