package api

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"pmportal/internal/document"
	"pmportal/internal/export"
	"pmportal/internal/logger"
	"pmportal/internal/middleware"
	"pmportal/internal/model"
	"pmportal/internal/validator"
)

// ListDocuments returns all documents for admins and the caller's own
// submissions otherwise. `?unit=` narrows to one unit (admins only).
func (h *Handler) ListDocuments(c *fiber.Ctx) error {
	principal, _ := middleware.Principal(c)

	var docs []model.Document
	switch {
	case principal.Role != model.RoleAdmin:
		docs = h.documents.ByUser(principal.ID)
	case c.Query("unit") != "":
		docs = h.documents.ByUnit(c.Query("unit"))
	default:
		docs = h.documents.All()
	}

	return c.JSON(fiber.Map{"documents": docs})
}

func (h *Handler) GetDocument(c *fiber.Ctx) error {
	doc, ok := h.documents.ByID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "document not found",
		})
	}

	// Non-admins only see their own documents.
	principal, _ := middleware.Principal(c)
	if principal.Role != model.RoleAdmin && doc.SubmittedBy.ID != principal.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "not your document",
		})
	}

	return c.JSON(fiber.Map{"document": doc})
}

type submitDocumentRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	UnitID       string `json:"unitId" validate:"required"`
	UnitName     string `json:"unitName" validate:"required"`
	DocumentDate string `json:"documentDate" validate:"required"`
	FileURL      string `json:"fileUrl" validate:"required"`
	FileName     string `json:"fileName" validate:"required,upload_name"`
	FileType     string `json:"fileType" validate:"required,upload_type"`
	FileSize     int64  `json:"fileSize" validate:"required,gt=0"`
}

// SubmitDocument is the upload surface. File type, extension and size are
// checked here; the store itself validates nothing and forces the status
// to pending regardless of input.
func (h *Handler) SubmitDocument(c *fiber.Ctx) error {
	var req submitDocumentRequest
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
	if req.FileSize > validator.MaxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "o arquivo excede o tamanho máximo de 10MB",
		})
	}

	principal, _ := middleware.Principal(c)
	ok := h.documents.Submit(c.Context(), principal, document.SubmitParams{
		Title:        req.Title,
		Description:  req.Description,
		UnitID:       req.UnitID,
		UnitName:     req.UnitName,
		DocumentDate: req.DocumentDate,
		FileURL:      req.FileURL,
		FileName:     req.FileName,
		FileType:     req.FileType,
		FileSize:     req.FileSize,
	})
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "no active session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

type setStatusRequest struct {
	Status  model.DocumentStatus `json:"status" validate:"required"`
	Comment string               `json:"comment"`
}

func (h *Handler) SetDocumentStatus(c *fiber.Ctx) error {
	var req setStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if !model.ValidStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown status",
		})
	}

	principal, _ := middleware.Principal(c)
	if !h.documents.SetStatus(c.Context(), principal, c.Params("id"), req.Status, req.Comment) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "document not found",
		})
	}

	logger.WithUser(h.logger, principal.ID, string(principal.Role)).
		Info("document status updated", "document_id", c.Params("id"), "status", req.Status)
	return c.JSON(fiber.Map{"success": true})
}

type addCommentRequest struct {
	Text string `json:"text"`
}

func (h *Handler) AddDocumentComment(c *fiber.Ctx) error {
	var req addCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	principal, _ := middleware.Principal(c)
	if !h.documents.AddComment(c.Context(), principal, c.Params("id"), req.Text) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "comment rejected",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

// ExportDocuments streams the admin CSV listing.
func (h *Handler) ExportDocuments(c *fiber.Ctx) error {
	data, err := export.DocumentsCSV(h.documents.All())
	if err != nil {
		h.logger.Error("failed to build CSV export", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "export failed",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", export.FileName(time.Now())))
	return c.Send(data)
}
