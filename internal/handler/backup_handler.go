package handler

import (
	"time"

	"go-pos-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
)

type BackupHandler struct {
	service service.BackupService
}

func NewBackupHandler(s service.BackupService) *BackupHandler {
	return &BackupHandler{service: s}
}

// Export dumps every collection into one JSON document
// GET /api/v1/admin/backup
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	doc, err := h.service.Export()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	filename := "backup-" + time.Now().Format("20060102-150405") + ".json"
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.JSON(doc)
}

// Restore wipes the database and reloads it from an exported document.
// All-or-nothing.
// POST /api/v1/admin/restore
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	var doc service.BackupDocument
	if err := c.BodyParser(&doc); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Restore(&doc, getUserID(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Restore completed"})
}
