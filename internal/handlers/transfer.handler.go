package handlers

import (
	"errors"

	"meeplelog/internal/app"
	transferController "meeplelog/internal/controllers/transfer"
	"meeplelog/internal/logger"
	"meeplelog/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TransferHandler struct {
	Handler
	transfer transferController.TransferControllerInterface
}

func NewTransferHandler(app app.App, router fiber.Router) *TransferHandler {
	log := logger.New("transferHandler")
	return &TransferHandler{
		transfer: app.Controllers.Transfer,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *TransferHandler) Register() {
	h.router.Get("/export", h.exportCollection)
	h.router.Post("/import", h.importCollection)
}

func (h *TransferHandler) exportCollection(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="meeplelog-export.json"`)
	return c.JSON(h.transfer.Export())
}

// importCollection takes the raw body as the document; a rejected document
// leaves the previous state untouched.
func (h *TransferHandler) importCollection(c *fiber.Ctx) error {
	if err := h.transfer.Import(c.Context(), c.Body()); err != nil {
		if errors.Is(err, models.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to import collection",
		})
	}

	return c.JSON(fiber.Map{
		"status": "imported",
	})
}
