package handlers

import (
	"errors"

	"meeplelog/internal/app"
	collectionController "meeplelog/internal/controllers/collection"
	"meeplelog/internal/logger"
	"meeplelog/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	Handler
	collection collectionController.CollectionControllerInterface
}

func NewSessionHandler(app app.App, router fiber.Router) *SessionHandler {
	log := logger.New("sessionHandler")
	return &SessionHandler{
		collection: app.Controllers.Collection,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SessionHandler) Register() {
	sessions := h.router.Group("/sessions")
	sessions.Get("", h.listSessions)
	sessions.Post("", h.upsertSession)
	sessions.Delete("/:id", h.deleteSession)
}

func (h *SessionHandler) listSessions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"sessions": h.collection.ListSessions(),
	})
}

func (h *SessionHandler) upsertSession(c *fiber.Ctx) error {
	var input models.PlaySessionInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	session, err := h.collection.UpsertSession(c.Context(), input)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to save session",
			"session": session,
		})
	}

	status := fiber.StatusOK
	if input.ID == nil {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"session": session,
	})
}

func (h *SessionHandler) deleteSession(c *fiber.Ctx) error {
	if err := h.collection.DeleteSession(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete session",
		})
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
