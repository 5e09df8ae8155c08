package handlers

import (
	"meeplelog/internal/app"
	settingsController "meeplelog/internal/controllers/settings"
	"meeplelog/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type SettingsHandler struct {
	Handler
	settings settingsController.SettingsControllerInterface
}

func NewSettingsHandler(app app.App, router fiber.Router) *SettingsHandler {
	log := logger.New("settingsHandler")
	return &SettingsHandler{
		settings: app.Controllers.Settings,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SettingsHandler) Register() {
	h.router.Get("/settings/theme", h.getTheme)
	h.router.Put("/settings/theme", h.setTheme)
}

func (h *SettingsHandler) getTheme(c *fiber.Ctx) error {
	theme, err := h.settings.GetTheme(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read theme",
		})
	}

	return c.JSON(fiber.Map{
		"theme": theme,
	})
}

func (h *SettingsHandler) setTheme(c *fiber.Ctx) error {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := c.BodyParser(&req); err != nil || req.Theme == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.settings.SetTheme(c.Context(), req.Theme); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save theme",
		})
	}

	return c.JSON(fiber.Map{
		"theme": req.Theme,
	})
}
