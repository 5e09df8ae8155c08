package handlers

import (
	"meeplelog/internal/app"
	statsController "meeplelog/internal/controllers/stats"
	"meeplelog/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	Handler
	stats statsController.StatsControllerInterface
}

func NewStatsHandler(app app.App, router fiber.Router) *StatsHandler {
	log := logger.New("statsHandler")
	return &StatsHandler{
		stats: app.Controllers.Stats,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *StatsHandler) Register() {
	h.router.Get("/stats", h.getDashboard)
}

func (h *StatsHandler) getDashboard(c *fiber.Ctx) error {
	return c.JSON(h.stats.GetDashboard())
}
