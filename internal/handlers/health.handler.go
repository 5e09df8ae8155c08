package handlers

import (
	"meeplelog/config"
	"meeplelog/internal/websockets"

	"github.com/gofiber/fiber/v2"
)

func HealthHandler(router fiber.Router, config config.Config, ws *websockets.Manager) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"version": config.GeneralVersion,
			"service": "meeplelog_api",
			"clients": ws.ClientCount(),
		})
	})
}
