package handlers

import (
	"errors"

	"meeplelog/internal/app"
	collectionController "meeplelog/internal/controllers/collection"
	statsController "meeplelog/internal/controllers/stats"
	"meeplelog/internal/logger"
	"meeplelog/internal/models"
	"meeplelog/internal/services"

	"github.com/gofiber/fiber/v2"
)

type GameHandler struct {
	Handler
	collection collectionController.CollectionControllerInterface
	stats      statsController.StatsControllerInterface
}

func NewGameHandler(app app.App, router fiber.Router) *GameHandler {
	log := logger.New("gameHandler")
	return &GameHandler{
		collection: app.Controllers.Collection,
		stats:      app.Controllers.Stats,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *GameHandler) Register() {
	games := h.router.Group("/games")
	games.Get("", h.listGames)
	games.Post("", h.upsertGame)
	games.Get("/:id", h.getGame)
	games.Delete("/:id", h.deleteGame)
}

// listGames serves the filtered, sorted collection view. The query maps
// straight onto the aggregation engine: search, status, sort.
func (h *GameHandler) listGames(c *fiber.Ctx) error {
	query := services.GameQuery{
		Search: c.Query("search"),
		Status: c.Query("status", services.StatusFilterAll),
		SortBy: services.SortKey(c.Query("sort", string(services.SortByTitle))),
	}

	return c.JSON(fiber.Map{
		"games": h.stats.ListGames(query),
	})
}

func (h *GameHandler) upsertGame(c *fiber.Ctx) error {
	var input models.GameInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	game, err := h.collection.UpsertGame(c.Context(), input)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Game not found",
			})
		}
		// Persist failures reach here: the mutation is applied in memory but
		// unsaved, and the client needs to know.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save game",
			"game":  game,
		})
	}

	status := fiber.StatusOK
	if input.ID == nil {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"game": game,
	})
}

func (h *GameHandler) getGame(c *fiber.Ctx) error {
	detail, err := h.collection.GetGameDetail(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Game not found",
		})
	}

	return c.JSON(detail)
}

func (h *GameHandler) deleteGame(c *fiber.Ctx) error {
	if err := h.collection.DeleteGame(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete game",
		})
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}
