package statsController

import (
	"meeplelog/internal/logger"
	. "meeplelog/internal/models"
	"meeplelog/internal/repositories"
	"meeplelog/internal/services"
)

// Dashboard is everything the stats view renders in one payload.
type Dashboard struct {
	Overview        services.Overview      `json:"overview"`
	MostPlayed      []services.RankedGame  `json:"mostPlayed"`
	FrequentPlayers []services.PlayerTally `json:"frequentPlayers"`
	PlayHistory     []services.MonthTally  `json:"playHistory"`
}

type StatsControllerInterface interface {
	ListGames(query services.GameQuery) []Game
	GetDashboard() Dashboard
}

type StatsController struct {
	repo  repositories.CollectionRepository
	stats *services.StatsService
	log   logger.Logger
}

func New(repos repositories.Repository, svc services.Service) StatsControllerInterface {
	return &StatsController{
		repo:  repos.Collection,
		stats: svc.Stats,
		log:   logger.New("statsController"),
	}
}

// ListGames snapshots both collections and hands them to the pure engine.
func (c *StatsController) ListGames(query services.GameQuery) []Game {
	return c.stats.FilterGames(c.repo.Games(), c.repo.Sessions(), query)
}

func (c *StatsController) GetDashboard() Dashboard {
	games := c.repo.Games()
	sessions := c.repo.Sessions()

	return Dashboard{
		Overview:        c.stats.CollectionOverview(games, sessions),
		MostPlayed:      c.stats.MostPlayed(games, sessions),
		FrequentPlayers: c.stats.FrequentPlayers(sessions),
		PlayHistory:     c.stats.PlayHistory(sessions),
	}
}
