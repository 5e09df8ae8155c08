package controllers

import (
	"meeplelog/internal/database"
	"meeplelog/internal/events"
	"meeplelog/internal/repositories"
	"meeplelog/internal/services"

	collectionController "meeplelog/internal/controllers/collection"
	settingsController "meeplelog/internal/controllers/settings"
	statsController "meeplelog/internal/controllers/stats"
	transferController "meeplelog/internal/controllers/transfer"
)

type Controllers struct {
	Collection collectionController.CollectionControllerInterface
	Stats      statsController.StatsControllerInterface
	Transfer   transferController.TransferControllerInterface
	Settings   settingsController.SettingsControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	eventBus *events.EventBus,
	db database.DB,
) Controllers {
	return Controllers{
		Collection: collectionController.New(repos, eventBus),
		Stats:      statsController.New(repos, services),
		Transfer:   transferController.New(services, eventBus),
		Settings:   settingsController.New(&db),
	}
}
