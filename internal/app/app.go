package app

import (
	"context"

	"meeplelog/config"
	"meeplelog/internal/controllers"
	"meeplelog/internal/database"
	"meeplelog/internal/events"
	"meeplelog/internal/handlers/middleware"
	"meeplelog/internal/jobs"
	"meeplelog/internal/logger"
	"meeplelog/internal/repositories"
	"meeplelog/internal/services"
	"meeplelog/internal/websockets"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	Repository  repositories.Repository
	Services    services.Service
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New()

	repos := repositories.New(db)
	if err := repos.Collection.Load(context.Background()); err != nil {
		return &App{}, log.Err("failed to load collections from storage", err)
	}

	service := services.New(repos)
	websocket := websockets.New(eventBus)
	middleware := middleware.New(db, config)
	controllers := controllers.New(service, repos, eventBus, db)

	if config.SchedulerEnabled {
		backupJob := jobs.NewBackupJob(
			service.Transfer,
			config.BackupDir,
			config.BackupRetention,
			services.Daily,
		)
		if err := service.Scheduler.AddJob(backupJob); err != nil {
			return &App{}, log.Err("failed to register backup job", err)
		}
		if err := service.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
		log.Info("Registered daily backup job with scheduler", "dir", config.BackupDir)
	}

	app := &App{
		Database:    db,
		Middleware:  middleware,
		Websocket:   websocket,
		EventBus:    eventBus,
		Config:      config,
		Repository:  repos,
		Services:    service,
		Controllers: controllers,
	}

	log.Info("App initialized")
	return app, nil
}

func (a *App) Close() error {
	log := logger.New("app").Function("Close")

	if a.Services.Scheduler != nil && a.Services.Scheduler.IsRunning() {
		if err := a.Services.Scheduler.Stop(context.Background()); err != nil {
			log.Er("failed to stop scheduler", err)
		}
	}

	if a.Repository.Collection != nil {
		if err := a.Repository.Collection.Flush(context.Background()); err != nil {
			log.Er("failed to flush collections", err)
		}
	}

	return a.Database.Close()
}
