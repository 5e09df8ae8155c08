// Command import loads an export document from a file into the local store,
// replacing whatever is there. Useful for seeding a fresh install from a
// backup without going through the HTTP surface.
package main

import (
	"context"
	"os"

	"meeplelog/config"
	"meeplelog/internal/database"
	"meeplelog/internal/logger"
	"meeplelog/internal/repositories"
	"meeplelog/internal/services"
)

func main() {
	log := logger.New("import")

	if len(os.Args) != 2 {
		_ = log.ErrMsg("usage: import <document.json>")
		os.Exit(2)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Er("failed to read document", err, "path", os.Args[1])
		os.Exit(1)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	ctx := context.Background()
	repo := repositories.NewCollectionRepository(&db)
	if err := repo.Load(ctx); err != nil {
		os.Exit(1)
	}

	transfer := services.NewTransferService(repo)
	if err := transfer.Import(ctx, data); err != nil {
		log.Er("import failed", err, "path", os.Args[1])
		os.Exit(1)
	}

	log.Info("Import complete",
		"path", os.Args[1],
		"games", len(repo.Games()),
		"sessions", len(repo.Sessions()),
	)
}
