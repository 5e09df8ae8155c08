package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"meeplelog/internal/logger"
	"meeplelog/internal/migration"
	. "meeplelog/internal/models"
	"meeplelog/internal/repositories"
)

const documentVersion = 1

// Document is the portable export format. The same shape round-trips back in
// through Import.
type Document struct {
	Version    int           `json:"version"`
	ExportedAt string        `json:"exportedAt"`
	Games      []Game        `json:"games"`
	Sessions   []PlaySession `json:"sessions"`
}

// importDocument distinguishes an absent games field from an empty one, which
// Document cannot.
type importDocument struct {
	Version    int                    `json:"version"`
	ExportedAt string                 `json:"exportedAt"`
	Games      *[]migration.RawGame   `json:"games"`
	Sessions   []migration.RawSession `json:"sessions"`
}

// TransferService serializes the full data set to the portable document
// format and adopts documents back, replacing the entire state.
type TransferService struct {
	repo repositories.CollectionRepository
	log  logger.Logger
}

func NewTransferService(repo repositories.CollectionRepository) *TransferService {
	return &TransferService{
		repo: repo,
		log:  logger.New("transferService"),
	}
}

// Export snapshots the current collections into a document.
func (s *TransferService) Export() Document {
	games := s.repo.Games()
	sessions := s.repo.Sessions()

	if games == nil {
		games = []Game{}
	}
	if sessions == nil {
		sessions = []PlaySession{}
	}

	return Document{
		Version:    documentVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Games:      games,
		Sessions:   sessions,
	}
}

// Import parses and validates a document, migrates every game, and replaces
// the entire in-memory state. A malformed document is rejected wholesale; the
// previous state is untouched. Missing sessions default to empty.
func (s *TransferService) Import(ctx context.Context, data []byte) error {
	log := s.log.Function("Import")

	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return log.Err(
			"rejecting unparsable import document",
			fmt.Errorf("%w: invalid import document", ErrValidation),
			"parseError", err.Error(),
		)
	}

	if doc.Games == nil {
		return log.Err(
			"rejecting import document without games array",
			fmt.Errorf("%w: import document must contain a games array", ErrValidation),
		)
	}

	games := migration.MigrateGames(*doc.Games)
	sessions := migration.MigrateSessions(doc.Sessions)

	if err := s.repo.ReplaceAll(ctx, games, sessions); err != nil {
		return err
	}

	log.Info("Import complete", "games", len(games), "sessions", len(sessions))
	return nil
}
