// Package migration normalizes records loaded from storage or import into the
// current schema. It lives at the storage boundary and stays pure: no storage
// access, no repository state.
package migration

import (
	"time"

	"meeplelog/internal/models"
)

// RawGame is a game as it may appear in storage or an import document. Early
// versions of the app stored the title under "name" and had no status or
// createdAt fields; the embedded Game picks up everything current.
type RawGame struct {
	models.Game
	Name *string `json:"name,omitempty"`
}

// RawSession exists for symmetry at the import boundary; sessions have only
// ever had one schema generation.
type RawSession struct {
	models.PlaySession
}

// MigrateGame maps a raw record onto the current schema. Safe to run on
// already-migrated records: a second pass changes nothing.
func MigrateGame(raw RawGame) models.Game {
	game := raw.Game
	if game.Title == "" && raw.Name != nil {
		game.Title = *raw.Name
	}
	if game.Status == "" {
		game.Status = models.GameStatusOwned
	}
	if game.CreatedAt.IsZero() {
		game.CreatedAt = time.Now().UTC()
	}
	return game
}

// MigrateSession defaults CreatedAt for records imported from documents that
// predate the field; everything else passes through unchanged.
func MigrateSession(raw RawSession) models.PlaySession {
	session := raw.PlaySession
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	return session
}

func MigrateGames(raws []RawGame) []models.Game {
	games := make([]models.Game, 0, len(raws))
	for _, raw := range raws {
		games = append(games, MigrateGame(raw))
	}
	return games
}

func MigrateSessions(raws []RawSession) []models.PlaySession {
	sessions := make([]models.PlaySession, 0, len(raws))
	for _, raw := range raws {
		sessions = append(sessions, MigrateSession(raw))
	}
	return sessions
}
