package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"meeplelog/internal/constants"
	"meeplelog/internal/logger"
	"meeplelog/internal/migration"
	. "meeplelog/internal/models"
)

// CollectionRepository owns the two primary collections in memory. Every
// mutation runs to completion, persists the touched collection as a whole
// blob, and only then returns. Collection order is insertion order; display
// order is the stats service's problem.
type CollectionRepository interface {
	Load(ctx context.Context) error

	Games() []Game
	GetGame(id string) (Game, bool)
	UpsertGame(ctx context.Context, input GameInput) (*Game, error)
	DeleteGame(ctx context.Context, id string) error

	Sessions() []PlaySession
	UpsertSession(ctx context.Context, input PlaySessionInput) (*PlaySession, error)
	DeleteSession(ctx context.Context, id string) error

	SessionsForGame(id string) []PlaySession
	PlayCount(gameID string) int
	LastPlayedDate(gameID string) (string, bool)

	ReplaceAll(ctx context.Context, games []Game, sessions []PlaySession) error
	Flush(ctx context.Context) error
}

// BlobStore is the slice of the database this repository needs: named string
// blobs with synchronous writes.
type BlobStore interface {
	Read(ctx context.Context, key string) (string, bool, error)
	Write(ctx context.Context, key string, value string) error
}

type collectionRepository struct {
	store BlobStore
	log   logger.Logger

	mu       sync.RWMutex
	games    []Game
	sessions []PlaySession
}

func NewCollectionRepository(store BlobStore) CollectionRepository {
	return &collectionRepository{
		store: store,
		log:   logger.New("collectionRepository"),
	}
}

// Load reads both collections from storage, migrating every game record.
// Corrupt blobs are reported and treated as empty collections so startup
// never halts on bad data.
func (r *collectionRepository) Load(ctx context.Context) error {
	log := r.log.Function("Load")

	r.mu.Lock()
	defer r.mu.Unlock()

	r.games = nil
	r.sessions = nil

	raw, found, err := r.store.Read(ctx, constants.GamesStorageKey)
	if err != nil {
		return log.Err("failed to read games collection", err)
	}
	if found {
		var rawGames []migration.RawGame
		if err := json.Unmarshal([]byte(raw), &rawGames); err != nil {
			log.Warn("stored games collection is unparsable, starting empty", "error", err)
		} else {
			r.games = migration.MigrateGames(rawGames)
		}
	}

	raw, found, err = r.store.Read(ctx, constants.SessionsStorageKey)
	if err != nil {
		return log.Err("failed to read sessions collection", err)
	}
	if found {
		var rawSessions []migration.RawSession
		if err := json.Unmarshal([]byte(raw), &rawSessions); err != nil {
			log.Warn("stored sessions collection is unparsable, starting empty", "error", err)
		} else {
			r.sessions = migration.MigrateSessions(rawSessions)
		}
	}

	log.Info("Collections loaded", "games", len(r.games), "sessions", len(r.sessions))
	return nil
}

func (r *collectionRepository) Games() []Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	games := make([]Game, len(r.games))
	copy(games, r.games)
	return games
}

func (r *collectionRepository) Sessions() []PlaySession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]PlaySession, len(r.sessions))
	copy(sessions, r.sessions)
	return sessions
}

func (r *collectionRepository) GetGame(id string) (Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, game := range r.games {
		if game.ID == id {
			return game, true
		}
	}
	return Game{}, false
}

// UpsertGame creates a game when input.ID is absent and merges into the
// existing record when it is present. An unknown id is a no-op returning a
// nil game, not an error; the adapter layer decides how loud to be about it.
// The in-memory mutation is kept even when the persist fails.
func (r *collectionRepository) UpsertGame(
	ctx context.Context,
	input GameInput,
) (*Game, error) {
	log := r.log.Function("UpsertGame")

	r.mu.Lock()
	defer r.mu.Unlock()

	if input.ID == nil {
		if input.Title == nil || *input.Title == "" {
			return nil, log.Err("rejecting game without title", fmt.Errorf("%w: title is required", ErrValidation))
		}

		game := NewGame(input)
		r.games = append(r.games, game)

		if err := r.persistGames(ctx); err != nil {
			return &game, err
		}
		return &game, nil
	}

	for i := range r.games {
		if r.games[i].ID != *input.ID {
			continue
		}

		r.games[i].Apply(input)
		game := r.games[i]

		if err := r.persistGames(ctx); err != nil {
			return &game, err
		}
		return &game, nil
	}

	log.Debug("upsert for unknown game id ignored", "id", *input.ID)
	return nil, nil
}

// DeleteGame removes the game and cascades to every session referencing it,
// so no orphan sessions survive. Unknown ids are already-satisfied no-ops.
func (r *collectionRepository) DeleteGame(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	games := r.games[:0]
	removed := false
	for _, game := range r.games {
		if game.ID == id {
			removed = true
			continue
		}
		games = append(games, game)
	}
	r.games = games

	if !removed {
		return nil
	}

	sessions := r.sessions[:0]
	cascaded := 0
	for _, session := range r.sessions {
		if session.GameID == id {
			cascaded++
			continue
		}
		sessions = append(sessions, session)
	}
	r.sessions = sessions

	r.log.Function("DeleteGame").
		Info("Game deleted", "id", id, "cascadedSessions", cascaded)

	if err := r.persistGames(ctx); err != nil {
		return err
	}
	if cascaded > 0 {
		return r.persistSessions(ctx)
	}
	return nil
}

// UpsertSession mirrors UpsertGame. Creation requires a gameId referencing an
// existing game; updates do not re-check the reference (the game may have
// been deleted since, which the cascade already handled for stored sessions).
func (r *collectionRepository) UpsertSession(
	ctx context.Context,
	input PlaySessionInput,
) (*PlaySession, error) {
	log := r.log.Function("UpsertSession")

	r.mu.Lock()
	defer r.mu.Unlock()

	if input.ID == nil {
		if input.GameID == nil || *input.GameID == "" {
			return nil, log.Err("rejecting session without gameId", fmt.Errorf("%w: gameId is required", ErrValidation))
		}
		if !r.gameExists(*input.GameID) {
			return nil, log.Err(
				"rejecting session for unknown game",
				fmt.Errorf("%w: gameId does not reference an existing game", ErrValidation),
				"gameId", *input.GameID,
			)
		}

		session := NewPlaySession(input)
		r.sessions = append(r.sessions, session)

		if err := r.persistSessions(ctx); err != nil {
			return &session, err
		}
		return &session, nil
	}

	for i := range r.sessions {
		if r.sessions[i].ID != *input.ID {
			continue
		}

		r.sessions[i].Apply(input)
		session := r.sessions[i]

		if err := r.persistSessions(ctx); err != nil {
			return &session, err
		}
		return &session, nil
	}

	log.Debug("upsert for unknown session id ignored", "id", *input.ID)
	return nil, nil
}

func (r *collectionRepository) DeleteSession(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := r.sessions[:0]
	removed := false
	for _, session := range r.sessions {
		if session.ID == id {
			removed = true
			continue
		}
		sessions = append(sessions, session)
	}
	r.sessions = sessions

	if !removed {
		return nil
	}
	return r.persistSessions(ctx)
}

// SessionsForGame returns the game's sessions newest-date-first. The sort is
// stable, so sessions sharing a date keep their insertion order. YYYY-MM-DD
// strings compare in date order and the empty date sorts last.
func (r *collectionRepository) SessionsForGame(id string) []PlaySession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []PlaySession
	for _, session := range r.sessions {
		if session.GameID == id {
			sessions = append(sessions, session)
		}
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date > sessions[j].Date
	})

	return sessions
}

func (r *collectionRepository) PlayCount(gameID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, session := range r.sessions {
		if session.GameID == gameID {
			count++
		}
	}
	return count
}

func (r *collectionRepository) LastPlayedDate(gameID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	last := ""
	found := false
	for _, session := range r.sessions {
		if session.GameID != gameID {
			continue
		}
		found = true
		if session.Date > last {
			last = session.Date
		}
	}
	return last, found
}

// ReplaceAll swaps in a whole new state, used by import. Persist failures
// follow the usual policy: the new in-memory state is kept, the error is
// surfaced.
func (r *collectionRepository) ReplaceAll(
	ctx context.Context,
	games []Game,
	sessions []PlaySession,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.games = games
	r.sessions = sessions

	r.log.Function("ReplaceAll").
		Info("Collections replaced", "games", len(games), "sessions", len(sessions))

	if err := r.persistGames(ctx); err != nil {
		return err
	}
	return r.persistSessions(ctx)
}

// Flush persists both collections unconditionally.
func (r *collectionRepository) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.persistGames(ctx); err != nil {
		return err
	}
	return r.persistSessions(ctx)
}

func (r *collectionRepository) gameExists(id string) bool {
	for _, game := range r.games {
		if game.ID == id {
			return true
		}
	}
	return false
}

func (r *collectionRepository) persistGames(ctx context.Context) error {
	games := r.games
	if games == nil {
		games = []Game{}
	}
	blob, err := json.Marshal(games)
	if err != nil {
		return r.log.Err("failed to marshal games collection", err)
	}
	return r.store.Write(ctx, constants.GamesStorageKey, string(blob))
}

func (r *collectionRepository) persistSessions(ctx context.Context) error {
	sessions := r.sessions
	if sessions == nil {
		sessions = []PlaySession{}
	}
	blob, err := json.Marshal(sessions)
	if err != nil {
		return r.log.Err("failed to marshal sessions collection", err)
	}
	return r.store.Write(ctx, constants.SessionsStorageKey, string(blob))
}
