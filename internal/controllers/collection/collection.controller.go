package collectionController

import (
	"context"

	"meeplelog/internal/events"
	"meeplelog/internal/logger"
	. "meeplelog/internal/models"
	"meeplelog/internal/repositories"
)

// GameDetail bundles a game with its derived play data for the detail view.
type GameDetail struct {
	Game       Game          `json:"game"`
	Sessions   []PlaySession `json:"sessions"`
	PlayCount  int           `json:"playCount"`
	LastPlayed string        `json:"lastPlayed,omitempty"`
}

type CollectionControllerInterface interface {
	UpsertGame(ctx context.Context, input GameInput) (*Game, error)
	DeleteGame(ctx context.Context, id string) error
	GetGameDetail(id string) (*GameDetail, error)

	ListSessions() []PlaySession
	UpsertSession(ctx context.Context, input PlaySessionInput) (*PlaySession, error)
	DeleteSession(ctx context.Context, id string) error
}

type CollectionController struct {
	repo     repositories.CollectionRepository
	eventBus *events.EventBus
	log      logger.Logger
}

func New(
	repos repositories.Repository,
	eventBus *events.EventBus,
) CollectionControllerInterface {
	return &CollectionController{
		repo:     repos.Collection,
		eventBus: eventBus,
		log:      logger.New("collectionController"),
	}
}

func (c *CollectionController) UpsertGame(
	ctx context.Context,
	input GameInput,
) (*Game, error) {
	game, err := c.repo.UpsertGame(ctx, input)
	if err != nil {
		return game, err
	}
	if game == nil {
		return nil, ErrNotFound
	}

	c.eventBus.Publish(events.CollectionChanged, game.ID)
	return game, nil
}

func (c *CollectionController) DeleteGame(ctx context.Context, id string) error {
	if err := c.repo.DeleteGame(ctx, id); err != nil {
		return err
	}

	c.eventBus.Publish(events.CollectionChanged, id)
	return nil
}

func (c *CollectionController) GetGameDetail(id string) (*GameDetail, error) {
	game, found := c.repo.GetGame(id)
	if !found {
		return nil, ErrNotFound
	}

	sessions := c.repo.SessionsForGame(id)
	lastPlayed, _ := c.repo.LastPlayedDate(id)

	return &GameDetail{
		Game:       game,
		Sessions:   sessions,
		PlayCount:  c.repo.PlayCount(id),
		LastPlayed: lastPlayed,
	}, nil
}

func (c *CollectionController) ListSessions() []PlaySession {
	return c.repo.Sessions()
}

func (c *CollectionController) UpsertSession(
	ctx context.Context,
	input PlaySessionInput,
) (*PlaySession, error) {
	session, err := c.repo.UpsertSession(ctx, input)
	if err != nil {
		return session, err
	}
	if session == nil {
		return nil, ErrNotFound
	}

	c.eventBus.Publish(events.SessionsChanged, session.ID)
	return session, nil
}

func (c *CollectionController) DeleteSession(ctx context.Context, id string) error {
	if err := c.repo.DeleteSession(ctx, id); err != nil {
		return err
	}

	c.eventBus.Publish(events.SessionsChanged, id)
	return nil
}
