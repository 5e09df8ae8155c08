package models

import (
	"time"

	"github.com/google/uuid"
)

type GameStatus string

const (
	GameStatusOwned           GameStatus = "owned"
	GameStatusWishlist        GameStatus = "wishlist"
	GameStatusPreviouslyOwned GameStatus = "previously-owned"
)

// Game is one collection entry. Everything except ID, Title, Status and
// CreatedAt is optional; absent means the pointer is nil, never a sentinel
// value. Dates are stored as YYYY-MM-DD strings.
type Game struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	YearPublished   *int       `json:"yearPublished,omitempty"`
	Designer        *string    `json:"designer,omitempty"`
	Publisher       *string    `json:"publisher,omitempty"`
	Categories      *string    `json:"categories,omitempty"`
	MinPlayers      *int       `json:"minPlayers,omitempty"`
	MaxPlayers      *int       `json:"maxPlayers,omitempty"`
	PlayTime        *int       `json:"playTime,omitempty"`
	Complexity      *float64   `json:"complexity,omitempty"`
	Rating          *float64   `json:"rating,omitempty"`
	AcquisitionDate *string    `json:"acquisitionDate,omitempty"`
	ImageURL        *string    `json:"imageUrl,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	Status          GameStatus `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// GameInput is a partial Game for upserts. A nil field means "leave the
// stored value alone"; a nil ID means "create".
type GameInput struct {
	ID              *string     `json:"id,omitempty"`
	Title           *string     `json:"title,omitempty"`
	YearPublished   *int        `json:"yearPublished,omitempty"`
	Designer        *string     `json:"designer,omitempty"`
	Publisher       *string     `json:"publisher,omitempty"`
	Categories      *string     `json:"categories,omitempty"`
	MinPlayers      *int        `json:"minPlayers,omitempty"`
	MaxPlayers      *int        `json:"maxPlayers,omitempty"`
	PlayTime        *int        `json:"playTime,omitempty"`
	Complexity      *float64    `json:"complexity,omitempty"`
	Rating          *float64    `json:"rating,omitempty"`
	AcquisitionDate *string     `json:"acquisitionDate,omitempty"`
	ImageURL        *string     `json:"imageUrl,omitempty"`
	Notes           *string     `json:"notes,omitempty"`
	Status          *GameStatus `json:"status,omitempty"`
}

// NewID allocates a collision-free identifier. UUIDv7 combines a
// high-resolution time component with a random component.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewGame builds a fresh Game from an input, allocating ID and CreatedAt.
// Title presence is the caller's contract; repositories enforce it.
func NewGame(input GameInput) Game {
	game := Game{
		ID:        NewID(),
		Status:    GameStatusOwned,
		CreatedAt: time.Now().UTC(),
	}
	game.Apply(input)
	return game
}

// Apply merges the present input fields over the game. ID and CreatedAt are
// never touched.
func (g *Game) Apply(input GameInput) {
	if input.Title != nil {
		g.Title = *input.Title
	}
	if input.YearPublished != nil {
		g.YearPublished = input.YearPublished
	}
	if input.Designer != nil {
		g.Designer = input.Designer
	}
	if input.Publisher != nil {
		g.Publisher = input.Publisher
	}
	if input.Categories != nil {
		g.Categories = input.Categories
	}
	if input.MinPlayers != nil {
		g.MinPlayers = input.MinPlayers
	}
	if input.MaxPlayers != nil {
		g.MaxPlayers = input.MaxPlayers
	}
	if input.PlayTime != nil {
		g.PlayTime = input.PlayTime
	}
	if input.Complexity != nil {
		g.Complexity = input.Complexity
	}
	if input.Rating != nil {
		g.Rating = input.Rating
	}
	if input.AcquisitionDate != nil {
		g.AcquisitionDate = input.AcquisitionDate
	}
	if input.ImageURL != nil {
		g.ImageURL = input.ImageURL
	}
	if input.Notes != nil {
		g.Notes = input.Notes
	}
	if input.Status != nil {
		g.Status = *input.Status
	}
}
