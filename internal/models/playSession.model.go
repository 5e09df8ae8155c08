package models

import "time"

// PlaySession records one play event against a game. Player and winner names
// are free text and deliberately not normalized: case or whitespace variants
// count as distinct people, and winners need not appear in Players.
type PlaySession struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId"`
	Date      string    `json:"date,omitempty"`
	Duration  *int      `json:"duration,omitempty"`
	Players   []string  `json:"players,omitempty"`
	Winners   []string  `json:"winners,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type PlaySessionInput struct {
	ID       *string  `json:"id,omitempty"`
	GameID   *string  `json:"gameId,omitempty"`
	Date     *string  `json:"date,omitempty"`
	Duration *int     `json:"duration,omitempty"`
	Players  []string `json:"players,omitempty"`
	Winners  []string `json:"winners,omitempty"`
	Notes    *string  `json:"notes,omitempty"`
}

func NewPlaySession(input PlaySessionInput) PlaySession {
	session := PlaySession{
		ID:        NewID(),
		CreatedAt: time.Now().UTC(),
	}
	session.Apply(input)
	return session
}

// Apply merges the present input fields over the session. ID and CreatedAt
// are never touched.
func (s *PlaySession) Apply(input PlaySessionInput) {
	if input.GameID != nil {
		s.GameID = *input.GameID
	}
	if input.Date != nil {
		s.Date = *input.Date
	}
	if input.Duration != nil {
		s.Duration = input.Duration
	}
	if input.Players != nil {
		s.Players = input.Players
	}
	if input.Winners != nil {
		s.Winners = input.Winners
	}
	if input.Notes != nil {
		s.Notes = input.Notes
	}
}

// MonthKey returns the YYYY-MM bucket for the session date, or "" when the
// date is absent or too short to carry a month.
func (s PlaySession) MonthKey() string {
	if len(s.Date) < 7 {
		return ""
	}
	return s.Date[:7]
}
