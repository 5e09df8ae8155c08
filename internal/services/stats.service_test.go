package services

import (
	"testing"

	"meeplelog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func game(id, title string, status models.GameStatus) models.Game {
	return models.Game{ID: id, Title: title, Status: status}
}

func play(gameID, date string, players ...string) models.PlaySession {
	return models.PlaySession{ID: models.NewID(), GameID: gameID, Date: date, Players: players}
}

func plays(gameID, date string, n int) []models.PlaySession {
	sessions := make([]models.PlaySession, 0, n)
	for i := 0; i < n; i++ {
		sessions = append(sessions, play(gameID, date))
	}
	return sessions
}

func TestFilterGamesByStatusAndSearch(t *testing.T) {
	games := []models.Game{
		game("g1", "Catan", models.GameStatusWishlist),
		game("g2", "Caverna", models.GameStatusOwned),
		game("g3", "Patchwork", models.GameStatusOwned),
	}
	stats := NewStatsService()

	tests := []struct {
		name     string
		query    GameQuery
		expected []string
	}{
		{
			name:     "Status filter excludes regardless of search",
			query:    GameQuery{Search: "cat", Status: "owned"},
			expected: []string{"g2"},
		},
		{
			name:     "All statuses with case-insensitive substring",
			query:    GameQuery{Search: "cat", Status: StatusFilterAll},
			expected: []string{"g1"},
		},
		{
			name:     "Empty search keeps everything",
			query:    GameQuery{Status: StatusFilterAll},
			expected: []string{"g1", "g2", "g3"},
		},
		{
			name:     "Empty status behaves like all",
			query:    GameQuery{Search: "PATCH"},
			expected: []string{"g3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stats.FilterGames(games, nil, tt.query)

			ids := make([]string, 0, len(result))
			for _, g := range result {
				ids = append(ids, g.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestFilterGamesSearchesOptionalFields(t *testing.T) {
	g := game("g1", "Brass", models.GameStatusOwned)
	g.Designer = strPtr("Martin Wallace")
	g.Categories = strPtr("Economic, Network Building")
	stats := NewStatsService()

	result := stats.FilterGames([]models.Game{g}, nil, GameQuery{Search: "wallace"})
	assert.Len(t, result, 1)

	result = stats.FilterGames([]models.Game{g}, nil, GameQuery{Search: "economic"})
	assert.Len(t, result, 1)

	result = stats.FilterGames([]models.Game{g}, nil, GameQuery{Search: "uwe"})
	assert.Empty(t, result)
}

func TestSortByTitleLocaleAware(t *testing.T) {
	games := []models.Game{
		game("g1", "zombicide", models.GameStatusOwned),
		game("g2", "Azul", models.GameStatusOwned),
		game("g3", "Éclipse", models.GameStatusOwned),
		game("g4", "Brass", models.GameStatusOwned),
	}
	stats := NewStatsService()

	result := stats.FilterGames(games, nil, GameQuery{SortBy: SortByTitle})

	titles := []string{result[0].Title, result[1].Title, result[2].Title, result[3].Title}
	assert.Equal(t, []string{"Azul", "Brass", "Éclipse", "zombicide"}, titles)
}

func TestSortByRatingDescendingStable(t *testing.T) {
	zeta := game("g1", "Zeta", models.GameStatusOwned)
	zeta.Rating = floatPtr(5)
	alpha := game("g2", "Alpha", models.GameStatusOwned)
	alpha.Rating = floatPtr(5)
	unrated := game("g3", "Unrated", models.GameStatusOwned)
	top := game("g4", "Top", models.GameStatusOwned)
	top.Rating = floatPtr(9)

	stats := NewStatsService()
	result := stats.FilterGames(
		[]models.Game{zeta, alpha, unrated, top},
		nil,
		GameQuery{SortBy: SortByRating},
	)

	assert.Equal(t, "g4", result[0].ID)
	assert.Equal(t, "g1", result[1].ID, "equal ratings keep insertion order")
	assert.Equal(t, "g2", result[2].ID)
	assert.Equal(t, "g3", result[3].ID, "absent rating sorts as zero")
}

func TestSortByPlayTimeAscending(t *testing.T) {
	long := game("g1", "Long", models.GameStatusOwned)
	long.PlayTime = intPtr(180)
	short := game("g2", "Short", models.GameStatusOwned)
	short.PlayTime = intPtr(30)
	unknown := game("g3", "Unknown", models.GameStatusOwned)

	stats := NewStatsService()
	result := stats.FilterGames(
		[]models.Game{long, short, unknown},
		nil,
		GameQuery{SortBy: SortByPlayTime},
	)

	assert.Equal(t, []string{"g3", "g2", "g1"}, []string{result[0].ID, result[1].ID, result[2].ID})
}

func TestSortByPlaysAndLastPlayed(t *testing.T) {
	often := game("g1", "Often", models.GameStatusOwned)
	rarely := game("g2", "Rarely", models.GameStatusOwned)
	never := game("g3", "Never", models.GameStatusOwned)
	games := []models.Game{never, rarely, often}

	var sessions []models.PlaySession
	sessions = append(sessions, plays("g1", "2024-01-05", 3)...)
	sessions = append(sessions, play("g2", "2024-06-01"))

	stats := NewStatsService()

	byPlays := stats.FilterGames(games, sessions, GameQuery{SortBy: SortByPlays})
	assert.Equal(t, []string{"g1", "g2", "g3"},
		[]string{byPlays[0].ID, byPlays[1].ID, byPlays[2].ID})

	byLast := stats.FilterGames(games, sessions, GameQuery{SortBy: SortByLastPlayed})
	assert.Equal(t, []string{"g2", "g1", "g3"},
		[]string{byLast[0].ID, byLast[1].ID, byLast[2].ID},
		"never-played games sort last")
}

func TestMostPlayedTopNAndPercentages(t *testing.T) {
	games := []models.Game{
		game("g1", "Catan", models.GameStatusOwned),
		game("g2", "Azul", models.GameStatusOwned),
	}
	var sessions []models.PlaySession
	sessions = append(sessions, plays("g1", "2024-01-01", 5)...)
	sessions = append(sessions, plays("g2", "2024-02-01", 3)...)

	stats := NewStatsService()
	ranked := stats.MostPlayed(games, sessions)

	require.Len(t, ranked, 2)
	assert.Equal(t, "g1", ranked[0].GameID)
	assert.Equal(t, "Catan", ranked[0].Title)
	assert.Equal(t, 5, ranked[0].Count)
	assert.Equal(t, 100.0, ranked[0].Percent)
	assert.Equal(t, "g2", ranked[1].GameID)
	assert.Equal(t, 60.0, ranked[1].Percent)
}

func TestMostPlayedCapsAtTen(t *testing.T) {
	var games []models.Game
	var sessions []models.PlaySession
	for i := 0; i < 14; i++ {
		id := models.NewID()
		games = append(games, game(id, "Game", models.GameStatusOwned))
		sessions = append(sessions, plays(id, "2024-01-01", i+1)...)
	}

	ranked := NewStatsService().MostPlayed(games, sessions)

	require.Len(t, ranked, 10)
	assert.Equal(t, 14, ranked[0].Count)
	assert.Equal(t, 5, ranked[9].Count)
}

func TestFrequentPlayersExactNames(t *testing.T) {
	sessions := []models.PlaySession{
		play("g1", "2024-01-01", "Sam", "Alex"),
		play("g1", "2024-01-08", "Sam", "alex"),
		play("g1", "2024-01-15", "Sam"),
	}

	tallies := NewStatsService().FrequentPlayers(sessions)

	require.Len(t, tallies, 3)
	assert.Equal(t, PlayerTally{Name: "Sam", Count: 3, Percent: 100}, tallies[0])
	assert.Equal(t, "Alex", tallies[1].Name, "case variants are distinct players")
	assert.Equal(t, 1, tallies[1].Count)
	assert.Equal(t, "alex", tallies[2].Name)
}

func TestFrequentPlayersTieKeepsFirstSeenOrder(t *testing.T) {
	sessions := []models.PlaySession{
		play("g1", "2024-01-01", "Zoe", "Abe"),
		play("g1", "2024-01-02", "Zoe", "Abe"),
	}

	tallies := NewStatsService().FrequentPlayers(sessions)

	require.Len(t, tallies, 2)
	assert.Equal(t, "Zoe", tallies[0].Name)
	assert.Equal(t, "Abe", tallies[1].Name)
}

func TestPlayHistoryMonthBuckets(t *testing.T) {
	sessions := []models.PlaySession{
		play("g1", "2024-03-01"),
		play("g1", "2024-03-15"),
		play("g1", "2024-01-10"),
		play("g2", "2023-11-02"),
		play("g2", ""), // dateless, excluded
	}

	tallies := NewStatsService().PlayHistory(sessions)

	require.Len(t, tallies, 3)
	assert.Equal(t, MonthTally{Month: "2024-03", Count: 2, Percent: 100}, tallies[0])
	assert.Equal(t, MonthTally{Month: "2024-01", Count: 1, Percent: 50}, tallies[1])
	assert.Equal(t, MonthTally{Month: "2023-11", Count: 1, Percent: 50}, tallies[2])
}

func TestPlayHistoryKeepsTwelveMostRecentMonths(t *testing.T) {
	var sessions []models.PlaySession
	months := []string{
		"2023-01", "2023-02", "2023-03", "2023-04", "2023-05", "2023-06",
		"2023-07", "2023-08", "2023-09", "2023-10", "2023-11", "2023-12",
		"2024-01", "2024-02",
	}
	for _, month := range months {
		sessions = append(sessions, play("g1", month+"-15"))
	}

	tallies := NewStatsService().PlayHistory(sessions)

	require.Len(t, tallies, 12)
	assert.Equal(t, "2024-02", tallies[0].Month)
	assert.Equal(t, "2023-03", tallies[11].Month)
}

func TestCollectionOverview(t *testing.T) {
	games := []models.Game{
		game("g1", "A", models.GameStatusOwned),
		game("g2", "B", models.GameStatusOwned),
		game("g3", "C", models.GameStatusWishlist),
		game("g4", "D", models.GameStatusPreviouslyOwned),
	}
	short := play("g1", "2024-01-01")
	short.Duration = intPtr(45)
	long := play("g2", "2024-01-02")
	long.Duration = intPtr(120)
	unknown := play("g1", "2024-01-03")

	overview := NewStatsService().CollectionOverview(
		games,
		[]models.PlaySession{short, long, unknown},
	)

	assert.Equal(t, Overview{
		TotalGames:      4,
		Owned:           2,
		Wishlist:        1,
		PreviouslyOwned: 1,
		TotalPlays:      3,
		TotalMinutes:    165,
	}, overview)
}

func TestEmptyStateAggregation(t *testing.T) {
	stats := NewStatsService()

	assert.Empty(t, stats.MostPlayed(nil, nil))
	assert.Empty(t, stats.FrequentPlayers(nil))
	assert.Empty(t, stats.PlayHistory(nil))
	assert.Equal(t, Overview{}, stats.CollectionOverview(nil, nil))
	assert.Empty(t, stats.FilterGames(nil, nil, GameQuery{Search: "x"}))
}
