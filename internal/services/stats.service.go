package services

import (
	"sort"
	"strings"

	"meeplelog/internal/logger"
	. "meeplelog/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const topEntries = 10

type SortKey string

const (
	SortByTitle      SortKey = "title"
	SortByRating     SortKey = "rating"
	SortByPlayTime   SortKey = "playTime"
	SortByPlays      SortKey = "plays"
	SortByLastPlayed SortKey = "lastPlayed"
)

// StatusFilterAll disables status filtering; any other value is matched
// against Game.Status verbatim.
const StatusFilterAll = "all"

type GameQuery struct {
	Search string
	Status string
	SortBy SortKey
}

type RankedGame struct {
	GameID  string  `json:"gameId"`
	Title   string  `json:"title"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type PlayerTally struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type MonthTally struct {
	Month   string  `json:"month"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type Overview struct {
	TotalGames      int `json:"totalGames"`
	Owned           int `json:"owned"`
	Wishlist        int `json:"wishlist"`
	PreviouslyOwned int `json:"previouslyOwned"`
	TotalPlays      int `json:"totalPlays"`
	TotalMinutes    int `json:"totalMinutes"`
}

// StatsService derives every display view from the two collections alone. All
// methods are pure: no repository access, no mutation of their inputs, and no
// failure modes (empty input yields empty output).
type StatsService struct {
	collator *collate.Collator
	log      logger.Logger
}

func NewStatsService() *StatsService {
	return &StatsService{
		collator: collate.New(language.Und, collate.Loose),
		log:      logger.New("statsService"),
	}
}

// FilterGames applies search + status filtering and sorts by the given key.
// The sort is stable, so games with equal keys keep their insertion order.
func (s *StatsService) FilterGames(
	games []Game,
	sessions []PlaySession,
	query GameQuery,
) []Game {
	term := strings.ToLower(strings.TrimSpace(query.Search))

	filtered := make([]Game, 0, len(games))
	for _, game := range games {
		if query.Status != "" && query.Status != StatusFilterAll &&
			string(game.Status) != query.Status {
			continue
		}
		if term != "" && !matchesSearch(game, term) {
			continue
		}
		filtered = append(filtered, game)
	}

	s.sortGames(filtered, sessions, query.SortBy)
	return filtered
}

func matchesSearch(game Game, term string) bool {
	for _, field := range []string{
		game.Title,
		strValue(game.Designer),
		strValue(game.Publisher),
		strValue(game.Categories),
	} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (s *StatsService) sortGames(games []Game, sessions []PlaySession, key SortKey) {
	switch key {
	case SortByRating:
		sort.SliceStable(games, func(i, j int) bool {
			return floatValue(games[i].Rating) > floatValue(games[j].Rating)
		})
	case SortByPlayTime:
		sort.SliceStable(games, func(i, j int) bool {
			return intValue(games[i].PlayTime) < intValue(games[j].PlayTime)
		})
	case SortByPlays:
		counts := playCounts(sessions)
		sort.SliceStable(games, func(i, j int) bool {
			return counts[games[i].ID] > counts[games[j].ID]
		})
	case SortByLastPlayed:
		// Empty string is the epoch sentinel: never-played games sort last.
		lastPlayed := lastPlayedDates(sessions)
		sort.SliceStable(games, func(i, j int) bool {
			return lastPlayed[games[i].ID] > lastPlayed[games[j].ID]
		})
	case SortByTitle:
		fallthrough
	default:
		sort.SliceStable(games, func(i, j int) bool {
			return s.collator.CompareString(games[i].Title, games[j].Title) < 0
		})
	}
}

// MostPlayed returns the ten games with the most sessions, each with a
// bar-fill percentage relative to the top count. Equal counts keep the order
// the games first appear in the session list.
func (s *StatsService) MostPlayed(games []Game, sessions []PlaySession) []RankedGame {
	counts := make(map[string]int)
	var order []string
	for _, session := range sessions {
		if counts[session.GameID] == 0 {
			order = append(order, session.GameID)
		}
		counts[session.GameID]++
	}

	titles := make(map[string]string, len(games))
	for _, game := range games {
		titles[game.ID] = game.Title
	}

	ranked := make([]RankedGame, 0, len(order))
	for _, gameID := range order {
		ranked = append(ranked, RankedGame{
			GameID: gameID,
			Title:  titles[gameID],
			Count:  counts[gameID],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topEntries {
		ranked = ranked[:topEntries]
	}

	if len(ranked) > 0 {
		max := float64(ranked[0].Count)
		for i := range ranked {
			ranked[i].Percent = float64(ranked[i].Count) / max * 100
		}
	}

	return ranked
}

// FrequentPlayers tallies player-name occurrences across all sessions. Names
// are compared by exact string equality; "Sam" and "sam " are two people.
func (s *StatsService) FrequentPlayers(sessions []PlaySession) []PlayerTally {
	counts := make(map[string]int)
	var order []string
	for _, session := range sessions {
		for _, name := range session.Players {
			if counts[name] == 0 {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	tallies := make([]PlayerTally, 0, len(order))
	for _, name := range order {
		tallies = append(tallies, PlayerTally{Name: name, Count: counts[name]})
	}

	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].Count > tallies[j].Count
	})
	if len(tallies) > topEntries {
		tallies = tallies[:topEntries]
	}

	if len(tallies) > 0 {
		max := float64(tallies[0].Count)
		for i := range tallies {
			tallies[i].Percent = float64(tallies[i].Count) / max * 100
		}
	}

	return tallies
}

// PlayHistory buckets sessions per YYYY-MM and keeps the twelve most recent
// months. Lexicographic descending order on the key is date order for this
// format. Percentages are relative to the busiest selected month. Sessions
// without a usable date carry no month and are left out.
func (s *StatsService) PlayHistory(sessions []PlaySession) []MonthTally {
	counts := make(map[string]int)
	for _, session := range sessions {
		month := session.MonthKey()
		if month == "" {
			continue
		}
		counts[month]++
	}

	months := make([]string, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	if len(months) > 12 {
		months = months[:12]
	}

	tallies := make([]MonthTally, 0, len(months))
	max := 0
	for _, month := range months {
		if counts[month] > max {
			max = counts[month]
		}
		tallies = append(tallies, MonthTally{Month: month, Count: counts[month]})
	}

	for i := range tallies {
		tallies[i].Percent = float64(tallies[i].Count) / float64(max) * 100
	}

	return tallies
}

// CollectionOverview counts games per status and totals sessions and minutes.
func (s *StatsService) CollectionOverview(games []Game, sessions []PlaySession) Overview {
	overview := Overview{
		TotalGames: len(games),
		TotalPlays: len(sessions),
	}

	for _, game := range games {
		switch game.Status {
		case GameStatusWishlist:
			overview.Wishlist++
		case GameStatusPreviouslyOwned:
			overview.PreviouslyOwned++
		default:
			overview.Owned++
		}
	}

	for _, session := range sessions {
		overview.TotalMinutes += intValue(session.Duration)
	}

	return overview
}

func playCounts(sessions []PlaySession) map[string]int {
	counts := make(map[string]int)
	for _, session := range sessions {
		counts[session.GameID]++
	}
	return counts
}

func lastPlayedDates(sessions []PlaySession) map[string]string {
	dates := make(map[string]string)
	for _, session := range sessions {
		if session.Date > dates[session.GameID] {
			dates[session.GameID] = session.Date
		}
	}
	return dates
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intValue(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func floatValue(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
