package constants

const (
	GamesStorageKey    = "boardgame-collection" // full games collection as one JSON blob
	SessionsStorageKey = "boardgame-sessions"   // full sessions collection as one JSON blob
	ThemeStorageKey    = "theme-preference"     // plain string, outside the core data model
)
