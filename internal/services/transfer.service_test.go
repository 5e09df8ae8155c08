package services

import (
	"context"
	"encoding/json"
	"testing"

	"meeplelog/internal/models"
	"meeplelog/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	blobs map[string]string
}

func (f *fakeStore) Read(_ context.Context, key string) (string, bool, error) {
	value, found := f.blobs[key]
	return value, found, nil
}

func (f *fakeStore) Write(_ context.Context, key string, value string) error {
	f.blobs[key] = value
	return nil
}

func newTransferFixture(t *testing.T) (*TransferService, repositories.CollectionRepository) {
	t.Helper()
	repo := repositories.NewCollectionRepository(&fakeStore{blobs: make(map[string]string)})
	require.NoError(t, repo.Load(context.Background()))
	return NewTransferService(repo), repo
}

func TestExportShape(t *testing.T) {
	transfer, repo := newTransferFixture(t)
	ctx := context.Background()

	game, err := repo.UpsertGame(ctx, models.GameInput{Title: strPtr("Catan")})
	require.NoError(t, err)
	_, err = repo.UpsertSession(ctx, models.PlaySessionInput{
		GameID: &game.ID,
		Date:   strPtr("2024-05-01"),
	})
	require.NoError(t, err)

	doc := transfer.Export()

	assert.Equal(t, 1, doc.Version)
	assert.NotEmpty(t, doc.ExportedAt)
	require.Len(t, doc.Games, 1)
	require.Len(t, doc.Sessions, 1)
	assert.Equal(t, game.ID, doc.Sessions[0].GameID)
}

func TestExportEmptyStateHasArrays(t *testing.T) {
	transfer, _ := newTransferFixture(t)

	raw, err := json.Marshal(transfer.Export())
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"games":[]`)
	assert.Contains(t, string(raw), `"sessions":[]`)
}

func TestImportRejectsMissingGames(t *testing.T) {
	transfer, repo := newTransferFixture(t)
	ctx := context.Background()
	existing, err := repo.UpsertGame(ctx, models.GameInput{Title: strPtr("Keep Me")})
	require.NoError(t, err)

	tests := []struct {
		name string
		doc  string
	}{
		{name: "No games field", doc: `{"version":1,"sessions":[]}`},
		{name: "Games not an array", doc: `{"version":1,"games":{"id":"g1"}}`},
		{name: "Not JSON at all", doc: `not a document`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := transfer.Import(ctx, []byte(tt.doc))
			assert.ErrorIs(t, err, models.ErrValidation)

			_, found := repo.GetGame(existing.ID)
			assert.True(t, found, "failed import must not touch existing state")
		})
	}
}

func TestImportReplacesStateAndMigrates(t *testing.T) {
	transfer, repo := newTransferFixture(t)
	ctx := context.Background()
	_, err := repo.UpsertGame(ctx, models.GameInput{Title: strPtr("Old Game")})
	require.NoError(t, err)

	doc := `{
		"version": 1,
		"games": [{"id": "imp-1", "name": "Chess"}],
		"sessions": [{"id": "imp-s1", "gameId": "imp-1", "date": "2024-02-02"}]
	}`

	require.NoError(t, transfer.Import(ctx, []byte(doc)))

	games := repo.Games()
	require.Len(t, games, 1, "import replaces, never merges")
	assert.Equal(t, "Chess", games[0].Title, "legacy name field migrated to title")
	assert.Equal(t, models.GameStatusOwned, games[0].Status)
	assert.False(t, games[0].CreatedAt.IsZero())

	sessions := repo.Sessions()
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].CreatedAt.IsZero())
}

func TestImportDefaultsSessionsToEmpty(t *testing.T) {
	transfer, repo := newTransferFixture(t)
	ctx := context.Background()
	game, err := repo.UpsertGame(ctx, models.GameInput{Title: strPtr("Catan")})
	require.NoError(t, err)
	_, err = repo.UpsertSession(ctx, models.PlaySessionInput{GameID: &game.ID})
	require.NoError(t, err)

	require.NoError(t, transfer.Import(ctx, []byte(`{"version":1,"games":[]}`)))

	assert.Empty(t, repo.Games())
	assert.Empty(t, repo.Sessions())
}

func TestRoundTripExportImport(t *testing.T) {
	transfer, repo := newTransferFixture(t)
	ctx := context.Background()

	catan, err := repo.UpsertGame(ctx, models.GameInput{
		Title:  strPtr("Catan"),
		Rating: floatPtr(8),
		Status: statusPtr(models.GameStatusWishlist),
	})
	require.NoError(t, err)
	_, err = repo.UpsertSession(ctx, models.PlaySessionInput{
		GameID:  &catan.ID,
		Date:    strPtr("2024-03-03"),
		Players: []string{"Sam", "Alex"},
	})
	require.NoError(t, err)

	gamesBefore := repo.Games()
	sessionsBefore := repo.Sessions()

	raw, err := json.Marshal(transfer.Export())
	require.NoError(t, err)
	require.NoError(t, transfer.Import(ctx, raw))

	assert.Equal(t, gamesBefore, repo.Games())
	assert.Equal(t, sessionsBefore, repo.Sessions())
}

func statusPtr(s models.GameStatus) *models.GameStatus { return &s }
