package settingsController

import (
	"context"

	"meeplelog/internal/constants"
	"meeplelog/internal/logger"
	"meeplelog/internal/repositories"
)

const defaultTheme = "light"

// SettingsController handles the theme preference, a plain string stored
// next to the collections but outside the core data model.
type SettingsControllerInterface interface {
	GetTheme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
}

type SettingsController struct {
	store repositories.BlobStore
	log   logger.Logger
}

func New(store repositories.BlobStore) SettingsControllerInterface {
	return &SettingsController{
		store: store,
		log:   logger.New("settingsController"),
	}
}

func (c *SettingsController) GetTheme(ctx context.Context) (string, error) {
	theme, found, err := c.store.Read(ctx, constants.ThemeStorageKey)
	if err != nil {
		return "", err
	}
	if !found || theme == "" {
		return defaultTheme, nil
	}
	return theme, nil
}

func (c *SettingsController) SetTheme(ctx context.Context, theme string) error {
	return c.store.Write(ctx, constants.ThemeStorageKey, theme)
}
