package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"guildhall/internal/content"
	"guildhall/internal/engine"
	"guildhall/internal/store"
	"guildhall/internal/util"
)

// Assets is the static content loaded once at startup.
type Assets struct {
	Catalog *engine.Catalog
	Pool    []engine.Character
	Barks   engine.BarkSet
}

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, db *store.DB, assets Assets, profile *engine.Profile, cfg util.Config) error {
	m := initialModel(ctx, db, assets.Catalog, content.BuiltinSpecials(), assets.Pool, assets.Barks, profile, cfg)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
