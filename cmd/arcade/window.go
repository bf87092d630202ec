package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/platform/window"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the game in a desktop window.

Controls:
  Space/Up/W/Mouse - Flap (hold to climb)
  R                - Restart (after game over)
  F                - Toggle fullscreen
  Esc/Q            - Quit

The window size and fullscreen preference are remembered.`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func runWindow(_ *cobra.Command, _ []string) error {
	env, catalog, err := newEnv()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return window.Run(env.Flappy, catalog, window.Options{
		Store:      store,
		Settings:   window.OpenSettings("flappy_arcade", logger),
		Logger:     logger,
		Difficulty: flagDifficulty,
		Seed:       flagSeed,
	})
}
