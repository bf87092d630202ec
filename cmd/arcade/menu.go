package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/platform/window"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a menu",
	Long: `Start the arcade in interactive menu mode.

Pick the terminal or the window frontend, or browse the high scores.
After a terminal run ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q/Esc        - Quit

Examples:
  arcade menu
  arcade menu --fps 30 --difficulty easy`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	const gameID = "flappy"

	env, catalog, err := newEnv()
	if err != nil {
		return err
	}
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	title := gameTitle(gameID)
	cfg := terminalConfig()

	for {
		best := 0
		if store != nil {
			if hs, err := store.HighScore(gameID); err == nil {
				best = hs
			}
		}

		res, err := tui.RunMenu(title, best, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch res.Choice {
		case tui.ChoicePlay:
			game, err := registry.Create(gameID, env)
			if err != nil {
				return err
			}
			if err := tui.Run(game, cfg, tui.Options{
				Store:      store,
				Logger:     logger,
				Difficulty: flagDifficulty,
				HoldWindow: flagHold,
			}); err != nil {
				return err
			}

		case tui.ChoiceWindow:
			// Ebitengine runs one game per process, so the menu ends here.
			return window.Run(env.Flappy, catalog, window.Options{
				Store:      store,
				Settings:   window.OpenSettings("flappy_arcade", logger),
				Logger:     logger,
				Difficulty: flagDifficulty,
				Seed:       flagSeed,
			})

		case tui.ChoiceScores:
			goBack, err := tui.RunScoreboard(store, gameID, title, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			return nil
		}
	}
}
