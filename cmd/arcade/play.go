package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game in the terminal",
	Long: `Start playing in the terminal.

Controls:
  Space/Up/W - Flap (hold to climb)
  R          - Restart (after game over)
  Esc/B      - Back
  Q/Ctrl+C   - Quit
  Ctrl+S     - Screenshot

Terminals report key presses but not releases, so a key counts as held
for a short window after each press. Tune it with --hold.

Difficulty options:
  easy   - Slower pipes, longer ramp
  normal - Config speeds
  hard   - Faster pipes, shorter ramp
  fixed  - No speed ramp

Examples:
  arcade play
  arcade play flappy --difficulty hard
  arcade play --config ./my-flappy.yaml --bounded`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}
	env, _, err := newEnv()
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID, env)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, terminalConfig(), tui.Options{
		Store:      store,
		Logger:     logger,
		Difficulty: flagDifficulty,
		HoldWindow: flagHold,
	})
}
