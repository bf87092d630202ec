package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-arcade/internal/platform/tui"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

var flagScoresTUI bool

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top 10 runs for the game.

Examples:
  arcade scores
  arcade scores flappy --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse the scores interactively")
}

func gameTitle(id string) string {
	for _, g := range registry.List() {
		if g.ID == id {
			return g.Title
		}
	}
	return id
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}
	title := gameTitle(gameID)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresTUI {
		cfg := terminalConfig()
		_, err := tui.RunScoreboard(store, gameID, title, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	runs, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-16s  %-7s  %-8s  %s\n", "Rank", "Score", "Date", "Level", "Via", "Run")
	fmt.Fprintf(out, "  %-4s  %-6s  %-16s  %-7s  %-8s  %s\n", "----", "-----", "----", "-----", "---", "---")
	for i, r := range runs {
		level := r.Difficulty
		if level == "" {
			level = "-"
		}
		fmt.Fprintf(out, "  %-4d  %-6d  %-16s  %-7s  %-8s  %s\n",
			i+1, r.Score, r.CreatedAt.Format("2006-01-02 15:04"), level, r.Frontend, r.RunID.String()[:8])
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Fprintf(out, "\nBest: %d  |  Runs: %d  |  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}
