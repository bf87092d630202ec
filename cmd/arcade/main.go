// arcade plays a flappy-style game in the terminal or in a window.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play [game]       - Play in the terminal
//	arcade window            - Play in a desktop window
//	arcade menu              - Start menu
//	arcade simulate          - Run a headless simulation with scripted input
//	arcade scores [game]     - Show high scores
//	arcade config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Game config YAML
//	--difficulty <name> - easy, normal, hard or fixed
//	--fps <rate>        - Terminal tick rate (default: 60)
//	--seed <value>      - RNG seed for reproducible layouts
//	--db <path>         - Database path (default: ~/.arcade/scores.db)
//	--log-file <path>   - Write logs to a file instead of stderr
//	--log-level <name>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-arcade/internal/assets"
	"github.com/vovakirdan/flappy-arcade/internal/config"
	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/flappy-arcade/internal/games/flappy"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogFile    string
	flagLogLevel   string
	flagBounded    bool
	flagHold       time.Duration

	logger  = log.New(io.Discard)
	logSink io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logSink != nil {
		logSink.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Flappy Arcade - a side-scrolling flyer for the terminal and the desktop",
	Long: `Flappy Arcade runs a flappy-style simulation: hold to climb, release
to fall, and fly through the gaps between the pipes.

The same simulation drives every frontend:
  play      - Play in the terminal
  window    - Play in a desktop window
  simulate  - Headless run with scripted input

Examples:
  arcade play
  arcade window --difficulty hard
  arcade simulate --seed 42 --ticks 6000
  arcade scores flappy`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagBounded, "bounded", false, "End the run when the player leaves the field")
	pf.DurationVar(&flagHold, "hold", 0, "How long a terminal key press counts as held (0 = default)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogger points the shared logger at --log-file, or stderr.
func setupLogger(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		w, logSink = f, f
	}

	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})
	return nil
}

// loadFlappyConfig loads --config and applies --difficulty and --bounded.
func loadFlappyConfig() (config.FlappyConfig, error) {
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyFlappyPreset(&cfg, preset)
	if flagBounded {
		cfg.Collision.Bounds = true
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	logger.Debug("config loaded", "path", flagConfig, "difficulty", preset, "bounds", cfg.Collision.Bounds)
	return cfg, nil
}

// newEnv builds the dependencies every game factory receives.
func newEnv() (registry.Env, *assets.Catalog, error) {
	cfg, err := loadFlappyConfig()
	if err != nil {
		return registry.Env{}, nil, err
	}
	catalog := assets.NewCatalog(assets.Builtin())
	return registry.Env{Flappy: cfg, Assets: catalog, Logger: logger}, catalog, nil
}

// openStore opens the scores database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// gameArg returns the game id argument, defaulting to flappy.
func gameArg(args []string) (string, error) {
	id := "flappy"
	if len(args) > 0 {
		id = args[0]
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown game %q, run 'arcade list' to see available games", id)
	}
	return id, nil
}
