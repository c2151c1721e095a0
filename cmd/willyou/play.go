package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mapetit/willyou/internal/core"
	"github.com/mapetit/willyou/internal/platform/tui"
	"github.com/mapetit/willyou/internal/scene"
	"github.com/mapetit/willyou/internal/sound"
	"github.com/mapetit/willyou/internal/storage"
	"github.com/mapetit/willyou/internal/story"
)

var (
	flagConfig string
	flagSilent bool
)

var playCmd = &cobra.Command{
	Use:   "play [script]",
	Short: "Ask the question",
	Long: `Run the experience with the given script (default: classic).

Controls:
  Arrows/WASD  - Move focus / wander between keepsakes
  Enter/Space  - Continue, pick up, answer
  Esc          - Put a note away
  M            - Toggle the soundtrack
  Ctrl+S       - Save a frame snapshot
  Q/Ctrl+C     - Quit

The mouse works too: hover glints, clicks pick up. Good luck clicking No.

Examples:
  willyou play
  willyou play valentine
  willyou play --config ./ours.yaml
  willyou play --silent`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom script YAML")
	playCmd.Flags().BoolVar(&flagSilent, "silent", false, "Disable the soundtrack")
}

func runPlay(cmd *cobra.Command, args []string) {
	scriptID := "classic"
	if len(args) > 0 {
		scriptID = args[0]
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "willyou"})

	script, err := story.Load(scriptID, flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if flagConfig == "" {
			fmt.Fprintln(os.Stderr, "Run 'willyou list' to see available scripts.")
		}
		os.Exit(1)
	}

	// Get terminal size early
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open the moments journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open moments database", "error", err)
		// Continue without storage - the question still gets asked
		store = nil
	}

	player := sound.New(script.Soundtrack, flagSilent, logger)

	runErr := tui.Run(scene.New(script), store, player, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running experience: %v\n", runErr)
		os.Exit(1)
	}
}
