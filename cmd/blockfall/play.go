package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (marathon when omitted).

Controls:
  Left/Right, A/D   - Shift
  Down/S            - Soft drop
  Space             - Hard drop
  Up/X              - Rotate clockwise
  Z                 - Rotate counter-clockwise
  C                 - Hold
  P                 - Pause
  R                 - Restart (after game over)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start at level 1, longer lock delay
  normal - Start at level 5
  hard   - Start at level 10, short lock delay
  fixed  - No level progression, stays at the config's start level

Examples:
  blockfall play
  blockfall play sprint --difficulty easy
  blockfall play ultra --seed 42
  blockfall play marathon --config ./my-rules.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addRulesFlags(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) {
	modeID := "marathon"
	if len(args) > 0 {
		modeID = args[0]
	}

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'blockfall list' to see available modes.")
		os.Exit(1)
	}

	rules := mustLoadRules()
	cfg := runtimeConfig()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(modeID, rules, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
