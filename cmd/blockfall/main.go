// blockfall hosts a falling-block engine behind a fixed-buffer adapter and
// plays it in the terminal, over SSH or in the browser.
//
// Usage:
//
//	blockfall list              - List available modes
//	blockfall play [mode]       - Play a mode (default: marathon)
//	blockfall menu              - Start menu to pick modes interactively
//	blockfall serve             - Start SSH server for remote play
//	blockfall web               - Start HTTP/WebSocket server for browser play
//	blockfall scores <mode>     - Show high scores for a mode
//	blockfall dump              - Run a scripted game and print the buffers
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.blockfall/scores.db)
//	--debug         - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import the engine to register its modes
	_ "github.com/vovakirdan/blockfall/internal/engine"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a falling-block game for terminals and browsers",
	Long: `Blockfall runs a falling-block rules engine behind a small adapter that
packs the board, the next queue and the held piece into fixed byte buffers.
The same adapter drives the terminal, SSH, browser and WebAssembly hosts.

Available commands:
  list     - Show all available modes
  play     - Play a specific mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  web      - Start HTTP server for browser play
  scores   - View high scores
  dump     - Print the adapter buffers after a scripted run

Examples:
  blockfall list
  blockfall play sprint
  blockfall menu
  blockfall serve --ssh :2222
  blockfall web --addr :8080
  blockfall scores marathon
  blockfall dump --ticks 600 --seed 7`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagDebug {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockfall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(dumpCmd)
}
