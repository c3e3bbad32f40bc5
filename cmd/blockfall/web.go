package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the blockfall HTTP server for browser play",
	Long: `Start an HTTP server that serves a small browser client.

The page opens a WebSocket per game. The browser sends the held keys, the
server ticks the engine at --fps and streams one binary frame per tick.

Endpoints:
  GET /                   - Browser client
  GET /ws?mode=<id>       - Game session
  GET /api/modes          - Registered modes
  GET /api/scores/<mode>  - Top scores for a mode
  GET /ping               - Health check

Examples:
  blockfall web
  blockfall web --addr :9000 --difficulty easy`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	addRulesFlags(webCmd)
}

func runWeb(_ *cobra.Command, _ []string) {
	cfg := web.ServerConfig{
		Address:  flagWebAddr,
		DBPath:   flagDBPath,
		Rules:    mustLoadRules(),
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	server, err := web.NewServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting blockfall web server on %s\n", cfg.Address)
	fmt.Printf("Open http://localhost:%s in a browser\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
