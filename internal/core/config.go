package core

// RuntimeConfig contains configuration passed to hosts at initialization.
// Hosts use this to size the terminal view and to seed the random source.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the host-facing summary of a run, read from the adapter's accessors.
type GameState struct {
	Score    int  // Current score
	Lines    int  // Cleared lines
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the host has paused ticking
}
