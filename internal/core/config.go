package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic puzzles.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Input/render ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic generation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	GameOver bool   // Whether the round has ended
	Paused   bool   // Whether the game is paused
	Won      bool   // Whether the finished round was won
	Idle     bool   // Waiting on the title screen, no round in progress
	Mode     string // Mode label recorded with the result (difficulty)
	Moves    int    // Moves spent in the current round
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
}
