package engine

import "catan/game"

// MaxActions caps a driven game so a stuck agent cannot loop forever.
const MaxActions = 10000

// Engine owns one game and mediates every action against it.
type Engine interface {
	// State exposes the live game for inspection. Callers must not mutate it.
	State() *game.GameState
	// Apply validates and resolves one action, returning what happened.
	Apply(game.Action) ([]game.Event, error)
	// LegalActions enumerates what the engine would accept right now.
	LegalActions() []game.Action
	// Snapshot captures the game for serialization.
	Snapshot() *game.Snapshot
	// Restore replaces the current game with a snapshot.
	Restore(*game.Snapshot) error
}

// Agent picks one action from the offered legal set. Run drives agents in
// turn until the game ends.
type Agent interface {
	ChooseAction(state *game.GameState, legal []game.Action) game.Action
}
