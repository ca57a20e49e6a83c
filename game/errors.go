package game

import (
	"errors"

	"catan/board"
)

// Error taxonomy. Every rejected action wraps exactly one of these so drivers
// can classify failures with errors.Is and render them without inspecting
// engine internals. No handler mutates state before all checks pass.
var (
	// ErrConfig reports a bad board or game setup. Shared with the board
	// package, which performs layout validation.
	ErrConfig = board.ErrConfig

	// ErrIllegalAction reports an action that the current phase (or player)
	// does not permit.
	ErrIllegalAction = errors.New("illegal action")

	// ErrIllegalPlacement reports a graph-rule violation: distance rule,
	// connectivity, or ownership.
	ErrIllegalPlacement = errors.New("illegal placement")

	// ErrInsufficientResources reports a transfer or build cost that the
	// source hand cannot cover.
	ErrInsufficientResources = errors.New("insufficient resources")

	// ErrOutOfStock reports an exhausted piece pool.
	ErrOutOfStock = errors.New("out of stock")

	// ErrDeckEmpty reports a draw from an empty development deck.
	ErrDeckEmpty = errors.New("development deck is empty")

	// ErrCardNotPlayable reports a development card that cannot be played
	// this turn.
	ErrCardNotPlayable = errors.New("card not playable")

	// ErrCorruptSnapshot reports a snapshot with missing or malformed fields.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)
