package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"catan/board"
	"catan/game"
)

// Local is the in-process engine: one game, one driver, no transport.
type Local struct {
	state *game.GameState
}

// New creates a fresh game from cfg.
func New(cfg game.Config) (*Local, error) {
	state, err := game.NewGame(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("players", len(cfg.Players)).
		Uint64("seed", state.Seed).
		Int("target", state.TargetVP).
		Msg("game created")
	return &Local{state: state}, nil
}

// Load builds an engine straight from a snapshot.
func Load(snap *game.Snapshot) (*Local, error) {
	state, err := game.FromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	log.Info().Int("turn", state.Turn).Str("phase", state.Phase.String()).Msg("game restored")
	return &Local{state: state}, nil
}

func (e *Local) State() *game.GameState {
	return e.state
}

// Apply resolves one action and logs the outcome. Rejections are logged at
// debug level: an illegal attempt is normal driver traffic, not a fault.
func (e *Local) Apply(a game.Action) ([]game.Event, error) {
	events, err := e.state.Apply(a)
	if err != nil {
		log.Debug().Str("action", a.String()).Err(err).Msg("action rejected")
		return nil, err
	}
	for _, ev := range events {
		log.Info().Str("action", a.String()).Msgf("%s", ev)
	}
	return events, nil
}

func (e *Local) LegalActions() []game.Action {
	return e.state.LegalActions()
}

func (e *Local) Snapshot() *game.Snapshot {
	return e.state.ToSnapshot()
}

// Restore swaps in the state from a snapshot. The current game is untouched
// when the snapshot fails validation.
func (e *Local) Restore(snap *game.Snapshot) error {
	state, err := game.FromSnapshot(snap)
	if err != nil {
		return err
	}
	e.state = state
	log.Info().Int("turn", state.Turn).Str("phase", state.Phase.String()).Msg("game restored")
	return nil
}

// Run plays the game out with one agent per player (setup included) and
// returns the winner. It stops with an error if an agent proposes an illegal
// action or the action cap is reached.
func (e *Local) Run(agents []Agent) (int, error) {
	if len(agents) != len(e.state.Players) {
		return board.NoOwner, fmt.Errorf("%w: %d agents for %d players", game.ErrConfig, len(agents), len(e.state.Players))
	}

	for count := 0; !e.state.Over(); count++ {
		if count >= MaxActions {
			return board.NoOwner, fmt.Errorf("%w: no winner after %d actions", game.ErrIllegalAction, MaxActions)
		}

		legal := e.LegalActions()
		if len(legal) == 0 {
			return board.NoOwner, fmt.Errorf("%w: no legal actions in phase %s", game.ErrIllegalAction, e.state.Phase)
		}
		// During the discard phase the acting player is whoever owes cards,
		// not the roller. Only the actor's own options are offered.
		actor := legal[0].Player
		mine := legal[:0:0]
		for _, la := range legal {
			if la.Player == actor {
				mine = append(mine, la)
			}
		}
		a := agents[actor].ChooseAction(e.state, mine)
		if _, err := e.Apply(a); err != nil {
			return board.NoOwner, err
		}
	}

	winner := e.state.Winner
	log.Info().
		Str("winner", e.state.Players[winner].Name).
		Int("turns", e.state.Turn).
		Msg("game over")
	return winner, nil
}
