package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"catan/board"
	"catan/bot"
	"catan/game"
)

func newTestEngine(t *testing.T, names ...string) *Local {
	t.Helper()
	if len(names) == 0 {
		names = []string{"ann", "ben", "cam"}
	}
	e, err := New(game.Config{Players: names, Seed: 7, TargetVP: 6})
	require.NoError(t, err)
	return e
}

func greedyAgents(n int) []Agent {
	agents := make([]Agent, n)
	for i := range agents {
		agents[i] = bot.NewGreedy(i)
	}
	return agents
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(game.Config{Players: []string{"solo"}})
	require.ErrorIs(t, err, game.ErrConfig)
}

func TestApplyForwardsEventsAndRejections(t *testing.T) {
	e := newTestEngine(t)

	legal := e.LegalActions()
	require.NotEmpty(t, legal)

	events, err := e.Apply(legal[0])
	require.NoError(t, err)
	require.NotEmpty(t, events)

	_, err = e.Apply(game.NewAction(game.ActionRoll, 0))
	require.ErrorIs(t, err, game.ErrIllegalAction)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.State().AutoSetup()
	require.NoError(t, err)

	snap := e.Snapshot()

	other := newTestEngine(t)
	require.NoError(t, other.Restore(snap))
	require.Equal(t, snap, other.Snapshot())
}

func TestRestoreRejectsCorruptSnapshotAndKeepsState(t *testing.T) {
	e := newTestEngine(t)
	before := e.Snapshot()

	bad := e.Snapshot()
	bad.Phase = "LIMBO"
	require.ErrorIs(t, e.Restore(bad), game.ErrCorruptSnapshot)
	require.Equal(t, before, e.Snapshot(), "a failed restore must not touch the running game")
}

func TestLoadBuildsEngineFromSnapshot(t *testing.T) {
	e := newTestEngine(t)
	snap := e.Snapshot()

	loaded, err := Load(snap)
	require.NoError(t, err)
	require.Equal(t, snap, loaded.Snapshot())

	snap.Current = 9
	_, err = Load(snap)
	require.ErrorIs(t, err, game.ErrCorruptSnapshot)
}

func TestRunRequiresOneAgentPerPlayer(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Run(greedyAgents(2))
	require.ErrorIs(t, err, game.ErrConfig)
}

func TestRunPlaysToAWinner(t *testing.T) {
	e := newTestEngine(t)

	winner, err := e.Run(greedyAgents(3))
	require.NoError(t, err)
	require.GreaterOrEqual(t, winner, 0)
	require.Less(t, winner, 3)

	state := e.State()
	require.True(t, state.Over())
	require.Equal(t, winner, state.Winner)
	require.GreaterOrEqual(t, state.Score(winner), state.TargetVP)
}

func TestRunIsDeterministicForASeed(t *testing.T) {
	first := newTestEngine(t)
	w1, err := first.Run(greedyAgents(3))
	require.NoError(t, err)

	second := newTestEngine(t)
	w2, err := second.Run(greedyAgents(3))
	require.NoError(t, err)

	require.Equal(t, w1, w2)
	require.Equal(t, first.Snapshot(), second.Snapshot())
}

func TestRunStopsAtGameOver(t *testing.T) {
	e := newTestEngine(t)
	e.State().Winner = 1
	e.State().Phase = game.PhaseGameOver

	winner, err := e.Run(greedyAgents(3))
	require.NoError(t, err)
	require.Equal(t, 1, winner)
	require.NotEqual(t, board.NoOwner, winner)
}
