package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"catan/engine"
	"catan/game"
	"catan/store"
)

// finishedEngine is a game already played to its end, as the loop sees it
// when control falls back to the menu.
func finishedEngine(t *testing.T) *engine.Local {
	t.Helper()
	e, err := engine.New(game.Config{Players: []string{"ann", "ben"}, Seed: 3, TargetVP: 3})
	require.NoError(t, err)
	e.State().Winner = 0
	e.State().Phase = game.PhaseGameOver
	return e
}

func freshFactory(t *testing.T) func() (*engine.Local, error) {
	t.Helper()
	return func() (*engine.Local, error) {
		e, err := engine.New(game.Config{Players: []string{"ann", "ben"}, Seed: 5, TargetVP: 3})
		if err != nil {
			return nil, err
		}
		if _, err := e.State().AutoSetup(); err != nil {
			return nil, err
		}
		return e, nil
	}
}

func TestInteractiveStartsNewGameAfterGameOver(t *testing.T) {
	saveDir := t.TempDir()

	in := strings.NewReader("new\nsave second\nquit\n")
	runInteractive(finishedEngine(t), saveDir, freshFactory(t), in)

	// The save came from the fresh game, not the finished one.
	snap, _, err := store.Load(filepath.Join(saveDir, "second.json"))
	require.NoError(t, err)
	restored, err := game.FromSnapshot(snap)
	require.NoError(t, err)
	require.False(t, restored.Over())
	require.Equal(t, game.PhaseRoll, restored.Phase)
}

func TestInteractiveGameOverMenuStillLoadsAndQuits(t *testing.T) {
	saveDir := t.TempDir()

	live, err := freshFactory(t)()
	require.NoError(t, err)
	_, err = store.Save(filepath.Join(saveDir, "mid.json"), "mid", live.Snapshot())
	require.NoError(t, err)

	e := finishedEngine(t)
	in := strings.NewReader("load mid\nsave resumed\nquit\n")
	runInteractive(e, saveDir, freshFactory(t), in)

	require.False(t, e.State().Over(), "loading from the menu replaces the finished game")

	snap, _, err := store.Load(filepath.Join(saveDir, "resumed.json"))
	require.NoError(t, err)
	require.Equal(t, live.Snapshot(), snap)
}

func TestInteractiveReturnsWhenInputCloses(t *testing.T) {
	// No quit command; the loop must stop at EOF instead of spinning on the
	// game-over menu.
	runInteractive(finishedEngine(t), t.TempDir(), freshFactory(t), strings.NewReader(""))
}
