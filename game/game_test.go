package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"catan/board"
)

// scriptedRoller feeds predetermined values to the engine so tests control
// the dice and steals exactly.
type scriptedRoller struct {
	values []int
	i      int
}

func (r *scriptedRoller) Intn(n int) int {
	v := r.values[r.i%len(r.values)]
	r.i++
	return v % n
}

func (r *scriptedRoller) Shuffle(n int, swap func(i, j int)) {}

// scriptDice arranges for upcoming rolls to land on the given die faces.
func scriptDice(g *GameState, faces ...int) {
	values := make([]int, len(faces))
	for i, f := range faces {
		values[i] = f - 1
	}
	g.SetRoller(&scriptedRoller{values: values})
}

// fixedBoardConfig pins the layout so tests know what every hex produces:
// resources cycle Wood..Ore over hexes 0-17 with the desert last, tokens run
// 2,3,3,...,12 in hex ID order. Hex 0 is Wood with token 2.
func fixedBoardConfig() board.Config {
	resources := make([]board.Resource, 0, 19)
	for i := 0; i < 18; i++ {
		resources = append(resources, board.ResourceTypes[i%len(board.ResourceTypes)])
	}
	resources = append(resources, board.Desert)
	return board.Config{
		Resources: resources,
		Tokens:    []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12},
	}
}

func newTestGame(t *testing.T, names ...string) *GameState {
	t.Helper()
	if len(names) == 0 {
		names = []string{"ann", "ben", "cam"}
	}
	g, err := NewGame(Config{Players: names, Board: fixedBoardConfig(), Seed: 1})
	require.NoError(t, err)
	return g
}

// skipSetup jumps straight to regular play with no pieces placed. Tests stamp
// the positions they need directly.
func skipSetup(g *GameState) {
	g.SetupIndex = 2 * len(g.Players)
	g.Phase = PhaseRoll
	g.Current = 0
}

// give moves resources from the bank into a hand, bypassing play.
func give(t *testing.T, g *GameState, player int, r Resource, n int) {
	t.Helper()
	require.NoError(t, moveResource(g.Bank.Resources, g.Players[player].Resources, r, n))
}

func giveCost(t *testing.T, g *GameState, player int, cost map[Resource]int) {
	t.Helper()
	for r, n := range cost {
		give(t, g, player, r, n)
	}
}

// requireConservation asserts the bank-plus-hands total of every resource.
func requireConservation(t *testing.T, g *GameState) {
	t.Helper()
	require.NoError(t, g.checkConservation())
}
