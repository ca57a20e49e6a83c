package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"catan/board"
)

// ringRoads lays player roads along consecutive edges of one hex. A hex's six
// edges form a cycle, so the first n of them are a connected path.
func ringRoads(g *GameState, player, hexID, n int) {
	for _, edge := range g.Board.Hexes[hexID].Edges[:n] {
		g.placeRoad(player, edge)
	}
}

func TestScoreCountsEverything(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)

	require.Zero(t, g.Score(0))

	g.placeSettlement(0, g.Board.Hexes[0].Vertices[0])
	require.Equal(t, 1, g.Score(0))

	g.Players[0].Cities = []int{1}
	require.Equal(t, 3, g.Score(0))

	g.Players[0].DevCards = []DevCardType{VictoryPoint, Knight}
	require.Equal(t, 4, g.Score(0), "victory point cards count while held")

	g.LongestRoadHolder = 0
	g.LargestArmyHolder = 0
	require.Equal(t, 8, g.Score(0))
}

func TestLongestRoadSimplePath(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)

	ringRoads(g, 0, 0, 4)
	require.Equal(t, 4, g.longestRoadFrom(0))

	// The full ring counts all six edges.
	ringRoads(g, 1, 2, 6)
	require.Equal(t, 6, g.longestRoadFrom(1))
}

func TestLongestRoadBlockedByOpponentBuilding(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)

	hex := g.Board.Hexes[0]
	ringRoads(g, 0, 0, 5)
	require.Equal(t, 5, g.longestRoadFrom(0))

	// An opponent settlement in the middle of the path splits it.
	g.placeSettlement(1, hex.Vertices[2])
	require.Equal(t, 3, g.longestRoadFrom(0))

	// The player's own building does not block the walk.
	g.Board.Vertex(hex.Vertices[2]).Owner = 0
	require.Equal(t, 5, g.longestRoadFrom(0))
}

func TestLongestRoadAwardAndRetention(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)

	ringRoads(g, 0, 0, 4)
	require.Empty(t, g.recomputeLongestRoad(), "four roads do not qualify")
	require.Equal(t, board.NoOwner, g.LongestRoadHolder)

	g.placeRoad(0, g.Board.Hexes[0].Edges[4])
	events := g.recomputeLongestRoad()
	require.Len(t, events, 1)
	require.Equal(t, AwardLongestRoad, events[0].Award)
	require.Equal(t, 0, events[0].Holder)
	require.Equal(t, 0, g.LongestRoadHolder)

	// Matching the holder's length does not move the title.
	ringRoads(g, 1, 2, 5)
	require.Empty(t, g.recomputeLongestRoad())
	require.Equal(t, 0, g.LongestRoadHolder)

	// Beating it does.
	g.placeRoad(1, g.Board.Hexes[2].Edges[5])
	events = g.recomputeLongestRoad()
	require.Len(t, events, 1)
	require.Equal(t, 1, g.LongestRoadHolder)
}

func TestLongestRoadTieBetweenNonHoldersCrownsNobody(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)

	ringRoads(g, 0, 0, 5)
	ringRoads(g, 1, 2, 5)
	require.Empty(t, g.recomputeLongestRoad())
	require.Equal(t, board.NoOwner, g.LongestRoadHolder)
}

func TestLongestRoadVacatedWhenSevered(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)

	hex := g.Board.Hexes[0]
	ringRoads(g, 0, 0, 5)
	g.recomputeLongestRoad()
	require.Equal(t, 0, g.LongestRoadHolder)

	// Severing the path below five vacates the title.
	g.placeSettlement(1, hex.Vertices[2])
	events := g.recomputeLongestRoad()
	require.Len(t, events, 1)
	require.Equal(t, board.NoOwner, events[0].Holder)
	require.Equal(t, board.NoOwner, g.LongestRoadHolder)
}

func TestLargestArmyAwardAndRetention(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)

	g.Players[0].PlayedKnights = 2
	require.Empty(t, g.recomputeLargestArmy(), "two knights do not qualify")

	g.Players[0].PlayedKnights = 3
	events := g.recomputeLargestArmy()
	require.Len(t, events, 1)
	require.Equal(t, AwardLargestArmy, events[0].Award)
	require.Equal(t, 0, g.LargestArmyHolder)

	g.Players[1].PlayedKnights = 3
	require.Empty(t, g.recomputeLargestArmy(), "a tie keeps the holder")
	require.Equal(t, 0, g.LargestArmyHolder)

	g.Players[1].PlayedKnights = 4
	g.recomputeLargestArmy()
	require.Equal(t, 1, g.LargestArmyHolder)
}

func TestCheckVictoryPrefersActor(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)
	g.TargetVP = 3

	g.Players[1].Cities = []int{1, 2}  // 4 points
	g.Players[2].Cities = []int{3, 4} // 4 points

	events := g.checkVictory(2)
	require.Len(t, events, 1)
	require.Equal(t, EventGameOver, events[0].Kind)
	require.Equal(t, 2, events[0].Player, "the acting player wins simultaneous qualification")
	require.Equal(t, 2, g.Winner)
	require.True(t, g.Over())
}
