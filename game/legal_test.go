package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"catan/board"
)

func actionsOfType(actions []Action, at ActionType) []Action {
	var out []Action
	for _, a := range actions {
		if a.Type == at {
			out = append(out, a)
		}
	}
	return out
}

func TestLegalActionsSetupOffersSettlementsThenRoads(t *testing.T) {
	g := newTestGame(t)

	legal := g.LegalActions()
	require.Len(t, legal, len(g.Board.Vertices), "every vertex is open on an empty board")
	for _, a := range legal {
		require.Equal(t, ActionBuildSettlement, a.Type)
		require.Equal(t, 0, a.Player)
	}

	_, err := g.Apply(legal[0])
	require.NoError(t, err)
	pending := g.SetupPendingVertex
	require.NotEqual(t, board.NoOwner, pending)

	legal = g.LegalActions()
	require.NotEmpty(t, legal)
	for _, a := range legal {
		require.Equal(t, ActionBuildRoad, a.Type)
		require.Contains(t, g.Board.NeighborEdges(pending), a.Edge)
	}
}

func TestLegalActionsRollPhase(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)

	legal := g.LegalActions()
	require.Len(t, legal, 1)
	require.Equal(t, ActionRoll, legal[0].Type)
	require.Equal(t, g.Current, legal[0].Player)
}

func TestLegalActionsDiscardCoversEveryOwingPlayer(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)

	give(t, g, 1, board.Wood, 5)
	give(t, g, 1, board.Brick, 3)
	give(t, g, 2, board.Ore, 8)

	scriptDice(g, 3, 4)
	_, err := g.Apply(NewAction(ActionRoll, 0))
	require.NoError(t, err)
	require.Equal(t, PhaseDiscard, g.Phase)

	legal := g.LegalActions()
	require.Len(t, legal, 2, "one discard per owing player")
	require.Equal(t, 1, legal[0].Player)
	require.Equal(t, 2, legal[1].Player)
	for _, a := range legal {
		require.Equal(t, ActionDiscard, a.Type)
		require.Len(t, a.Resources, 4)
	}
	// Greedy selection pulls from the biggest pile.
	require.Equal(t, []Resource{board.Wood, board.Wood, board.Wood, board.Wood}, legal[0].Resources)
}

func TestLegalActionsRobberEnumeratesHexVictimPairs(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)
	g.Phase = PhaseRobber

	hex := g.Board.Hexes[0]
	g.placeSettlement(1, hex.Vertices[0])
	give(t, g, 1, board.Sheep, 1)

	legal := g.LegalActions()
	require.Len(t, legal, len(g.Board.Hexes)-1, "one move per hex, the robber's own excluded")

	sawVictim := false
	for _, a := range legal {
		require.Equal(t, ActionMoveRobber, a.Type)
		require.NotEqual(t, g.RobberHex, a.Hex)
		if a.Hex == hex.ID {
			require.Equal(t, 1, a.Victim)
			sawVictim = true
		}
	}
	require.True(t, sawVictim, "the occupied hex proposes its victim")
}

func TestLegalActionsTradeListsAffordableTrades(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)
	g.Phase = PhaseTrade

	legal := g.LegalActions()
	require.Len(t, legal, 2, "broke players can only finish trading or end the turn")
	require.Equal(t, ActionFinishTrade, legal[0].Type)
	require.Equal(t, ActionEndTurn, legal[1].Type)

	give(t, g, 0, board.Wood, 4)
	legal = g.LegalActions()
	trades := actionsOfType(legal, ActionTrade)
	require.Len(t, trades, 4, "wood for each of the other four resources")
	for _, a := range trades {
		require.Equal(t, board.Wood, a.Give)
		require.Equal(t, 4, a.Rate)
		require.NotEqual(t, board.Wood, a.Receive)
	}
}

func TestLegalActionsBuildReflectsAffordability(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)
	g.Phase = PhaseBuild

	legal := g.LegalActions()
	require.Len(t, legal, 1)
	require.Equal(t, ActionEndTurn, legal[0].Type)

	own := g.Board.Hexes[0].Vertices[0]
	g.placeSettlement(0, own)
	giveCost(t, g, 0, CityCost)

	legal = g.LegalActions()
	cities := actionsOfType(legal, ActionBuildCity)
	require.Len(t, cities, 1)
	require.Equal(t, own, cities[0].Vertex)
	require.Empty(t, actionsOfType(legal, ActionBuildRoad), "city cost does not cover a road")

	giveCost(t, g, 0, DevCardCost)
	legal = g.LegalActions()
	require.Len(t, actionsOfType(legal, ActionBuyDevCard), 1)
}

func TestLegalActionsBuildRoadsNeedNetwork(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)
	g.Phase = PhaseBuild
	giveCost(t, g, 0, RoadCost)

	require.Empty(t, actionsOfType(g.LegalActions(), ActionBuildRoad),
		"no roads without a network to extend")

	own := g.Board.Hexes[0].Vertices[0]
	g.placeSettlement(0, own)
	roads := actionsOfType(g.LegalActions(), ActionBuildRoad)
	require.Len(t, roads, len(g.Board.Vertex(own).AdjacentEdges))
	for _, a := range roads {
		require.Contains(t, g.Board.Vertex(own).AdjacentEdges, a.Edge)
	}
}

func TestPlayableCardArguments(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)
	armPlayer(g, 0, Monopoly, YearOfPlenty, VictoryPoint)

	give(t, g, 1, board.Brick, 3)
	give(t, g, 2, board.Brick, 2)
	give(t, g, 0, board.Wood, 2)

	plays := actionsOfType(g.LegalActions(), ActionPlayDevCard)
	require.Len(t, plays, 2, "the victory point card is never playable")

	require.Equal(t, 0, plays[0].CardIndex)
	require.Equal(t, board.Brick, plays[0].Resource, "monopoly targets the opponents' biggest pile")

	require.Equal(t, 1, plays[1].CardIndex)
	require.Len(t, plays[1].Resources, 2)
	require.NotContains(t, plays[1].Resources, board.Wood,
		"year of plenty asks for what the hand lacks")
}

func TestPlayableCardsSuppressedAfterOnePlay(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)
	armPlayer(g, 0, Knight)
	g.DevCardPlayed = true

	require.Empty(t, actionsOfType(g.LegalActions(), ActionPlayDevCard))
}

func TestPlayableCardsSkipCardsBoughtThisTurn(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)
	armPlayer(g, 0, Knight)
	g.Players[0].NewDevCards = []DevCardType{Knight}

	require.Empty(t, actionsOfType(g.LegalActions(), ActionPlayDevCard),
		"a fresh copy locks the whole type for the turn")
}

func TestLegalRobberKnightTargetPrefersVictims(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)
	armPlayer(g, 0, Knight)

	hex := g.Board.Hexes[5]
	g.placeSettlement(1, hex.Vertices[0])
	give(t, g, 1, board.Wheat, 1)

	plays := actionsOfType(g.LegalActions(), ActionPlayDevCard)
	require.Len(t, plays, 1)
	require.Equal(t, hex.ID, plays[0].Hex)
	require.Equal(t, 1, plays[0].Victim)
}

func TestRoadBuildingProposesChainedEdges(t *testing.T) {
	g := newTestGame(t)
	skipSetup(g)
	armPlayer(g, 0, RoadBuilding)

	own := g.Board.Hexes[0].Vertices[0]
	g.placeSettlement(0, own)

	plays := actionsOfType(g.LegalActions(), ActionPlayDevCard)
	require.Len(t, plays, 1)
	require.Len(t, plays[0].Edges, 2)
	e1, e2 := plays[0].Edges[0], plays[0].Edges[1]
	require.True(t, g.Board.CanPlaceRoad(e1, 0))
	require.True(t, g.Board.CanPlaceRoadAssuming(e2, 0, e1))
}
