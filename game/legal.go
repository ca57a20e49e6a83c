package game

import (
	"sort"

	"catan/board"
)

// LegalActions enumerates the actions the engine would accept right now, for
// bot policies and UI affordance. Parameterized actions carry representative
// arguments chosen deterministically (robber moves enumerate every hex/victim
// pair; card plays and discards carry one sensible argument set each).
func (g *GameState) LegalActions() []Action {
	switch g.Phase {
	case PhaseSetup:
		return g.legalSetupActions()
	case PhaseRoll:
		return []Action{NewAction(ActionRoll, g.Current)}
	case PhaseDiscard:
		return g.legalDiscardActions()
	case PhaseRobber:
		return g.legalRobberActions()
	case PhaseTrade:
		return g.legalTradeActions()
	case PhaseBuild:
		return g.legalBuildActions()
	default:
		return nil
	}
}

func (g *GameState) legalSetupActions() []Action {
	var actions []Action
	player := g.Current
	if g.SetupPendingVertex == board.NoOwner {
		for _, v := range g.Board.Vertices {
			if g.Board.CanPlaceSettlement(v.ID, player, false) {
				a := NewAction(ActionBuildSettlement, player)
				a.Vertex = v.ID
				actions = append(actions, a)
			}
		}
		return actions
	}
	for _, eid := range g.Board.NeighborEdges(g.SetupPendingVertex) {
		if !g.Board.Edge(eid).Occupied() {
			a := NewAction(ActionBuildRoad, player)
			a.Edge = eid
			actions = append(actions, a)
		}
	}
	return actions
}

func (g *GameState) legalDiscardActions() []Action {
	var players []int
	for id := range g.PendingDiscards {
		players = append(players, id)
	}
	sort.Ints(players)

	var actions []Action
	for _, id := range players {
		a := NewAction(ActionDiscard, id)
		a.Resources = g.DiscardSelection(id)
		actions = append(actions, a)
	}
	return actions
}

// DiscardSelection picks the required number of cards greedily from the
// player's most-held resources. It is the selection the bot (and the CLI's
// auto-discard) submits; a human driver can discard any other legal set.
func (g *GameState) DiscardSelection(player int) []Resource {
	required := g.PendingDiscards[player]
	hand := make(map[Resource]int)
	for r, n := range g.Players[player].Resources {
		hand[r] = n
	}

	var picked []Resource
	for len(picked) < required {
		var best Resource
		bestCount := 0
		for _, r := range board.ResourceTypes {
			if hand[r] > bestCount {
				best, bestCount = r, hand[r]
			}
		}
		if bestCount == 0 {
			break
		}
		hand[best]--
		picked = append(picked, best)
	}
	return picked
}

func (g *GameState) legalRobberActions() []Action {
	var actions []Action
	for _, hex := range g.RobberTargets() {
		victims := g.RobberVictims(g.Current, hex)
		if len(victims) == 0 {
			a := NewAction(ActionMoveRobber, g.Current)
			a.Hex = hex
			actions = append(actions, a)
			continue
		}
		for _, victim := range victims {
			a := NewAction(ActionMoveRobber, g.Current)
			a.Hex = hex
			a.Victim = victim
			actions = append(actions, a)
		}
	}
	return actions
}

func (g *GameState) legalTradeActions() []Action {
	player := g.Current
	p := g.Players[player]

	actions := []Action{
		NewAction(ActionFinishTrade, player),
		NewAction(ActionEndTurn, player),
	}
	for _, give := range board.ResourceTypes {
		rate := g.BestTradeRate(player, give)
		if p.Resources[give] < rate {
			continue
		}
		for _, receive := range board.ResourceTypes {
			if give == receive || g.Bank.Stock(receive) < 1 {
				continue
			}
			a := NewAction(ActionTrade, player)
			a.Give, a.Receive, a.Rate = give, receive, rate
			actions = append(actions, a)
		}
	}
	return actions
}

func (g *GameState) legalBuildActions() []Action {
	player := g.Current
	p := g.Players[player]
	actions := []Action{NewAction(ActionEndTurn, player)}

	if p.CitiesLeft() > 0 && p.CanAfford(CityCost) {
		for _, v := range p.Settlements {
			a := NewAction(ActionBuildCity, player)
			a.Vertex = v
			actions = append(actions, a)
		}
	}
	if p.SettlementsLeft() > 0 && p.CanAfford(SettlementCost) {
		for _, v := range g.Board.Vertices {
			if g.Board.CanPlaceSettlement(v.ID, player, true) {
				a := NewAction(ActionBuildSettlement, player)
				a.Vertex = v.ID
				actions = append(actions, a)
			}
		}
	}
	if p.RoadsLeft() > 0 && p.CanAfford(RoadCost) {
		for _, e := range g.Board.Edges {
			if g.Board.CanPlaceRoad(e.ID, player) {
				a := NewAction(ActionBuildRoad, player)
				a.Edge = e.ID
				actions = append(actions, a)
			}
		}
	}
	if len(g.Bank.DevDeck) > 0 && p.CanAfford(DevCardCost) {
		actions = append(actions, NewAction(ActionBuyDevCard, player))
	}
	actions = append(actions, g.playableCardActions(player)...)
	return actions
}

// playableCardActions emits one play per playable card index, with arguments
// picked the way the bot would pick them.
func (g *GameState) playableCardActions(player int) []Action {
	if g.DevCardPlayed {
		return nil
	}
	p := g.Players[player]

	var actions []Action
	for index, card := range p.DevCards {
		if card == VictoryPoint || p.boughtThisTurn(card) {
			continue
		}
		a := NewAction(ActionPlayDevCard, player)
		a.CardIndex = index

		switch card {
		case Knight:
			hex, victim := g.bestRobberTarget(player)
			a.Hex, a.Victim = hex, victim
		case RoadBuilding:
			edges := g.roadBuildingEdges(player)
			if len(edges) != 2 {
				continue
			}
			a.Edges = edges
		case YearOfPlenty:
			resources := g.scarcestResources(player, 2)
			if len(resources) != 2 {
				continue
			}
			a.Resources = resources
		case Monopoly:
			a.Resource = g.richestOpponentResource(player)
		}
		actions = append(actions, a)
	}
	return actions
}

// bestRobberTarget prefers the hex exposing the most victims; lowest hex ID
// breaks ties, first victim in ID order is proposed.
func (g *GameState) bestRobberTarget(player int) (int, int) {
	bestHex, bestCount := board.NoOwner, -1
	victim := board.NoOwner
	for _, hex := range g.RobberTargets() {
		victims := g.RobberVictims(player, hex)
		if len(victims) > bestCount {
			bestHex, bestCount = hex, len(victims)
			if len(victims) > 0 {
				victim = victims[0]
			} else {
				victim = board.NoOwner
			}
		}
	}
	return bestHex, victim
}

// roadBuildingEdges proposes the first legal pair, the second edge allowed to
// chain off the first.
func (g *GameState) roadBuildingEdges(player int) []int {
	for _, e1 := range g.Board.Edges {
		if !g.Board.CanPlaceRoad(e1.ID, player) {
			continue
		}
		for _, e2 := range g.Board.Edges {
			if e2.ID != e1.ID && g.Board.CanPlaceRoadAssuming(e2.ID, player, e1.ID) {
				return []int{e1.ID, e2.ID}
			}
		}
	}
	return nil
}

// scarcestResources returns the n resource types the player holds least of,
// restricted to what the bank can pay out.
func (g *GameState) scarcestResources(player, n int) []Resource {
	p := g.Players[player]
	candidates := make([]Resource, 0, len(board.ResourceTypes))
	for _, r := range board.ResourceTypes {
		if g.Bank.Stock(r) > 0 {
			candidates = append(candidates, r)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return p.Resources[candidates[i]] < p.Resources[candidates[j]]
	})
	if len(candidates) < n {
		return nil
	}
	return candidates[:n]
}

// richestOpponentResource picks the type opponents hold the most of.
func (g *GameState) richestOpponentResource(player int) Resource {
	best := board.ResourceTypes[0]
	bestCount := -1
	for _, r := range board.ResourceTypes {
		total := 0
		for id, other := range g.Players {
			if id != player {
				total += other.Resources[r]
			}
		}
		if total > bestCount {
			best, bestCount = r, total
		}
	}
	return best
}
