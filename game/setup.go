package game

import (
	"fmt"

	"catan/board"
)

// Setup placements are free and come in settlement/road pairs following the
// snake order (each player once forward, once reversed). The second
// settlement pays out one card per adjacent producing hex.

func (g *GameState) applySetupSettlement(a Action) ([]Event, error) {
	if err := g.requireCurrent(a.Player); err != nil {
		return nil, err
	}
	if g.SetupPendingVertex != board.NoOwner {
		return nil, fmt.Errorf("%w: place the road for the settlement on vertex %d first", ErrIllegalAction, g.SetupPendingVertex)
	}
	if !g.Board.CanPlaceSettlement(a.Vertex, a.Player, false) {
		return nil, fmt.Errorf("%w: settlement on vertex %d", ErrIllegalPlacement, a.Vertex)
	}

	g.placeSettlement(a.Player, a.Vertex)
	g.SetupPendingVertex = a.Vertex

	events := []Event{{Kind: EventSetupPlaced, Player: a.Player, Vertex: a.Vertex, Edge: board.NoOwner}}

	// Second placement round: grant starting resources for this settlement.
	if g.SetupIndex >= len(g.Players) {
		payout := make(map[Resource]int)
		for _, hid := range g.Board.AdjacentHexes(a.Vertex) {
			h := g.Board.Hex(hid)
			if h.Resource == board.Desert || g.Bank.Stock(h.Resource) <= 0 {
				continue
			}
			g.Bank.Resources[h.Resource]--
			g.Players[a.Player].Resources[h.Resource]++
			payout[h.Resource]++
		}
		if len(payout) > 0 {
			events = append(events, Event{
				Kind:    EventProduction,
				Player:  a.Player,
				Payouts: map[int]map[Resource]int{a.Player: payout},
			})
		}
	}
	return events, nil
}

func (g *GameState) applySetupRoad(a Action) ([]Event, error) {
	if err := g.requireCurrent(a.Player); err != nil {
		return nil, err
	}
	if g.SetupPendingVertex == board.NoOwner {
		return nil, fmt.Errorf("%w: place a settlement before its road", ErrIllegalAction)
	}
	e := g.Board.Edge(a.Edge)
	if e == nil || e.Occupied() {
		return nil, fmt.Errorf("%w: road on edge %d", ErrIllegalPlacement, a.Edge)
	}
	// The setup road must leave the settlement just placed.
	if e.V1 != g.SetupPendingVertex && e.V2 != g.SetupPendingVertex {
		return nil, fmt.Errorf("%w: setup road must touch the settlement on vertex %d", ErrIllegalPlacement, g.SetupPendingVertex)
	}

	g.placeRoad(a.Player, a.Edge)
	events := []Event{{Kind: EventSetupPlaced, Player: a.Player, Vertex: g.SetupPendingVertex, Edge: a.Edge}}
	g.SetupPendingVertex = board.NoOwner
	g.SetupIndex++

	order := g.setupOrder()
	if g.SetupIndex >= len(order) {
		// Setup complete: play starts with the first player.
		g.Current = 0
		g.Phase = PhaseRoll
	} else {
		g.Current = order[g.SetupIndex]
	}
	return events, nil
}

// AutoSetup runs the whole placement phase with a simple preference for port
// vertices, mirroring how a quick-start game is dealt. It is what the CLI and
// the simulator use before handing control to players.
func (g *GameState) AutoSetup() ([]Event, error) {
	if g.Phase != PhaseSetup {
		return nil, fmt.Errorf("%w: setup already complete", ErrIllegalAction)
	}

	var events []Event
	for g.Phase == PhaseSetup {
		player := g.Current

		vertex := board.NoOwner
		for _, v := range g.setupCandidates() {
			if g.Board.CanPlaceSettlement(v, player, false) {
				vertex = v
				break
			}
		}
		if vertex == board.NoOwner {
			return events, fmt.Errorf("%w: no legal initial settlement for player %d", ErrIllegalPlacement, player)
		}

		sa := NewAction(ActionBuildSettlement, player)
		sa.Vertex = vertex
		evs, err := g.Apply(sa)
		if err != nil {
			return events, err
		}
		events = append(events, evs...)

		edge := board.NoOwner
		for _, eid := range g.Board.NeighborEdges(vertex) {
			if !g.Board.Edge(eid).Occupied() {
				edge = eid
				break
			}
		}
		if edge == board.NoOwner {
			return events, fmt.Errorf("%w: no legal initial road for player %d", ErrIllegalPlacement, player)
		}

		ra := NewAction(ActionBuildRoad, player)
		ra.Edge = edge
		evs, err = g.Apply(ra)
		if err != nil {
			return events, err
		}
		events = append(events, evs...)
	}
	return events, nil
}

// setupCandidates orders vertices port-first for auto placement.
func (g *GameState) setupCandidates() []int {
	var withPorts, without []int
	for _, v := range g.Board.Vertices {
		if len(g.Board.PortsAt(v.ID)) > 0 {
			withPorts = append(withPorts, v.ID)
		} else {
			without = append(without, v.ID)
		}
	}
	return append(withPorts, without...)
}
