package game

import (
	"fmt"
	"sort"

	"catan/board"
)

// discardThreshold: holding more than this after a rolled 7 forces a discard
// of half the hand, rounded down.
const discardThreshold = 7

// Apply validates and resolves one action against the current phase. It
// returns the list of result events describing what happened, or a typed
// error with the state guaranteed untouched. Every handler checks everything
// before mutating anything.
func (g *GameState) Apply(a Action) ([]Event, error) {
	if g.Phase == PhaseGameOver {
		return nil, fmt.Errorf("%w: game is over, winner is %s", ErrIllegalAction, g.Players[g.Winner].Name)
	}
	if !g.validPlayer(a.Player) {
		return nil, fmt.Errorf("%w: no such player %d", ErrIllegalAction, a.Player)
	}

	switch a.Type {
	case ActionRoll:
		return g.applyRoll(a)
	case ActionDiscard:
		return g.applyDiscard(a)
	case ActionMoveRobber:
		return g.applyMoveRobber(a)
	case ActionBuildRoad:
		return g.applyBuildRoad(a)
	case ActionBuildSettlement:
		return g.applyBuildSettlement(a)
	case ActionBuildCity:
		return g.applyBuildCity(a)
	case ActionBuyDevCard:
		return g.applyBuyDevCard(a)
	case ActionPlayDevCard:
		return g.applyPlayDevCard(a)
	case ActionTrade:
		return g.applyTrade(a)
	case ActionFinishTrade:
		return g.applyFinishTrade(a)
	case ActionEndTurn:
		return g.applyEndTurn(a)
	default:
		return nil, fmt.Errorf("%w: unknown action type %d", ErrIllegalAction, a.Type)
	}
}

func (g *GameState) applyRoll(a Action) ([]Event, error) {
	if err := g.requirePhase(PhaseRoll); err != nil {
		return nil, err
	}
	if err := g.requireCurrent(a.Player); err != nil {
		return nil, err
	}

	d1 := g.rng.Intn(6) + 1
	d2 := g.rng.Intn(6) + 1
	total := d1 + d2
	g.DiceHistory = append(g.DiceHistory, [2]int{d1, d2})

	events := []Event{{Kind: EventDiceRolled, Player: a.Player, Dice: [2]int{d1, d2}}}

	if total == 7 {
		for id, p := range g.Players {
			if n := p.TotalResources(); n > discardThreshold {
				g.PendingDiscards[id] = n / 2
				events = append(events, Event{Kind: EventDiscardRequired, Player: id, Amount: n / 2})
			}
		}
		if len(g.PendingDiscards) > 0 {
			g.Phase = PhaseDiscard
		} else {
			g.Phase = PhaseRobber
		}
		return events, nil
	}

	payouts := g.distribute(total)
	if len(payouts) > 0 {
		events = append(events, Event{Kind: EventProduction, Player: a.Player, Payouts: payouts})
	}
	g.Phase = PhaseTrade
	return events, nil
}

// distribute pays production for a non-7 roll. Claims are gathered per
// resource first so the shortage rule can apply: when the bank cannot cover
// every claim of a resource, nobody is paid that resource this round, unless
// a single player is the sole claimant, who then gets what stock remains.
func (g *GameState) distribute(total int) map[int]map[Resource]int {
	claims := make(map[Resource]map[int]int)

	for _, h := range g.Board.Hexes {
		if h.Token != total || h.Resource == board.Desert || h.ID == g.RobberHex {
			continue
		}
		for _, vid := range h.Vertices {
			v := g.Board.Vertex(vid)
			if !v.Occupied() {
				continue
			}
			amount := 1
			if v.Building == board.City {
				amount = 2
			}
			if claims[h.Resource] == nil {
				claims[h.Resource] = make(map[int]int)
			}
			claims[h.Resource][v.Owner] += amount
		}
	}

	payouts := make(map[int]map[Resource]int)
	pay := func(player int, r Resource, amount int) {
		if amount <= 0 {
			return
		}
		g.Bank.Resources[r] -= amount
		g.Players[player].Resources[r] += amount
		if payouts[player] == nil {
			payouts[player] = make(map[Resource]int)
		}
		payouts[player][r] += amount
	}

	for _, r := range board.ResourceTypes {
		byPlayer, ok := claims[r]
		if !ok {
			continue
		}
		claimed := 0
		for _, n := range byPlayer {
			claimed += n
		}
		stock := g.Bank.Stock(r)

		switch {
		case stock >= claimed:
			for player, n := range byPlayer {
				pay(player, r, n)
			}
		case len(byPlayer) == 1:
			for player, n := range byPlayer {
				pay(player, r, min(n, stock))
			}
		}
		// Shortage with multiple claimants: the resource is skipped.
	}
	return payouts
}

func (g *GameState) applyDiscard(a Action) ([]Event, error) {
	if err := g.requirePhase(PhaseDiscard); err != nil {
		return nil, err
	}
	required, ok := g.PendingDiscards[a.Player]
	if !ok {
		return nil, fmt.Errorf("%w: player %d has no pending discard", ErrIllegalAction, a.Player)
	}
	if len(a.Resources) != required {
		return nil, fmt.Errorf("%w: must discard exactly %d cards, got %d", ErrIllegalAction, required, len(a.Resources))
	}

	staged := make(map[Resource]int)
	for _, r := range a.Resources {
		if !validTradeResource(r) {
			return nil, fmt.Errorf("%w: cannot discard %q", ErrIllegalAction, r)
		}
		staged[r]++
	}
	p := g.Players[a.Player]
	if !canCover(p.Resources, staged) {
		return nil, fmt.Errorf("%w: hand does not cover the discard selection", ErrInsufficientResources)
	}

	for r, n := range staged {
		p.Resources[r] -= n
		g.Bank.Resources[r] += n
	}
	delete(g.PendingDiscards, a.Player)

	events := []Event{{Kind: EventDiscarded, Player: a.Player, Amount: required}}
	if len(g.PendingDiscards) == 0 {
		g.Phase = PhaseRobber
	}
	return events, nil
}

// RobberVictims lists players eligible to be robbed on hex: owners of an
// adjacent building, other than the actor, still holding cards.
func (g *GameState) RobberVictims(actor, hex int) []int {
	h := g.Board.Hex(hex)
	if h == nil {
		return nil
	}
	seen := make(map[int]bool)
	var victims []int
	for _, vid := range h.Vertices {
		v := g.Board.Vertex(vid)
		if !v.Occupied() || v.Owner == actor || seen[v.Owner] {
			continue
		}
		if g.Players[v.Owner].TotalResources() <= 0 {
			continue
		}
		seen[v.Owner] = true
		victims = append(victims, v.Owner)
	}
	sort.Ints(victims)
	return victims
}

// RobberTargets lists every hex the robber may move to.
func (g *GameState) RobberTargets() []int {
	targets := make([]int, 0, len(g.Board.Hexes)-1)
	for _, h := range g.Board.Hexes {
		if h.ID != g.RobberHex {
			targets = append(targets, h.ID)
		}
	}
	return targets
}

// validateRobberMove checks a robber move without mutating, so the knight
// card can confirm the whole play before consuming itself.
func (g *GameState) validateRobberMove(a Action) error {
	if g.Board.Hex(a.Hex) == nil {
		return fmt.Errorf("%w: no such hex %d", ErrIllegalPlacement, a.Hex)
	}
	if a.Hex == g.RobberHex {
		return fmt.Errorf("%w: robber must move to a different hex", ErrIllegalPlacement)
	}
	if a.Victim != board.NoOwner && !containsInt(g.RobberVictims(a.Player, a.Hex), a.Victim) {
		return fmt.Errorf("%w: player %d is not robbable on hex %d", ErrIllegalAction, a.Victim, a.Hex)
	}
	return nil
}

// moveRobber relocates the robber and steals one random card. Callers have
// already validated the move.
func (g *GameState) moveRobber(a Action) []Event {
	g.RobberHex = a.Hex
	events := []Event{{Kind: EventRobberMoved, Player: a.Player, Hex: a.Hex}}

	victim := a.Victim
	if victim == board.NoOwner {
		if eligible := g.RobberVictims(a.Player, a.Hex); len(eligible) > 0 {
			victim = eligible[g.rng.Intn(len(eligible))]
		}
	}
	if victim == board.NoOwner {
		return events
	}

	var bag []Resource
	for _, r := range board.ResourceTypes {
		for i := 0; i < g.Players[victim].Resources[r]; i++ {
			bag = append(bag, r)
		}
	}
	if len(bag) == 0 {
		return events
	}
	stolen := bag[g.rng.Intn(len(bag))]
	g.Players[victim].Resources[stolen]--
	g.Players[a.Player].Resources[stolen]++
	events = append(events, Event{Kind: EventCardStolen, Player: a.Player, Victim: victim, Resource: stolen})
	return events
}

func (g *GameState) applyMoveRobber(a Action) ([]Event, error) {
	if err := g.requirePhase(PhaseRobber); err != nil {
		return nil, err
	}
	if err := g.requireCurrent(a.Player); err != nil {
		return nil, err
	}
	if err := g.validateRobberMove(a); err != nil {
		return nil, err
	}

	events := g.moveRobber(a)
	g.Phase = PhaseTrade
	return events, nil
}

func (g *GameState) applyBuildRoad(a Action) ([]Event, error) {
	if g.Phase == PhaseSetup {
		return g.applySetupRoad(a)
	}
	if err := g.requirePhase(PhaseBuild); err != nil {
		return nil, err
	}
	if err := g.requireCurrent(a.Player); err != nil {
		return nil, err
	}

	p := g.Players[a.Player]
	if p.RoadsLeft() < 1 {
		return nil, fmt.Errorf("%w: no road pieces left", ErrOutOfStock)
	}
	if !p.CanAfford(RoadCost) {
		return nil, fmt.Errorf("%w: road costs %v", ErrInsufficientResources, RoadCost)
	}
	if !g.Board.CanPlaceRoad(a.Edge, a.Player) {
		return nil, fmt.Errorf("%w: road on edge %d", ErrIllegalPlacement, a.Edge)
	}

	if err := moveCost(p.Resources, g.Bank.Resources, RoadCost); err != nil {
		return nil, err
	}
	g.placeRoad(a.Player, a.Edge)

	events := []Event{{Kind: EventRoadBuilt, Player: a.Player, Edge: a.Edge}}
	events = append(events, g.recomputeLongestRoad()...)
	events = append(events, g.checkVictory(a.Player)...)
	return events, nil
}

func (g *GameState) applyBuildSettlement(a Action) ([]Event, error) {
	if g.Phase == PhaseSetup {
		return g.applySetupSettlement(a)
	}
	if err := g.requirePhase(PhaseBuild); err != nil {
		return nil, err
	}
	if err := g.requireCurrent(a.Player); err != nil {
		return nil, err
	}

	p := g.Players[a.Player]
	if p.SettlementsLeft() < 1 {
		return nil, fmt.Errorf("%w: no settlement pieces left", ErrOutOfStock)
	}
	if !p.CanAfford(SettlementCost) {
		return nil, fmt.Errorf("%w: settlement costs %v", ErrInsufficientResources, SettlementCost)
	}
	if !g.Board.CanPlaceSettlement(a.Vertex, a.Player, true) {
		return nil, fmt.Errorf("%w: settlement on vertex %d", ErrIllegalPlacement, a.Vertex)
	}

	if err := moveCost(p.Resources, g.Bank.Resources, SettlementCost); err != nil {
		return nil, err
	}
	g.placeSettlement(a.Player, a.Vertex)

	events := []Event{{Kind: EventSettlementBuilt, Player: a.Player, Vertex: a.Vertex}}
	// A new settlement can sever an opponent's road path.
	events = append(events, g.recomputeLongestRoad()...)
	events = append(events, g.checkVictory(a.Player)...)
	return events, nil
}

func (g *GameState) applyBuildCity(a Action) ([]Event, error) {
	if err := g.requirePhase(PhaseBuild); err != nil {
		return nil, err
	}
	if err := g.requireCurrent(a.Player); err != nil {
		return nil, err
	}

	p := g.Players[a.Player]
	if p.CitiesLeft() < 1 {
		return nil, fmt.Errorf("%w: no city pieces left", ErrOutOfStock)
	}
	if !p.CanAfford(CityCost) {
		return nil, fmt.Errorf("%w: city costs %v", ErrInsufficientResources, CityCost)
	}
	v := g.Board.Vertex(a.Vertex)
	if v == nil || v.Owner != a.Player || v.Building != board.Settlement {
		return nil, fmt.Errorf("%w: player must own a settlement on vertex %d to upgrade", ErrIllegalPlacement, a.Vertex)
	}

	if err := moveCost(p.Resources, g.Bank.Resources, CityCost); err != nil {
		return nil, err
	}
	v.Building = board.City
	p.Settlements = removeInt(p.Settlements, a.Vertex)
	p.Cities = append(p.Cities, a.Vertex)

	events := []Event{{Kind: EventCityBuilt, Player: a.Player, Vertex: a.Vertex}}
	events = append(events, g.checkVictory(a.Player)...)
	return events, nil
}

func (g *GameState) applyBuyDevCard(a Action) ([]Event, error) {
	if err := g.requirePhase(PhaseBuild); err != nil {
		return nil, err
	}
	if err := g.requireCurrent(a.Player); err != nil {
		return nil, err
	}

	p := g.Players[a.Player]
	if len(g.Bank.DevDeck) == 0 {
		return nil, ErrDeckEmpty
	}
	if !p.CanAfford(DevCardCost) {
		return nil, fmt.Errorf("%w: development card costs %v", ErrInsufficientResources, DevCardCost)
	}

	if err := moveCost(p.Resources, g.Bank.Resources, DevCardCost); err != nil {
		return nil, err
	}
	card, err := g.Bank.DrawCard()
	if err != nil {
		return nil, err
	}
	p.DevCards = append(p.DevCards, card)
	p.NewDevCards = append(p.NewDevCards, card)

	events := []Event{{Kind: EventDevCardBought, Player: a.Player, Card: card}}
	// A victory-point card can end the game the moment it is drawn.
	events = append(events, g.checkVictory(a.Player)...)
	return events, nil
}

func (g *GameState) applyFinishTrade(a Action) ([]Event, error) {
	if err := g.requirePhase(PhaseTrade); err != nil {
		return nil, err
	}
	if err := g.requireCurrent(a.Player); err != nil {
		return nil, err
	}
	g.Phase = PhaseBuild
	return nil, nil
}

func (g *GameState) applyEndTurn(a Action) ([]Event, error) {
	if err := g.requirePhase(PhaseTrade, PhaseBuild); err != nil {
		return nil, err
	}
	if err := g.requireCurrent(a.Player); err != nil {
		return nil, err
	}
	g.advanceTurn()
	return []Event{{Kind: EventTurnEnded, Player: a.Player}}, nil
}

// placeRoad and placeSettlement mutate board and player together so the two
// views never drift apart.
func (g *GameState) placeRoad(player, edge int) {
	g.Board.Edge(edge).Owner = player
	g.Players[player].Roads = append(g.Players[player].Roads, edge)
}

func (g *GameState) placeSettlement(player, vertex int) {
	v := g.Board.Vertex(vertex)
	v.Owner = player
	v.Building = board.Settlement
	g.Players[player].Settlements = append(g.Players[player].Settlements, vertex)
}
