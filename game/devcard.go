package game

import (
	"fmt"

	"catan/board"
)

// applyPlayDevCard resolves a development card by hand index. One card per
// turn; cards bought this turn stay locked until the next; victory-point
// cards are never actively played. The card is consumed only after the whole
// play, arguments included, has validated.
func (g *GameState) applyPlayDevCard(a Action) ([]Event, error) {
	if err := g.requirePhase(PhaseBuild); err != nil {
		return nil, err
	}
	if err := g.requireCurrent(a.Player); err != nil {
		return nil, err
	}

	p := g.Players[a.Player]
	if a.CardIndex < 0 || a.CardIndex >= len(p.DevCards) {
		return nil, fmt.Errorf("%w: no card at index %d", ErrCardNotPlayable, a.CardIndex)
	}
	card := p.DevCards[a.CardIndex]

	if g.DevCardPlayed {
		return nil, fmt.Errorf("%w: only one development card per turn", ErrCardNotPlayable)
	}
	if card == VictoryPoint {
		return nil, fmt.Errorf("%w: victory point cards score on draw and are not played", ErrCardNotPlayable)
	}
	if p.boughtThisTurn(card) {
		return nil, fmt.Errorf("%w: %s was bought this turn", ErrCardNotPlayable, card)
	}

	var events []Event
	var err error
	switch card {
	case Knight:
		events, err = g.playKnight(a)
	case RoadBuilding:
		events, err = g.playRoadBuilding(a)
	case YearOfPlenty:
		events, err = g.playYearOfPlenty(a)
	case Monopoly:
		events, err = g.playMonopoly(a)
	default:
		err = fmt.Errorf("%w: unsupported card %q", ErrCardNotPlayable, card)
	}
	if err != nil {
		return nil, err
	}

	p.DevCards = append(p.DevCards[:a.CardIndex], p.DevCards[a.CardIndex+1:]...)
	g.DevCardPlayed = true

	played := Event{Kind: EventDevCardPlayed, Player: a.Player, Card: card}
	events = append([]Event{played}, events...)
	events = append(events, g.checkVictory(a.Player)...)
	return events, nil
}

func (g *GameState) playKnight(a Action) ([]Event, error) {
	if err := g.validateRobberMove(a); err != nil {
		return nil, err
	}
	events := g.moveRobber(a)
	g.Players[a.Player].PlayedKnights++
	events = append(events, g.recomputeLargestArmy()...)
	return events, nil
}

func (g *GameState) playRoadBuilding(a Action) ([]Event, error) {
	if len(a.Edges) != 2 {
		return nil, fmt.Errorf("%w: road building needs exactly 2 edges, got %d", ErrCardNotPlayable, len(a.Edges))
	}
	p := g.Players[a.Player]
	if p.RoadsLeft() < 2 {
		return nil, fmt.Errorf("%w: only %d road pieces left", ErrOutOfStock, p.RoadsLeft())
	}
	first, second := a.Edges[0], a.Edges[1]
	if first == second {
		return nil, fmt.Errorf("%w: road building edges must differ", ErrIllegalPlacement)
	}
	if !g.Board.CanPlaceRoad(first, a.Player) {
		return nil, fmt.Errorf("%w: road on edge %d", ErrIllegalPlacement, first)
	}
	// The second road may extend from the first one.
	if !g.Board.CanPlaceRoadAssuming(second, a.Player, first) {
		return nil, fmt.Errorf("%w: road on edge %d", ErrIllegalPlacement, second)
	}

	g.placeRoad(a.Player, first)
	g.placeRoad(a.Player, second)

	events := []Event{
		{Kind: EventRoadBuilt, Player: a.Player, Edge: first},
		{Kind: EventRoadBuilt, Player: a.Player, Edge: second},
	}
	events = append(events, g.recomputeLongestRoad()...)
	return events, nil
}

func (g *GameState) playYearOfPlenty(a Action) ([]Event, error) {
	if len(a.Resources) != 2 {
		return nil, fmt.Errorf("%w: year of plenty needs exactly 2 resources, got %d", ErrCardNotPlayable, len(a.Resources))
	}
	wanted := make(map[Resource]int)
	for _, r := range a.Resources {
		if !validTradeResource(r) {
			return nil, fmt.Errorf("%w: cannot collect %q", ErrCardNotPlayable, r)
		}
		wanted[r]++
	}
	for r, n := range wanted {
		if g.Bank.Stock(r) < n {
			return nil, fmt.Errorf("%w: bank has only %d %s", ErrInsufficientResources, g.Bank.Stock(r), r)
		}
	}

	p := g.Players[a.Player]
	var events []Event
	for r, n := range wanted {
		g.Bank.Resources[r] -= n
		p.Resources[r] += n
		events = append(events, Event{Kind: EventProduction, Player: a.Player, Payouts: map[int]map[Resource]int{a.Player: {r: n}}})
	}
	return events, nil
}

func (g *GameState) playMonopoly(a Action) ([]Event, error) {
	if !validTradeResource(a.Resource) {
		return nil, fmt.Errorf("%w: monopoly needs a tradeable resource, got %q", ErrCardNotPlayable, a.Resource)
	}

	p := g.Players[a.Player]
	stolen := 0
	for id, other := range g.Players {
		if id == a.Player {
			continue
		}
		amount := other.Resources[a.Resource]
		if amount <= 0 {
			continue
		}
		other.Resources[a.Resource] -= amount
		p.Resources[a.Resource] += amount
		stolen += amount
	}
	return []Event{{Kind: EventCardStolen, Player: a.Player, Victim: board.NoOwner, Resource: a.Resource, Amount: stolen}}, nil
}
