package game

import (
	"fmt"

	"catan/board"
)

// bankRate is the default trade rate without any port.
const bankRate = 4

// PortRates returns the player's trade rates from occupied port vertices. The
// "" key is the generic rate (bank 4:1, improved to 3:1 by an any-resource
// port); resource keys appear only where a 2:1 port applies.
func (g *GameState) PortRates(player int) map[Resource]int {
	rates := map[Resource]int{"": bankRate}
	p := g.Players[player]

	occupied := make(map[int]bool)
	for _, v := range p.Settlements {
		occupied[v] = true
	}
	for _, v := range p.Cities {
		occupied[v] = true
	}

	for _, port := range g.Board.Ports {
		if !occupied[port.Vertices[0]] && !occupied[port.Vertices[1]] {
			continue
		}
		key := port.Resource
		if current, ok := rates[key]; !ok || port.Rate < current {
			rates[key] = port.Rate
		}
	}
	return rates
}

// BestTradeRate returns the cheapest rate at which the player may give r.
func (g *GameState) BestTradeRate(player int, give Resource) int {
	rates := g.PortRates(player)
	best := rates[""]
	if specific, ok := rates[give]; ok && specific < best {
		best = specific
	}
	return best
}

// applyTrade executes a bank/port trade: rate cards of Give for one Receive.
func (g *GameState) applyTrade(a Action) ([]Event, error) {
	if err := g.requirePhase(PhaseTrade); err != nil {
		return nil, err
	}
	if err := g.requireCurrent(a.Player); err != nil {
		return nil, err
	}
	if !validTradeResource(a.Give) || !validTradeResource(a.Receive) {
		return nil, fmt.Errorf("%w: trade resources must be tradeable types", ErrIllegalAction)
	}
	if a.Give == a.Receive {
		return nil, fmt.Errorf("%w: give and receive resources must differ", ErrIllegalAction)
	}

	best := g.BestTradeRate(a.Player, a.Give)
	rate := a.Rate
	if rate == 0 {
		rate = best
	}
	if rate < best {
		return nil, fmt.Errorf("%w: rate %d:1 is better than the player's available %d:1", ErrIllegalAction, rate, best)
	}

	p := g.Players[a.Player]
	if p.Resources[a.Give] < rate {
		return nil, fmt.Errorf("%w: need %d %s for a %d:1 trade", ErrInsufficientResources, rate, a.Give, rate)
	}
	if g.Bank.Stock(a.Receive) < 1 {
		return nil, fmt.Errorf("%w: bank has no %s", ErrInsufficientResources, a.Receive)
	}

	// Validated above; both moves are guaranteed to apply.
	if err := moveResource(p.Resources, g.Bank.Resources, a.Give, rate); err != nil {
		return nil, err
	}
	if err := moveResource(g.Bank.Resources, p.Resources, a.Receive, 1); err != nil {
		return nil, err
	}

	ev := Event{Kind: EventTradeExecuted, Player: a.Player, Resource: a.Receive, Amount: rate}
	return []Event{ev}, nil
}

func validTradeResource(r Resource) bool {
	for _, t := range board.ResourceTypes {
		if r == t {
			return true
		}
	}
	return false
}
