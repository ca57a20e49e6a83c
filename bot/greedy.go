// Package bot provides computer players for the engine's Run loop.
package bot

import (
	"catan/game"
)

// Greedy is a simple rule-based player: build the most valuable thing it can
// afford, trade toward the next build, take the robber move that exposes the
// most victims. It holds no lookahead and no memory beyond the current turn.
type Greedy struct {
	player    int
	maxBuilds int

	lastTurn int
	builds   int
}

// NewGreedy creates a greedy player for the given seat. At most three builds
// per turn keep games moving instead of hoarding toward a perfect turn.
func NewGreedy(player int) *Greedy {
	return &Greedy{player: player, maxBuilds: 3, lastTurn: -1}
}

// ChooseAction picks one action from the legal set. It never returns an
// action outside legal, so a driven game cannot stall on a rejection.
func (b *Greedy) ChooseAction(state *game.GameState, legal []game.Action) game.Action {
	if state.Turn != b.lastTurn {
		b.lastTurn = state.Turn
		b.builds = 0
	}

	switch state.Phase {
	case game.PhaseRobber:
		return b.chooseRobberMove(state, legal)
	case game.PhaseTrade:
		return b.chooseTrade(state, legal)
	case game.PhaseBuild:
		return b.chooseBuild(state, legal)
	default:
		// Setup placements, the roll, and discards have a single sensible
		// option: the first one offered.
		return legal[0]
	}
}

// chooseRobberMove maximizes the number of robbable players on the target
// hex, stealing from the first of them.
func (b *Greedy) chooseRobberMove(state *game.GameState, legal []game.Action) game.Action {
	best := legal[0]
	bestVictims := len(state.RobberVictims(b.player, best.Hex))
	for _, a := range legal[1:] {
		if n := len(state.RobberVictims(b.player, a.Hex)); n > bestVictims {
			best, bestVictims = a, n
		}
	}
	return best
}

// buildTargets is the bot's spending priority.
var buildTargets = []map[game.Resource]int{
	game.CityCost,
	game.SettlementCost,
	game.RoadCost,
	game.DevCardCost,
}

// chooseTrade trades toward the highest-priority build the player cannot yet
// afford, then leaves the trade phase.
func (b *Greedy) chooseTrade(state *game.GameState, legal []game.Action) game.Action {
	p := state.Players[b.player]

	for _, cost := range buildTargets {
		if p.CanAfford(cost) {
			break
		}
		if a, ok := tradeToward(p, cost, legal); ok {
			return a
		}
	}

	for _, a := range legal {
		if a.Type == game.ActionFinishTrade {
			return a
		}
	}
	return legal[0]
}

// tradeToward finds a legal trade that receives a resource the cost still
// lacks while giving one the cost does not need.
func tradeToward(p *game.Player, cost map[game.Resource]int, legal []game.Action) (game.Action, bool) {
	for _, a := range legal {
		if a.Type != game.ActionTrade {
			continue
		}
		if p.Resources[a.Receive] >= cost[a.Receive] {
			continue // not a deficit
		}
		if p.Resources[a.Give]-a.Rate < cost[a.Give] {
			continue // would eat into the target cost
		}
		return a, true
	}
	return game.Action{}, false
}

// chooseBuild plays a held development card first, then builds by value:
// city, settlement, road, development card. After the per-turn build cap the
// turn ends.
func (b *Greedy) chooseBuild(state *game.GameState, legal []game.Action) game.Action {
	if a, ok := findType(legal, game.ActionPlayDevCard); ok && !state.DevCardPlayed {
		return a
	}

	if b.builds < b.maxBuilds {
		order := []game.ActionType{
			game.ActionBuildCity,
			game.ActionBuildSettlement,
			game.ActionBuildRoad,
			game.ActionBuyDevCard,
		}
		for _, t := range order {
			if a, ok := findType(legal, t); ok {
				b.builds++
				return a
			}
		}
	}

	if a, ok := findType(legal, game.ActionEndTurn); ok {
		return a
	}
	return legal[0]
}

func findType(legal []game.Action, t game.ActionType) (game.Action, bool) {
	for _, a := range legal {
		if a.Type == t {
			return a, true
		}
	}
	return game.Action{}, false
}
