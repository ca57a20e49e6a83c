package game

import "catan/board"

// Qualification thresholds for the two bonus titles.
const (
	longestRoadMinimum = 5
	largestArmyMinimum = 3
	awardBonus         = 2
)

// Score recomputes the player's victory points from primary state. Nothing is
// cached: settlements, cities, held titles and victory-point cards are counted
// every call, so the score can never go stale.
func (g *GameState) Score(player int) int {
	p := g.Players[player]
	score := len(p.Settlements) + 2*len(p.Cities)
	if g.LongestRoadHolder == player {
		score += awardBonus
	}
	if g.LargestArmyHolder == player {
		score += awardBonus
	}
	for _, c := range p.DevCards {
		if c == VictoryPoint {
			score++
		}
	}
	return score
}

// longestRoadFrom finds the longest simple path (no repeated edges) through
// the player's roads. An opponent's building on an intermediate vertex breaks
// the path: the walk may end there but not continue through.
func (g *GameState) longestRoadFrom(player int) int {
	p := g.Players[player]
	if len(p.Roads) == 0 {
		return 0
	}

	used := make(map[int]bool)
	var walk func(vertex, length int) int
	walk = func(vertex, length int) int {
		best := length
		v := g.Board.Vertex(vertex)
		if v.Occupied() && v.Owner != player {
			return best
		}
		for _, edgeID := range v.AdjacentEdges {
			if used[edgeID] {
				continue
			}
			e := g.Board.Edge(edgeID)
			if e.Owner != player {
				continue
			}
			used[edgeID] = true
			if got := walk(e.Other(vertex), length+1); got > best {
				best = got
			}
			used[edgeID] = false
		}
		return best
	}

	best := 0
	for _, edgeID := range p.Roads {
		e := g.Board.Edge(edgeID)
		used[edgeID] = true
		if got := walk(e.V1, 1); got > best {
			best = got
		}
		if got := walk(e.V2, 1); got > best {
			best = got
		}
		used[edgeID] = false
	}
	return best
}

// recomputeLongestRoad refreshes every player's road length and reassigns the
// title. A new holder needs at least 5 and the strict maximum; on a tie the
// current holder retains, and a tie between non-holders crowns no one.
func (g *GameState) recomputeLongestRoad() []Event {
	for id := range g.Players {
		g.LongestRoadLengths[id] = g.longestRoadFrom(id)
	}

	best := 0
	for _, length := range g.LongestRoadLengths {
		if length > best {
			best = length
		}
	}

	var contenders []int
	for id, length := range g.LongestRoadLengths {
		if length == best {
			contenders = append(contenders, id)
		}
	}

	newHolder := board.NoOwner
	if best >= longestRoadMinimum {
		if len(contenders) == 1 {
			newHolder = contenders[0]
		} else if containsInt(contenders, g.LongestRoadHolder) {
			newHolder = g.LongestRoadHolder
		}
	}

	if newHolder == g.LongestRoadHolder {
		return nil
	}
	g.LongestRoadHolder = newHolder
	return []Event{{Kind: EventAwardChanged, Player: newHolder, Award: AwardLongestRoad, Holder: newHolder}}
}

// recomputeLargestArmy reassigns the army title: at least 3 played knights and
// the strict maximum, holder retained on ties.
func (g *GameState) recomputeLargestArmy() []Event {
	best := 0
	for _, p := range g.Players {
		if p.PlayedKnights > best {
			best = p.PlayedKnights
		}
	}

	var contenders []int
	for id, p := range g.Players {
		if p.PlayedKnights == best {
			contenders = append(contenders, id)
		}
	}

	newHolder := board.NoOwner
	if best >= largestArmyMinimum {
		if len(contenders) == 1 {
			newHolder = contenders[0]
		} else if containsInt(contenders, g.LargestArmyHolder) {
			newHolder = g.LargestArmyHolder
		}
	}

	if newHolder == g.LargestArmyHolder {
		return nil
	}
	g.LargestArmyHolder = newHolder
	return []Event{{Kind: EventAwardChanged, Player: newHolder, Award: AwardLargestArmy, Holder: newHolder}}
}

// checkVictory ends the game the moment any player reaches the target. The
// acting player is checked first so simultaneous qualification (possible only
// through title reshuffles) resolves in the actor's favor.
func (g *GameState) checkVictory(actor int) []Event {
	if g.Phase == PhaseGameOver {
		return nil
	}

	order := []int{actor}
	for id := range g.Players {
		if id != actor {
			order = append(order, id)
		}
	}
	for _, id := range order {
		if g.Score(id) >= g.TargetVP {
			g.Phase = PhaseGameOver
			g.Winner = id
			return []Event{{Kind: EventGameOver, Player: id}}
		}
	}
	return nil
}
