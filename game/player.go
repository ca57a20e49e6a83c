package game

import (
	"fmt"
)

// Per-player piece pools. A city upgrade returns the settlement piece to the
// pool, so remaining stock is always derived from what is on the board.
const (
	MaxRoads       = 15
	MaxSettlements = 5
	MaxCities      = 4
)

// Player holds one player's hand and board presence. Victory points are never
// stored; they are recomputed from this state (see GameState.Score).
type Player struct {
	ID            int
	Name          string
	Resources     map[Resource]int
	DevCards      []DevCardType // full hand, order preserved for index-based play
	NewDevCards   []DevCardType // bought this turn, not yet playable
	PlayedKnights int
	Settlements   []int // vertex IDs
	Cities        []int // vertex IDs
	Roads         []int // edge IDs
}

func newPlayer(id int, name string) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Resources: make(map[Resource]int),
	}
}

// TotalResources counts every resource card in hand.
func (p *Player) TotalResources() int {
	total := 0
	for _, n := range p.Resources {
		total += n
	}
	return total
}

// CanAfford reports whether the hand covers cost.
func (p *Player) CanAfford(cost map[Resource]int) bool {
	for r, n := range cost {
		if p.Resources[r] < n {
			return false
		}
	}
	return true
}

// RoadsLeft is the number of road pieces still in the player's pool.
func (p *Player) RoadsLeft() int { return MaxRoads - len(p.Roads) }

// SettlementsLeft is the number of settlement pieces still in the pool.
func (p *Player) SettlementsLeft() int { return MaxSettlements - len(p.Settlements) }

// CitiesLeft is the number of city pieces still in the pool.
func (p *Player) CitiesLeft() int { return MaxCities - len(p.Cities) }

// boughtThisTurn reports whether a card of this type entered the hand this
// turn. Cards are fungible per type, so buying any copy locks the type until
// next turn.
func (p *Player) boughtThisTurn(card DevCardType) bool {
	for _, c := range p.NewDevCards {
		if c == card {
			return true
		}
	}
	return false
}

// moveResource transfers amount of r between two hands. It either fully
// applies or fails with ErrInsufficientResources; it never partially applies.
func moveResource(from, to map[Resource]int, r Resource, amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative transfer of %s", ErrInsufficientResources, r)
	}
	if from[r] < amount {
		return fmt.Errorf("%w: need %d %s, have %d", ErrInsufficientResources, amount, r, from[r])
	}
	from[r] -= amount
	to[r] += amount
	return nil
}

// canCover reports whether hand covers every entry of cost.
func canCover(hand map[Resource]int, cost map[Resource]int) bool {
	for r, n := range cost {
		if hand[r] < n {
			return false
		}
	}
	return true
}

// moveCost transfers a whole multi-resource cost between two hands
// atomically: it checks every entry before moving anything.
func moveCost(from, to map[Resource]int, cost map[Resource]int) error {
	if !canCover(from, cost) {
		return fmt.Errorf("%w: cannot cover cost %v", ErrInsufficientResources, cost)
	}
	for r, n := range cost {
		from[r] -= n
		to[r] += n
	}
	return nil
}

func containsInt(slice []int, item int) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

func removeInt(slice []int, item int) []int {
	for i, v := range slice {
		if v == item {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}
