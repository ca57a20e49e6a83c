package game

import (
	"fmt"

	"catan/board"
)

// bankStockPerResource is the fixed initial stock per resource type. The
// conservation invariant holds against these totals for the whole game.
const bankStockPerResource = 19

// Bank is the shared resource pool and development-card draw pile.
type Bank struct {
	Resources map[Resource]int
	DevDeck   []DevCardType
}

func newBank(rng Roller) *Bank {
	resources := make(map[Resource]int, len(board.ResourceTypes))
	for _, r := range board.ResourceTypes {
		resources[r] = bankStockPerResource
	}
	return &Bank{
		Resources: resources,
		DevDeck:   newDevDeck(rng),
	}
}

// DrawCard removes and returns the top card of the draw pile.
func (b *Bank) DrawCard() (DevCardType, error) {
	if len(b.DevDeck) == 0 {
		return "", ErrDeckEmpty
	}
	card := b.DevDeck[len(b.DevDeck)-1]
	b.DevDeck = b.DevDeck[:len(b.DevDeck)-1]
	return card, nil
}

// Stock returns the bank's current stock of r.
func (b *Bank) Stock(r Resource) int {
	return b.Resources[r]
}

func (b *Bank) String() string {
	return fmt.Sprintf("bank{resources: %v, deck: %d}", b.Resources, len(b.DevDeck))
}
