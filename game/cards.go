package game

import "catan/board"

// Resource is re-exported from the board package so drivers only deal with
// one name for it.
type Resource = board.Resource

// DevCardType enumerates the closed set of development cards.
type DevCardType string

const (
	Knight       DevCardType = "Knight"
	VictoryPoint DevCardType = "Victory Point"
	RoadBuilding DevCardType = "Road Building"
	YearOfPlenty DevCardType = "Year of Plenty"
	Monopoly     DevCardType = "Monopoly"
)

// devCardCounts is the standard deck mix.
var devCardCounts = []struct {
	card  DevCardType
	count int
}{
	{Knight, 14},
	{VictoryPoint, 5},
	{RoadBuilding, 2},
	{YearOfPlenty, 2},
	{Monopoly, 2},
}

// newDevDeck builds and shuffles the development deck once at game start.
// Cards are drawn from the end of the slice.
func newDevDeck(rng Roller) []DevCardType {
	var deck []DevCardType
	for _, entry := range devCardCounts {
		for i := 0; i < entry.count; i++ {
			deck = append(deck, entry.card)
		}
	}
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

func validDevCard(c DevCardType) bool {
	switch c {
	case Knight, VictoryPoint, RoadBuilding, YearOfPlenty, Monopoly:
		return true
	}
	return false
}
