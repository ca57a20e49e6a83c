package game

import "fmt"

// EventKind classifies a ResultEvent.
type EventKind int

const (
	EventDiceRolled EventKind = iota
	EventProduction
	EventDiscardRequired
	EventDiscarded
	EventRobberMoved
	EventCardStolen
	EventSetupPlaced
	EventRoadBuilt
	EventSettlementBuilt
	EventCityBuilt
	EventDevCardBought
	EventDevCardPlayed
	EventTradeExecuted
	EventTurnEnded
	EventAwardChanged
	EventGameOver
)

var eventNames = map[EventKind]string{
	EventDiceRolled:      "DiceRolled",
	EventProduction:      "Production",
	EventDiscardRequired: "DiscardRequired",
	EventDiscarded:       "Discarded",
	EventRobberMoved:     "RobberMoved",
	EventCardStolen:      "CardStolen",
	EventSetupPlaced:     "SetupPlaced",
	EventRoadBuilt:       "RoadBuilt",
	EventSettlementBuilt: "SettlementBuilt",
	EventCityBuilt:       "CityBuilt",
	EventDevCardBought:   "DevCardBought",
	EventDevCardPlayed:   "DevCardPlayed",
	EventTradeExecuted:   "TradeExecuted",
	EventTurnEnded:       "TurnEnded",
	EventAwardChanged:    "AwardChanged",
	EventGameOver:        "GameOver",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Award names for EventAwardChanged.
const (
	AwardLongestRoad = "longest road"
	AwardLargestArmy = "largest army"
)

// Event is one entry of the result list an applied action returns. It is a
// flat record; which fields are meaningful depends on Kind.
type Event struct {
	Kind   EventKind
	Player int

	Dice    [2]int
	Payouts map[int]map[Resource]int // Production: player -> resource -> amount

	Hex    int
	Vertex int
	Edge   int
	Victim int

	Resource Resource
	Card     DevCardType
	Amount   int

	Award  string
	Holder int // AwardChanged: new holder, NoOwner when vacated
}

func (e Event) String() string {
	switch e.Kind {
	case EventDiceRolled:
		return fmt.Sprintf("p%d rolled %d+%d=%d", e.Player, e.Dice[0], e.Dice[1], e.Dice[0]+e.Dice[1])
	case EventAwardChanged:
		return fmt.Sprintf("%s passed to p%d", e.Award, e.Holder)
	case EventGameOver:
		return fmt.Sprintf("p%d wins", e.Player)
	default:
		return fmt.Sprintf("%s p%d", e.Kind, e.Player)
	}
}
