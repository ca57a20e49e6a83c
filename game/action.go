package game

import (
	"fmt"

	"catan/board"
)

// ActionType represents the type of action a player can perform.
type ActionType int

const (
	ActionRoll ActionType = iota
	ActionDiscard
	ActionMoveRobber
	ActionBuildRoad
	ActionBuildSettlement
	ActionBuildCity
	ActionBuyDevCard
	ActionPlayDevCard
	ActionTrade
	ActionFinishTrade
	ActionEndTurn
)

var actionNames = map[ActionType]string{
	ActionRoll:            "Roll",
	ActionDiscard:         "Discard",
	ActionMoveRobber:      "MoveRobber",
	ActionBuildRoad:       "BuildRoad",
	ActionBuildSettlement: "BuildSettlement",
	ActionBuildCity:       "BuildCity",
	ActionBuyDevCard:      "BuyDevCard",
	ActionPlayDevCard:     "PlayDevCard",
	ActionTrade:           "Trade",
	ActionFinishTrade:     "FinishTrade",
	ActionEndTurn:         "EndTurn",
}

func (t ActionType) String() string {
	if name, ok := actionNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ActionType(%d)", int(t))
}

// Action is a tagged variant covering the closed set of player actions. The
// resolver dispatches on Type; only the fields a given type needs are read.
// Unused ID fields hold board.NoOwner (-1), never 0, which is a valid ID.
type Action struct {
	Type   ActionType
	Player int

	Vertex    int // BuildSettlement, BuildCity
	Edge      int // BuildRoad
	Hex       int // MoveRobber, PlayDevCard(Knight)
	Victim    int // MoveRobber, PlayDevCard(Knight); NoOwner = engine picks
	CardIndex int // PlayDevCard

	Give      Resource   // Trade
	Receive   Resource   // Trade
	Rate      int        // Trade; 0 = best available rate
	Resource  Resource   // PlayDevCard(Monopoly)
	Resources []Resource // Discard, PlayDevCard(YearOfPlenty)
	Edges     []int      // PlayDevCard(RoadBuilding)
}

// NewAction returns an Action with every ID field cleared to board.NoOwner.
// Build literals on top of this, not on the zero value.
func NewAction(t ActionType, player int) Action {
	return Action{
		Type:      t,
		Player:    player,
		Vertex:    board.NoOwner,
		Edge:      board.NoOwner,
		Hex:       board.NoOwner,
		Victim:    board.NoOwner,
		CardIndex: board.NoOwner,
	}
}

func (a Action) String() string {
	switch a.Type {
	case ActionBuildRoad:
		return fmt.Sprintf("%s[p%d edge=%d]", a.Type, a.Player, a.Edge)
	case ActionBuildSettlement, ActionBuildCity:
		return fmt.Sprintf("%s[p%d vertex=%d]", a.Type, a.Player, a.Vertex)
	case ActionMoveRobber:
		return fmt.Sprintf("%s[p%d hex=%d victim=%d]", a.Type, a.Player, a.Hex, a.Victim)
	case ActionTrade:
		return fmt.Sprintf("%s[p%d %s->%s rate=%d]", a.Type, a.Player, a.Give, a.Receive, a.Rate)
	case ActionPlayDevCard:
		return fmt.Sprintf("%s[p%d index=%d]", a.Type, a.Player, a.CardIndex)
	case ActionDiscard:
		return fmt.Sprintf("%s[p%d n=%d]", a.Type, a.Player, len(a.Resources))
	default:
		return fmt.Sprintf("%s[p%d]", a.Type, a.Player)
	}
}
