package game

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"catan/board"
)

// Phase is the current position in the turn state machine.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseRoll
	PhaseDiscard
	PhaseRobber
	PhaseTrade
	PhaseBuild
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseSetup:    "SETUP",
	PhaseRoll:     "ROLL",
	PhaseDiscard:  "DISCARD",
	PhaseRobber:   "ROBBER",
	PhaseTrade:    "TRADE",
	PhaseBuild:    "BUILD",
	PhaseGameOver: "GAME_OVER",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

func parsePhase(s string) (Phase, bool) {
	for p, name := range phaseNames {
		if name == s {
			return p, true
		}
	}
	return 0, false
}

// Roller is the injected random source: dice, deck shuffle, robber steals.
// *rand.Rand satisfies it; tests substitute a scripted implementation.
type Roller interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Build costs, paid to the bank.
var (
	RoadCost       = map[Resource]int{board.Wood: 1, board.Brick: 1}
	SettlementCost = map[Resource]int{board.Wood: 1, board.Brick: 1, board.Sheep: 1, board.Wheat: 1}
	CityCost       = map[Resource]int{board.Wheat: 2, board.Ore: 3}
	DevCardCost    = map[Resource]int{board.Sheep: 1, board.Wheat: 1, board.Ore: 1}
)

// DefaultTargetVP ends the game when a player reaches this score.
const DefaultTargetVP = 10

// GameState is the dynamic state of one game: everything that changes between
// actions. It is mutated in place by Apply and is the unit of save/load. A
// single driver owns it; nothing here is safe for concurrent use.
type GameState struct {
	Board   *board.Board
	Players []*Player
	Bank    *Bank

	Phase       Phase
	Current     int // index into Players; turn order is slice order
	Turn        int // 1-based, advances when play wraps to player 0
	DiceHistory [][2]int
	RobberHex   int

	PendingDiscards    map[int]int // player -> cards still owed after a 7
	LongestRoadLengths []int       // cached per player, recomputed on road/settlement change
	LongestRoadHolder  int         // board.NoOwner when unheld
	LargestArmyHolder  int
	DevCardPlayed      bool // one development card per turn
	Winner             int  // board.NoOwner until the game ends

	TargetVP int
	Seed     uint64

	// Setup-phase progress: the snake order position and, between a
	// settlement and its road, the vertex awaiting that road.
	SetupIndex         int
	SetupPendingVertex int

	rng Roller
}

// NewGame builds a fresh game from cfg. It fails with a ConfigError (and no
// game) on bad setup; an existing game is never affected.
func NewGame(cfg Config) (*GameState, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	b, err := board.Generate(cfg.Board, rng)
	if err != nil {
		return nil, err
	}

	players := make([]*Player, len(cfg.Players))
	for i, name := range cfg.Players {
		players[i] = newPlayer(i, name)
	}

	target := cfg.TargetVP
	if target == 0 {
		target = DefaultTargetVP
	}

	g := &GameState{
		Board:              b,
		Players:            players,
		Bank:               newBank(rng),
		Phase:              PhaseSetup,
		Current:            0,
		Turn:               1,
		RobberHex:          initialRobberHex(b),
		PendingDiscards:    make(map[int]int),
		LongestRoadLengths: make([]int, len(players)),
		LongestRoadHolder:  board.NoOwner,
		LargestArmyHolder:  board.NoOwner,
		Winner:             board.NoOwner,
		TargetVP:           target,
		Seed:               seed,
		SetupPendingVertex: board.NoOwner,
		rng:                rng,
	}
	return g, nil
}

// initialRobberHex starts the robber on the desert, or hex 0 when a custom
// layout has none.
func initialRobberHex(b *board.Board) int {
	for _, h := range b.Hexes {
		if h.Resource == board.Desert {
			return h.ID
		}
	}
	return 0
}

// SetRoller swaps the random source. Intended for drivers and tests that need
// scripted dice; serialized state is unaffected.
func (g *GameState) SetRoller(r Roller) {
	g.rng = r
}

// CurrentPlayer returns the player whose turn it is. During setup this
// follows the snake placement order.
func (g *GameState) CurrentPlayer() *Player {
	return g.Players[g.Current]
}

// Over reports whether the game has ended.
func (g *GameState) Over() bool {
	return g.Phase == PhaseGameOver
}

// setupOrder returns the snake placement order: once forward, once reversed.
func (g *GameState) setupOrder() []int {
	n := len(g.Players)
	order := make([]int, 0, 2*n)
	for i := 0; i < n; i++ {
		order = append(order, i)
	}
	for i := n - 1; i >= 0; i-- {
		order = append(order, i)
	}
	return order
}

// requireCurrent rejects actions from anyone but the current player.
func (g *GameState) requireCurrent(player int) error {
	if player != g.Current {
		return fmt.Errorf("%w: player %d acted out of turn (current is %d)", ErrIllegalAction, player, g.Current)
	}
	return nil
}

// requirePhase rejects actions outside the allowed phases.
func (g *GameState) requirePhase(allowed ...Phase) error {
	for _, p := range allowed {
		if g.Phase == p {
			return nil
		}
	}
	return fmt.Errorf("%w: not allowed in phase %s", ErrIllegalAction, g.Phase)
}

func (g *GameState) validPlayer(id int) bool {
	return id >= 0 && id < len(g.Players)
}

// advanceTurn hands play to the next player and resets per-turn flags.
func (g *GameState) advanceTurn() {
	p := g.CurrentPlayer()
	p.NewDevCards = nil
	g.DevCardPlayed = false
	g.Current = (g.Current + 1) % len(g.Players)
	if g.Current == 0 {
		g.Turn++
	}
	g.Phase = PhaseRoll
}
