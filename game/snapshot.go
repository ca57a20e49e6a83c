package game

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"catan/board"
)

// Snapshot is the serializable form of a game. Board geometry is not stored:
// it is regenerated from the radius, and only the shuffled layout (resources,
// tokens, ports) and the occupancy travel with the snapshot. Building and road
// positions live in the player records; the board is rehydrated from them.
type Snapshot struct {
	Seed     uint64 `json:"seed"`
	TargetVP int    `json:"target_vp"`

	Phase       string   `json:"phase"`
	Current     int      `json:"current"`
	Turn        int      `json:"turn"`
	DiceHistory [][2]int `json:"dice_history,omitempty"`
	RobberHex   int      `json:"robber_hex"`

	PendingDiscards    map[int]int `json:"pending_discards,omitempty"`
	LongestRoadHolder  int         `json:"longest_road_holder"`
	LargestArmyHolder  int         `json:"largest_army_holder"`
	DevCardPlayed      bool        `json:"dev_card_played"`
	Winner             int         `json:"winner"`
	SetupIndex         int         `json:"setup_index"`
	SetupPendingVertex int         `json:"setup_pending_vertex"`

	Board   BoardSnapshot    `json:"board"`
	Bank    BankSnapshot     `json:"bank"`
	Players []PlayerSnapshot `json:"players"`
}

// BoardSnapshot pins the shuffled layout so that Generate reproduces the same
// board without a random source.
type BoardSnapshot struct {
	Radius    int              `json:"radius"`
	Resources []board.Resource `json:"resources"`
	Tokens    []int            `json:"tokens"`
	Ports     []board.PortSpec `json:"ports"`
}

type BankSnapshot struct {
	Resources map[Resource]int `json:"resources"`
	DevDeck   []DevCardType    `json:"dev_deck"`
}

type PlayerSnapshot struct {
	Name          string           `json:"name"`
	Resources     map[Resource]int `json:"resources"`
	DevCards      []DevCardType    `json:"dev_cards"`
	NewDevCards   []DevCardType    `json:"new_dev_cards,omitempty"`
	PlayedKnights int              `json:"played_knights"`
	Settlements   []int            `json:"settlements"`
	Cities        []int            `json:"cities"`
	Roads         []int            `json:"roads"`
}

// ToSnapshot captures the full game for serialization. Position lists are
// sorted so identical states serialize identically.
func (g *GameState) ToSnapshot() *Snapshot {
	snap := &Snapshot{
		Seed:               g.Seed,
		TargetVP:           g.TargetVP,
		Phase:              g.Phase.String(),
		Current:            g.Current,
		Turn:               g.Turn,
		RobberHex:          g.RobberHex,
		LongestRoadHolder:  g.LongestRoadHolder,
		LargestArmyHolder:  g.LargestArmyHolder,
		DevCardPlayed:      g.DevCardPlayed,
		Winner:             g.Winner,
		SetupIndex:         g.SetupIndex,
		SetupPendingVertex: g.SetupPendingVertex,
	}

	snap.DiceHistory = append(snap.DiceHistory, g.DiceHistory...)
	if len(g.PendingDiscards) > 0 {
		snap.PendingDiscards = make(map[int]int, len(g.PendingDiscards))
		for id, n := range g.PendingDiscards {
			snap.PendingDiscards[id] = n
		}
	}

	// Ports must come back non-nil: a nil port list would ask Generate to
	// re-randomize the ring on restore.
	snap.Board = BoardSnapshot{Radius: g.Board.Radius, Ports: []board.PortSpec{}}
	for _, h := range g.Board.Hexes {
		snap.Board.Resources = append(snap.Board.Resources, h.Resource)
		if h.Resource != board.Desert {
			snap.Board.Tokens = append(snap.Board.Tokens, h.Token)
		}
	}
	for _, p := range g.Board.Ports {
		snap.Board.Ports = append(snap.Board.Ports, board.PortSpec{
			Edge: p.Edge, Rate: p.Rate, Resource: p.Resource,
		})
	}

	snap.Bank = BankSnapshot{
		Resources: copyResourceMap(g.Bank.Resources),
		DevDeck:   append([]DevCardType{}, g.Bank.DevDeck...),
	}

	for _, p := range g.Players {
		ps := PlayerSnapshot{
			Name:          p.Name,
			Resources:     copyResourceMap(p.Resources),
			DevCards:      append([]DevCardType{}, p.DevCards...),
			PlayedKnights: p.PlayedKnights,
			Settlements:   sortedInts(p.Settlements),
			Cities:        sortedInts(p.Cities),
			Roads:         sortedInts(p.Roads),
		}
		// NewDevCards stays nil when empty so snapshots survive a JSON round
		// trip unchanged (the field is omitted from the encoding).
		if len(p.NewDevCards) > 0 {
			ps.NewDevCards = append([]DevCardType{}, p.NewDevCards...)
		}
		snap.Players = append(snap.Players, ps)
	}
	return snap
}

// FromSnapshot rebuilds a game from a snapshot. Every field is validated
// before use; a malformed snapshot fails with ErrCorruptSnapshot and no game.
// Longest-road lengths are recomputed rather than trusted.
func FromSnapshot(snap *Snapshot) (*GameState, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrCorruptSnapshot)
	}
	if len(snap.Players) < minPlayers || len(snap.Players) > maxPlayers {
		return nil, fmt.Errorf("%w: %d players", ErrCorruptSnapshot, len(snap.Players))
	}
	phase, ok := parsePhase(snap.Phase)
	if !ok {
		return nil, fmt.Errorf("%w: unknown phase %q", ErrCorruptSnapshot, snap.Phase)
	}
	if snap.Current < 0 || snap.Current >= len(snap.Players) {
		return nil, fmt.Errorf("%w: current player %d", ErrCorruptSnapshot, snap.Current)
	}
	if snap.TargetVP < minTargetVP {
		return nil, fmt.Errorf("%w: target score %d", ErrCorruptSnapshot, snap.TargetVP)
	}

	b, err := board.Generate(board.Config{
		Radius:    snap.Board.Radius,
		Resources: snap.Board.Resources,
		Tokens:    snap.Board.Tokens,
		Ports:     snap.Board.Ports,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if b.Hex(snap.RobberHex) == nil {
		return nil, fmt.Errorf("%w: robber hex %d", ErrCorruptSnapshot, snap.RobberHex)
	}

	if err := validateHand(snap.Bank.Resources); err != nil {
		return nil, err
	}
	for _, c := range snap.Bank.DevDeck {
		if !validDevCard(c) {
			return nil, fmt.Errorf("%w: unknown development card %q", ErrCorruptSnapshot, c)
		}
	}

	g := &GameState{
		Board: b,
		Bank: &Bank{
			Resources: copyResourceMap(snap.Bank.Resources),
			DevDeck:   append([]DevCardType{}, snap.Bank.DevDeck...),
		},
		Phase:              phase,
		Current:            snap.Current,
		Turn:               snap.Turn,
		RobberHex:          snap.RobberHex,
		PendingDiscards:    make(map[int]int),
		LongestRoadLengths: make([]int, len(snap.Players)),
		LongestRoadHolder:  snap.LongestRoadHolder,
		LargestArmyHolder:  snap.LargestArmyHolder,
		DevCardPlayed:      snap.DevCardPlayed,
		Winner:             snap.Winner,
		TargetVP:           snap.TargetVP,
		Seed:               snap.Seed,
		SetupIndex:         snap.SetupIndex,
		SetupPendingVertex: snap.SetupPendingVertex,
		rng:                rand.New(rand.NewSource(snap.Seed)),
	}
	g.DiceHistory = append(g.DiceHistory, snap.DiceHistory...)

	for id, ps := range snap.Players {
		p, err := restorePlayer(g, id, ps)
		if err != nil {
			return nil, err
		}
		g.Players = append(g.Players, p)
	}

	for id, n := range snap.PendingDiscards {
		if !g.validPlayer(id) || n < 1 {
			return nil, fmt.Errorf("%w: pending discard for player %d", ErrCorruptSnapshot, id)
		}
		g.PendingDiscards[id] = n
	}
	// A discard phase with nobody owing cards would deadlock: no action is
	// legal for anyone.
	if phase == PhaseDiscard && len(g.PendingDiscards) == 0 {
		return nil, fmt.Errorf("%w: discard phase with no pending discards", ErrCorruptSnapshot)
	}
	if !validHolder(snap.LongestRoadHolder, len(snap.Players)) ||
		!validHolder(snap.LargestArmyHolder, len(snap.Players)) ||
		!validHolder(snap.Winner, len(snap.Players)) {
		return nil, fmt.Errorf("%w: award holder out of range", ErrCorruptSnapshot)
	}
	if snap.SetupPendingVertex != board.NoOwner && b.Vertex(snap.SetupPendingVertex) == nil {
		return nil, fmt.Errorf("%w: setup vertex %d", ErrCorruptSnapshot, snap.SetupPendingVertex)
	}

	if err := g.checkConservation(); err != nil {
		return nil, err
	}
	for id := range g.Players {
		g.LongestRoadLengths[id] = g.longestRoadFrom(id)
	}
	return g, nil
}

// restorePlayer rebuilds one player and stamps their pieces onto the board,
// rejecting overlaps and out-of-range IDs.
func restorePlayer(g *GameState, id int, ps PlayerSnapshot) (*Player, error) {
	if err := validateHand(ps.Resources); err != nil {
		return nil, err
	}
	for _, c := range append(append([]DevCardType{}, ps.DevCards...), ps.NewDevCards...) {
		if !validDevCard(c) {
			return nil, fmt.Errorf("%w: unknown development card %q", ErrCorruptSnapshot, c)
		}
	}
	if len(ps.Settlements) > MaxSettlements || len(ps.Cities) > MaxCities || len(ps.Roads) > MaxRoads {
		return nil, fmt.Errorf("%w: player %d exceeds piece pool", ErrCorruptSnapshot, id)
	}

	p := newPlayer(id, ps.Name)
	p.Resources = copyResourceMap(ps.Resources)
	p.DevCards = append(p.DevCards, ps.DevCards...)
	p.NewDevCards = append(p.NewDevCards, ps.NewDevCards...)
	p.PlayedKnights = ps.PlayedKnights

	for _, vid := range ps.Settlements {
		if err := stampBuilding(g.Board, vid, id, board.Settlement); err != nil {
			return nil, err
		}
		p.Settlements = append(p.Settlements, vid)
	}
	for _, vid := range ps.Cities {
		if err := stampBuilding(g.Board, vid, id, board.City); err != nil {
			return nil, err
		}
		p.Cities = append(p.Cities, vid)
	}
	for _, eid := range ps.Roads {
		e := g.Board.Edge(eid)
		if e == nil || e.Occupied() {
			return nil, fmt.Errorf("%w: road edge %d", ErrCorruptSnapshot, eid)
		}
		e.Owner = id
		p.Roads = append(p.Roads, eid)
	}
	return p, nil
}

func stampBuilding(b *board.Board, vertexID, owner int, kind board.BuildingKind) error {
	v := b.Vertex(vertexID)
	if v == nil || v.Occupied() {
		return fmt.Errorf("%w: building vertex %d", ErrCorruptSnapshot, vertexID)
	}
	v.Owner = owner
	v.Building = kind
	return nil
}

// checkConservation verifies that bank plus hands add up to the fixed stock
// for every resource type.
func (g *GameState) checkConservation() error {
	for _, r := range board.ResourceTypes {
		total := g.Bank.Resources[r]
		for _, p := range g.Players {
			total += p.Resources[r]
		}
		if total != bankStockPerResource {
			return fmt.Errorf("%w: %s total is %d, want %d", ErrCorruptSnapshot, r, total, bankStockPerResource)
		}
	}
	return nil
}

func validateHand(hand map[Resource]int) error {
	for r, n := range hand {
		if n < 0 {
			return fmt.Errorf("%w: negative count for %s", ErrCorruptSnapshot, r)
		}
		valid := false
		for _, known := range board.ResourceTypes {
			if r == known {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("%w: unknown resource %q", ErrCorruptSnapshot, r)
		}
	}
	return nil
}

func validHolder(id, players int) bool {
	return id == board.NoOwner || (id >= 0 && id < players)
}

func copyResourceMap(src map[Resource]int) map[Resource]int {
	out := make(map[Resource]int, len(src))
	for r, n := range src {
		out[r] = n
	}
	return out
}

func sortedInts(src []int) []int {
	out := append([]int{}, src...)
	sort.Ints(out)
	return out
}
