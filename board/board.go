package board

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// ErrConfig reports an invalid board or game setup. The game package re-exports
// it so callers can errors.Is against a single taxonomy.
var ErrConfig = errors.New("config error")

// Resource identifies what a hex produces. Desert produces nothing and hosts
// the robber at game start.
type Resource string

const (
	Wood   Resource = "Wood"
	Brick  Resource = "Brick"
	Sheep  Resource = "Sheep"
	Wheat  Resource = "Wheat"
	Ore    Resource = "Ore"
	Desert Resource = "Desert"
)

// ResourceTypes lists every tradeable resource, in display order.
var ResourceTypes = []Resource{Wood, Brick, Sheep, Wheat, Ore}

// BuildingKind is the occupancy level of a vertex.
type BuildingKind int

const (
	NoBuilding BuildingKind = iota
	Settlement
	City
)

// NoOwner marks unowned vertices and edges.
const NoOwner = -1

// Hex is one board tile. Geometry (Q, R, Vertices, Edges, Neighbors) is fixed
// at generation; Resource and Token only change when a snapshot is applied.
type Hex struct {
	ID        int
	Q, R      int
	Resource  Resource
	Token     int // 0 for Desert
	Vertices  [6]int
	Edges     [6]int
	Neighbors []int
}

// Vertex is a corner where up to three hexes meet. Owner/Building are the only
// mutable fields after generation.
type Vertex struct {
	ID               int
	Owner            int
	Building         BuildingKind
	AdjacentVertices []int
	AdjacentEdges    []int
	Hexes            []int
}

// Occupied reports whether any player has built here.
func (v *Vertex) Occupied() bool {
	return v.Owner != NoOwner && v.Building != NoBuilding
}

// Edge joins two vertices. Owner is the only mutable field after generation.
type Edge struct {
	ID     int
	V1, V2 int
	Owner  int
	Hexes  []int
}

// Occupied reports whether a road has been built on this edge.
func (e *Edge) Occupied() bool {
	return e.Owner != NoOwner
}

// Other returns the endpoint opposite v.
func (e *Edge) Other(v int) int {
	if e.V1 == v {
		return e.V2
	}
	return e.V1
}

// Port is a trade-rate modifier attached to the two vertices of one coastal
// edge. Resource == "" means a 3:1 any-resource port.
type Port struct {
	ID       int
	Edge     int
	Vertices [2]int
	Rate     int
	Resource Resource
}

// PortSpec pins a port in a Config, e.g. loaded from YAML.
type PortSpec struct {
	Edge     int      `yaml:"edge" json:"edge"`
	Rate     int      `yaml:"rate" json:"rate"`
	Resource Resource `yaml:"resource,omitempty" json:"resource,omitempty"`
}

// Config describes a board layout. Zero Radius means the standard 19-hex
// board. Resources/Tokens, when set, fix the assignment instead of shuffling:
// Resources must cover every hex and Tokens every non-desert hex, both in hex
// ID order. Ports, when set, replaces the generated port ring.
type Config struct {
	Radius    int        `yaml:"radius" json:"radius"`
	Resources []Resource `yaml:"resources,omitempty" json:"resources,omitempty"`
	Tokens    []int      `yaml:"tokens,omitempty" json:"tokens,omitempty"`
	Ports     []PortSpec `yaml:"ports,omitempty" json:"ports,omitempty"`
}

// Board owns flat, ID-indexed collections of hexes, vertices, edges and ports.
// All cross-references are integer IDs into these slices, never pointers, so a
// deep copy is three slice copies and snapshots stay cheap.
type Board struct {
	Radius   int
	Hexes    []Hex
	Vertices []Vertex
	Edges    []Edge
	Ports    []Port
}

var axialDirections = [6][2]int{{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1}}

// standardTokens is the classic 18-token mix for the 19-hex board.
var standardTokens = []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}

// Generate builds a consistent hex/vertex/edge graph for the configured
// layout. rng drives resource/token shuffling and port placement; it may be
// nil only when cfg fixes resources, tokens and ports explicitly.
func Generate(cfg Config, rng *rand.Rand) (*Board, error) {
	radius := cfg.Radius
	if radius == 0 {
		radius = 2
	}
	if radius < 1 {
		return nil, fmt.Errorf("%w: board radius must be >= 1, got %d", ErrConfig, radius)
	}

	coords := hexCoords(radius)
	needsRNG := cfg.Resources == nil || cfg.Tokens == nil || cfg.Ports == nil
	if needsRNG && rng == nil {
		return nil, fmt.Errorf("%w: random source required for randomized layout", ErrConfig)
	}

	resources, err := resourceList(cfg, len(coords), rng)
	if err != nil {
		return nil, err
	}
	tokens, err := tokenList(cfg, resources, rng)
	if err != nil {
		return nil, err
	}

	b := &Board{Radius: radius}
	b.buildGraph(coords, resources, tokens)

	if cfg.Ports != nil {
		if err := b.applyPorts(cfg.Ports); err != nil {
			return nil, err
		}
	} else {
		b.assignPorts(rng)
	}
	return b, nil
}

func hexCoords(radius int) [][2]int {
	var coords [][2]int
	for q := -radius; q <= radius; q++ {
		r1 := max(-radius, -q-radius)
		r2 := min(radius, -q+radius)
		for r := r1; r <= r2; r++ {
			coords = append(coords, [2]int{q, r})
		}
	}
	return coords
}

func resourceList(cfg Config, tiles int, rng *rand.Rand) ([]Resource, error) {
	if cfg.Resources != nil {
		if len(cfg.Resources) != tiles {
			return nil, fmt.Errorf("%w: layout has %d hexes but %d resources given", ErrConfig, tiles, len(cfg.Resources))
		}
		for _, r := range cfg.Resources {
			if !validResource(r, true) {
				return nil, fmt.Errorf("%w: unknown resource %q", ErrConfig, r)
			}
		}
		out := make([]Resource, tiles)
		copy(out, cfg.Resources)
		return out, nil
	}

	var resources []Resource
	if tiles == 19 {
		resources = append(resources, repeat(Wood, 4)...)
		resources = append(resources, repeat(Brick, 3)...)
		resources = append(resources, repeat(Sheep, 4)...)
		resources = append(resources, repeat(Wheat, 4)...)
		resources = append(resources, repeat(Ore, 3)...)
		resources = append(resources, Desert)
	} else {
		for i := 0; i < tiles-1; i++ {
			resources = append(resources, ResourceTypes[i%len(ResourceTypes)])
		}
		resources = append(resources, Desert)
	}
	rng.Shuffle(len(resources), func(i, j int) {
		resources[i], resources[j] = resources[j], resources[i]
	})
	return resources, nil
}

func tokenList(cfg Config, resources []Resource, rng *rand.Rand) ([]int, error) {
	nonDesert := 0
	for _, r := range resources {
		if r != Desert {
			nonDesert++
		}
	}

	if cfg.Tokens != nil {
		if len(cfg.Tokens) != nonDesert {
			return nil, fmt.Errorf("%w: layout has %d producing hexes but %d tokens given", ErrConfig, nonDesert, len(cfg.Tokens))
		}
		for _, t := range cfg.Tokens {
			if t < 2 || t > 12 || t == 7 {
				return nil, fmt.Errorf("%w: token %d out of range (2-12, not 7)", ErrConfig, t)
			}
		}
		out := make([]int, len(cfg.Tokens))
		copy(out, cfg.Tokens)
		return out, nil
	}

	var tokens []int
	if nonDesert == len(standardTokens) {
		tokens = append(tokens, standardTokens...)
	} else {
		cycle := []int{2, 3, 4, 5, 6, 8, 9, 10, 11, 12}
		for i := 0; i < nonDesert; i++ {
			tokens = append(tokens, cycle[i%len(cycle)])
		}
	}
	rng.Shuffle(len(tokens), func(i, j int) {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	})
	return tokens, nil
}

// buildGraph lays hexes on axial coordinates and deduplicates shared corners
// and sides through coordinate lookup tables, so vertex and edge IDs are
// deterministic for a given radius.
func (b *Board) buildGraph(coords [][2]int, resources []Resource, tokens []int) {
	type point struct{ x, y int64 }
	vertexLookup := make(map[point]int)
	edgeLookup := make(map[[2]int]int)
	coordToHex := make(map[[2]int]int)
	tokenIndex := 0

	for hexID, qr := range coords {
		q, r := qr[0], qr[1]
		centerX := math.Sqrt(3) * (float64(q) + float64(r)/2)
		centerY := 1.5 * float64(r)

		var vIDs [6]int
		for corner := 0; corner < 6; corner++ {
			angle := math.Pi / 180 * float64(60*corner-30)
			key := point{
				x: int64(math.Round((centerX + math.Cos(angle)) * 1e6)),
				y: int64(math.Round((centerY + math.Sin(angle)) * 1e6)),
			}
			id, ok := vertexLookup[key]
			if !ok {
				id = len(b.Vertices)
				vertexLookup[key] = id
				b.Vertices = append(b.Vertices, Vertex{ID: id, Owner: NoOwner})
			}
			vIDs[corner] = id
		}

		var eIDs [6]int
		for i := 0; i < 6; i++ {
			a, c := vIDs[i], vIDs[(i+1)%6]
			key := [2]int{min(a, c), max(a, c)}
			id, ok := edgeLookup[key]
			if !ok {
				id = len(b.Edges)
				edgeLookup[key] = id
				b.Edges = append(b.Edges, Edge{ID: id, V1: key[0], V2: key[1], Owner: NoOwner})
			}
			eIDs[i] = id

			addUnique(&b.Vertices[a].AdjacentVertices, c)
			addUnique(&b.Vertices[c].AdjacentVertices, a)
			addUnique(&b.Vertices[a].AdjacentEdges, id)
			addUnique(&b.Vertices[c].AdjacentEdges, id)
		}

		resource := resources[hexID]
		token := 0
		if resource != Desert {
			token = tokens[tokenIndex]
			tokenIndex++
		}

		b.Hexes = append(b.Hexes, Hex{
			ID:       hexID,
			Q:        q,
			R:        r,
			Resource: resource,
			Token:    token,
			Vertices: vIDs,
			Edges:    eIDs,
		})
		coordToHex[qr] = hexID

		for _, v := range vIDs {
			addUnique(&b.Vertices[v].Hexes, hexID)
		}
		for _, e := range eIDs {
			addUnique(&b.Edges[e].Hexes, hexID)
		}
	}

	for i := range b.Hexes {
		h := &b.Hexes[i]
		for _, d := range axialDirections {
			if n, ok := coordToHex[[2]int{h.Q + d[0], h.R + d[1]}]; ok {
				addUnique(&h.Neighbors, n)
			}
		}
	}
}

// assignPorts spreads ports evenly around the coast. The standard 19-hex board
// gets the classic mix of five 2:1 ports and four 3:1 ports.
func (b *Board) assignPorts(rng *rand.Rand) {
	var coastal []int
	for _, e := range b.Edges {
		if len(e.Hexes) == 1 {
			coastal = append(coastal, e.ID)
		}
	}
	if len(coastal) == 0 {
		return
	}

	type assignment struct {
		rate     int
		resource Resource
	}
	var assignments []assignment
	if len(b.Hexes) == 19 && len(coastal) >= 9 {
		assignments = []assignment{
			{2, Wood}, {2, Brick}, {2, Sheep}, {2, Wheat}, {2, Ore},
			{3, ""}, {3, ""}, {3, ""}, {3, ""},
		}
	} else {
		n := max(1, min(9, len(coastal)/3))
		for i := 0; i < n; i++ {
			assignments = append(assignments, assignment{3, ""})
		}
	}

	step := float64(len(coastal)) / float64(len(assignments))
	chosen := make(map[int]bool)
	var indices []int
	for i := 0; i < len(assignments); i++ {
		idx := int(float64(i)*step) % len(coastal)
		if !chosen[idx] {
			chosen[idx] = true
			indices = append(indices, idx)
		}
	}
	for next := 0; len(indices) < len(assignments); next++ {
		if !chosen[next%len(coastal)] {
			chosen[next%len(coastal)] = true
			indices = append(indices, next%len(coastal))
		}
	}

	rng.Shuffle(len(assignments), func(i, j int) {
		assignments[i], assignments[j] = assignments[j], assignments[i]
	})
	for portID, idx := range indices {
		e := &b.Edges[coastal[idx]]
		b.Ports = append(b.Ports, Port{
			ID:       portID,
			Edge:     e.ID,
			Vertices: [2]int{e.V1, e.V2},
			Rate:     assignments[portID].rate,
			Resource: assignments[portID].resource,
		})
	}
}

// applyPorts installs an explicit port layout, validating every entry.
func (b *Board) applyPorts(specs []PortSpec) error {
	coastal := make(map[int]bool)
	for _, e := range b.Edges {
		if len(e.Hexes) == 1 {
			coastal[e.ID] = true
		}
	}

	b.Ports = nil
	used := make(map[int]bool)
	for portID, spec := range specs {
		if spec.Edge < 0 || spec.Edge >= len(b.Edges) {
			return fmt.Errorf("%w: port edge %d is not a valid edge", ErrConfig, spec.Edge)
		}
		if !coastal[spec.Edge] {
			return fmt.Errorf("%w: port edge %d is not coastal", ErrConfig, spec.Edge)
		}
		if used[spec.Edge] {
			return fmt.Errorf("%w: port edge %d already assigned", ErrConfig, spec.Edge)
		}
		if spec.Rate < 2 || spec.Rate > 4 {
			return fmt.Errorf("%w: port rate must be 2, 3, or 4, got %d", ErrConfig, spec.Rate)
		}
		if spec.Resource != "" && !validResource(spec.Resource, false) {
			return fmt.Errorf("%w: invalid port resource %q", ErrConfig, spec.Resource)
		}
		if spec.Rate == 2 && spec.Resource == "" {
			return fmt.Errorf("%w: a 2:1 port must specify a resource", ErrConfig)
		}

		e := &b.Edges[spec.Edge]
		b.Ports = append(b.Ports, Port{
			ID:       portID,
			Edge:     spec.Edge,
			Vertices: [2]int{e.V1, e.V2},
			Rate:     spec.Rate,
			Resource: spec.Resource,
		})
		used[spec.Edge] = true
	}
	return nil
}

// Copy returns a deep copy of the mutable board state. Adjacency slices are
// shared: they never change after generation.
func (b *Board) Copy() *Board {
	nb := &Board{Radius: b.Radius}
	nb.Hexes = make([]Hex, len(b.Hexes))
	copy(nb.Hexes, b.Hexes)
	nb.Vertices = make([]Vertex, len(b.Vertices))
	copy(nb.Vertices, b.Vertices)
	nb.Edges = make([]Edge, len(b.Edges))
	copy(nb.Edges, b.Edges)
	nb.Ports = make([]Port, len(b.Ports))
	copy(nb.Ports, b.Ports)
	return nb
}

// Vertex returns the vertex record for id, or nil if out of range.
func (b *Board) Vertex(id int) *Vertex {
	if id < 0 || id >= len(b.Vertices) {
		return nil
	}
	return &b.Vertices[id]
}

// Edge returns the edge record for id, or nil if out of range.
func (b *Board) Edge(id int) *Edge {
	if id < 0 || id >= len(b.Edges) {
		return nil
	}
	return &b.Edges[id]
}

// Hex returns the hex record for id, or nil if out of range.
func (b *Board) Hex(id int) *Hex {
	if id < 0 || id >= len(b.Hexes) {
		return nil
	}
	return &b.Hexes[id]
}

func validResource(r Resource, allowDesert bool) bool {
	switch r {
	case Wood, Brick, Sheep, Wheat, Ore:
		return true
	case Desert:
		return allowDesert
	}
	return false
}

func repeat(r Resource, n int) []Resource {
	out := make([]Resource, n)
	for i := range out {
		out[i] = r
	}
	return out
}

func addUnique(slice *[]int, item int) {
	for _, v := range *slice {
		if v == item {
			return
		}
	}
	*slice = append(*slice, item)
}
