package board

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestGenerateStandardBoard(t *testing.T) {
	b, err := Generate(Config{}, newRand())
	require.NoError(t, err)

	require.Len(t, b.Hexes, 19, "radius-2 board should have 19 hexes")
	require.Len(t, b.Vertices, 54, "radius-2 board should have 54 vertices")
	require.Len(t, b.Edges, 72, "radius-2 board should have 72 edges")
	require.Len(t, b.Ports, 9, "standard board should have 9 ports")

	desert := 0
	for _, h := range b.Hexes {
		if h.Resource == Desert {
			desert++
			require.Zero(t, h.Token, "desert carries no token")
		} else {
			require.GreaterOrEqual(t, h.Token, 2)
			require.LessOrEqual(t, h.Token, 12)
			require.NotEqual(t, 7, h.Token)
		}
	}
	require.Equal(t, 1, desert)
}

func TestGenerateStandardPortMix(t *testing.T) {
	b, err := Generate(Config{}, newRand())
	require.NoError(t, err)

	twoToOne, threeToOne := 0, 0
	for _, p := range b.Ports {
		switch p.Rate {
		case 2:
			require.NotEmpty(t, p.Resource, "2:1 ports are resource specific")
			twoToOne++
		case 3:
			require.Empty(t, p.Resource, "3:1 ports take any resource")
			threeToOne++
		default:
			t.Fatalf("unexpected port rate %d", p.Rate)
		}
		// Ports sit on coastal edges only.
		require.Len(t, b.Edges[p.Edge].Hexes, 1)
	}
	require.Equal(t, 5, twoToOne)
	require.Equal(t, 4, threeToOne)
}

func TestGraphSymmetry(t *testing.T) {
	b, err := Generate(Config{}, newRand())
	require.NoError(t, err)

	for _, e := range b.Edges {
		require.Contains(t, b.Vertices[e.V1].AdjacentEdges, e.ID)
		require.Contains(t, b.Vertices[e.V2].AdjacentEdges, e.ID)
		require.Contains(t, b.Vertices[e.V1].AdjacentVertices, e.V2)
		require.Contains(t, b.Vertices[e.V2].AdjacentVertices, e.V1)
	}

	for _, v := range b.Vertices {
		require.NotEmpty(t, v.Hexes, "every vertex touches at least one hex")
		require.LessOrEqual(t, len(v.Hexes), 3)
		require.GreaterOrEqual(t, len(v.AdjacentEdges), 2)
		require.LessOrEqual(t, len(v.AdjacentEdges), 3)
	}

	for _, h := range b.Hexes {
		for _, n := range h.Neighbors {
			require.Contains(t, b.Hexes[n].Neighbors, h.ID, "hex adjacency must be mutual")
		}
	}
}

func TestGenerateDeterministicIDs(t *testing.T) {
	b1, err := Generate(Config{}, newRand())
	require.NoError(t, err)
	b2, err := Generate(Config{}, newRand())
	require.NoError(t, err)

	// Geometry never depends on the shuffle: vertex and edge IDs line up
	// between any two boards of the same radius.
	require.Equal(t, len(b1.Vertices), len(b2.Vertices))
	for i := range b1.Edges {
		require.Equal(t, b1.Edges[i].V1, b2.Edges[i].V1)
		require.Equal(t, b1.Edges[i].V2, b2.Edges[i].V2)
	}
}

func TestGenerateFixedLayout(t *testing.T) {
	resources := fixedResources()
	tokens := fixedTokens()

	b, err := Generate(Config{Resources: resources, Tokens: tokens}, newRand())
	require.NoError(t, err)

	tokenIndex := 0
	for i, h := range b.Hexes {
		require.Equal(t, resources[i], h.Resource)
		if h.Resource != Desert {
			require.Equal(t, tokens[tokenIndex], h.Token)
			tokenIndex++
		}
	}
}

func TestGenerateConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		rng  *rand.Rand
	}{
		{"negative radius", Config{Radius: -1}, newRand()},
		{"missing rng", Config{}, nil},
		{"resource count mismatch", Config{Resources: []Resource{Wood}}, newRand()},
		{"unknown resource", Config{Resources: append(fixedResources()[:18], "Gold")}, newRand()},
		{"token count mismatch", Config{Resources: fixedResources(), Tokens: []int{5}}, newRand()},
		{"token seven", Config{Resources: fixedResources(), Tokens: append(fixedTokens()[:17], 7)}, newRand()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(tc.cfg, tc.rng)
			require.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestApplyPortsRejectsBadSpecs(t *testing.T) {
	reference, err := Generate(Config{}, newRand())
	require.NoError(t, err)

	var coastal, interior int = -1, -1
	for _, e := range reference.Edges {
		if len(e.Hexes) == 1 && coastal == -1 {
			coastal = e.ID
		}
		if len(e.Hexes) == 2 && interior == -1 {
			interior = e.ID
		}
	}
	require.NotEqual(t, -1, coastal)
	require.NotEqual(t, -1, interior)

	cases := []struct {
		name  string
		ports []PortSpec
	}{
		{"interior edge", []PortSpec{{Edge: interior, Rate: 3}}},
		{"rate out of range", []PortSpec{{Edge: coastal, Rate: 5}}},
		{"two-to-one without resource", []PortSpec{{Edge: coastal, Rate: 2}}},
		{"duplicate edge", []PortSpec{{Edge: coastal, Rate: 3}, {Edge: coastal, Rate: 3}}},
		{"bad resource", []PortSpec{{Edge: coastal, Rate: 2, Resource: "Gold"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Generate(Config{Ports: tc.ports}, newRand())
			require.ErrorIs(t, err, ErrConfig)
		})
	}

	// A valid explicit spec replaces the generated ring.
	b, err := Generate(Config{Ports: []PortSpec{{Edge: coastal, Rate: 2, Resource: Ore}}}, newRand())
	require.NoError(t, err)
	require.Len(t, b.Ports, 1)
	require.Equal(t, Ore, b.Ports[0].Resource)
}

func TestCopyIsolatesMutableState(t *testing.T) {
	b, err := Generate(Config{}, newRand())
	require.NoError(t, err)

	cp := b.Copy()
	cp.Vertices[0].Owner = 1
	cp.Vertices[0].Building = Settlement
	cp.Edges[0].Owner = 1

	require.Equal(t, NoOwner, b.Vertices[0].Owner)
	require.Equal(t, NoBuilding, b.Vertices[0].Building)
	require.Equal(t, NoOwner, b.Edges[0].Owner)
}

func TestAccessorsOutOfRange(t *testing.T) {
	b, err := Generate(Config{}, newRand())
	require.NoError(t, err)

	require.Nil(t, b.Vertex(-1))
	require.Nil(t, b.Vertex(len(b.Vertices)))
	require.Nil(t, b.Edge(len(b.Edges)))
	require.Nil(t, b.Hex(99))
}

// fixedResources is an 18-producing-hex layout with the desert last, used by
// tests that need known hex assignments.
func fixedResources() []Resource {
	out := make([]Resource, 0, 19)
	for i := 0; i < 18; i++ {
		out = append(out, ResourceTypes[i%len(ResourceTypes)])
	}
	return append(out, Desert)
}

func fixedTokens() []int {
	return []int{2, 3, 3, 4, 4, 5, 5, 6, 6, 8, 8, 9, 9, 10, 10, 11, 11, 12}
}
