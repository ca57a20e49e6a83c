package board

// IsVertexFree reports whether no building occupies the vertex.
func (b *Board) IsVertexFree(vertexID int) bool {
	v := b.Vertex(vertexID)
	return v != nil && !v.Occupied()
}

// CanPlaceSettlement applies the distance rule: the vertex must be free and no
// neighboring vertex may be occupied by anyone. Outside the setup phase the
// vertex must additionally touch one of the player's roads, which callers
// request with requireRoad.
func (b *Board) CanPlaceSettlement(vertexID, player int, requireRoad bool) bool {
	v := b.Vertex(vertexID)
	if v == nil || v.Occupied() {
		return false
	}
	for _, n := range v.AdjacentVertices {
		if b.Vertices[n].Occupied() {
			return false
		}
	}
	if !requireRoad {
		return true
	}
	for _, e := range v.AdjacentEdges {
		if b.Edges[e].Owner == player {
			return true
		}
	}
	return false
}

// CanPlaceRoad reports whether the edge is unowned and connects to a building
// or road of the player.
func (b *Board) CanPlaceRoad(edgeID, player int) bool {
	return b.CanPlaceRoadAssuming(edgeID, player, NoOwner)
}

// CanPlaceRoadAssuming is CanPlaceRoad with one extra edge treated as already
// owned by the player. The road-building card validates its second edge
// against the first this way, so the whole play can be checked before any
// mutation.
func (b *Board) CanPlaceRoadAssuming(edgeID, player, assumeOwned int) bool {
	e := b.Edge(edgeID)
	if e == nil || e.Occupied() || edgeID == assumeOwned {
		return false
	}

	for _, vid := range []int{e.V1, e.V2} {
		v := &b.Vertices[vid]
		if v.Occupied() {
			// An own building always connects; an opponent building cuts the
			// road network at this vertex.
			if v.Owner == player {
				return true
			}
			continue
		}
		for _, adj := range v.AdjacentEdges {
			if adj == edgeID {
				continue
			}
			if b.Edges[adj].Owner == player || adj == assumeOwned {
				return true
			}
		}
	}
	return false
}

// PortsAt returns every port attached to the vertex.
func (b *Board) PortsAt(vertexID int) []Port {
	var ports []Port
	for _, p := range b.Ports {
		if p.Vertices[0] == vertexID || p.Vertices[1] == vertexID {
			ports = append(ports, p)
		}
	}
	return ports
}

// AdjacentHexes returns the IDs of the hexes touching the vertex.
func (b *Board) AdjacentHexes(vertexID int) []int {
	v := b.Vertex(vertexID)
	if v == nil {
		return nil
	}
	return v.Hexes
}

// NeighborEdges returns the IDs of the edges meeting at the vertex.
func (b *Board) NeighborEdges(vertexID int) []int {
	v := b.Vertex(vertexID)
	if v == nil {
		return nil
	}
	return v.AdjacentEdges
}
