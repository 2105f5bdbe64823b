package mesh

import (
	"fmt"
	"math"
)

// Triangle is a 2D interior cell with three ordered vertices. It has two
// construction modes: topology-only (vertex ids alone, adjacency work only)
// and finalized (coordinates attached, derived geometry available). The
// geometry accessors panic with ErrGeometryUnavailable in topology-only
// mode rather than returning defaults.
type Triangle struct {
	id    int
	verts [3]int
	nbrs  []int
	// edgeNeighbor maps local edge k (vertex k to vertex (k+1)%3) to the id
	// of the cell sharing that edge, -1 while unmatched.
	edgeNeighbor [3]int
	geom         *TriGeometry
}

// TriGeometry is the derived geometry payload attached by Finalize.
type TriGeometry struct {
	Centroid Point
	Area     float64
	// Edges holds the (start, end) coordinates of edge k.
	Edges [3][2]Point
	// Normals holds the outward normal of edge k, scaled by edge length.
	// The three normals of any triangle sum to the zero vector.
	Normals [3]Point
	// Velocity is the prescribed flow velocity at the centroid.
	Velocity Point
}

// NewTriangle builds a topology-only Triangle. Any vertex count other than
// exactly 3 is ErrInvalidTopology.
func NewTriangle(id int, verts []int) (*Triangle, error) {
	if len(verts) != 3 {
		return nil, fmt.Errorf("%w: triangle %d has %d vertices, need 3",
			ErrInvalidTopology, id, len(verts))
	}
	return &Triangle{
		id:           id,
		verts:        [3]int{verts[0], verts[1], verts[2]},
		edgeNeighbor: [3]int{-1, -1, -1},
	}, nil
}

// Finalize attaches the coordinate table and computes the derived geometry.
// A degenerate (collinear) vertex set yields Area == 0; that is recorded,
// not rejected, and the time stepper skips such cells.
func (t *Triangle) Finalize(points []Point) error {
	var p [3]Point
	for k, v := range t.verts {
		if v < 0 || v >= len(points) {
			return fmt.Errorf("triangle %d: vertex id %d outside point table of size %d",
				t.id, v, len(points))
		}
		p[k] = points[v]
	}
	t.geom = computeGeometry(p)
	return nil
}

func computeGeometry(p [3]Point) *TriGeometry {
	g := &TriGeometry{}
	g.Centroid = p[0].Add(p[1]).Add(p[2]).Scale(1. / 3.)
	g.Area = 0.5 * math.Abs(p[0][0]*(p[1][1]-p[2][1])+
		p[1][0]*(p[2][1]-p[0][1])+
		p[2][0]*(p[0][1]-p[1][1]))
	for k := 0; k < 3; k++ {
		p1, p2 := p[k], p[(k+1)%3]
		g.Edges[k] = [2]Point{p1, p2}
		d := p2.Sub(p1)
		n := Point{-d[1], d[0]}
		mid := p1.Add(p2).Scale(0.5)
		if n.Dot(mid.Sub(g.Centroid)) < 0 {
			n = n.Scale(-1)
		}
		// Unit normal rescaled by edge length. A zero-length edge keeps a
		// zero normal.
		if ln := n.Norm(); ln > 0 {
			n = n.Scale(d.Norm() / ln)
		}
		g.Normals[k] = n
	}
	g.Velocity = FlowVelocity(g.Centroid)
	return g
}

func (t *Triangle) ID() int { return t.id }

func (t *Triangle) VertexIDs() []int { return []int{t.verts[0], t.verts[1], t.verts[2]} }

func (t *Triangle) Neighbors() []int { return t.nbrs }

// HasGeometry reports whether Finalize has run.
func (t *Triangle) HasGeometry() bool { return t.geom != nil }

func (t *Triangle) geometry() *TriGeometry {
	if t.geom == nil {
		panic(fmt.Errorf("%w: triangle %d", ErrGeometryUnavailable, t.id))
	}
	return t.geom
}

func (t *Triangle) Area() float64 { return t.geometry().Area }

func (t *Triangle) Centroid() Point { return t.geometry().Centroid }

// EdgePoints returns the (start, end) coordinates of the three edges, edge
// k running from vertex k to vertex (k+1)%3.
func (t *Triangle) EdgePoints() [3][2]Point { return t.geometry().Edges }

func (t *Triangle) Normals() [3]Point { return t.geometry().Normals }

func (t *Triangle) Velocity() Point { return t.geometry().Velocity }

// edgeVerts returns the vertex id pair of local edge k.
func (t *Triangle) edgeVerts(k int) [2]int {
	return [2]int{t.verts[k], t.verts[(k+1)%3]}
}

// EdgeNeighbor returns the id of the cell across local edge k, or false
// when the edge is unmatched (domain boundary or malformed mesh).
func (t *Triangle) EdgeNeighbor(k int) (int, bool) {
	id := t.edgeNeighbor[k]
	return id, id >= 0
}

func (t *Triangle) addNeighbor(id int) { t.nbrs = append(t.nbrs, id) }

func (t *Triangle) resetNeighbors() {
	t.nbrs = nil
	t.edgeNeighbor = [3]int{-1, -1, -1}
}
