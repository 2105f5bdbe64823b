package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quadMesh(t *testing.T) *Mesh {
	t.Helper()
	// Unit square split along the diagonal, ringed by boundary segments.
	points := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	m, err := NewMesh(points, []CellBlock{
		{Type: BlockLine, Data: [][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}},
		{Type: BlockTriangle, Data: [][]int{{0, 1, 2}, {0, 2, 3}}},
	})
	require.NoError(t, err)
	return m
}

func TestNewMeshIDAssignment(t *testing.T) {
	m := quadMesh(t)
	require.Len(t, m.Cells, 6)
	for i, c := range m.Cells {
		assert.Equal(t, i, c.ID())
	}
	for i := 0; i < 4; i++ {
		assert.IsType(t, &Segment{}, m.Cells[i])
	}
	for i := 4; i < 6; i++ {
		assert.IsType(t, &Triangle{}, m.Cells[i])
	}
}

func TestNewMeshSkipsUnrecognizedBlocks(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	m, err := NewMesh(points, []CellBlock{
		{Type: "vertex", Data: [][]int{{0}, {1}}},
		{Type: BlockLine, Data: [][]int{{0, 1}}},
		{Type: "quad", Data: [][]int{{0, 1, 3, 2}}},
		{Type: BlockTriangle, Data: [][]int{{0, 1, 2}}},
	})
	require.NoError(t, err)
	// Ids keep running across recognized blocks only.
	require.Len(t, m.Cells, 2)
	assert.Equal(t, 0, m.Cells[0].ID())
	assert.Equal(t, 1, m.Cells[1].ID())
}

func TestNewMeshBadLine(t *testing.T) {
	_, err := NewMesh([]Point{{0, 0}, {1, 0}, {0, 1}}, []CellBlock{
		{Type: BlockLine, Data: [][]int{{0, 1, 2}}},
	})
	assert.ErrorIs(t, err, ErrInvalidTopology)
}

func TestNewMeshLineVertexOutOfRange(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {0, 1}}
	for _, row := range [][]int{{0, 9}, {-1, 1}} {
		_, err := NewMesh(points, []CellBlock{
			{Type: BlockLine, Data: [][]int{row}},
		})
		assert.ErrorIs(t, err, ErrInvalidTopology, "row %v", row)
	}
}

func TestComputeNeighborsSharedEdge(t *testing.T) {
	m := quadMesh(t)
	m.ComputeNeighbors()

	triA := m.Cells[4].(*Triangle) // (0,1,2)
	triB := m.Cells[5].(*Triangle) // (0,2,3)

	// The two triangles share vertices 0 and 2, so they are mutual neighbors.
	assert.Contains(t, triA.Neighbors(), triB.ID())
	assert.Contains(t, triB.Neighbors(), triA.ID())

	// Diagonal edge (2,0) is local edge 2 of triA and edge (0,2) is local
	// edge 0 of triB.
	id, ok := triA.EdgeNeighbor(2)
	require.True(t, ok)
	assert.Equal(t, triB.ID(), id)
	id, ok = triB.EdgeNeighbor(0)
	require.True(t, ok)
	assert.Equal(t, triA.ID(), id)

	// Boundary edges map to their segments.
	id, ok = triA.EdgeNeighbor(0) // edge (0,1)
	require.True(t, ok)
	assert.Equal(t, 0, id)
	id, ok = triA.EdgeNeighbor(1) // edge (1,2)
	require.True(t, ok)
	assert.Equal(t, 1, id)

	// Segments see their triangle back.
	assert.Contains(t, m.Cells[0].Neighbors(), triA.ID())
	assert.Contains(t, m.Cells[2].Neighbors(), triB.ID())
}

func TestComputeNeighborsRules(t *testing.T) {
	// tri0 and tri1 share the edge (1,2); tri2 shares only vertex 2 with
	// tri0; tri3 duplicates tri0 entirely (three shared vertices).
	points := []Point{{0, 0}, {1, 0}, {0.5, 1}, {1.5, 1}, {-1, 2}, {0.5, 2}}
	m, err := NewMesh(points, []CellBlock{
		{Type: BlockTriangle, Data: [][]int{
			{0, 1, 2},
			{1, 3, 2},
			{2, 4, 5},
			{0, 1, 2},
		}},
	})
	require.NoError(t, err)
	m.ComputeNeighbors()

	tri0 := m.Cells[0].(*Triangle)
	tri1 := m.Cells[1].(*Triangle)
	tri2 := m.Cells[2].(*Triangle)
	tri3 := m.Cells[3].(*Triangle)

	assert.Contains(t, tri0.Neighbors(), tri1.ID())
	assert.Contains(t, tri1.Neighbors(), tri0.ID())

	// One shared vertex is not adjacency.
	assert.NotContains(t, tri0.Neighbors(), tri2.ID())
	assert.NotContains(t, tri2.Neighbors(), tri0.ID())

	// Three shared vertices (a duplicated cell) is not adjacency either.
	assert.NotContains(t, tri0.Neighbors(), tri3.ID())
	assert.NotContains(t, tri3.Neighbors(), tri0.ID())

	// A cell is never its own neighbor.
	for _, c := range m.Cells {
		assert.NotContains(t, c.Neighbors(), c.ID())
	}
}

func TestComputeNeighborsIdempotent(t *testing.T) {
	m := quadMesh(t)
	m.ComputeNeighbors()
	first := make(map[int][]int)
	for _, c := range m.Cells {
		first[c.ID()] = append([]int(nil), c.Neighbors()...)
	}
	m.ComputeNeighbors()
	for _, c := range m.Cells {
		assert.Equal(t, first[c.ID()], c.Neighbors())
	}
}

// TestComputeNeighborsMatchesPairwiseScan checks the edge-key index against
// the defining O(n^2) pairwise rule on a larger mesh.
func TestComputeNeighborsMatchesPairwiseScan(t *testing.T) {
	m := UnitSquareMesh(4)
	m.ComputeNeighbors()

	for _, a := range m.Cells {
		var want []int
		for _, b := range m.Cells {
			if a.ID() == b.ID() {
				continue
			}
			if sharedVertexCount(a, b) == 2 {
				want = append(want, b.ID())
			}
		}
		assert.ElementsMatch(t, want, a.Neighbors(), "cell %d", a.ID())
	}
}

func TestUnitSquareMesh(t *testing.T) {
	n := 3
	m := UnitSquareMesh(n)
	assert.Len(t, m.Points, (n+1)*(n+1))
	assert.Len(t, m.Cells, 4*n+2*n*n)
	assert.Equal(t, 2*n*n, m.NumTriangles())

	m.ComputeNeighbors()
	// Every triangle edge is matched on this mesh: either by a triangle or
	// by a boundary segment.
	for _, c := range m.Cells {
		if tri, ok := c.(*Triangle); ok {
			for k := 0; k < 3; k++ {
				_, matched := tri.EdgeNeighbor(k)
				assert.True(t, matched, "triangle %d edge %d", tri.ID(), k)
			}
		}
	}
}

func TestEdgeKey(t *testing.T) {
	assert.Equal(t, NewEdgeKey([2]int{3, 17}), NewEdgeKey([2]int{17, 3}))
	assert.NotEqual(t, NewEdgeKey([2]int{3, 17}), NewEdgeKey([2]int{3, 16}))
	assert.Equal(t, [2]int{3, 17}, NewEdgeKey([2]int{17, 3}).Vertices())
	assert.Panics(t, func() { NewEdgeKey([2]int{-1, 2}) })
}
