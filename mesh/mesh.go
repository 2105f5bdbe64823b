package mesh

import "fmt"

// Cell block types recognized from a mesh provider. Anything else,
// including 1-vertex "vertex" blocks, is skipped without error.
const (
	BlockLine     = "line"
	BlockTriangle = "triangle"
)

// CellBlock is one typed connectivity block from a mesh provider, one row
// of vertex ids per cell.
type CellBlock struct {
	Type string
	Data [][]int
}

// Mesh is the ordered cell list plus the full point table. It is built once
// and read-only afterwards, except for the one-time neighbor pass.
type Mesh struct {
	Points []Point
	Cells  []Cell
}

// NewMesh assembles cells from provider blocks. Ids are assigned
// sequentially from 0 across recognized blocks in encounter order, shared
// between both cell kinds, so a cell's id equals its index in Cells.
func NewMesh(points []Point, blocks []CellBlock) (*Mesh, error) {
	m := &Mesh{Points: points}
	cellID := 0
	for _, block := range blocks {
		switch block.Type {
		case BlockLine:
			for _, row := range block.Data {
				if len(row) != 2 {
					return nil, fmt.Errorf("%w: line cell %d has %d vertices, need 2",
						ErrInvalidTopology, cellID, len(row))
				}
				for _, v := range row {
					if v < 0 || v >= len(points) {
						return nil, fmt.Errorf("%w: line cell %d references vertex %d outside point table of size %d",
							ErrInvalidTopology, cellID, v, len(points))
					}
				}
				m.Cells = append(m.Cells, NewSegment(cellID, [2]int{row[0], row[1]}))
				cellID++
			}
		case BlockTriangle:
			for _, row := range block.Data {
				tri, err := NewTriangle(cellID, row)
				if err != nil {
					return nil, err
				}
				if err = tri.Finalize(points); err != nil {
					return nil, err
				}
				m.Cells = append(m.Cells, tri)
				cellID++
			}
		default:
			// Unrecognized block types carry no topology we use.
			continue
		}
	}
	return m, nil
}

// ComputeNeighbors resolves cell adjacency: cell B is a neighbor of cell A
// iff the two share exactly two vertex ids. For Triangles it also fills the
// local-edge-to-neighbor mapping. The pass is idempotent; previous neighbor
// state is cleared before repopulating.
//
// An edge-key index replaces the obvious pairwise scan, which is O(n^2) in
// cells; the resulting adjacency is identical since any two vertices of a
// Segment or Triangle form one of its edges.
func (m *Mesh) ComputeNeighbors() {
	for _, c := range m.Cells {
		c.resetNeighbors()
	}

	edgeCells := make(map[EdgeKey][]int, 3*len(m.Cells)/2)
	addEdge := func(verts [2]int, i int) {
		k := NewEdgeKey(verts)
		edgeCells[k] = append(edgeCells[k], i)
	}
	for i, c := range m.Cells {
		switch cell := c.(type) {
		case *Segment:
			addEdge(cell.verts, i)
		case *Triangle:
			for k := 0; k < 3; k++ {
				addEdge(cell.edgeVerts(k), i)
			}
		}
	}

	match := func(a Cell, verts [2]int) []int {
		var ids []int
		for _, j := range edgeCells[NewEdgeKey(verts)] {
			b := m.Cells[j]
			if b.ID() == a.ID() {
				continue
			}
			// Guard against cells sharing three vertices (duplicated
			// triangles); those are not neighbors under the shared-edge rule.
			if sharedVertexCount(a, b) != 2 {
				continue
			}
			ids = append(ids, b.ID())
		}
		return ids
	}

	for _, c := range m.Cells {
		switch cell := c.(type) {
		case *Segment:
			for _, id := range match(cell, cell.verts) {
				cell.addNeighbor(id)
			}
		case *Triangle:
			for k := 0; k < 3; k++ {
				for _, id := range match(cell, cell.edgeVerts(k)) {
					cell.addNeighbor(id)
					if cell.edgeNeighbor[k] < 0 {
						cell.edgeNeighbor[k] = id
					}
				}
			}
		}
	}
}

// NumTriangles counts Triangle cells.
func (m *Mesh) NumTriangles() (n int) {
	for _, c := range m.Cells {
		if _, ok := c.(*Triangle); ok {
			n++
		}
	}
	return
}
