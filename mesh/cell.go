package mesh

// Cell is one entry in a mesh's ordered cell list. The variant is closed:
// the only implementations are Segment (a 2-vertex open boundary edge) and
// Triangle (a 3-vertex interior cell). Anything that treats the two kinds
// differently switches on the concrete type.
type Cell interface {
	ID() int
	VertexIDs() []int
	// Neighbors lists the ids of cells sharing exactly two vertices with
	// this cell. Empty until the mesh's neighbor pass has run.
	Neighbors() []int

	addNeighbor(id int)
	resetNeighbors()
}

// Segment is a domain boundary edge. Its solution value is pinned to zero
// by the time stepper on every step.
type Segment struct {
	id    int
	verts [2]int
	nbrs  []int
}

func NewSegment(id int, verts [2]int) *Segment {
	return &Segment{id: id, verts: verts}
}

func (s *Segment) ID() int { return s.id }

func (s *Segment) VertexIDs() []int { return []int{s.verts[0], s.verts[1]} }

func (s *Segment) Neighbors() []int { return s.nbrs }

func (s *Segment) addNeighbor(id int) { s.nbrs = append(s.nbrs, id) }

func (s *Segment) resetNeighbors() { s.nbrs = nil }

// sharedVertexCount counts the distinct vertex ids the two cells have in
// common. Two cells are neighbors iff this is exactly 2.
func sharedVertexCount(a, b Cell) (count int) {
	bv := b.VertexIDs()
	for _, va := range a.VertexIDs() {
		for _, vb := range bv {
			if va == vb {
				count++
				break
			}
		}
	}
	return
}
