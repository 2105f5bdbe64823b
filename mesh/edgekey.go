package mesh

import "fmt"

// EdgeKey packs an undirected vertex id pair into a uint64 so edges can be
// used as map keys: smaller id in the low 32 bits, larger in the high 32.
type EdgeKey uint64

func NewEdgeKey(verts [2]int) EdgeKey {
	const limit = 1<<32 - 1
	for _, v := range verts {
		if v < 0 || v > limit {
			panic(fmt.Errorf("vertex id %d does not fit an edge key", v))
		}
	}
	i1, i2 := verts[0], verts[1]
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	return EdgeKey(uint64(i1) + uint64(i2)<<32)
}

// Vertices unpacks the pair, smaller id first.
func (ek EdgeKey) Vertices() (verts [2]int) {
	verts[1] = int(ek >> 32)
	verts[0] = int(ek & (1<<32 - 1))
	return
}
