package mesh

// UnitSquareMesh builds a structured triangulation of the unit square with
// n x n quads split into two triangles each, ringed by boundary Segments.
// The segment block precedes the triangle block, mirroring the block order
// of typical generator output. Used by tests and the demo tooling; real
// runs read meshes from files.
func UnitSquareMesh(n int) *Mesh {
	if n < 1 {
		panic("UnitSquareMesh requires n >= 1")
	}
	h := 1.0 / float64(n)
	points := make([]Point, 0, (n+1)*(n+1))
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			points = append(points, Point{float64(i) * h, float64(j) * h})
		}
	}
	idx := func(i, j int) int { return j*(n+1) + i }

	var lines [][]int
	for i := 0; i < n; i++ { // bottom, y = 0
		lines = append(lines, []int{idx(i, 0), idx(i+1, 0)})
	}
	for j := 0; j < n; j++ { // right, x = 1
		lines = append(lines, []int{idx(n, j), idx(n, j+1)})
	}
	for i := n; i > 0; i-- { // top, y = 1
		lines = append(lines, []int{idx(i, n), idx(i-1, n)})
	}
	for j := n; j > 0; j-- { // left, x = 0
		lines = append(lines, []int{idx(0, j), idx(0, j-1)})
	}

	var tris [][]int
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			p00, p10 := idx(i, j), idx(i+1, j)
			p01, p11 := idx(i, j+1), idx(i+1, j+1)
			tris = append(tris, []int{p00, p10, p11})
			tris = append(tris, []int{p00, p11, p01})
		}
	}

	m, err := NewMesh(points, []CellBlock{
		{Type: BlockLine, Data: lines},
		{Type: BlockTriangle, Data: tris},
	})
	if err != nil {
		panic(err)
	}
	return m
}
