package simulation

import "github.com/oilsim/oilspill/mesh"

// Region is an axis-aligned rectangle, bounds inclusive on both axes.
type Region struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Contains reports whether p lies inside the rectangle.
func (r Region) Contains(p mesh.Point) bool {
	return p[0] >= r.XMin && p[0] <= r.XMax && p[1] >= r.YMin && p[1] <= r.YMax
}

// FindRegionCells caches the ids of the Triangles whose centroid lies in r,
// overwriting any previous cache, and returns the cached list. The returned
// slice aliases the cache and is invalidated by the next call; copy it to
// keep a selection across recomputations. Must run before RegionIntegral.
func (s *Simulation) FindRegionCells(r Region) []int {
	s.regionCells = s.regionCells[:0]
	for _, c := range s.Mesh.Cells {
		tri, ok := c.(*mesh.Triangle)
		if !ok {
			continue
		}
		if r.Contains(tri.Centroid()) {
			s.regionCells = append(s.regionCells, tri.ID())
		}
	}
	return s.regionCells
}

// RegionIntegral is the area-weighted integral of the solution over the
// cached region cells: sum of u_i * area_i. An empty cache integrates to
// zero. Read-only; the solution is never touched.
func (s *Simulation) RegionIntegral() (total float64) {
	for _, id := range s.regionCells {
		tri := s.Mesh.Cells[id].(*mesh.Triangle)
		total += s.u[id] * tri.Area()
	}
	return
}
