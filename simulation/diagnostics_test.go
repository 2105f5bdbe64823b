package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilsim/oilspill/mesh"
)

func TestFindRegionCells(t *testing.T) {
	m := testMesh(t, 8)
	sim := NewSimulation(m, 0.001)

	region := Region{XMin: 0, XMax: 0.45, YMin: 0, YMax: 0.2}
	ids := sim.FindRegionCells(region)
	require.NotEmpty(t, ids)
	selected := make(map[int]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	for _, c := range m.Cells {
		tri, ok := c.(*mesh.Triangle)
		if !ok {
			assert.False(t, selected[c.ID()])
			continue
		}
		assert.Equal(t, region.Contains(tri.Centroid()), selected[tri.ID()],
			"triangle %d", tri.ID())
	}
}

func TestRegionIntegral(t *testing.T) {
	m := testMesh(t, 8)
	sim := NewSimulation(m, 0.001)

	// Empty cache integrates to exactly zero.
	assert.Equal(t, 0., sim.RegionIntegral())

	for _, c := range m.Cells {
		if tri, ok := c.(*mesh.Triangle); ok {
			sim.U()[tri.ID()] = 1
		}
	}
	ids := sim.FindRegionCells(Region{XMin: 0, XMax: 0.45, YMin: 0, YMax: 0.2})

	// With u == 1 the integral is the summed area of the selected cells.
	var wantArea float64
	for _, id := range ids {
		wantArea += m.Cells[id].(*mesh.Triangle).Area()
	}
	assert.InDelta(t, wantArea, sim.RegionIntegral(), 1.e-12)

	// Recomputing for a disjoint region overwrites the cache.
	sim.FindRegionCells(Region{XMin: 5, XMax: 6, YMin: 5, YMax: 6})
	assert.Equal(t, 0., sim.RegionIntegral())
}

// TestFindRegionCellsReturnsCacheAlias pins the documented aliasing: the
// returned slice shares the cache's backing array, so a recomputation
// reuses it instead of allocating.
func TestFindRegionCellsReturnsCacheAlias(t *testing.T) {
	m := testMesh(t, 8)
	sim := NewSimulation(m, 0.001)

	first := sim.FindRegionCells(Region{XMin: 0, XMax: 0.45, YMin: 0, YMax: 0.2})
	require.NotEmpty(t, first)
	held := first[0]

	second := sim.FindRegionCells(Region{XMin: 0.5, XMax: 1, YMin: 0.5, YMax: 1})
	require.NotEmpty(t, second)
	assert.Equal(t, second[0], first[0])
	assert.NotEqual(t, held, first[0])
}

func TestRegionIntegralReadsOnly(t *testing.T) {
	m := testMesh(t, 4)
	sim := NewSimulation(m, 0.001)
	sim.SetInitialState(DefaultXStart, DefaultSigma2)
	before := append([]float64(nil), sim.U()...)

	sim.FindRegionCells(Region{XMin: 0, XMax: 1, YMin: 0, YMax: 1})
	sim.RegionIntegral()
	assert.Equal(t, before, sim.U())
}
