package simulation

import (
	"fmt"
	"math"
	"sync"

	"github.com/oilsim/oilspill/mesh"
)

// Default Gaussian initial condition: center and variance of the spill.
var (
	DefaultXStart = mesh.Point{0.35, 0.45}
	DefaultSigma2 = 0.01
)

// SnapshotFunc receives a self-consistent solution snapshot between
// completed steps. The mesh and the slice contents must be treated as
// read-only.
type SnapshotFunc func(step int, m *mesh.Mesh, u []float64) error

// Simulation advances the cell-centered oil concentration with an explicit
// upwind finite-volume scheme. The solution lives in a double buffer: all
// reads within a step see the pre-step array, all writes go to the scratch
// array, and a slice-header swap at the end of Step is the single mutation
// visible to readers.
type Simulation struct {
	Mesh *mesh.Mesh
	Dt   float64

	// Workers > 1 splits the per-triangle sweep across goroutines. Each
	// uNew slot depends only on the immutable pre-step u and static mesh
	// geometry, so the only synchronization is the join before the swap.
	Workers int

	XStart mesh.Point
	Sigma2 float64

	u, uNew []float64

	regionCells []int
}

// NewSimulation allocates the solution buffers for the given mesh. The
// configuration layer validates dt before any simulation work; a
// non-positive dt here is a programmer error.
func NewSimulation(m *mesh.Mesh, dt float64) *Simulation {
	if dt <= 0 {
		panic(fmt.Errorf("non-positive dt %g", dt))
	}
	return &Simulation{
		Mesh:   m,
		Dt:     dt,
		XStart: DefaultXStart,
		Sigma2: DefaultSigma2,
		u:      make([]float64, len(m.Cells)),
		uNew:   make([]float64, len(m.Cells)),
	}
}

// U exposes the current solution, indexed by cell id. Callers may seed
// values directly between steps; during a step only Step itself writes,
// and only to the scratch buffer until the final swap.
func (s *Simulation) U() []float64 { return s.u }

// SetInitialState seeds a Gaussian bump centered at xStart on every
// Triangle and zero on every boundary Segment.
func (s *Simulation) SetInitialState(xStart mesh.Point, sigma2 float64) {
	for _, c := range s.Mesh.Cells {
		switch cell := c.(type) {
		case *mesh.Triangle:
			dx := cell.Centroid().Sub(xStart)
			s.u[cell.ID()] = math.Exp(-dx.Dot(dx) / sigma2)
		case *mesh.Segment:
			s.u[cell.ID()] = 0
		}
	}
}

// Step advances the solution by one time step. Triangles with area <= 0
// are skipped and carry their value over unchanged; this tolerance for
// degenerate cells is deliberate policy, not an error path. Boundary
// Segments are forced to exactly zero after the sweep (open boundary).
func (s *Simulation) Step() {
	copy(s.uNew, s.u)

	if s.Workers > 1 {
		var wg sync.WaitGroup
		for n := 0; n < s.Workers; n++ {
			lo, hi := partitionRange(s.Workers, len(s.Mesh.Cells), n)
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				s.sweep(lo, hi)
			}(lo, hi)
		}
		wg.Wait()
	} else {
		s.sweep(0, len(s.Mesh.Cells))
	}

	for _, c := range s.Mesh.Cells {
		if _, ok := c.(*mesh.Segment); ok {
			s.uNew[c.ID()] = 0
		}
	}

	s.u, s.uNew = s.uNew, s.u
}

// sweep accumulates the per-edge flux contributions for the triangles in
// cell index range [lo, hi). Cell ids equal cell list indices.
func (s *Simulation) sweep(lo, hi int) {
	for i := lo; i < hi; i++ {
		tri, ok := s.Mesh.Cells[i].(*mesh.Triangle)
		if !ok {
			continue
		}
		area := tri.Area()
		if area <= 0 {
			continue
		}
		var (
			ui      = s.u[i]
			vi      = tri.Velocity()
			normals = tri.Normals()
			update  float64
		)
		for k := 0; k < 3; k++ {
			nid, matched := tri.EdgeNeighbor(k)
			if !matched {
				continue
			}
			var (
				uNgh float64
				vNgh mesh.Point
			)
			if ngh, isTri := s.Mesh.Cells[nid].(*mesh.Triangle); isTri {
				uNgh = s.u[nid]
				vNgh = ngh.Velocity()
			}
			update += FluxContribution(ui, uNgh, area, normals[k], vi, vNgh, s.Dt)
		}
		s.uNew[i] = ui + update
	}
}

// Run seeds the initial condition and advances floor(tEnd/dt) steps in
// strict sequence. When writeFrequency > 0 and snap is non-nil, every
// writeFrequency-th step hands the between-steps solution to snap.
func (s *Simulation) Run(tEnd float64, writeFrequency int, snap SnapshotFunc) error {
	s.SetInitialState(s.XStart, s.Sigma2)
	nSteps := int(tEnd / s.Dt)
	for step := 0; step < nSteps; step++ {
		s.Step()
		if snap != nil && writeFrequency > 0 && step%writeFrequency == 0 {
			if err := snap(step, s.Mesh, s.u); err != nil {
				return fmt.Errorf("writing output at step %d: %w", step, err)
			}
		}
	}
	return nil
}

// TotalMass is the area-weighted integral of the solution over all
// triangles, a global conservation diagnostic. Boundary loss and upwind
// diffusion make it non-increasing, not conserved.
func (s *Simulation) TotalMass() (total float64) {
	for _, c := range s.Mesh.Cells {
		if tri, ok := c.(*mesh.Triangle); ok {
			total += s.u[tri.ID()] * tri.Area()
		}
	}
	return
}
