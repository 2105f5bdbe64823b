package simulation

import "github.com/oilsim/oilspill/mesh"

// Flux is the upwind numerical flux across one edge. The side the flow
// originates from supplies the transported value: a when the edge-averaged
// velocity leaves the local cell (v·n > 0), b otherwise. A tangential flow
// (v·n == 0) yields zero either way.
func Flux(a, b float64, normal, v mesh.Point) float64 {
	dot := v.Dot(normal)
	if dot > 0 {
		return a * dot
	}
	return b * dot
}

// FluxContribution is the per-edge update to cell i from neighbor l over
// one time step: -dt/area_i * flux(u_i, u_l, n_il, (v_i+v_l)/2). A boundary
// Segment neighbor enters with uNgh = 0 and vNgh = 0.
func FluxContribution(ui, uNgh, areaI float64, normal, vi, vNgh mesh.Point, dt float64) float64 {
	vAvg := vi.Add(vNgh).Scale(0.5)
	return -dt / areaI * Flux(ui, uNgh, normal, vAvg)
}
