package mesh

import "math"

// Point is a 2D coordinate. Mesh providers may supply 3D points; the z
// component is dropped at read time.
type Point [2]float64

func (p Point) Add(q Point) Point {
	return Point{p[0] + q[0], p[1] + q[1]}
}

func (p Point) Sub(q Point) Point {
	return Point{p[0] - q[0], p[1] - q[1]}
}

func (p Point) Scale(a float64) Point {
	return Point{a * p[0], a * p[1]}
}

func (p Point) Dot(q Point) float64 {
	return p[0]*q[0] + p[1]*q[1]
}

func (p Point) Norm() float64 {
	return math.Sqrt(p[0]*p[0] + p[1]*p[1])
}

// FlowVelocity is the prescribed analytic velocity field driving the
// advection, evaluated pointwise. It is external forcing, not derived from
// the solution.
func FlowVelocity(p Point) Point {
	return Point{p[1] - 0.2*p[0], -p[0]}
}
