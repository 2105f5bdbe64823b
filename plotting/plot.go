// Package plotting renders solution snapshots to PNG frames. It draws each
// Triangle as a filled polygon colored by concentration on a viridis ramp,
// with an optional dashed rectangle marking the diagnostic region.
package plotting

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/oilsim/oilspill/mesh"
	"github.com/oilsim/oilspill/simulation"
)

// Renderer writes numbered frame images into OutputDir. The zero value
// renders 800x800pt frames with per-frame color normalization.
type Renderer struct {
	OutputDir     string
	Width, Height vg.Length

	// When UMax > UMin the color ramp is normalized to the fixed interval
	// [UMin, UMax] across all frames; otherwise each frame normalizes to
	// its own value range.
	UMin, UMax float64

	// Region, when set, is drawn as a dashed rectangle outline.
	Region *simulation.Region

	// frame counts Snapshot calls.
	frame int
}

// FramePath names the image for one frame index, img_0000.png style.
func FramePath(dir string, frame int) string {
	return filepath.Join(dir, fmt.Sprintf("img_%04d.png", frame))
}

// Snapshot implements simulation.SnapshotFunc. Frames are numbered by call
// order rather than by step, so any snapshot cadence yields the contiguous
// img_0000.png, img_0001.png, ... sequence video assembly expects.
func (r *Renderer) Snapshot(step int, m *mesh.Mesh, u []float64) error {
	if err := r.WriteFrame(FramePath(r.OutputDir, r.frame), m, u); err != nil {
		return err
	}
	r.frame++
	return nil
}

// WriteFrame renders one PNG of the solution on the mesh.
func (r *Renderer) WriteFrame(filename string, m *mesh.Mesh, u []float64) error {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 800
	}
	umin, umax := r.UMin, r.UMax
	if umax <= umin {
		umin, umax = floats.Min(u), floats.Max(u)
	}

	c := vgimg.New(w, h)
	tr := newTransform(m.Points, w, h)

	for _, cell := range m.Cells {
		tri, ok := cell.(*mesh.Triangle)
		if !ok {
			continue
		}
		var path vg.Path
		for i, v := range tri.VertexIDs() {
			pt := tr.apply(m.Points[v])
			if i == 0 {
				path.Move(pt)
			} else {
				path.Line(pt)
			}
		}
		path.Close()
		c.SetColor(viridis(normalize(u[tri.ID()], umin, umax)))
		c.Fill(path)
	}

	if r.Region != nil {
		var path vg.Path
		path.Move(tr.apply(mesh.Point{r.Region.XMin, r.Region.YMin}))
		path.Line(tr.apply(mesh.Point{r.Region.XMax, r.Region.YMin}))
		path.Line(tr.apply(mesh.Point{r.Region.XMax, r.Region.YMax}))
		path.Line(tr.apply(mesh.Point{r.Region.XMin, r.Region.YMax}))
		path.Close()
		c.SetColor(color.RGBA{R: 0xff, A: 0xff})
		c.SetLineWidth(vg.Points(2))
		c.SetLineDash([]vg.Length{vg.Points(6), vg.Points(4)}, 0)
		c.Stroke(path)
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: c}
	if _, err = png.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func normalize(v, umin, umax float64) float64 {
	if umax <= umin {
		return 0
	}
	t := (v - umin) / (umax - umin)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// transform maps mesh coordinates to canvas coordinates, preserving aspect
// ratio with a small margin.
type transform struct {
	scale      float64
	xmin, ymin float64
	xoff, yoff vg.Length
}

func newTransform(points []mesh.Point, w, h vg.Length) transform {
	xmin, ymin := points[0][0], points[0][1]
	xmax, ymax := xmin, ymin
	for _, p := range points {
		if p[0] < xmin {
			xmin = p[0]
		}
		if p[0] > xmax {
			xmax = p[0]
		}
		if p[1] < ymin {
			ymin = p[1]
		}
		if p[1] > ymax {
			ymax = p[1]
		}
	}
	const marginFrac = 0.05
	dx, dy := xmax-xmin, ymax-ymin
	if dx <= 0 {
		dx = 1
	}
	if dy <= 0 {
		dy = 1
	}
	sx := float64(w) * (1 - 2*marginFrac) / dx
	sy := float64(h) * (1 - 2*marginFrac) / dy
	s := sx
	if sy < s {
		s = sy
	}
	return transform{
		scale: s,
		xmin:  xmin,
		ymin:  ymin,
		xoff:  (w - vg.Length(s*dx)) / 2,
		yoff:  (h - vg.Length(s*dy)) / 2,
	}
}

func (t transform) apply(p mesh.Point) vg.Point {
	return vg.Point{
		X: t.xoff + vg.Length(t.scale*(p[0]-t.xmin)),
		Y: t.yoff + vg.Length(t.scale*(p[1]-t.ymin)),
	}
}

// viridis anchor colors, sampled from the matplotlib colormap.
var viridisAnchors = [][3]float64{
	{68, 1, 84},
	{59, 82, 139},
	{33, 145, 140},
	{94, 201, 98},
	{253, 231, 37},
}

func viridis(t float64) color.Color {
	n := len(viridisAnchors) - 1
	x := t * float64(n)
	i := int(x)
	if i >= n {
		i = n - 1
	}
	f := x - float64(i)
	a, b := viridisAnchors[i], viridisAnchors[i+1]
	lerp := func(lo, hi float64) uint8 {
		return uint8(lo + f*(hi-lo))
	}
	return color.RGBA{
		R: lerp(a[0], b[0]),
		G: lerp(a[1], b[1]),
		B: lerp(a[2], b[2]),
		A: 0xff,
	}
}
