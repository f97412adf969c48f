package viz

import (
	"math"
	"sort"

	"github.com/Syd25-legend/physigenai/internal/scene"
)

// Camera projects world-space scene edges onto the 2D canvas with a simple
// perspective divide and painter's-algorithm depth ordering.
type Camera struct {
	Distance float64
	Near     float64
	Rot      scene.Vec3
	Zoom     float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 40, Near: 0.1, Rot: scene.Vec3{X: 0.35, Y: -0.5}, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.Rot.X += a }
func (c *Camera) RotateY(a float64) { c.Rot.Y += a }
func (c *Camera) RotateZ(a float64) { c.Rot.Z += a }

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Project maps a world point to sub-pixel coordinates on a sw x sh raster.
// Returns screen x, y, view-space depth, and whether the point is in front
// of the camera.
func (c *Camera) Project(p scene.Vec3, sw, sh int) (int, int, float64, bool) {
	v := p.RotateEuler(c.Rot).Scale(c.Zoom)
	if v.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - v.Z)
	minDim := math.Min(float64(sw), float64(sh))
	px := minDim / 3.0
	sx := int(v.X*persp*px) + sw/2
	sy := int(-v.Y*persp*px) + sh/2
	return sx, sy, v.Z, true
}

type projected struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render draws a set of world-space edges onto the canvas, far to near.
func (c *Camera) Render(cv *Canvas, edges []scene.Edge) {
	if cv == nil {
		return
	}
	sw, sh := cv.Width*2, cv.Height*4
	out := make([]projected, 0, len(edges))
	for _, e := range edges {
		x1, y1, d1, ok1 := c.Project(e.A, sw, sh)
		x2, y2, d2, ok2 := c.Project(e.B, sw, sh)
		if !ok1 && !ok2 {
			continue
		}
		out = append(out, projected{x1, y1, x2, y2, (d1 + d2) / 2})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].depth < out[j].depth })
	for _, e := range out {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			cv.Plot(e.x1, e.y1)
			continue
		}
		cv.Line(e.x1, e.y1, e.x2, e.y2)
	}
}
