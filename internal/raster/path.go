package raster

import (
	"math"

	"golang.org/x/image/vector"

	"nebula-wallpaper/internal/nebula"
)

// kappa places the control points of a cubic Bézier quarter circle.
const kappa = 0.5522847498

// traceCircle adds a closed circle of radius r around (cx, cy) to z.
func traceCircle(z *vector.Rasterizer, cx, cy, r float64) {
	x, y, rr, k := float32(cx), float32(cy), float32(r), float32(r*kappa)
	z.MoveTo(x+rr, y)
	z.CubeTo(x+rr, y+k, x+k, y+rr, x, y+rr)
	z.CubeTo(x-k, y+rr, x-rr, y+k, x-rr, y)
	z.CubeTo(x-rr, y-k, x-k, y-rr, x, y-rr)
	z.CubeTo(x+k, y-rr, x+rr, y-k, x+rr, y)
	z.ClosePath()
}

// traceSegment adds the rectangle covering a butt-capped stroke from a to b
// with the given half width.
func traceSegment(z *vector.Rasterizer, a, b nebula.Vec2, half float64) {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 || math.IsNaN(l) {
		return
	}
	n := nebula.Vec2{X: -d.Y / l * half, Y: d.X / l * half}

	z.MoveTo(float32(a.X+n.X), float32(a.Y+n.Y))
	z.LineTo(float32(b.X+n.X), float32(b.Y+n.Y))
	z.LineTo(float32(b.X-n.X), float32(b.Y-n.Y))
	z.LineTo(float32(a.X-n.X), float32(a.Y-n.Y))
	z.ClosePath()
}
