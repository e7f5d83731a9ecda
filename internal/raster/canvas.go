// Package raster is a CPU implementation of nebula.Canvas on top of
// image.RGBA. It backs the terminal renderer and headless export, and is the
// reference for what the GPU canvas should look like.
package raster

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"nebula-wallpaper/internal/nebula"
)

// Canvas stores premultiplied RGBA like image.RGBA does. Shapes are
// rasterized into a coverage mask first and then composited pixel by pixel
// with the current blend mode.
type Canvas struct {
	img   *image.RGBA
	blend nebula.BlendMode

	ras  vector.Rasterizer
	mask *image.Alpha
}

func New(width, height int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

// Image returns the backing image. It is replaced on Resize.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the surface. Contents are discarded.
func (c *Canvas) Resize(width, height int) {
	if w, h := c.Size(); w == width && h == height {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

func (c *Canvas) Clear(col nebula.Color) {
	a := col.A
	px := [4]uint8{
		uint8(math.Round(float64(col.R) * a)),
		uint8(math.Round(float64(col.G) * a)),
		uint8(math.Round(float64(col.B) * a)),
		uint8(math.Round(a * 255)),
	}
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = px[0], px[1], px[2], px[3]
	}
}

func (c *Canvas) SetBlendMode(m nebula.BlendMode) { c.blend = m }

func (c *Canvas) FillRadialGradient(center nebula.Vec2, radius float64, stops []nebula.GradientStop) {
	if len(stops) == 0 || !(radius > 0) {
		return
	}

	bounds := c.img.Bounds()
	// A transparent outer stop means nothing beyond the radius changes.
	if stops[len(stops)-1].Color.A == 0 {
		bounds = bounds.Intersect(circleBounds(center, radius))
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-center.X, float64(y)+0.5-center.Y)
			r, g, b, a := sampleStops(stops, d/radius)
			c.composite(x, y, r, g, b, a)
		}
	}
}

func (c *Canvas) FillCircle(center nebula.Vec2, radius float64, col nebula.Color) {
	if !(radius > 0) || !(col.A > 0) {
		return
	}

	// Sub-pixel stars keep their energy by fading instead of vanishing.
	opacity := 1.0
	if radius < 0.5 {
		opacity = radius * 2
		radius = 0.5
	}

	c.fill(circleBounds(center, radius), col, opacity, func(z *vector.Rasterizer, origin image.Point) {
		traceCircle(z, center.X-float64(origin.X), center.Y-float64(origin.Y), radius)
	})
}

func (c *Canvas) StrokeLine(from, to nebula.Vec2, width float64, col nebula.Color) {
	if !(width > 0) || !(col.A > 0) || from == to {
		return
	}

	// Hairlines are drawn one pixel wide and fainter.
	half, opacity := width/2, 1.0
	if width < 1 {
		half, opacity = 0.5, width
	}

	bounds := image.Rect(
		int(math.Floor(math.Min(from.X, to.X)-half)), int(math.Floor(math.Min(from.Y, to.Y)-half)),
		int(math.Ceil(math.Max(from.X, to.X)+half))+1, int(math.Ceil(math.Max(from.Y, to.Y)+half))+1,
	)
	c.fill(bounds, col, opacity, func(z *vector.Rasterizer, origin image.Point) {
		o := nebula.Vec2{X: float64(origin.X), Y: float64(origin.Y)}
		traceSegment(z, from.Sub(o), to.Sub(o), half)
	})
}

// fill rasterizes the path drawn by trace over r and composites col through
// the resulting coverage. trace receives r's origin; path coordinates are
// relative to it.
func (c *Canvas) fill(r image.Rectangle, col nebula.Color, opacity float64, trace func(z *vector.Rasterizer, origin image.Point)) {
	r = r.Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	w, h := r.Dx(), r.Dy()

	c.ras.Reset(w, h)
	c.ras.DrawOp = draw.Src
	trace(&c.ras, r.Min)
	mask := c.maskFor(w, h)
	c.ras.Draw(mask, mask.Rect, image.Opaque, image.Point{})

	cr, cg, cb, ca := colorParts(col)
	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x, m := range row {
			if m == 0 {
				continue
			}
			c.composite(r.Min.X+x, r.Min.Y+y, cr, cg, cb, ca*opacity*float64(m)/255)
		}
	}
}

// maskFor returns the scratch mask resized to w x h, reusing its buffer.
func (c *Canvas) maskFor(w, h int) *image.Alpha {
	if c.mask == nil || cap(c.mask.Pix) < w*h {
		c.mask = image.NewAlpha(image.Rect(0, 0, w, h))
		return c.mask
	}
	c.mask.Pix = c.mask.Pix[:w*h]
	c.mask.Stride = w
	c.mask.Rect = image.Rect(0, 0, w, h)
	return c.mask
}

// composite blends a straight-alpha colour (channels in [0,1]) into pixel x,y.
func (c *Canvas) composite(x, y int, r, g, b, a float64) {
	if !(a > 0) {
		return
	}
	a = math.Min(a, 1)
	i := c.img.PixOffset(x, y)
	pix := c.img.Pix[i : i+4 : i+4]

	dr, dg, db, da := float64(pix[0])/255, float64(pix[1])/255, float64(pix[2])/255, float64(pix[3])/255
	sr, sg, sb := r*a, g*a, b*a

	switch c.blend {
	case nebula.BlendScreen:
		dr = dr + sr - dr*sr
		dg = dg + sg - dg*sg
		db = db + sb - db*sb
	default:
		dr = sr + dr*(1-a)
		dg = sg + dg*(1-a)
		db = sb + db*(1-a)
	}
	da = a + da*(1-a)

	pix[0] = toByte(dr)
	pix[1] = toByte(dg)
	pix[2] = toByte(db)
	pix[3] = toByte(da)
}

// sampleStops returns the straight-alpha colour at offset t (clamped to the
// stop range), interpolating linearly between neighbouring stops.
func sampleStops(stops []nebula.GradientStop, t float64) (r, g, b, a float64) {
	first, last := stops[0], stops[len(stops)-1]
	switch {
	case t <= first.Offset:
		return colorParts(first.Color)
	case t >= last.Offset:
		return colorParts(last.Color)
	}

	for i := 1; i < len(stops); i++ {
		hi := stops[i]
		if t > hi.Offset {
			continue
		}
		lo := stops[i-1]
		span := hi.Offset - lo.Offset
		f := 0.0
		if span > 0 {
			f = (t - lo.Offset) / span
		}
		lr, lg, lb, la := colorParts(lo.Color)
		hr, hg, hb, ha := colorParts(hi.Color)
		return lerp(lr, hr, f), lerp(lg, hg, f), lerp(lb, hb, f), lerp(la, ha, f)
	}
	return colorParts(last.Color)
}

func colorParts(c nebula.Color) (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, c.A
}

func circleBounds(center nebula.Vec2, radius float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(center.X-radius)), int(math.Floor(center.Y-radius)),
		int(math.Ceil(center.X+radius))+1, int(math.Ceil(center.Y+radius))+1,
	)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	}
	return v
}

func toByte(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
