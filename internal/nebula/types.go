package nebula

import (
	"errors"
	"math"

	"nebula-wallpaper/internal/host"
)

// ErrNoCanvas is returned by hosts that cannot provide a drawing surface.
var ErrNoCanvas = errors.New("nebula: drawing surface unavailable")

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Color is an sRGB colour with a straight (non-premultiplied) alpha in [0,1].
type Color struct {
	R, G, B uint8
	A       float64
}

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// WithAlpha returns c with its alpha replaced by a clamped to [0,1].
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// Shade darkens each channel by the given amounts, saturating at zero.
func (c Color) Shade(dr, dg, db uint8) Color {
	return Color{R: subSat(c.R, dr), G: subSat(c.G, dg), B: subSat(c.B, db), A: c.A}
}

func subSat(v, d uint8) uint8 {
	if d > v {
		return 0
	}
	return v - d
}

type GradientStop struct {
	Offset float64
	Color  Color
}

type BlendMode int

const (
	// BlendNormal is source-over compositing.
	BlendNormal BlendMode = iota
	// BlendScreen brightens: overlapping colours accumulate instead of occluding.
	BlendScreen
)

func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "normal"
	case BlendScreen:
		return "screen"
	}
	return "unknown"
}

// Canvas is the drawing surface the scene renders onto. Implementations must
// not retain the stops slice passed to FillRadialGradient.
type Canvas interface {
	Size() (width, height int)
	Resize(width, height int)
	Clear(c Color)
	SetBlendMode(m BlendMode)
	// FillRadialGradient paints the whole surface with a gradient centred on
	// center; pixels beyond radius take the last stop's colour.
	FillRadialGradient(center Vec2, radius float64, stops []GradientStop)
	FillCircle(center Vec2, radius float64, c Color)
	StrokeLine(from, to Vec2, width float64, c Color)
}

// Host is the environment a Background is mounted into.
type Host interface {
	ViewportSize() (width, height int)
	AcquireCanvas() (Canvas, error)

	RequestFrame(fn func()) host.FrameID
	CancelFrame(id host.FrameID)

	OnResize(fn func(width, height int)) (cancel func())
	OnPointerMove(fn func(x, y float64)) (cancel func())
}

// Stats is a snapshot of a mounted background, used by overlays and the CLI.
type Stats struct {
	Mounted   bool
	Animating bool
	Frame     uint64
	Particles int
	Blobs     int
	TrailLen  int
	Width     int
	Height    int
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	}
	return v
}
