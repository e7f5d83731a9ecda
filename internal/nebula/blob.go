package nebula

import "math"

// Blob is a soft nebula cloud. Its configuration never changes; the drawn
// centre is derived per frame.
type Blob struct {
	// Anchor is the resting centre as a fraction of the viewport.
	Anchor  Vec2
	Radius  float64
	Color   Color
	Opacity float64
	// Speed is the angular drift per frame, Phase the offset in radians.
	Speed float64
	Phase float64
}

// DefaultBlobs returns the indigo/violet cloud set, back to front.
func DefaultBlobs() []Blob {
	return []Blob{
		{Anchor: Vec2{0.25, 0.3}, Radius: 600, Color: RGB(75, 40, 130), Opacity: 0.25, Speed: 0.00015, Phase: 0},
		{Anchor: Vec2{0.7, 0.4}, Radius: 500, Color: RGB(100, 50, 160), Opacity: 0.2, Speed: -0.0001, Phase: math.Pi},
		{Anchor: Vec2{0.45, 0.6}, Radius: 550, Color: RGB(120, 60, 180), Opacity: 0.18, Speed: 0.00012, Phase: math.Pi / 2},
		{Anchor: Vec2{0.15, 0.7}, Radius: 450, Color: RGB(90, 45, 140), Opacity: 0.22, Speed: -0.00008, Phase: math.Pi * 1.5},
		{Anchor: Vec2{0.8, 0.65}, Radius: 400, Color: RGB(130, 70, 190), Opacity: 0.15, Speed: 0.0001, Phase: math.Pi / 3},
		{Anchor: Vec2{0.5, 0.35}, Radius: 350, Color: RGB(140, 80, 200), Opacity: 0.12, Speed: -0.00015, Phase: math.Pi * 0.7},
		// magenta accents
		{Anchor: Vec2{0.6, 0.5}, Radius: 300, Color: RGB(160, 70, 180), Opacity: 0.1, Speed: 0.00009, Phase: math.Pi * 1.2},
		{Anchor: Vec2{0.35, 0.45}, Radius: 280, Color: RGB(110, 60, 150), Opacity: 0.14, Speed: -0.00011, Phase: math.Pi * 0.4},
	}
}

// Center is the blob's drifted centre at a frame for a viewport size, before
// any pointer displacement.
func (b Blob) Center(frame uint64, width, height int) Vec2 {
	t := float64(frame)
	return Vec2{
		X: float64(width)*b.Anchor.X + math.Sin(t*b.Speed+b.Phase)*blobDriftX,
		Y: float64(height)*b.Anchor.Y + math.Cos(t*b.Speed*0.8+b.Phase)*blobDriftY,
	}
}

// OpacityAt is the breathing opacity at a frame.
func (b Blob) OpacityAt(frame uint64) float64 {
	return b.Opacity + math.Sin(float64(frame)*b.Speed*5)*0.03
}

// stops fills dst with the four-stop falloff for the given opacity.
func (b Blob) stops(dst []GradientStop, opacity float64) []GradientStop {
	dst = dst[:0]
	return append(dst,
		GradientStop{Offset: 0, Color: b.Color.WithAlpha(opacity)},
		GradientStop{Offset: 0.3, Color: b.Color.Shade(10, 10, 10).WithAlpha(opacity * 0.7)},
		GradientStop{Offset: 0.6, Color: b.Color.Shade(20, 15, 20).WithAlpha(opacity * 0.4)},
		GradientStop{Offset: 1, Color: Color{}},
	)
}
