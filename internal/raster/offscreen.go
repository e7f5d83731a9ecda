package raster

import (
	"nebula-wallpaper/internal/host"
	"nebula-wallpaper/internal/nebula"
)

// Offscreen is a headless host: a fixed-size raster canvas whose frames are
// advanced explicitly instead of by a display.
type Offscreen struct {
	*host.Loop
	canvas *Canvas
	width  int
	height int
}

func NewOffscreen(width, height int) *Offscreen {
	return &Offscreen{
		Loop:   host.NewLoop(),
		canvas: New(width, height),
		width:  width,
		height: height,
	}
}

func (o *Offscreen) ViewportSize() (int, int) { return o.width, o.height }

func (o *Offscreen) AcquireCanvas() (nebula.Canvas, error) {
	if o.width <= 0 || o.height <= 0 {
		return nil, nebula.ErrNoCanvas
	}
	return o.canvas, nil
}

func (o *Offscreen) Canvas() *Canvas { return o.canvas }

// Resize changes the reported viewport and notifies listeners.
func (o *Offscreen) Resize(width, height int) {
	o.width, o.height = width, height
	o.EmitResize(width, height)
}

// Advance runs n frames and returns how many frame callbacks actually ran.
func (o *Offscreen) Advance(n int) int {
	ran := 0
	for range n {
		ran += o.RunFrame()
	}
	return ran
}
