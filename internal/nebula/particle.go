package nebula

import (
	"math"
	"math/rand/v2"
)

// Particle is one star of the field. Particles live in a flat slice and are
// updated in place every frame.
type Particle struct {
	Pos  Vec2
	Base Vec2

	Size     float64
	BaseSize float64

	Brightness   float64
	Phase        float64
	TwinkleSpeed float64
	Bright       bool
}

var (
	starColor  = RGB(255, 255, 255)
	glintColor = RGB(200, 180, 255)
	haloColor  = RGB(180, 140, 220)
)

func newParticles(rng *rand.Rand, count int, width, height int, brightChance float64) []Particle {
	particles := make([]Particle, count)
	for i := range particles {
		p := &particles[i]
		p.Base = Vec2{X: rng.Float64() * float64(width), Y: rng.Float64() * float64(height)}
		p.Pos = p.Base
		p.BaseSize = rng.Float64()*1.5 + 0.3
		p.Size = p.BaseSize
		p.Brightness = rng.Float64()*0.5 + 0.5
		p.TwinkleSpeed = 0.005 + rng.Float64()*0.015
		p.Phase = rng.Float64() * math.Pi * 2
		p.Bright = rng.Float64() < brightChance
	}
	return particles
}

// Brightness is the raw twinkle value at a frame. It ranges over [-0.4, 1];
// use Alpha to draw with it.
func Brightness(frame uint64, twinkleSpeed, phase float64) float64 {
	return 0.3 + 0.7*math.Sin(float64(frame)*twinkleSpeed+phase)
}

// Alpha clamps a brightness to a drawable opacity.
func Alpha(brightness float64) float64 {
	return clamp01(brightness)
}

// PulseSize is the size of a bright particle at a frame.
func PulseSize(frame uint64, baseSize, twinkleSpeed float64) float64 {
	return baseSize * (0.8 + 0.4*math.Sin(float64(frame)*twinkleSpeed*2))
}

// update recomputes the particle for a frame. Brightness and size derive from
// the frame alone; position is the anchor plus this frame's displacement.
func (p *Particle) update(frame uint64, field Field, trail []TrailPoint) {
	p.Brightness = Brightness(frame, p.TwinkleSpeed, p.Phase)
	if p.Bright {
		p.Size = PulseSize(frame, p.BaseSize, p.TwinkleSpeed)
	}

	p.Pos = p.Base
	if len(trail) > 0 {
		p.Pos = p.Pos.Add(field.Displacement(p.Base, trail))
	}
}

func (p *Particle) draw(c Canvas, halo []GradientStop) {
	alpha := Alpha(p.Brightness)
	if alpha == 0 {
		return
	}

	c.FillCircle(p.Pos, p.Size, starColor.WithAlpha(alpha))

	if p.Bright && p.Brightness > glintThreshold {
		arm := p.Size * 4
		glint := glintColor.WithAlpha(alpha * 0.4)
		c.StrokeLine(Vec2{p.Pos.X - arm, p.Pos.Y}, Vec2{p.Pos.X + arm, p.Pos.Y}, 0.5, glint)
		c.StrokeLine(Vec2{p.Pos.X, p.Pos.Y - arm}, Vec2{p.Pos.X, p.Pos.Y + arm}, 0.5, glint)
	}

	if p.Size > haloThreshold {
		halo[0] = GradientStop{Offset: 0, Color: haloColor.WithAlpha(alpha * 0.1)}
		halo[1] = GradientStop{Offset: 1, Color: starColor.WithAlpha(0)}
		c.FillRadialGradient(p.Pos, p.Size*5, halo[:2])
	}
}
