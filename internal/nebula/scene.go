package nebula

import "math/rand/v2"

// Scene holds all per-frame state of a background: the frame counter, the
// particle pool, the blob set and the pointer trail.
type Scene struct {
	cfg    Config
	width  int
	height int
	frame  uint64

	particles []Particle
	blobs     []Blob
	trail     *Trail

	stops [4]GradientStop
}

// NewScene lays out the particle pool for a viewport. The layout is fixed for
// the scene's lifetime; resizing does not reshuffle it.
func NewScene(cfg Config, width, height int, rng *rand.Rand) *Scene {
	s := &Scene{
		cfg:       cfg,
		width:     width,
		height:    height,
		particles: newParticles(rng, cfg.Particles, width, height, cfg.BrightChance),
		blobs:     cfg.Blobs,
	}
	if cfg.Interactive {
		s.trail = NewTrail(cfg.TrailCap, cfg.TrailDecay)
	}
	return s
}

func (s *Scene) Resize(width, height int) {
	s.width = width
	s.height = height
}

func (s *Scene) Size() (width, height int) { return s.width, s.height }

func (s *Scene) Frame() uint64 { return s.frame }

// Particles exposes the pool for inspection. Callers must not modify it.
func (s *Scene) Particles() []Particle { return s.particles }

func (s *Scene) Blobs() []Blob { return s.blobs }

// Trail is nil when the scene does not react to the pointer.
func (s *Scene) Trail() *Trail { return s.trail }

// PointerMoved records a pointer position. It is a no-op for non-interactive
// scenes.
func (s *Scene) PointerMoved(x, y float64) {
	if s.trail == nil {
		return
	}
	s.trail.Push(Vec2{X: x, Y: y})
}

func (s *Scene) trailPoints() []TrailPoint {
	if s.trail == nil {
		return nil
	}
	return s.trail.Points()
}

// BlobCenter is where blob i is drawn on the current frame, pointer
// displacement included.
func (s *Scene) BlobCenter(i int) Vec2 {
	center := s.blobs[i].Center(s.frame, s.width, s.height)
	if points := s.trailPoints(); len(points) > 0 {
		center = center.Add(s.cfg.BlobField.Displacement(center, points))
	}
	return center
}

// Step advances the clock by one frame and redraws the whole scene: clear,
// blobs under screen blending, then particles on top, then trail aging.
func (s *Scene) Step(c Canvas) {
	s.frame++

	c.Clear(s.cfg.Background)

	c.SetBlendMode(BlendScreen)
	for i, blob := range s.blobs {
		opacity := blob.OpacityAt(s.frame)
		c.FillRadialGradient(s.BlobCenter(i), blob.Radius, blob.stops(s.stops[:], opacity))
	}
	c.SetBlendMode(BlendNormal)

	points := s.trailPoints()
	for i := range s.particles {
		p := &s.particles[i]
		p.update(s.frame, s.cfg.ParticleField, points)
		p.draw(c, s.stops[:])
	}

	if s.trail != nil {
		s.trail.Decay()
	}
}
