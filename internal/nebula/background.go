package nebula

import (
	"math/rand/v2"
	"sync"

	"nebula-wallpaper/internal/host"
	"nebula-wallpaper/internal/utils"
)

// Background owns a scene, its canvas and every subscription it made on the
// host. It is created by Mount and released by Unmount.
type Background struct {
	host   Host
	cfg    Config
	canvas Canvas
	scene  *Scene

	pending   host.FrameID
	mounted   bool
	animating bool
	releases  []func()
	teardown  sync.Once
}

// Mount initializes a background on h and starts its frame loop. When no
// canvas can be acquired the returned background is inert: it draws nothing
// and schedules nothing. With cfg.ReducedMotion a single static frame is drawn
// instead of starting the loop.
func Mount(h Host, cfg Config) *Background {
	b := &Background{host: h, cfg: cfg}

	canvas, err := h.AcquireCanvas()
	if err != nil || canvas == nil {
		utils.Debug("nebula: background disabled: %v", err)
		return b
	}

	width, height := h.ViewportSize()
	canvas.Resize(width, height)

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	b.canvas = canvas
	b.scene = NewScene(cfg, width, height, rng)
	b.mounted = true

	b.releases = append(b.releases, h.OnResize(b.resize))

	if cfg.ReducedMotion {
		utils.Debug("nebula: reduced motion, drawing a static frame at %dx%d", width, height)
		b.pending = h.RequestFrame(b.drawStatic)
		return b
	}

	if cfg.Interactive {
		b.releases = append(b.releases, h.OnPointerMove(b.scene.PointerMoved))
	}

	utils.Debug("nebula: mounted %d particles, %d blobs at %dx%d", len(b.scene.particles), len(b.scene.blobs), width, height)
	b.animating = true
	b.pending = h.RequestFrame(b.tick)
	return b
}

// Unmount stops the frame loop and releases every host subscription. Only
// the first call does anything.
func (b *Background) Unmount() {
	b.teardown.Do(func() {
		b.animating = false
		b.mounted = false
		if b.pending != 0 {
			b.host.CancelFrame(b.pending)
			b.pending = 0
		}
		for _, release := range b.releases {
			release()
		}
		b.releases = nil
	})
}

// Scene is nil for an inert background.
func (b *Background) Scene() *Scene { return b.scene }

func (b *Background) Stats() Stats {
	st := Stats{
		Mounted:   b.mounted,
		Animating: b.animating,
	}
	if b.scene == nil {
		return st
	}
	st.Frame = b.scene.frame
	st.Particles = len(b.scene.particles)
	st.Blobs = len(b.scene.blobs)
	if b.scene.trail != nil {
		st.TrailLen = b.scene.trail.Len()
	}
	st.Width, st.Height = b.scene.Size()
	return st
}

func (b *Background) tick() {
	b.pending = 0
	if !b.animating {
		return
	}

	b.scene.Step(b.canvas)

	// Step may have triggered an Unmount through a host callback.
	if !b.animating {
		return
	}
	b.pending = b.host.RequestFrame(b.tick)
}

func (b *Background) drawStatic() {
	b.pending = 0
	if !b.mounted {
		return
	}
	b.scene.Step(b.canvas)
}

func (b *Background) resize(width, height int) {
	if !b.mounted {
		return
	}
	b.canvas.Resize(width, height)
	b.scene.Resize(width, height)

	if b.cfg.ReducedMotion && b.pending == 0 {
		b.pending = b.host.RequestFrame(b.drawStatic)
	}
}
