package nebula

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(cfg Config, width, height int) *Scene {
	return NewScene(cfg, width, height, rand.New(rand.NewPCG(cfg.Seed, 1)))
}

func TestSceneWithoutPointerStaysAnchored(t *testing.T) {
	scene := newTestScene(testConfig(), 1280, 720)
	canvas := &recordingCanvas{width: 1280, height: 720}

	for range 100 {
		scene.Step(canvas)
	}

	require.Equal(t, uint64(100), scene.Frame())
	for _, p := range scene.Particles() {
		assert.Equal(t, p.Base, p.Pos)
		assert.InDelta(t, Brightness(100, p.TwinkleSpeed, p.Phase), p.Brightness, 1e-12)
		if p.Bright {
			assert.InDelta(t, PulseSize(100, p.BaseSize, p.TwinkleSpeed), p.Size, 1e-12)
		} else {
			assert.Equal(t, p.BaseSize, p.Size)
		}
	}
}

func TestScenePointerPushesParticle(t *testing.T) {
	scene := newTestScene(testConfig(), 1280, 720)
	canvas := &recordingCanvas{width: 1280, height: 720}
	target := scene.Particles()[0].Base

	scene.PointerMoved(target.X-1e-4, target.Y)
	scene.Step(canvas)

	p := scene.Particles()[0]
	moved := p.Pos.Sub(p.Base)
	assert.InDelta(t, 8, moved.Len(), 1e-3, "distance ~0 gives close to the full strength")
	assert.Greater(t, moved.X, 0.0)

	require.Equal(t, 1, scene.Trail().Len())
	assert.InDelta(t, 1-DefaultTrailDecay, scene.Trail().Points()[0].Life, 1e-12, "trail ages after drawing")
}

func TestScenePointerOnAnchorIsSkipped(t *testing.T) {
	scene := newTestScene(testConfig(), 1280, 720)
	canvas := &recordingCanvas{width: 1280, height: 720}
	target := scene.Particles()[0].Base

	scene.PointerMoved(target.X, target.Y)
	scene.Step(canvas)

	p := scene.Particles()[0]
	assert.Equal(t, p.Base, p.Pos)
}

func TestSceneDisplacementFadesWithTrail(t *testing.T) {
	scene := newTestScene(testConfig(), 1280, 720)
	canvas := &recordingCanvas{width: 1280, height: 720}
	target := scene.Particles()[0].Base

	scene.PointerMoved(target.X-50, target.Y)

	prev := 1e9
	for scene.Trail().Len() > 0 {
		scene.Step(canvas)
		p := scene.Particles()[0]
		d := p.Pos.Sub(p.Base).Len()
		require.Less(t, d, prev)
		prev = d
	}

	scene.Step(canvas)
	p := scene.Particles()[0]
	assert.Equal(t, p.Base, p.Pos, "no displacement once the trail is drained")
}

func TestSceneNonInteractiveIgnoresPointer(t *testing.T) {
	cfg := testConfig()
	cfg.Interactive = false
	scene := newTestScene(cfg, 800, 600)
	canvas := &recordingCanvas{width: 800, height: 600}
	target := scene.Particles()[0].Base

	scene.PointerMoved(target.X-10, target.Y)
	scene.Step(canvas)

	assert.Nil(t, scene.Trail())
	assert.Equal(t, target, scene.Particles()[0].Pos)
}

func TestSceneDrawOrder(t *testing.T) {
	cfg := testConfig()
	cfg.Particles = 50
	scene := newTestScene(cfg, 1280, 720)
	canvas := &recordingCanvas{width: 1280, height: 720}

	scene.Step(canvas)

	ops := canvas.ops
	require.GreaterOrEqual(t, len(ops), 2+len(cfg.Blobs)+1)

	assert.Equal(t, opClear, ops[0].kind)
	assert.Equal(t, DefaultBackground, ops[0].color)
	assert.Equal(t, opBlend, ops[1].kind)
	assert.Equal(t, BlendScreen, ops[1].blend)

	for i := range cfg.Blobs {
		op := ops[2+i]
		require.Equal(t, opGradient, op.kind)
		assert.Equal(t, BlendScreen, op.blend)
		assert.Equal(t, cfg.Blobs[i].Radius, op.radius, "blobs drawn in table order")
		assert.Equal(t, cfg.Blobs[i].Center(1, 1280, 720), op.center)
	}

	endBlobs := 2 + len(cfg.Blobs)
	assert.Equal(t, opBlend, ops[endBlobs].kind)
	assert.Equal(t, BlendNormal, ops[endBlobs].blend)
	for _, op := range ops[endBlobs+1:] {
		assert.Equal(t, BlendNormal, op.blend, "particles draw on top with normal blending")
		assert.NotEqual(t, opClear, op.kind)
	}
}

func TestSceneBlobDisplacedByPointer(t *testing.T) {
	scene := newTestScene(testConfig(), 1280, 720)
	canvas := &recordingCanvas{width: 1280, height: 720}

	scene.frame = 9
	center := scene.Blobs()[0].Center(10, 1280, 720)
	scene.PointerMoved(center.X, center.Y-90)
	scene.Step(canvas)

	got := scene.BlobCenter(0)
	// BlobCenter reads the decayed trail; the drawn one used full life.
	life := 1 - DefaultTrailDecay
	assert.InDelta(t, center.X, got.X, 1e-9)
	assert.InDelta(t, center.Y+0.5*life*12, got.Y, 1e-9)
	assert.Equal(t, scene.Blobs()[0], DefaultBlobs()[0], "blob configuration is never mutated")
}

func TestBlobDrift(t *testing.T) {
	blob := DefaultBlobs()[0]

	c0 := blob.Center(0, 1000, 1000)
	assert.InDelta(t, 250, c0.X, 1e-9)
	assert.InDelta(t, 300+60, c0.Y, 1e-9)

	for frame := uint64(0); frame < 200000; frame += 997 {
		c := blob.Center(frame, 1000, 1000)
		assert.LessOrEqual(t, c.Sub(Vec2{250, 300}).X, 80.0+1e-9)
		assert.LessOrEqual(t, c.Sub(Vec2{250, 300}).Y, 60.0+1e-9)
		op := blob.OpacityAt(frame)
		assert.InDelta(t, blob.Opacity, op, 0.03+1e-9)
	}
}

func TestBlobStops(t *testing.T) {
	blob := DefaultBlobs()[0]
	opacity := 0.2
	stops := blob.stops(make([]GradientStop, 0, 4), opacity)

	require.Len(t, stops, 4)
	assert.Equal(t, Color{R: 75, G: 40, B: 130, A: opacity}, stops[0].Color)
	assert.Equal(t, Color{R: 65, G: 30, B: 120, A: opacity * 0.7}, stops[1].Color)
	assert.Equal(t, Color{R: 55, G: 25, B: 110, A: opacity * 0.4}, stops[2].Color)
	assert.Equal(t, 0.0, stops[3].Color.A)
	assert.Equal(t, 1.0, stops[3].Offset)
}

func TestSceneResizeKeepsLayout(t *testing.T) {
	scene := newTestScene(testConfig(), 1280, 720)
	canvas := &recordingCanvas{width: 1280, height: 720}
	before := append([]Particle(nil), scene.Particles()...)

	scene.Resize(640, 480)
	canvas.Resize(640, 480)
	scene.Step(canvas)

	w, h := scene.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, 640, canvas.ops[0].width)
	assert.Equal(t, 480, canvas.ops[0].height)
	for i, p := range scene.Particles() {
		assert.Equal(t, before[i].Base, p.Base)
	}
}
