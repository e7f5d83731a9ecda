package nebula

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrightnessRangeAndAlphaClamp(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	particles := newParticles(rng, 64, 800, 600, DefaultBrightChance)

	for frame := uint64(0); frame < 5000; frame += 7 {
		for _, p := range particles {
			b := Brightness(frame, p.TwinkleSpeed, p.Phase)
			require.GreaterOrEqual(t, b, -0.4-1e-12)
			require.LessOrEqual(t, b, 1.0+1e-12)

			a := Alpha(b)
			require.GreaterOrEqual(t, a, 0.0)
			require.LessOrEqual(t, a, 1.0)
		}
	}
}

func TestAlphaClampEdges(t *testing.T) {
	assert.Equal(t, 0.0, Alpha(-0.4))
	assert.Equal(t, 0.0, Alpha(math.NaN()))
	assert.Equal(t, 1.0, Alpha(1.0000001))
	assert.Equal(t, 0.5, Alpha(0.5))
}

func TestPulseSizeRange(t *testing.T) {
	for frame := uint64(0); frame < 2000; frame++ {
		s := PulseSize(frame, 1.5, 0.013)
		require.GreaterOrEqual(t, s, 1.5*0.4-1e-12)
		require.LessOrEqual(t, s, 1.5*1.2+1e-12)
	}
}

func TestNewParticlesLayout(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	particles := newParticles(rng, 400, 1920, 1080, DefaultBrightChance)

	require.Len(t, particles, 400)
	bright := 0
	for _, p := range particles {
		assert.Equal(t, p.Base, p.Pos)
		assert.True(t, p.Base.X >= 0 && p.Base.X < 1920)
		assert.True(t, p.Base.Y >= 0 && p.Base.Y < 1080)
		assert.True(t, p.BaseSize >= 0.3 && p.BaseSize < 1.8)
		assert.True(t, p.TwinkleSpeed >= 0.005 && p.TwinkleSpeed < 0.02)
		assert.True(t, p.Phase >= 0 && p.Phase < 2*math.Pi)
		if p.Bright {
			bright++
		}
	}
	assert.Greater(t, bright, 0)
	assert.Less(t, bright, 80)
}

func TestBrightParticleDrawsGlint(t *testing.T) {
	canvas := &recordingCanvas{width: 100, height: 100}
	p := Particle{Pos: Vec2{50, 50}, Size: 1, Brightness: 0.9, Bright: true}

	p.draw(canvas, make([]GradientStop, 4))

	assert.Equal(t, 1, canvas.count(opCircle))
	assert.Equal(t, 2, canvas.count(opLine))
	assert.Equal(t, 1, canvas.count(opGradient), "size above the halo threshold")
	for _, op := range canvas.ops {
		if op.kind == opLine {
			assert.InDelta(t, 8, op.radius, 1e-12, "glint arms span size*4 each way")
			assert.InDelta(t, 0.36, op.color.A, 1e-12)
		}
	}
}

func TestDimParticleSkipsExtras(t *testing.T) {
	canvas := &recordingCanvas{width: 100, height: 100}

	dark := Particle{Pos: Vec2{1, 1}, Size: 1, Brightness: -0.2, Bright: true}
	dark.draw(canvas, make([]GradientStop, 4))
	assert.Empty(t, canvas.ops, "fully transparent stars draw nothing")

	small := Particle{Pos: Vec2{1, 1}, Size: 0.5, Brightness: 0.5}
	small.draw(canvas, make([]GradientStop, 4))
	assert.Equal(t, 1, canvas.count(opCircle))
	assert.Equal(t, 0, canvas.count(opLine))
	assert.Equal(t, 0, canvas.count(opGradient))
}
