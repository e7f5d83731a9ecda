package engine2D

import (
	"math"

	"nebula-wallpaper/internal/nebula"
	"nebula-wallpaper/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Limits for the flat rings that approximate one radial gradient.
const (
	minGradientBands    = 3
	maxGradientBands    = 48
	minGradientSegments = 12
	maxGradientSegments = 64
)

// Canvas draws into a persistent render texture. Draw calls are only valid
// between BeginFrame and EndFrame; the Window brackets every RunFrame with
// them. The texture keeps the last frame so it can be presented every loop
// iteration even when no frame ran.
type Canvas struct {
	target rl.RenderTexture2D
	width  int
	height int
	blend  nebula.BlendMode
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

func (c *Canvas) Size() (int, int) { return c.width, c.height }

func (c *Canvas) Resize(width, height int) {
	if width == c.width && height == c.height && rl.IsRenderTextureValid(c.target) {
		return
	}
	if rl.IsRenderTextureValid(c.target) {
		rl.UnloadRenderTexture(c.target)
	}
	c.width, c.height = width, height
	if width <= 0 || height <= 0 {
		c.target = rl.RenderTexture2D{}
		return
	}

	c.target = rl.LoadRenderTexture(int32(width), int32(height))
	rl.SetTextureFilter(c.target.Texture, rl.FilterBilinear)
	utils.Debug("engine2D: canvas render texture %dx%d", width, height)
}

// BeginFrame redirects drawing into the render texture.
func (c *Canvas) BeginFrame() bool {
	if !rl.IsRenderTextureValid(c.target) {
		return false
	}
	rl.BeginTextureMode(c.target)
	return true
}

func (c *Canvas) EndFrame() {
	if c.blend != nebula.BlendNormal {
		rl.EndBlendMode()
		c.blend = nebula.BlendNormal
	}
	rl.EndTextureMode()
}

// Present blits the last frame to the screen, stretched to dstW x dstH.
func (c *Canvas) Present(dstW, dstH int) {
	if !rl.IsRenderTextureValid(c.target) {
		return
	}
	tex := c.target.Texture
	// Render textures are stored upside down.
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	dst := rl.NewRectangle(0, 0, float32(dstW), float32(dstH))
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

// Unload releases the GPU texture. The canvas is unusable afterwards.
func (c *Canvas) Unload() {
	if rl.IsRenderTextureValid(c.target) {
		rl.UnloadRenderTexture(c.target)
	}
	c.target = rl.RenderTexture2D{}
}

func (c *Canvas) Clear(col nebula.Color) {
	rl.ClearBackground(toRL(col))
}

func (c *Canvas) SetBlendMode(m nebula.BlendMode) {
	if m == c.blend {
		return
	}
	c.blend = m

	switch m {
	case nebula.BlendScreen:
		// s*a + d*(1-s): screen blending without a shader.
		rl.SetBlendFactors(rl.SrcAlpha, rl.OneMinusSrcColor, rl.FuncAdd)
		rl.BeginBlendMode(rl.BlendCustom)
	default:
		rl.EndBlendMode()
	}
}

func (c *Canvas) FillRadialGradient(center nebula.Vec2, radius float64, stops []nebula.GradientStop) {
	if len(stops) == 0 || radius <= 0 {
		return
	}
	pos := rl.NewVector2(float32(center.X), float32(center.Y))

	bands, segments := gradientSteps(radius)
	step := radius / float64(bands)
	for i := range bands {
		inner := float64(i) * step
		col := gradientAt(stops, (inner+step/2)/radius)
		if col.A == 0 {
			continue
		}
		rl.DrawRing(pos, float32(inner), float32(inner+step), 0, 360, segments, toRL(col))
	}

	// Beyond the radius the surface takes the outer colour.
	if outer := stops[len(stops)-1].Color; outer.A > 0 {
		far := math.Hypot(float64(c.width), float64(c.height)) + math.Hypot(center.X, center.Y)
		rl.DrawRing(pos, float32(radius), float32(far), 0, 360, maxGradientSegments, toRL(outer))
	}
}

func (c *Canvas) FillCircle(center nebula.Vec2, radius float64, col nebula.Color) {
	if radius <= 0 || col.A == 0 {
		return
	}
	rl.DrawCircleV(rl.NewVector2(float32(center.X), float32(center.Y)), float32(radius), toRL(col))
}

func (c *Canvas) StrokeLine(from, to nebula.Vec2, width float64, col nebula.Color) {
	if width <= 0 || col.A == 0 {
		return
	}
	rl.DrawLineEx(
		rl.NewVector2(float32(from.X), float32(from.Y)),
		rl.NewVector2(float32(to.X), float32(to.Y)),
		float32(width),
		toRL(col),
	)
}

// gradientSteps returns how many rings, and segments per ring, a gradient of
// the given radius is drawn with: about one ring per two pixels of radius and
// one segment per pixel, within fixed limits.
func gradientSteps(radius float64) (bands, segments int32) {
	bands = int32(min(max(int(radius/2), minGradientBands), maxGradientBands))
	segments = int32(min(max(int(math.Ceil(radius)), minGradientSegments), maxGradientSegments))
	return bands, segments
}

func toRL(c nebula.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, uint8(math.Round(c.A*255)))
}

// gradientAt interpolates the stops at offset t.
func gradientAt(stops []nebula.GradientStop, t float64) nebula.Color {
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		hi := stops[i]
		if t > hi.Offset {
			continue
		}
		lo := stops[i-1]
		f := 0.0
		if span := hi.Offset - lo.Offset; span > 0 {
			f = (t - lo.Offset) / span
		}
		mix := func(a, b uint8) uint8 {
			return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
		}
		return nebula.Color{
			R: mix(lo.Color.R, hi.Color.R),
			G: mix(lo.Color.G, hi.Color.G),
			B: mix(lo.Color.B, hi.Color.B),
			A: lo.Color.A + (hi.Color.A-lo.Color.A)*f,
		}
	}
	return stops[len(stops)-1].Color
}
