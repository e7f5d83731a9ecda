// Package debug draws the F8 performance overlay on top of the raylib window.
package debug

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"time"

	"nebula-wallpaper/internal/host"
	"nebula-wallpaper/internal/nebula"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var fontPaths = []string{
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
}

type Overlay struct {
	fontHeight int
	lineHeight int
	panelWidth int
	uiScale    float64

	font          rl.Font
	monitorWidth  int
	monitorHeight int

	lastMemRead time.Time
	memStats    runtime.MemStats
}

func NewOverlay() *Overlay {
	monitor := rl.GetCurrentMonitor()
	d := &Overlay{
		monitorWidth:  rl.GetMonitorWidth(monitor),
		monitorHeight: rl.GetMonitorHeight(monitor),
	}
	d.updateLayout()

	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			d.font = rl.LoadFontEx(path, 64, nil, 0)
			rl.SetTextureFilter(d.font.Texture, rl.FilterBilinear)
			break
		}
	}
	return d
}

func (d *Overlay) updateLayout() {
	scale := math.Max(1.0, float64(d.monitorHeight)/1080.0)
	d.fontHeight = int(16 * scale)
	d.lineHeight = int(24 * scale)
	d.panelWidth = int(340 * scale)
	d.uiScale = scale
}

// Update refreshes the memory statistics at most once a second.
func (d *Overlay) Update() {
	if now := time.Now(); now.Sub(d.lastMemRead) >= time.Second {
		runtime.ReadMemStats(&d.memStats)
		d.lastMemRead = now
	}
}

func (d *Overlay) Draw(st nebula.Stats, clock *host.FrameClock) {
	height := 22 * d.lineHeight
	rl.DrawRectangle(0, 0, int32(d.panelWidth), int32(height), rl.NewColor(0, 0, 0, 200))

	ui := NewUIContext(10, 10, d.lineHeight, d.fontHeight, d.font)

	ui.Header("Background:")
	state := "inert"
	switch {
	case st.Animating:
		state = "animating"
	case st.Mounted:
		state = "static"
	}
	ui.IndentLabel(fmt.Sprintf("State: %s", state), 10)
	ui.IndentLabel(fmt.Sprintf("Frame: %d", st.Frame), 10)
	ui.IndentLabel(fmt.Sprintf("Particles: %d  Blobs: %d", st.Particles, st.Blobs), 10)
	ui.IndentLabel(fmt.Sprintf("Trail: %d", st.TrailLen), 10)
	ui.IndentLabel(fmt.Sprintf("Surface: %dx%d", st.Width, st.Height), 10)

	ui.Separator()

	ui.Header("Timing:")
	ui.IndentLabel(fmt.Sprintf("FPS: %d (smoothed %.1f)", rl.GetFPS(), clock.FPS()), 10)
	ui.IndentLabel(fmt.Sprintf("Frame Time: %.2f ms", float64(clock.Average().Microseconds())/1000), 10)
	ui.IndentLabel(fmt.Sprintf("Uptime: %s", clock.Uptime(time.Now()).Truncate(time.Second)), 10)
	monitor := rl.GetCurrentMonitor()
	ui.IndentLabel(fmt.Sprintf("Refresh Rate: %d Hz", rl.GetMonitorRefreshRate(monitor)), 10)

	ui.Separator()

	ui.Header("Memory Usage:")
	ui.IndentLabel(fmt.Sprintf("Heap Alloc: %.2f MB", float64(d.memStats.HeapAlloc)/1024/1024), 10)
	ui.IndentLabel(fmt.Sprintf("Process Total: %.2f MB", float64(d.memStats.Sys)/1024/1024), 10)
	ui.IndentLabel(fmt.Sprintf("Goroutines: %d", runtime.NumGoroutine()), 10)

	ui.Separator()

	ui.Header("Display:")
	ui.IndentLabel(fmt.Sprintf("Monitor: %s (%dx%d)", rl.GetMonitorName(monitor), d.monitorWidth, d.monitorHeight), 10)
	ui.IndentLabel(fmt.Sprintf("Window: %dx%d", rl.GetScreenWidth(), rl.GetScreenHeight()), 10)
	ui.IndentLabel(fmt.Sprintf("UI Scale: %.2fx", d.uiScale), 10)
}

func (d *Overlay) Unload() {
	if d.font.BaseSize > 0 {
		rl.UnloadFont(d.font)
	}
}
