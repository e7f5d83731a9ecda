package engine2D

import (
	"context"
	"time"

	"nebula-wallpaper/internal/debug"
	"nebula-wallpaper/internal/host"
	"nebula-wallpaper/internal/nebula"
	"nebula-wallpaper/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PointerSource reports the pointer in screen coordinates.
type PointerSource interface {
	Position() (x, y float64, err error)
}

type WindowOptions struct {
	Title string
	// Width and Height of the window. Zero uses the monitor size.
	Width, Height int
	// Fullscreen opens an undecorated window covering the monitor, for use
	// as a desktop wallpaper.
	Fullscreen bool
	FPS        int
	// Pointer overrides the window's own mouse position, e.g. with the
	// global X11 pointer when the window never receives input.
	Pointer PointerSource
}

// Window is a raylib host. All methods must be called from the goroutine
// that called OpenWindow.
type Window struct {
	*host.Loop

	opts    WindowOptions
	canvas  *Canvas
	width   int
	height  int
	clock   *host.FrameClock
	overlay *debug.Overlay

	pointerX, pointerY float64
	pointerKnown       bool
	pointerFailed      bool
}

func OpenWindow(opts WindowOptions) *Window {
	rl.SetTraceLogCallback(utils.RaylibLogCallback)

	flags := uint32(rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	if opts.Fullscreen {
		flags |= rl.FlagWindowUndecorated
	} else {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = 1280, 720
	}
	rl.InitWindow(int32(width), int32(height), opts.Title)

	monitor := rl.GetCurrentMonitor()
	if opts.Fullscreen || opts.Width <= 0 || opts.Height <= 0 {
		width, height = rl.GetMonitorWidth(monitor), rl.GetMonitorHeight(monitor)
		rl.SetWindowSize(width, height)
	}
	if opts.Fullscreen {
		pos := rl.GetMonitorPosition(monitor)
		rl.SetWindowPosition(int(pos.X), int(pos.Y))
	}

	if opts.FPS > 0 {
		rl.SetTargetFPS(int32(opts.FPS))
	}
	rl.SetExitKey(rl.KeyEscape)

	w := &Window{
		Loop:   host.NewLoop(),
		opts:   opts,
		width:  rl.GetScreenWidth(),
		height: rl.GetScreenHeight(),
		clock:  host.NewFrameClock(time.Now()),
	}
	if rl.IsWindowReady() {
		w.canvas = NewCanvas(w.width, w.height)
		w.overlay = debug.NewOverlay()
	}

	utils.Info("Window %dx%d (fullscreen: %v, fps: %d)", w.width, w.height, opts.Fullscreen, opts.FPS)
	return w
}

func (w *Window) ViewportSize() (int, int) { return w.width, w.height }

func (w *Window) AcquireCanvas() (nebula.Canvas, error) {
	if w.canvas == nil {
		return nil, nebula.ErrNoCanvas
	}
	return w.canvas, nil
}

func (w *Window) Clock() *host.FrameClock { return w.clock }

// Run drives the loop until the window is closed or ctx is cancelled. stats
// feeds the F8 overlay and may be nil.
func (w *Window) Run(ctx context.Context, stats func() nebula.Stats) {
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return
		}

		w.pollResize()
		w.pollPointer()

		if rl.IsKeyPressed(rl.KeyF8) {
			utils.ShowDebugUI = !utils.ShowDebugUI
		}

		if w.canvas != nil && w.PendingFrames() > 0 && w.canvas.BeginFrame() {
			w.RunFrame()
			w.canvas.EndFrame()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		if w.canvas != nil {
			w.canvas.Present(w.width, w.height)
		}
		if utils.ShowDebugUI && w.overlay != nil {
			var st nebula.Stats
			if stats != nil {
				st = stats()
			}
			w.overlay.Update()
			w.overlay.Draw(st, w.clock)
		}
		rl.EndDrawing()

		w.clock.Tick(time.Now())
	}
}

// Close releases GPU resources and the window itself.
func (w *Window) Close() {
	if w.overlay != nil {
		w.overlay.Unload()
	}
	if w.canvas != nil {
		w.canvas.Unload()
	}
	rl.CloseWindow()
}

func (w *Window) pollResize() {
	width, height := rl.GetScreenWidth(), rl.GetScreenHeight()
	if width == w.width && height == w.height {
		return
	}
	if width <= 0 || height <= 0 {
		// Minimized.
		return
	}
	utils.Debug("Window resized: %dx%d -> %dx%d", w.width, w.height, width, height)
	w.width, w.height = width, height
	w.EmitResize(width, height)
}

func (w *Window) pollPointer() {
	x, y := w.pointerPosition()
	if w.pointerKnown && x == w.pointerX && y == w.pointerY {
		return
	}
	w.pointerX, w.pointerY, w.pointerKnown = x, y, true
	w.EmitPointerMove(x, y)
}

func (w *Window) pointerPosition() (float64, float64) {
	if w.opts.Pointer != nil && !w.pointerFailed {
		x, y, err := w.opts.Pointer.Position()
		if err == nil {
			origin := rl.GetWindowPosition()
			return x - float64(origin.X), y - float64(origin.Y)
		}
		utils.Warn("Global pointer unavailable, using window mouse: %v", err)
		w.pointerFailed = true
	}
	pos := rl.GetMousePosition()
	return float64(pos.X), float64(pos.Y)
}
