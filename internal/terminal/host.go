// Package terminal runs a background inside a terminal. The scene is drawn by
// the software rasterizer onto a virtual pixel surface and shown with
// half-block characters, two pixels rows per cell.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"nebula-wallpaper/internal/host"
	"nebula-wallpaper/internal/nebula"
	"nebula-wallpaper/internal/raster"
	"nebula-wallpaper/internal/utils"
)

// Virtual pixels covered by one terminal cell.
const (
	CellWidth  = 4
	CellHeight = 8
)

const halfBlock = '▀'

// Host is not safe for concurrent use; Run owns it until it returns.
type Host struct {
	*host.Loop

	screen tcell.Screen
	canvas *raster.Canvas
	cols   int
	rows   int
	fps    int
	clock  *host.FrameClock

	events chan tcell.Event
	quit   chan struct{}
}

// New wraps an initialized screen. Run finalizes it.
func New(screen tcell.Screen, fps int) *Host {
	if fps <= 0 {
		fps = 30
	}
	cols, rows := screen.Size()
	return &Host{
		Loop:   host.NewLoop(),
		screen: screen,
		canvas: raster.New(cols*CellWidth, rows*CellHeight),
		cols:   cols,
		rows:   rows,
		fps:    fps,
		clock:  host.NewFrameClock(time.Now()),
	}
}

// ViewportSize is the virtual pixel size of the screen.
func (h *Host) ViewportSize() (int, int) {
	return h.cols * CellWidth, h.rows * CellHeight
}

func (h *Host) AcquireCanvas() (nebula.Canvas, error) {
	if h.cols <= 0 || h.rows <= 0 {
		return nil, nebula.ErrNoCanvas
	}
	return h.canvas, nil
}

// Run presents frames at the configured rate until the user quits, the screen
// closes or ctx is cancelled. stats feeds the status line and may be nil.
func (h *Host) Run(ctx context.Context, stats func() nebula.Stats) error {
	h.events = make(chan tcell.Event, 64)
	h.quit = make(chan struct{})

	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.HideCursor()

	go h.poll()
	defer h.stop()

	ticker := time.NewTicker(time.Second / time.Duration(h.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-h.events:
			if !ok {
				return nil
			}
			if h.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.RunFrame()
			h.Present(stats)
		}
	}
}

// poll forwards screen events to the main loop. It exits once the screen is
// finalized.
func (h *Host) poll() {
	defer close(h.events)
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case h.events <- ev:
		case <-h.quit:
			return
		}
	}
}

func (h *Host) stop() {
	close(h.quit)
	h.screen.Fini()
	for range h.events {
	}
}

// HandleEvent applies one screen event and reports whether the user asked to
// quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'd', ev.Key() == tcell.KeyF8:
			utils.ShowDebugUI = !utils.ShowDebugUI
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		h.EmitPointerMove(float64(x*CellWidth+CellWidth/2), float64(y*CellHeight+CellHeight/2))

	case *tcell.EventResize:
		cols, rows := ev.Size()
		if cols == h.cols && rows == h.rows {
			return false
		}
		h.cols, h.rows = cols, rows
		h.screen.Sync()
		h.EmitResize(h.ViewportSize())
	}
	return false
}

// Present copies the canvas to the screen.
func (h *Host) Present(stats func() nebula.Stats) {
	h.clock.Tick(time.Now())

	img := h.canvas.Image()
	b := img.Bounds()
	for cy := 0; cy < h.rows; cy++ {
		for cx := 0; cx < h.cols; cx++ {
			x0, y0 := cx*CellWidth, cy*CellHeight
			if x0+CellWidth > b.Dx() || y0+CellHeight > b.Dy() {
				// The canvas catches up with a resize on the next frame.
				continue
			}
			top := averageBlock(img, x0, y0, CellWidth, CellHeight/2)
			bottom := averageBlock(img, x0, y0+CellHeight/2, CellWidth, CellHeight/2)
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			h.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}

	if utils.ShowDebugUI && stats != nil {
		h.drawStatus(stats())
	}
	h.screen.Show()
}

func (h *Host) drawStatus(st nebula.Stats) {
	line := fmt.Sprintf(" frame %d | particles %d | trail %d | %dx%d | %.1f fps | q quit ",
		st.Frame, st.Particles, st.TrailLen, st.Width, st.Height, h.clock.FPS())
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	row := h.rows - 1
	for i, r := range []rune(line) {
		if i >= h.cols {
			break
		}
		h.screen.SetContent(i, row, r, nil, style)
	}
}
