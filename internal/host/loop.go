// Package host holds the pieces every rendering backend shares: a queue of
// "call me before the next present" callbacks and the resize/pointer listener
// registry. Backends embed a Loop and drive it from their own main loop.
package host

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

type frameRequest struct {
	id FrameID
	fn func()
}

type resizeListener struct {
	id int
	fn func(width, height int)
}

type pointerListener struct {
	id int
	fn func(x, y float64)
}

// Loop is not safe for concurrent use. Everything runs on the backend's main
// loop goroutine.
type Loop struct {
	lastFrame FrameID
	frames    []frameRequest
	running   []frameRequest

	lastListener int
	resize       []resizeListener
	pointer      []pointerListener
}

func NewLoop() *Loop {
	return &Loop{}
}

// RequestFrame queues fn to run on the next RunFrame.
func (l *Loop) RequestFrame(fn func()) FrameID {
	l.lastFrame++
	l.frames = append(l.frames, frameRequest{id: l.lastFrame, fn: fn})
	return l.lastFrame
}

// CancelFrame drops a pending request. Unknown or already-run ids are ignored.
func (l *Loop) CancelFrame(id FrameID) {
	for i, req := range l.frames {
		if req.id == id {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
	// Cancelled from inside RunFrame while still waiting in the current batch.
	for i := range l.running {
		if l.running[i].id == id {
			l.running[i].fn = nil
			return
		}
	}
}

// PendingFrames reports how many frame callbacks are waiting.
func (l *Loop) PendingFrames() int {
	n := len(l.frames)
	for _, req := range l.running {
		if req.fn != nil {
			n++
		}
	}
	return n
}

// RunFrame runs the callbacks queued before the call and returns how many ran.
// Callbacks requested while running are deferred to the next RunFrame.
func (l *Loop) RunFrame() int {
	if len(l.frames) == 0 {
		return 0
	}

	l.running = l.frames
	l.frames = nil
	ran := 0

	for i := range l.running {
		fn := l.running[i].fn
		if fn == nil {
			continue
		}
		l.running[i].fn = nil
		fn()
		ran++
	}

	l.running = nil
	return ran
}

// OnResize subscribes fn to viewport resizes. The returned cancel func is
// idempotent.
func (l *Loop) OnResize(fn func(width, height int)) (cancel func()) {
	l.lastListener++
	id := l.lastListener
	l.resize = append(l.resize, resizeListener{id: id, fn: fn})

	return func() {
		for i, ln := range l.resize {
			if ln.id == id {
				l.resize = append(l.resize[:i], l.resize[i+1:]...)
				return
			}
		}
	}
}

// OnPointerMove subscribes fn to pointer movement in surface coordinates.
func (l *Loop) OnPointerMove(fn func(x, y float64)) (cancel func()) {
	l.lastListener++
	id := l.lastListener
	l.pointer = append(l.pointer, pointerListener{id: id, fn: fn})

	return func() {
		for i, ln := range l.pointer {
			if ln.id == id {
				l.pointer = append(l.pointer[:i], l.pointer[i+1:]...)
				return
			}
		}
	}
}

func (l *Loop) EmitResize(width, height int) {
	for _, ln := range append([]resizeListener(nil), l.resize...) {
		ln.fn(width, height)
	}
}

func (l *Loop) EmitPointerMove(x, y float64) {
	for _, ln := range append([]pointerListener(nil), l.pointer...) {
		ln.fn(x, y)
	}
}

// Listeners reports the number of live resize and pointer subscriptions.
func (l *Loop) Listeners() int {
	return len(l.resize) + len(l.pointer)
}
