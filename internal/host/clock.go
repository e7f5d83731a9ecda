package host

import "time"

// FrameClock measures frame pacing for overlays and logs. It does not drive
// the animation; the scene advances one step per frame regardless of time.
type FrameClock struct {
	start  time.Time
	last   time.Time
	frames uint64

	// exponential moving average of the frame time, in seconds
	avg float64
}

const clockSmoothing = 0.1

func NewFrameClock(now time.Time) *FrameClock {
	return &FrameClock{start: now, last: now}
}

// Tick records a presented frame and returns the time since the previous one.
func (c *FrameClock) Tick(now time.Time) time.Duration {
	dt := now.Sub(c.last)
	if dt < 0 {
		dt = 0
	}
	c.last = now
	c.frames++

	if c.frames == 1 {
		c.avg = dt.Seconds()
	} else {
		c.avg += (dt.Seconds() - c.avg) * clockSmoothing
	}
	return dt
}

func (c *FrameClock) Frames() uint64 { return c.frames }

func (c *FrameClock) Average() time.Duration {
	return time.Duration(c.avg * float64(time.Second))
}

// FPS is derived from the smoothed frame time.
func (c *FrameClock) FPS() float64 {
	if c.avg <= 0 {
		return 0
	}
	return 1 / c.avg
}

func (c *FrameClock) Uptime(now time.Time) time.Duration {
	return now.Sub(c.start)
}
