package nebula

// TrailPoint is a recorded pointer position with its remaining life in [0,1].
type TrailPoint struct {
	Pos  Vec2
	Life float64
}

// Trail is a bounded, decaying history of pointer positions, oldest first.
type Trail struct {
	points   []TrailPoint
	capacity int
	decay    float64
}

func NewTrail(capacity int, decay float64) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{
		points:   make([]TrailPoint, 0, capacity),
		capacity: capacity,
		decay:    decay,
	}
}

// Push records a fresh point, dropping the oldest one when the trail is full.
func (t *Trail) Push(pos Vec2) {
	if len(t.points) == t.capacity {
		copy(t.points, t.points[1:])
		t.points = t.points[:len(t.points)-1]
	}
	t.points = append(t.points, TrailPoint{Pos: pos, Life: 1})
}

// Decay ages every point by one frame and removes the ones whose life ran out.
func (t *Trail) Decay() {
	kept := t.points[:0]
	for _, p := range t.points {
		p.Life -= t.decay
		if p.Life <= 0 {
			continue
		}
		kept = append(kept, p)
	}
	t.points = kept
}

func (t *Trail) Len() int { return len(t.points) }

func (t *Trail) Cap() int { return t.capacity }

// Points returns the live points. The slice is only valid until the next
// Push or Decay.
func (t *Trail) Points() []TrailPoint { return t.points }

func (t *Trail) Reset() { t.points = t.points[:0] }
