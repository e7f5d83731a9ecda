package nebula

// MinDistance is the distance below which a trail point pushes nothing: the
// direction from a point to itself is undefined.
const MinDistance = 1e-9

// Displacement sums the push every trail point exerts on target. Each point
// within Cutoff pushes target directly away from itself with magnitude
// (1 - d/Cutoff) * life * Strength.
func (f Field) Displacement(target Vec2, points []TrailPoint) Vec2 {
	var sum Vec2
	if f.Cutoff <= 0 || f.Strength == 0 {
		return sum
	}

	for _, p := range points {
		away := target.Sub(p.Pos)
		d := away.Len()
		if d >= f.Cutoff || d < MinDistance {
			continue
		}
		magnitude := (1 - d/f.Cutoff) * p.Life * f.Strength
		sum = sum.Add(away.Mul(magnitude / d))
	}
	return sum
}
