package nebula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplacementZeroOutsideCutoff(t *testing.T) {
	field := Field{Cutoff: 200, Strength: 8}
	target := Vec2{X: 500, Y: 500}

	for _, d := range []float64{200, 200.0001, 250, 10000} {
		points := []TrailPoint{{Pos: Vec2{X: 500 - d, Y: 500}, Life: 1}}
		assert.Equal(t, Vec2{}, field.Displacement(target, points), "distance %v", d)
	}
}

func TestDisplacementMaximalNearZero(t *testing.T) {
	field := Field{Cutoff: 200, Strength: 8}
	target := Vec2{X: 100, Y: 100}

	for _, life := range []float64{1, 0.5, 0.015} {
		points := []TrailPoint{{Pos: Vec2{X: 100 - 1e-6, Y: 100}, Life: life}}
		got := field.Displacement(target, points)
		assert.InDelta(t, life*8, got.Len(), 1e-6)
		assert.Greater(t, got.X, 0.0, "pushed away from the trail point")
		assert.InDelta(t, 0, got.Y, 1e-12)
	}
}

func TestDisplacementUndefinedDirectionSkipped(t *testing.T) {
	field := Field{Cutoff: 200, Strength: 8}
	target := Vec2{X: 42, Y: 7}

	got := field.Displacement(target, []TrailPoint{{Pos: target, Life: 1}})

	assert.Equal(t, Vec2{}, got)
}

func TestDisplacementMonotonic(t *testing.T) {
	field := Field{Cutoff: 180, Strength: 12}
	prev := field.Strength + 1

	for d := 0.01; d < field.Cutoff; d += 0.5 {
		points := []TrailPoint{{Pos: Vec2{X: 0, Y: 0}, Life: 1}}
		got := field.Displacement(Vec2{X: d * 0.6, Y: d * 0.8}, points).Len()

		require.InDelta(t, (1-d/field.Cutoff)*field.Strength, got, 1e-9)
		require.Less(t, got, prev, "distance %v", d)
		prev = got
	}
}

func TestDisplacementAccumulates(t *testing.T) {
	field := Field{Cutoff: 100, Strength: 10}
	target := Vec2{X: 50, Y: 50}
	points := []TrailPoint{
		{Pos: Vec2{X: 0, Y: 50}, Life: 1},   // pushes +x by 5
		{Pos: Vec2{X: 50, Y: 100}, Life: 1}, // pushes -y by 5
	}

	got := field.Displacement(target, points)

	assert.InDelta(t, 5, got.X, 1e-9)
	assert.InDelta(t, -5, got.Y, 1e-9)
}

func TestDisplacementDisabledField(t *testing.T) {
	points := []TrailPoint{{Pos: Vec2{X: 1}, Life: 1}}

	assert.Equal(t, Vec2{}, Field{}.Displacement(Vec2{}, points))
	assert.Equal(t, Vec2{}, Field{Cutoff: 100}.Displacement(Vec2{}, points))
}
