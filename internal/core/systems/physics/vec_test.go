package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	dir, l := V3(3, 0, 4).Normalize()
	assert.InDelta(t, 5.0, l, 1e-12)
	assert.InDelta(t, 0.6, dir.X, 1e-12)
	assert.InDelta(t, 0.8, dir.Z, 1e-12)

	zero, l := Vec3{}.Normalize()
	assert.True(t, zero.IsZero())
	assert.Zero(t, l)
}

func TestDistances(t *testing.T) {
	a := V3(0, 0, 0)
	b := V3(3, 4, 12)
	assert.InDelta(t, 13.0, a.Dist(b), 1e-12)
	assert.InDelta(t, 5.0, a.Dist2D(b), 1e-12)
}

func TestHeadingAndBearing(t *testing.T) {
	dx, dy := Heading(90)
	assert.InDelta(t, 0.0, dx, 1e-12)
	assert.InDelta(t, 1.0, dy, 1e-12)

	assert.InDelta(t, 45.0, Bearing(V3(0, 0, 0), V3(1, 1, 0)), 1e-12)
	assert.InDelta(t, 180.0, math.Abs(Bearing(V3(0, 0, 0), V3(-1, 0, 0))), 1e-12)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(10, -5, 5))
	assert.Equal(t, -5.0, Clamp(-10, -5, 5))
	assert.Equal(t, 1.0, Clamp(1, -5, 5))
}
