package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2_ClampLenPreservesDirection(t *testing.T) {
	v := V(300, 400).ClampLen(100)

	assert.InDelta(t, 100.0, v.Len(), 1e-9)
	assert.InDelta(t, 60.0, v.X, 1e-9)
	assert.InDelta(t, 80.0, v.Y, 1e-9)

	short := V(3, 4)
	assert.Equal(t, short, short.ClampLen(100))
	assert.Equal(t, Vec2{}, Vec2{}.ClampLen(0))
}

func TestVec2_Rotate(t *testing.T) {
	v := V(1, 0).Rotate(math.Pi / 2)
	assert.InDelta(t, 0.0, v.X, 1e-9)
	assert.InDelta(t, 1.0, v.Y, 1e-9)
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(math.Pi, 2)
	assert.InDelta(t, -2.0, v.X, 1e-9)
	assert.InDelta(t, 0.0, v.Y, 1e-9)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}
