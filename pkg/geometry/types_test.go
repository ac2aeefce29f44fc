package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleContains(t *testing.T) {
	c := Circle{Center: Point2D{X: 10, Y: 10}, Radius: 5}

	assert.True(t, c.Contains(Point2D{X: 10, Y: 10}))
	assert.True(t, c.Contains(Point2D{X: 15, Y: 10}), "boundary counts as inside")
	assert.True(t, c.Contains(Point2D{X: 13, Y: 13}))
	assert.False(t, c.Contains(Point2D{X: 14, Y: 14}))
	assert.False(t, c.Contains(Point2D{X: 20, Y: 10}))
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 100, 50)

	assert.True(t, r.Contains(Point2D{X: 50, Y: 25}))
	assert.True(t, r.Contains(Point2D{X: 0, Y: 0}))
	assert.True(t, r.Contains(Point2D{X: 100, Y: 50}))
	assert.False(t, r.Contains(Point2D{X: 101, Y: 25}))
	assert.False(t, r.Contains(Point2D{X: 50, Y: -1}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 100.0, Clamp(150, 0, 100))
	assert.Equal(t, 42.5, Clamp(42.5, 0, 100))
}

func TestAffineInverseRoundTrip(t *testing.T) {
	tr := ScaleTranslate(0.5, 120, 40)
	inv, ok := tr.Inverse()
	require.True(t, ok)

	p := Point2D{X: 333, Y: 77}
	back := inv.Apply(tr.Apply(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestAffineInverseSingular(t *testing.T) {
	_, ok := AffineTransform{}.Inverse()
	assert.False(t, ok)
}

func TestSizeIsZero(t *testing.T) {
	assert.True(t, Size{}.IsZero())
	assert.True(t, NewSize(100, 0).IsZero())
	assert.False(t, NewSize(100, 50).IsZero())
}
