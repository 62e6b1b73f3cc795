package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewport = 720

func TestNewOrbitControlsDerivesSpherical(t *testing.T) {
	c := NewOrbitControls(DefaultOptions())

	assert.InDelta(t, math.Sqrt(1800), c.Radius(), 1e-4)
	assert.InDelta(t, math.Pi/4, c.PolarAngle(), 1e-5)
	assert.InDelta(t, 0, c.Azimuth(), 1e-6)
	assert.Equal(t, mgl32.Vec3{0, 30, 30}, c.Position())
}

func TestUpdateWithoutInputDoesNotMove(t *testing.T) {
	c := NewOrbitControls(DefaultOptions())
	called := 0
	c.OnChange(func(*OrbitControls) { called++ })

	assert.False(t, c.Update(1.0/60))
	assert.Zero(t, called)
	assert.Zero(t, c.Changes())
}

func TestRotateRespectsPolarLimit(t *testing.T) {
	c := NewOrbitControls(DefaultOptions())

	// Dragging up far past the horizon stops at MaxPolarAngle (pi/2).
	c.Rotate(0, -10*viewport, viewport)
	require.True(t, c.Update(0))
	assert.InDelta(t, math.Pi/2, c.PolarAngle(), 1e-5)
	assert.InDelta(t, 0, c.Position().Y(), 1e-3)

	// Dragging down stops just short of straight overhead.
	c.Rotate(0, 10*viewport, viewport)
	c.Update(0)
	assert.InDelta(t, 0, c.PolarAngle(), 1e-5)
	assert.InDelta(t, c.Radius(), c.Position().Y(), 1e-3)
}

func TestRotateHorizontalKeepsRadius(t *testing.T) {
	c := NewOrbitControls(DefaultOptions())
	r := c.Radius()

	c.Rotate(viewport/4, 0, viewport)
	require.True(t, c.Update(0))

	assert.InDelta(t, r, c.Position().Sub(c.Target()).Len(), 1e-3)
	assert.InDelta(t, -2*math.Pi*0.25*0.1, c.Azimuth(), 1e-5)
}

func TestDollyClampsDistance(t *testing.T) {
	c := NewOrbitControls(DefaultOptions())

	c.Dolly(500)
	c.Update(0)
	assert.InDelta(t, 1, c.Radius(), 1e-4)

	c.Dolly(-500)
	c.Update(0)
	assert.InDelta(t, 50, c.Radius(), 1e-3)

	c.Dolly(1)
	c.Update(0)
	assert.InDelta(t, 50*0.95, c.Radius(), 1e-3)
}

func TestPanMovesCameraAndTargetTogether(t *testing.T) {
	c := NewOrbitControls(DefaultOptions())
	offset := c.Position().Sub(c.Target())

	c.Pan(120, 0, viewport)
	require.True(t, c.Update(0))

	assert.NotEqual(t, mgl32.Vec3{}, c.Target())
	assert.InDelta(t, 0, c.Target().Y(), 1e-4, "horizontal drag keeps target height")
	assert.True(t, c.Target().X() < 0, "dragging right moves the scene right, the target left")
	got := c.Position().Sub(c.Target())
	assert.True(t, got.ApproxEqualThreshold(offset, 1e-3))
}

func TestPanKeyDirections(t *testing.T) {
	c := NewOrbitControls(DefaultOptions())
	c.PanKey(PanRight, viewport)
	c.Update(0)
	assert.True(t, c.Target().X() > 0)

	c = NewOrbitControls(DefaultOptions())
	c.PanKey(PanUp, viewport)
	c.Update(0)
	assert.True(t, c.Target().Y() > 0)
}

func TestAutoRotate(t *testing.T) {
	opts := DefaultOptions()
	opts.AutoRotate = true
	c := NewOrbitControls(opts)

	require.True(t, c.Update(1))
	assert.InDelta(t, -2*math.Pi/60*5, c.Azimuth(), 1e-5)
}

func TestChangeHandlersRunInOrder(t *testing.T) {
	c := NewOrbitControls(DefaultOptions())
	var order []string
	c.OnChange(func(*OrbitControls) { order = append(order, "first") })
	c.OnChange(func(*OrbitControls) { order = append(order, "second") })

	c.Rotate(10, 0, viewport)
	c.Update(0)

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, uint64(1), c.Changes())
}
