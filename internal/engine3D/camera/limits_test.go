package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestKeepAboveGround(t *testing.T) {
	c := NewOrbitControls(DefaultOptions())
	c.SetPosition(mgl32.Vec3{3, -2, 4})

	KeepAboveGround(c)
	assert.Equal(t, mgl32.Vec3{3, 0, 4}, c.Position())

	c.SetPosition(mgl32.Vec3{3, 2, 4})
	KeepAboveGround(c)
	assert.Equal(t, mgl32.Vec3{3, 2, 4}, c.Position())
}

func TestClampToBox(t *testing.T) {
	opts := DefaultOptions()
	c := NewOrbitControls(opts)
	c.SetPosition(mgl32.Vec3{-100, 50, 12})
	c.SetTarget(mgl32.Vec3{0, 0, 45})

	ClampToBox(opts.BoundsMin, opts.BoundsMax)(c)

	assert.Equal(t, mgl32.Vec3{-40, 30, 12}, c.Position())
	assert.Equal(t, mgl32.Vec3{0, 5, 40}, c.Target())
}

func TestRoomRigClampsOnChange(t *testing.T) {
	opts := DefaultOptions()
	c := NewRoomRig(opts)

	// The initial target sits below the box floor; the first change lifts it.
	c.Rotate(30, 0, viewport)
	assert.True(t, c.Update(0))
	assert.Equal(t, float32(5), c.Target().Y())

	for i := 0; i < 20; i++ {
		c.Rotate(0, -viewport, viewport)
		c.Dolly(-5)
		c.Pan(300, 300, viewport)
		c.Update(1.0 / 60)

		p, tg := c.Position(), c.Target()
		for axis := 0; axis < 3; axis++ {
			assert.GreaterOrEqual(t, p[axis], opts.BoundsMin[axis])
			assert.LessOrEqual(t, p[axis], opts.BoundsMax[axis])
			assert.GreaterOrEqual(t, tg[axis], opts.BoundsMin[axis])
			assert.LessOrEqual(t, tg[axis], opts.BoundsMax[axis])
		}
		assert.GreaterOrEqual(t, p.Y(), float32(0))
	}
}
