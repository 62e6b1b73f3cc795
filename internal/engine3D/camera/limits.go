package camera

import "github.com/go-gl/mathgl/mgl32"

// KeepAboveGround resets a camera that slipped under y = 0 back onto the plane.
func KeepAboveGround(c *OrbitControls) {
	p := c.Position()
	if p.Y() < 0 {
		p[1] = 0
		c.SetPosition(p)
	}
}

// ClampToBox returns a handler that keeps both camera and target inside [min, max].
func ClampToBox(min, max mgl32.Vec3) ChangeFunc {
	return func(c *OrbitControls) {
		c.SetPosition(clampVec(c.Position(), min, max))
		c.SetTarget(clampVec(c.Target(), min, max))
	}
}

func clampVec(v, min, max mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(v[0], min[0], max[0]),
		mgl32.Clamp(v[1], min[1], max[1]),
		mgl32.Clamp(v[2], min[2], max[2]),
	}
}

// NewRoomRig builds the orbit rig with the ground and bounding-box limits installed.
func NewRoomRig(opts Options) *OrbitControls {
	c := NewOrbitControls(opts)
	c.OnChange(KeepAboveGround)
	c.OnChange(ClampToBox(opts.BoundsMin, opts.BoundsMax))
	return c
}
