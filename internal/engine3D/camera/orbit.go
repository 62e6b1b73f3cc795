package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-6

// Direction is an arrow-key pan direction.
type Direction int

const (
	PanLeft Direction = iota
	PanUp
	PanRight
	PanDown
)

// ChangeFunc runs after every update that moved the camera. Handlers may call
// SetPosition and SetTarget; the spherical state is re-derived on the next update.
type ChangeFunc func(c *OrbitControls)

// Options configures an orbit rig. Angles are radians, speeds are multipliers
// over pixel deltas.
type Options struct {
	Position        mgl32.Vec3 `yaml:"position"`
	Target          mgl32.Vec3 `yaml:"target"`
	Fovy            float32    `yaml:"fovy"`
	Near            float64    `yaml:"near"`
	Far             float64    `yaml:"far"`
	MinPolarAngle   float32    `yaml:"min_polar_angle"`
	MaxPolarAngle   float32    `yaml:"max_polar_angle"`
	MinDistance     float32    `yaml:"min_distance"`
	MaxDistance     float32    `yaml:"max_distance"`
	RotateSpeed     float32    `yaml:"rotate_speed"`
	ZoomSpeed       float32    `yaml:"zoom_speed"`
	PanSpeed        float32    `yaml:"pan_speed"`
	KeyPanSpeed     float32    `yaml:"key_pan_speed"`
	AutoRotate      bool       `yaml:"auto_rotate"`
	AutoRotateSpeed float32    `yaml:"auto_rotate_speed"`
	BoundsMin       mgl32.Vec3 `yaml:"bounds_min"`
	BoundsMax       mgl32.Vec3 `yaml:"bounds_max"`
}

// DefaultOptions is the holiday room rig: looking down on the tree from (0, 30, 30).
func DefaultOptions() Options {
	return Options{
		Position:        mgl32.Vec3{0, 30, 30},
		Target:          mgl32.Vec3{0, 0, 0},
		Fovy:            45,
		Near:            0.1,
		Far:             10000,
		MinPolarAngle:   0,
		MaxPolarAngle:   math.Pi / 2,
		MinDistance:     1,
		MaxDistance:     50,
		RotateSpeed:     0.1,
		ZoomSpeed:       1,
		PanSpeed:        1,
		KeyPanSpeed:     7,
		AutoRotate:      false,
		AutoRotateSpeed: 5,
		BoundsMin:       mgl32.Vec3{-40, 5, -40},
		BoundsMax:       mgl32.Vec3{40, 30, 40},
	}
}

// OrbitControls orbits a camera around a target point. Input methods accumulate
// deltas; Update applies them, enforces the limits and fires change handlers.
type OrbitControls struct {
	Options

	position mgl32.Vec3
	target   mgl32.Vec3

	// Spherical offset from target: phi measured from +Y, theta around Y from +Z.
	radius float32
	phi    float32
	theta  float32

	deltaTheta float32
	deltaPhi   float32
	scale      float32
	panOffset  mgl32.Vec3

	listeners []ChangeFunc
	changes   uint64
}

// NewOrbitControls creates a rig at opts.Position looking at opts.Target.
func NewOrbitControls(opts Options) *OrbitControls {
	c := &OrbitControls{
		Options:  opts,
		position: opts.Position,
		target:   opts.Target,
		scale:    1,
	}
	c.syncSpherical()
	return c
}

// OnChange registers a handler. Handlers run in registration order.
func (c *OrbitControls) OnChange(fn ChangeFunc) {
	c.listeners = append(c.listeners, fn)
}

func (c *OrbitControls) Position() mgl32.Vec3 { return c.position }
func (c *OrbitControls) Target() mgl32.Vec3   { return c.target }
func (c *OrbitControls) Radius() float32      { return c.radius }
func (c *OrbitControls) PolarAngle() float32  { return c.phi }
func (c *OrbitControls) Azimuth() float32     { return c.theta }
func (c *OrbitControls) Changes() uint64      { return c.changes }

func (c *OrbitControls) SetPosition(p mgl32.Vec3) {
	c.position = p
}

func (c *OrbitControls) SetTarget(t mgl32.Vec3) {
	c.target = t
}

// Rotate turns the camera by a pointer drag of (dx, dy) pixels in a viewport
// that is height pixels tall. A drag across the full height is one full turn
// at RotateSpeed 1.
func (c *OrbitControls) Rotate(dx, dy, height float32) {
	if height <= 0 {
		return
	}
	c.deltaTheta -= 2 * math.Pi * dx / height * c.RotateSpeed
	c.deltaPhi -= 2 * math.Pi * dy / height * c.RotateSpeed
}

// Dolly moves toward the target for steps > 0 (wheel up) and away for steps < 0.
func (c *OrbitControls) Dolly(steps float32) {
	if steps == 0 {
		return
	}
	factor := float32(math.Pow(0.95, float64(c.ZoomSpeed)))
	c.scale *= float32(math.Pow(float64(factor), float64(steps)))
}

// Pan slides camera and target together by a pointer drag of (dx, dy) pixels.
// The pan distance is scaled so that the target plane follows the pointer.
func (c *OrbitControls) Pan(dx, dy, height float32) {
	if height <= 0 {
		return
	}
	offset := c.position.Sub(c.target)
	targetDistance := offset.Len() * float32(math.Tan(float64(mgl32.DegToRad(c.Fovy)/2)))

	right, up := c.screenAxes()
	left := right.Mul(-2 * dx * targetDistance / height * c.PanSpeed)
	upward := up.Mul(2 * dy * targetDistance / height * c.PanSpeed)
	c.panOffset = c.panOffset.Add(left).Add(upward)
}

// PanKey pans by KeyPanSpeed pixels in the given direction.
func (c *OrbitControls) PanKey(dir Direction, height float32) {
	switch dir {
	case PanUp:
		c.Pan(0, c.KeyPanSpeed, height)
	case PanDown:
		c.Pan(0, -c.KeyPanSpeed, height)
	case PanLeft:
		c.Pan(c.KeyPanSpeed, 0, height)
	case PanRight:
		c.Pan(-c.KeyPanSpeed, 0, height)
	}
}

// screenAxes returns the camera's right vector and the world-up projected pan axis.
func (c *OrbitControls) screenAxes() (right, up mgl32.Vec3) {
	forward := c.target.Sub(c.position)
	if forward.Len() < epsilon {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	}
	forward = forward.Normalize()
	right = forward.Cross(mgl32.Vec3{0, 1, 0})
	if right.Len() < epsilon {
		// Looking straight down or up: derive right from the azimuth.
		s, co := math.Sincos(float64(c.theta))
		right = mgl32.Vec3{float32(co), 0, float32(-s)}
	}
	right = right.Normalize()
	up = right.Cross(forward).Normalize()
	return right, up
}

// syncSpherical derives radius and angles from position and target.
func (c *OrbitControls) syncSpherical() {
	offset := c.position.Sub(c.target)
	c.radius = offset.Len()
	if c.radius < epsilon {
		c.theta, c.phi = 0, 0
		return
	}
	c.theta = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	c.phi = float32(math.Acos(float64(mgl32.Clamp(offset.Y()/c.radius, -1, 1))))
}

// Update applies pending input and auto-rotation, enforces the polar and
// distance limits and notifies change handlers. It reports whether the camera moved.
func (c *OrbitControls) Update(dt float32) bool {
	before := c.position

	c.syncSpherical()

	if c.AutoRotate {
		c.theta -= 2 * math.Pi / 60 * c.AutoRotateSpeed * dt
	}

	c.theta += c.deltaTheta
	c.phi += c.deltaPhi
	c.phi = mgl32.Clamp(c.phi, c.MinPolarAngle, c.MaxPolarAngle)
	c.phi = mgl32.Clamp(c.phi, epsilon, math.Pi-epsilon)

	c.radius = mgl32.Clamp(c.radius*c.scale, c.MinDistance, c.MaxDistance)

	c.target = c.target.Add(c.panOffset)

	sinPhi, cosPhi := math.Sincos(float64(c.phi))
	sinTheta, cosTheta := math.Sincos(float64(c.theta))
	offset := mgl32.Vec3{
		c.radius * float32(sinPhi*sinTheta),
		c.radius * float32(cosPhi),
		c.radius * float32(sinPhi*cosTheta),
	}
	c.position = c.target.Add(offset)

	c.deltaTheta, c.deltaPhi = 0, 0
	c.scale = 1
	c.panOffset = mgl32.Vec3{}

	if c.position.Sub(before).LenSqr() <= epsilon {
		return false
	}

	c.changes++
	for _, fn := range c.listeners {
		fn(c)
	}
	return true
}
