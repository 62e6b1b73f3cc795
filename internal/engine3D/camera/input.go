package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// InputState is one frame of device input in window pixels.
type InputState struct {
	Pointer mgl32.Vec2
	Left    bool
	Middle  bool
	Right   bool
	Wheel   float32
	// Keys is indexed by Direction.
	Keys    [4]bool
	Touches []mgl32.Vec2
}

// Gestures turns consecutive input frames into rig operations: left drag
// rotates, middle drag dollies, right drag pans, the wheel dollies, one finger
// rotates and two fingers pinch to dolly while their midpoint pans.
type Gestures struct {
	last     mgl32.Vec2
	dragging bool
	touches  []mgl32.Vec2
}

// Apply feeds one frame into c. height is the viewport height in pixels.
func (g *Gestures) Apply(c *OrbitControls, in InputState, height float32) {
	pressed := in.Left || in.Middle || in.Right
	var delta mgl32.Vec2
	if pressed && g.dragging {
		delta = in.Pointer.Sub(g.last)
	}
	g.dragging = pressed
	g.last = in.Pointer

	switch {
	case in.Left:
		c.Rotate(delta.X(), delta.Y(), height)
	case in.Middle:
		if delta.Y() > 0 {
			c.Dolly(-1)
		} else if delta.Y() < 0 {
			c.Dolly(1)
		}
	case in.Right:
		c.Pan(delta.X(), delta.Y(), height)
	}

	if in.Wheel != 0 {
		c.Dolly(in.Wheel)
	}

	for dir, down := range in.Keys {
		if down {
			c.PanKey(Direction(dir), height)
		}
	}

	g.applyTouches(c, in.Touches, height)
}

func (g *Gestures) applyTouches(c *OrbitControls, touches []mgl32.Vec2, height float32) {
	prev := g.touches
	g.touches = append([]mgl32.Vec2(nil), touches...)
	if len(prev) != len(touches) {
		return
	}

	switch len(touches) {
	case 1:
		d := touches[0].Sub(prev[0])
		c.Rotate(d.X(), d.Y(), height)
	case 2:
		before := prev[1].Sub(prev[0]).Len()
		after := touches[1].Sub(touches[0]).Len()
		if before > epsilon && after > epsilon {
			c.Dolly(float32(math.Log(float64(before/after)) / math.Log(0.95)))
		}
		center := touches[0].Add(touches[1]).Mul(0.5)
		prevCenter := prev[0].Add(prev[1]).Mul(0.5)
		d := center.Sub(prevCenter)
		c.Pan(d.X(), d.Y(), height)
	}
}
