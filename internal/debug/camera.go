package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"winterroom/internal/engine3D/camera"
)

func (d *DebugOverlay) drawCamera(c *camera.OrbitControls, startY int) {
	ui := d.newUI(10, startY)

	if c == nil {
		ui.Label("No camera rig")
		return
	}

	ui.Header("Orbit")
	ui.Vec3Row("Position", c.Position())
	ui.Vec3Row("Target", c.Target())
	ui.Row("Distance", "%.2f  [%.0f, %.0f]", c.Radius(), c.MinDistance, c.MaxDistance)
	ui.Row("Polar", "%.1f deg", mgl32.RadToDeg(c.PolarAngle()))
	ui.Row("Azimuth", "%.1f deg", mgl32.RadToDeg(c.Azimuth()))
	ui.Row("Changes", "%d", c.Changes())

	ui.Separator()
	ui.Header("Lens")
	ui.Row("Fovy", "%.0f deg", c.Fovy)
	ui.Row("Clip", "%.1f .. %.0f", c.Near, c.Far)

	ui.Separator()
	ui.Header("Limits")
	ui.Vec3Row("Box min", c.BoundsMin)
	ui.Vec3Row("Box max", c.BoundsMax)

	if ui.Checkbox("Auto rotate", c.AutoRotate) {
		c.AutoRotate = !c.AutoRotate
	}
}
