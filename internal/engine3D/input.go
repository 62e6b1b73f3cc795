package engine3D

import (
	"github.com/go-gl/mathgl/mgl32"

	"winterroom/internal/engine3D/camera"
	"winterroom/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// InputSource samples one frame of camera input.
type InputSource interface {
	Sample() camera.InputState
}

var panKeys = [4]int32{
	camera.PanLeft:  rl.KeyLeft,
	camera.PanUp:    rl.KeyUp,
	camera.PanRight: rl.KeyRight,
	camera.PanDown:  rl.KeyDown,
}

// WindowInput reads mouse, wheel, arrow keys and touch points from raylib.
type WindowInput struct{}

func (WindowInput) Sample() camera.InputState {
	pos := rl.GetMousePosition()
	in := camera.InputState{
		Pointer: mgl32.Vec2{pos.X, pos.Y},
		Left:    rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Middle:  rl.IsMouseButtonDown(rl.MouseButtonMiddle),
		Right:   rl.IsMouseButtonDown(rl.MouseButtonRight),
		Wheel:   rl.GetMouseWheelMove(),
	}
	for dir, key := range panKeys {
		in.Keys[dir] = rl.IsKeyDown(key)
	}
	if n := rl.GetTouchPointCount(); n > 0 {
		in.Touches = make([]mgl32.Vec2, 0, n)
		for i := int32(0); i < n; i++ {
			t := rl.GetTouchPosition(i)
			in.Touches = append(in.Touches, mgl32.Vec2{t.X, t.Y})
		}
	}
	return in
}

// DesktopInput reads the X11 pointer. In wallpaper mode the window sits under
// every other window and never sees input events.
type DesktopInput struct {
	failed bool
}

func (d *DesktopInput) Sample() camera.InputState {
	p, err := utils.GetGlobalPointer()
	if err != nil {
		if !d.failed {
			utils.Warn("Desktop pointer unavailable, camera input disabled: %v", err)
			d.failed = true
		}
		return camera.InputState{}
	}
	d.failed = false
	return camera.InputState{
		Pointer: mgl32.Vec2{float32(p.X), float32(p.Y)},
		Left:    p.Left,
		Middle:  p.Middle,
		Right:   p.Right,
	}
}

// Close releases the X connection.
func (d *DesktopInput) Close() {
	utils.CloseX11()
}
