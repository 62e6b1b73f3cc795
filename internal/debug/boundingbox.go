package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"winterroom/internal/engine3D"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	boxSceneColor    = rl.NewColor(0, 255, 0, 255)
	boxSelectedColor = rl.NewColor(255, 255, 0, 255)
	boxHiddenColor   = rl.NewColor(0, 255, 255, 100)
)

func (d *DebugOverlay) getBoundingBoxToggleRect() rl.Rectangle {
	return rl.NewRectangle(10, float32(d.tabHeight+5), float32(d.sidebarWidth-20), float32(d.fontHeight+10))
}

func (d *DebugOverlay) drawBoundingBoxToggle() {
	rect := d.getBoundingBoxToggleRect()

	boxSize := int32(float64(d.fontHeight) * 1.2)
	boxX := int32(rect.X)
	boxY := int32(rect.Y) + (int32(rect.Height)-boxSize)/2

	rl.DrawRectangleLines(boxX, boxY, boxSize, boxSize, rl.White)
	if d.ShowBoundingBoxes {
		rl.DrawRectangle(boxX+2, boxY+2, boxSize-4, boxSize-4, rl.White)
	}
	d.DrawText("Show Bounding Boxes", boxX+boxSize+10, boxY, int32(d.fontHeight), rl.White)
}

// objectBounds is the world-space box around every part of obj.
func objectBounds(obj *engine3D.RenderObject) (rl.BoundingBox, bool) {
	var lo, hi mgl32.Vec3
	found := false
	for i := range obj.Parts {
		local := rl.GetModelBoundingBox(obj.Parts[i].Model)
		pmin, pmax := obj.Prop.Transform.Bounds(
			mgl32.Vec3{local.Min.X, local.Min.Y, local.Min.Z},
			mgl32.Vec3{local.Max.X, local.Max.Y, local.Max.Z},
		)
		if !found {
			lo, hi, found = pmin, pmax, true
			continue
		}
		for axis := 0; axis < 3; axis++ {
			lo[axis] = min(lo[axis], pmin[axis])
			hi[axis] = max(hi[axis], pmax[axis])
		}
	}
	return rl.BoundingBox{Min: engine3D.Vec3(lo), Max: engine3D.Vec3(hi)}, found
}

func (d *DebugOverlay) drawSelectedBoundingBox(obj *engine3D.RenderObject) {
	if box, ok := objectBounds(obj); ok {
		rl.DrawBoundingBox(box, boxSelectedColor)
	}
}

func (d *DebugOverlay) drawSceneBoundingBoxes(objects []engine3D.RenderObject) {
	for i := range objects {
		if i == d.SelectedObjectIndex {
			continue
		}
		obj := &objects[i]
		col := boxSceneColor
		if !obj.Visible {
			col = boxHiddenColor
		}
		if box, ok := objectBounds(obj); ok {
			rl.DrawBoundingBox(box, col)
		}
	}
}
