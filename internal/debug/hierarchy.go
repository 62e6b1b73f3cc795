package debug

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"winterroom/internal/engine3D"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	selectedRowColor = rl.NewColor(60, 60, 100, 255)
	hiddenColor      = rl.NewColor(120, 120, 120, 255)
	dividerColor     = rl.NewColor(100, 100, 100, 255)
)

func (d *DebugOverlay) drawHierarchy(objects []engine3D.RenderObject, startY, maxHeight int) {
	listWidth := d.sidebarWidth / 2

	for i := range objects {
		obj := &objects[i]
		y := startY + i*d.lineHeight - int(d.ScrollOffset)
		if y < startY || y > maxHeight {
			continue
		}

		if i == d.SelectedObjectIndex {
			rl.DrawRectangle(0, int32(y), int32(listWidth), int32(d.lineHeight), selectedRowColor)
		}

		info := fmt.Sprintf("%s (%d)", obj.Prop.Name, len(obj.Parts))
		if obj.Prop.Present {
			info += " [G]"
		}
		col := rl.White
		if !obj.Visible {
			col = hiddenColor
		}
		d.DrawText(info, 10, int32(y+4), int32(d.fontHeight), col)
	}

	rl.DrawLine(int32(listWidth), int32(startY), int32(listWidth), int32(maxHeight), dividerColor)

	if d.SelectedObjectIndex >= 0 && d.SelectedObjectIndex < len(objects) {
		d.drawInspector(&objects[d.SelectedObjectIndex], listWidth+10, startY)
	}
}

func (d *DebugOverlay) drawInspector(obj *engine3D.RenderObject, x, startY int) {
	ui := d.newUI(x, startY-int(d.InspectorScroll))
	ui.KeyWidth = int(90 * d.uiScale)
	t := obj.Prop.Transform

	ui.Header(obj.Prop.Name)
	ui.Separator()

	ui.Vec3Row("Position", t.Position)
	ui.Vec3Row("Scale", t.Scale)
	ui.Vec3Row("Rotation", mgl32.Vec3{mgl32.RadToDeg(t.RotationX), mgl32.RadToDeg(t.RotationY), 0})
	ui.Row("Shadow", "%v", obj.Prop.CastShadow)
	ui.Row("Present", "%v", obj.Prop.Present)

	if ui.Checkbox("Visible", obj.Visible) {
		obj.Visible = !obj.Visible
	}

	ui.Separator()
	ui.Header(fmt.Sprintf("Parts (%d):", len(obj.Parts)))
	for i, part := range obj.Parts {
		src := obj.Prop.Parts[i]
		ui.IndentLabel(part.Name, 5)
		if src.Texture != "" {
			ui.IndentLabel(fmt.Sprintf("Texture: %s (%dx%d)", src.Texture, part.Texture.Width, part.Texture.Height), 15)
		} else {
			ui.IndentLabel(fmt.Sprintf("Color: #%02x%02x%02x a=%d", part.Color.R, part.Color.G, part.Color.B, part.Color.A), 15)
		}
		if part.Emissive != (mgl32.Vec3{}) {
			ui.IndentLabel(fmt.Sprintf("Emissive: (%.2f, %.2f, %.2f)", part.Emissive.X(), part.Emissive.Y(), part.Emissive.Z()), 15)
		}
		if part.Translucent {
			ui.IndentLabel("Blended", 15)
		}
	}
}
