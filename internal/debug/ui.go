package debug

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	headerColor = rl.NewColor(255, 220, 120, 255)
	keyColor    = rl.NewColor(170, 170, 190, 255)
	boxColor    = rl.NewColor(150, 150, 150, 255)
	checkColor  = rl.NewColor(100, 255, 100, 255)
)

// Pointer is the mouse state widgets hit-test against.
type Pointer struct {
	X, Y    int
	Clicked bool
}

func (p Pointer) in(rec rl.Rectangle) bool {
	return rl.CheckCollisionPointRec(rl.NewVector2(float32(p.X), float32(p.Y)), rec)
}

// UIContext lays out one column of immediate-mode widgets top to bottom.
type UIContext struct {
	X, Y       int
	LineHeight int
	FontHeight int
	// KeyWidth is the column where Row values start.
	KeyWidth int
	Font     rl.Font
	Pointer  Pointer
}

func (ui *UIContext) drawText(text string, x, y int32, color rl.Color) {
	if ui.Font.BaseSize > 0 {
		rl.DrawTextEx(ui.Font, text, rl.NewVector2(float32(x), float32(y)), float32(ui.FontHeight), 1, color)
	} else {
		rl.DrawText(text, x, y, int32(ui.FontHeight), color)
	}
}

func (ui *UIContext) textWidth(text string) int {
	if ui.Font.BaseSize > 0 {
		return int(rl.MeasureTextEx(ui.Font, text, float32(ui.FontHeight), 1).X)
	}
	return int(rl.MeasureText(text, int32(ui.FontHeight)))
}

func (ui *UIContext) Label(text string) {
	ui.drawText(text, int32(ui.X), int32(ui.Y), rl.White)
	ui.Y += ui.LineHeight
}

func (ui *UIContext) IndentLabel(text string, indent int) {
	ui.drawText(text, int32(ui.X+indent), int32(ui.Y), rl.White)
	ui.Y += ui.LineHeight
}

func (ui *UIContext) Separator() {
	ui.Y += ui.LineHeight / 2
}

func (ui *UIContext) Header(text string) {
	ui.drawText(text, int32(ui.X), int32(ui.Y), headerColor)
	ui.Y += ui.LineHeight
}

// Row draws a dimmed key and a formatted value in two columns.
func (ui *UIContext) Row(key, format string, args ...any) {
	ui.drawText(key, int32(ui.X+10), int32(ui.Y), keyColor)
	ui.drawText(fmt.Sprintf(format, args...), int32(ui.X+ui.KeyWidth), int32(ui.Y), rl.White)
	ui.Y += ui.LineHeight
}

func (ui *UIContext) Vec3Row(key string, v mgl32.Vec3) {
	ui.Row(key, "(%.2f, %.2f, %.2f)", v.X(), v.Y(), v.Z())
}

// Bar draws a horizontal gauge filled to fraction, clamped to [0, 1].
func (ui *UIContext) Bar(key string, fraction float32, width int) {
	fraction = mgl32.Clamp(fraction, 0, 1)
	h := int32(ui.FontHeight * 3 / 4)
	x := int32(ui.X + ui.KeyWidth)
	y := int32(ui.Y) + (int32(ui.FontHeight)-h)/2

	ui.drawText(key, int32(ui.X+10), int32(ui.Y), keyColor)
	rl.DrawRectangleLines(x, y, int32(width), h, boxColor)
	rl.DrawRectangle(x+1, y+1, int32(float32(width-2)*fraction), h-2, checkColor)
	ui.Y += ui.LineHeight
}

// Checkbox draws a box with a label and reports whether the box or its label
// was clicked this frame.
func (ui *UIContext) Checkbox(label string, checked bool) bool {
	boxSize := int(float64(ui.FontHeight) * 0.8)
	boxX := ui.X + 5
	boxY := ui.Y + 2

	hit := rl.NewRectangle(float32(boxX), float32(boxY), float32(boxSize+5+ui.textWidth(label)), float32(boxSize))
	clicked := ui.Pointer.Clicked && ui.Pointer.in(hit)

	rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxSize), int32(boxSize), boxColor)
	if checked {
		rl.DrawRectangle(int32(boxX+2), int32(boxY+2), int32(boxSize-4), int32(boxSize-4), checkColor)
	}
	ui.drawText(label, int32(boxX+boxSize+5), int32(ui.Y), rl.White)
	ui.Y += ui.LineHeight

	return clicked
}
