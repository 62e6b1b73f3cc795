package debug

import (
	"math"
	"os"
	"runtime"
	"time"

	"winterroom/internal/engine3D"
	"winterroom/internal/engine3D/camera"
	"winterroom/internal/engine3D/particle"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type DebugTab int

const (
	TabHierarchy DebugTab = iota
	TabSnow
	TabCamera
	TabPerformance
)

var tabNames = []string{"Hierarchy", "Snow", "Camera", "Performance"}

// Scene is what the overlay inspects. Objects aliases the renderer's slice, so
// visibility toggles apply on the next frame.
type Scene struct {
	Objects  []engine3D.RenderObject
	Renderer *engine3D.Renderer
	Controls *camera.OrbitControls
	Snow     *particle.Field
	Assets   *engine3D.Assets
	Audio    *engine3D.AudioManager
}

type DebugOverlay struct {
	ActiveTab           DebugTab
	ShowBoundingBoxes   bool
	SelectedObjectIndex int
	ScrollOffset        float64
	InspectorScroll     float64

	// UI State
	fontHeight   int
	lineHeight   int
	tabHeight    int
	sidebarWidth int

	// Input State
	prevLeftMouseButton bool
	mouseX              int
	mouseY              int
	clicked             bool

	// Rendering
	uiBuffer          rl.RenderTexture2D
	uiScale           float64
	font              rl.Font
	cachedWidth       int
	cachedHeight      int
	monitorWidth      int
	monitorHeight     int
	bufferInitialized bool

	// Performance Monitoring
	lastUpdateTime time.Time
	frameCount     int
	fps            float64
	memStats       runtime.MemStats
}

var fontPaths = []string{
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
}

func NewDebugOverlay() *DebugOverlay {
	monitor := rl.GetCurrentMonitor()

	d := &DebugOverlay{
		ActiveTab:           TabHierarchy,
		SelectedObjectIndex: -1,
		monitorWidth:        rl.GetMonitorWidth(monitor),
		monitorHeight:       rl.GetMonitorHeight(monitor),
		lastUpdateTime:      time.Now(),
	}

	d.updateLayout()

	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			d.font = rl.LoadFontEx(path, 64, nil, 0)
			rl.SetTextureFilter(d.font.Texture, rl.FilterBilinear)
			break
		}
	}

	return d
}

func (d *DebugOverlay) updateLayout() {
	scale := math.Max(1.0, float64(d.monitorHeight)/1080.0)
	d.fontHeight = int(16 * scale)
	d.lineHeight = int(26 * scale)
	d.tabHeight = int(36 * scale)
	d.sidebarWidth = min(int(560*scale), rl.GetScreenWidth())
	d.uiScale = scale
}

// Captures reports whether the pointer is over the sidebar, where clicks
// belong to the overlay rather than the camera.
func (d *DebugOverlay) Captures(x, y float32) bool {
	return x >= 0 && x < float32(d.sidebarWidth) && y >= 0 && y < float32(rl.GetScreenHeight())
}

func (d *DebugOverlay) contentY() int {
	return d.tabHeight + int(float64(d.tabHeight)*0.75)
}

func (d *DebugOverlay) Update() {
	d.updateLayout()

	d.frameCount++
	now := time.Now()
	if now.Sub(d.lastUpdateTime) >= time.Second {
		d.fps = float64(d.frameCount) / now.Sub(d.lastUpdateTime).Seconds()
		d.frameCount = 0
		d.lastUpdateTime = now
		runtime.ReadMemStats(&d.memStats)
	}

	mPos := rl.GetMousePosition()
	d.mouseX = int(mPos.X)
	d.mouseY = int(mPos.Y)
	x := float64(d.mouseX)
	y := float64(d.mouseY)

	leftPressed := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	d.clicked = leftPressed && !d.prevLeftMouseButton
	d.prevLeftMouseButton = leftPressed

	if d.clicked && y < float64(d.tabHeight) && x < float64(d.sidebarWidth) {
		tabWidth := float64(d.sidebarWidth) / float64(len(tabNames))
		d.ActiveTab = DebugTab(min(int(x/tabWidth), len(tabNames)-1))
	}

	if rl.CheckCollisionPointRec(mPos, d.getBoundingBoxToggleRect()) && d.clicked {
		d.ShowBoundingBoxes = !d.ShowBoundingBoxes
	}

	listTop := float64(d.contentY())
	if d.ActiveTab == TabHierarchy && d.clicked && x < float64(d.sidebarWidth/2) && y > listTop {
		d.SelectedObjectIndex = int((y - listTop + d.ScrollOffset) / float64(d.lineHeight))
	}

	if d.ActiveTab == TabHierarchy && x < float64(d.sidebarWidth) {
		dy := float64(rl.GetMouseWheelMove())
		if x < float64(d.sidebarWidth/2) {
			d.ScrollOffset = math.Max(0, d.ScrollOffset-dy*20)
		} else {
			d.InspectorScroll = math.Max(0, d.InspectorScroll-dy*20)
		}
	}
}

// DrawWorld draws bounding boxes with the scene camera. Call it after the
// renderer, outside any 3D mode.
func (d *DebugOverlay) DrawWorld(s Scene) {
	if d.SelectedObjectIndex >= len(s.Objects) {
		d.SelectedObjectIndex = -1
	}
	if d.SelectedObjectIndex < 0 && !d.ShowBoundingBoxes {
		return
	}

	rl.BeginMode3D(s.Renderer.Camera)
	if d.ShowBoundingBoxes {
		d.drawSceneBoundingBoxes(s.Objects)
	}
	if d.SelectedObjectIndex >= 0 {
		d.drawSelectedBoundingBox(&s.Objects[d.SelectedObjectIndex])
	}
	rl.EndMode3D()
}

func (d *DebugOverlay) Draw(s Scene) {
	sh := rl.GetScreenHeight()

	if !d.bufferInitialized || d.cachedWidth != d.sidebarWidth || d.cachedHeight != sh {
		if d.bufferInitialized {
			rl.UnloadRenderTexture(d.uiBuffer)
		}
		d.uiBuffer = rl.LoadRenderTexture(int32(d.sidebarWidth), int32(sh))
		d.bufferInitialized = true
		d.cachedWidth = d.sidebarWidth
		d.cachedHeight = sh
	}

	rl.BeginTextureMode(d.uiBuffer)
	rl.ClearBackground(rl.Blank)

	rl.DrawRectangle(0, 0, int32(d.sidebarWidth), int32(sh), rl.NewColor(0, 0, 0, 200))

	d.drawTabs()
	d.drawBoundingBoxToggle()

	contentY := d.contentY()
	switch d.ActiveTab {
	case TabHierarchy:
		d.drawHierarchy(s.Objects, contentY, sh)
	case TabSnow:
		d.drawSnow(s.Snow, contentY)
	case TabCamera:
		d.drawCamera(s.Controls, contentY)
	case TabPerformance:
		d.drawPerformance(s, contentY)
	}

	rl.EndTextureMode()

	sourceRec := rl.NewRectangle(0, 0, float32(d.sidebarWidth), -float32(sh))
	destRec := rl.NewRectangle(0, 0, float32(d.sidebarWidth), float32(sh))
	rl.DrawTexturePro(d.uiBuffer.Texture, sourceRec, destRec, rl.NewVector2(0, 0), 0, rl.White)
}

func (d *DebugOverlay) newUI(x, y int) *UIContext {
	return &UIContext{
		X:          x,
		Y:          y,
		LineHeight: d.lineHeight,
		FontHeight: d.fontHeight,
		KeyWidth:   int(150 * d.uiScale),
		Font:       d.font,
		Pointer:    Pointer{X: d.mouseX, Y: d.mouseY, Clicked: d.clicked},
	}
}

func (d *DebugOverlay) drawTabs() {
	tabWidth := d.sidebarWidth / len(tabNames)

	for i, name := range tabNames {
		color := rl.NewColor(100, 100, 100, 255)
		if d.ActiveTab == DebugTab(i) {
			color = rl.NewColor(150, 150, 150, 255)
		}

		x := int32(i * tabWidth)
		rl.DrawRectangle(x, 0, int32(tabWidth), int32(d.tabHeight), color)
		d.DrawText(name, x+10, int32(float64(d.tabHeight)*0.3), int32(d.fontHeight), rl.White)
	}
}

func (d *DebugOverlay) DrawText(text string, x, y int32, fontSize int32, color rl.Color) {
	if d.font.BaseSize > 0 {
		rl.DrawTextEx(d.font, text, rl.NewVector2(float32(x), float32(y)), float32(fontSize), 1, color)
	} else {
		rl.DrawText(text, x, y, fontSize, color)
	}
}

func (d *DebugOverlay) Unload() {
	if d.bufferInitialized {
		rl.UnloadRenderTexture(d.uiBuffer)
		d.bufferInitialized = false
	}
	if d.font.BaseSize > 0 {
		rl.UnloadFont(d.font)
	}
}
