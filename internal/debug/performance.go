package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func (d *DebugOverlay) drawPerformance(s Scene, startY int) {
	ui := d.newUI(10, startY)

	ui.Header("Timing:")
	ui.Row("FPS", "%.1f", d.fps)
	ui.Row("Frame", "%.2f ms", rl.GetFrameTime()*1000)

	monitor := rl.GetCurrentMonitor()
	ui.Row("Refresh", "%d Hz", rl.GetMonitorRefreshRate(monitor))

	ui.Separator()
	ui.Header("Memory:")
	ui.Row("Allocated", "%.2f MB", float64(d.memStats.Alloc)/1024/1024)
	ui.Row("Heap", "%.2f MB", float64(d.memStats.HeapAlloc)/1024/1024)
	ui.Row("Process", "%.2f MB", float64(d.memStats.Sys)/1024/1024)
	ui.Row("GC cycles", "%d", d.memStats.NumGC)

	ui.Separator()
	ui.Header("System:")
	ui.Row("Cores", "%d", runtime.NumCPU())
	ui.Row("Goroutines", "%d", runtime.NumGoroutine())
	ui.Row("Monitor", "%s %dx%d", rl.GetMonitorName(monitor), d.monitorWidth, d.monitorHeight)
	ui.Row("Window", "%dx%d", rl.GetScreenWidth(), rl.GetScreenHeight())
	ui.Row("UI scale", "%.2fx", d.uiScale)

	if r := s.Renderer; r != nil {
		ui.Separator()
		ui.Header("Frame:")
		ui.Row("Objects", "%d", r.Stats.Objects)
		ui.Row("Parts", "%d", r.Stats.Parts)
		ui.Row("Casters", "%d", r.Stats.ShadowCasters)
		ui.Row("Snowflakes", "%d", r.Stats.Snowflakes)
		shadows := "off"
		if r.Lighting != nil && r.Lighting.Shadows() {
			shadows = fmt.Sprintf("%dpx", r.Lighting.ShadowMap.Texture.Width)
		}
		ui.Row("Shadows", "%s", shadows)
	}

	if s.Assets != nil {
		models, textures := s.Assets.Stats()
		ui.Separator()
		ui.Header("Assets:")
		ui.Row("Models", "%d", models)
		ui.Row("Textures", "%d", textures)
	}
	if s.Audio != nil {
		playing := s.Audio.Playing()
		ui.Row("Audio", "%d streams", len(playing))
		for _, path := range playing {
			ui.IndentLabel(path, 20)
		}
	}
}
