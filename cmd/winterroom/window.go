package main

import (
	"context"
	"math/rand"
	"time"

	"winterroom/internal/config"
	"winterroom/internal/debug"
	"winterroom/internal/engine3D"
	"winterroom/internal/engine3D/camera"
	"winterroom/internal/engine3D/particle"
	"winterroom/internal/scene"
	"winterroom/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Window struct {
	cfg config.Config
	rng *rand.Rand

	assets   *engine3D.Assets
	lighting *engine3D.Lighting
	renderer *engine3D.Renderer
	snow     *particle.Field
	audio    *engine3D.AudioManager

	controls *camera.OrbitControls
	gestures camera.Gestures
	input    engine3D.InputSource

	debugOverlay *debug.DebugOverlay
	// layouts delivers hot-reloaded scene layouts; nil when not watching.
	layouts <-chan scene.Layout

	lastFrameTime time.Time
	screenWidth   int
	screenHeight  int
}

// NewWindow builds the room. It needs an open raylib window. Optional layers
// (lighting, snow, audio) that fail to load are logged and left out.
func NewWindow(cfg config.Config, layout scene.Layout, rng *rand.Rand) (*Window, error) {
	w := &Window{
		cfg:           cfg,
		rng:           rng,
		assets:        engine3D.NewAssets(),
		controls:      camera.NewRoomRig(cfg.Camera),
		debugOverlay:  debug.NewDebugOverlay(),
		lastFrameTime: time.Now(),
		screenWidth:   rl.GetScreenWidth(),
		screenHeight:  rl.GetScreenHeight(),
	}

	lighting, err := engine3D.NewLighting(cfg.Lights.Lighting(), cfg.Lights.Directional.ShadowExtent)
	if err != nil {
		utils.Error("Lighting disabled: %v", err)
	} else {
		w.lighting = lighting
	}

	snowTexture := ""
	if cfg.Snow.Count > 0 {
		snow, err := particle.NewField(cfg.Snow, rng)
		if err != nil {
			return nil, err
		}
		w.snow = snow
		snowTexture = particle.PickTexture(cfg.Snow, rng)
		utils.Info("Snow: %d flakes using %s", snow.Len(), snowTexture)
	}

	w.renderer = engine3D.NewRenderer(w.assets, cfg.World, w.lighting, w.snow, snowTexture)
	w.renderer.Near = cfg.Camera.Near
	w.renderer.Far = cfg.Camera.Far
	w.renderer.SetCamera(w.controls.Position(), w.controls.Target(), w.controls.Fovy)

	if cfg.Wallpaper {
		w.input = &engine3D.DesktopInput{}
	} else {
		w.input = engine3D.WindowInput{}
	}

	if cfg.Audio.Enabled {
		w.audio = engine3D.NewAudioManager()
		if err := w.audio.Play(cfg.Audio.Path, cfg.Audio.Volume, true); err != nil {
			utils.Warn("Ambient sound disabled: %v", err)
		}
	}

	w.loadProps(layout)
	return w, nil
}

// Run drives the render loop until the window closes or ctx is cancelled.
func (w *Window) Run(ctx context.Context) {
	rl.SetTargetFPS(int32(w.cfg.Window.FPS))

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			utils.Info("Shutting down: %v", context.Cause(ctx))
			return
		}

		w.Update()

		rl.BeginDrawing()
		w.Draw()
		rl.EndDrawing()
	}
}

func (w *Window) Update() {
	currentTime := time.Now()
	deltaTime := currentTime.Sub(w.lastFrameTime).Seconds()
	w.lastFrameTime = currentTime

	select {
	case layout, ok := <-w.layouts:
		if !ok {
			w.layouts = nil
			break
		}
		w.loadProps(layout)
	default:
	}

	if w.snow != nil {
		w.snow.Update()
	}

	in := w.input.Sample()
	if !utils.ShowDebugUI || !w.debugOverlay.Captures(in.Pointer.X(), in.Pointer.Y()) {
		w.gestures.Apply(w.controls, in, float32(rl.GetScreenHeight()))
	}
	if w.controls.Update(float32(deltaTime)) {
		utils.Debug("Camera moved to (%.2f, %.2f, %.2f)", w.controls.Position().X(), w.controls.Position().Y(), w.controls.Position().Z())
	}
	w.renderer.SetCamera(w.controls.Position(), w.controls.Target(), w.controls.Fovy)

	if w.audio != nil {
		w.audio.Update()
	}

	if rl.IsKeyPressed(rl.KeyF8) {
		utils.ShowDebugUI = !utils.ShowDebugUI
	}

	if sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight(); sw != w.screenWidth || sh != w.screenHeight {
		w.screenWidth, w.screenHeight = sw, sh
		utils.Info("Window resized to %dx%d", sw, sh)
	}

	if utils.ShowDebugUI {
		w.debugOverlay.Update()
	}
}

func (w *Window) debugScene() debug.Scene {
	return debug.Scene{
		Objects:  w.renderer.Objects,
		Renderer: w.renderer,
		Controls: w.controls,
		Snow:     w.snow,
		Assets:   w.assets,
		Audio:    w.audio,
	}
}

func (w *Window) Draw() {
	w.renderer.Draw()

	if utils.ShowDebugUI {
		s := w.debugScene()
		w.debugOverlay.DrawWorld(s)
		w.debugOverlay.Draw(s)
	}
}

// Close releases GPU resources and devices. Call it before closing the window.
func (w *Window) Close() {
	w.debugOverlay.Unload()
	w.renderer.Unload()
	if w.lighting != nil {
		w.lighting.Unload()
	}
	w.assets.Unload()
	if w.audio != nil {
		w.audio.Close()
	}
	if d, ok := w.input.(*engine3D.DesktopInput); ok {
		d.Close()
	}
}
