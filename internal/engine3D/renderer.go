package engine3D

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"winterroom/internal/config"
	"winterroom/internal/engine3D/particle"
	"winterroom/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var skyColor = rl.NewColor(12, 18, 32, 255)

// FrameStats counts what the last Draw submitted.
type FrameStats struct {
	Objects       int
	Parts         int
	ShadowCasters int
	Snowflakes    int
}

// Renderer draws the room: shadow pass, skybox, ground disc, props, snow and
// the axes helper, in that order.
type Renderer struct {
	Objects  []RenderObject
	Camera   rl.Camera3D
	Near     float64
	Far      float64
	Lighting *Lighting
	Snow     *particle.Field
	ShowAxes bool
	Stats    FrameStats

	assets      *Assets
	world       config.WorldConfig
	skybox      rl.Model
	hasSkybox   bool
	ground      rl.Model
	groundColor rl.Color
	snowTexture rl.Texture2D
	hasSnow     bool
}

// NewRenderer builds the generated geometry. A missing skybox or snowflake
// texture is logged and that layer is skipped.
func NewRenderer(assets *Assets, world config.WorldConfig, lighting *Lighting, snow *particle.Field, snowTexture string) *Renderer {
	r := &Renderer{
		Lighting:    lighting,
		Snow:        snow,
		ShowAxes:    world.AxesSize > 0,
		assets:      assets,
		world:       world,
		groundColor: Color(world.GroundColor),
	}

	if tex, err := assets.Texture(world.SkyboxTexture); err != nil {
		utils.Error("Skybox disabled: %v", err)
	} else {
		r.skybox = rl.LoadModelFromMesh(rl.GenMeshCube(world.SkyboxSize, world.SkyboxSize, world.SkyboxSize))
		rl.SetMaterialTexture(&r.skybox.GetMaterials()[0], rl.MapDiffuse, tex)
		r.hasSkybox = true
	}

	r.ground = rl.LoadModelFromMesh(rl.GenMeshPoly(world.GroundSegments, world.GroundRadius))
	r.ground.Transform = rl.MatrixTranslate(0, world.GroundY, 0)

	if snow != nil && snowTexture != "" {
		if tex, err := assets.Texture(snowTexture); err != nil {
			utils.Error("Snow disabled: %v", err)
		} else {
			r.snowTexture = tex
			r.hasSnow = true
		}
	}

	return r
}

// SetCamera copies the orbit rig state into the raylib camera.
func (r *Renderer) SetCamera(position, target mgl32.Vec3, fovy float32) {
	r.Camera = rl.Camera3D{
		Position:   Vec3(position),
		Target:     Vec3(target),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       fovy,
		Projection: rl.CameraPerspective,
	}
}

func (r *Renderer) Draw() {
	r.Stats = FrameStats{}

	if r.Lighting != nil && r.Lighting.Shadows() {
		r.shadowPass()
	}

	rl.ClearBackground(skyColor)
	rl.SetClipPlanes(r.Near, r.Far)
	rl.BeginMode3D(r.Camera)

	r.drawSkybox()
	if r.Lighting != nil {
		r.Lighting.Apply()
	}
	r.drawGround()
	r.drawObjects(false)
	r.drawObjects(true)
	r.drawSnow()
	r.drawAxes()

	rl.EndMode3D()
}

func (r *Renderer) shadowPass() {
	r.Lighting.BeginShadowPass()
	for i := range r.Objects {
		obj := &r.Objects[i]
		if !obj.Visible || !obj.Prop.CastShadow {
			continue
		}
		for j := range obj.Parts {
			part := &obj.Parts[j]
			if part.Translucent {
				continue
			}
			mats := part.Model.GetMaterials()
			for k := range mats {
				r.Lighting.BindDepth(&mats[k])
			}
			model := part.Model
			model.Transform = obj.Transform
			rl.DrawModel(model, rl.Vector3{}, 1, rl.White)
			r.Stats.ShadowCasters++
		}
	}
	r.Lighting.EndShadowPass()
}

// drawSkybox renders the cube unlit from the inside.
func (r *Renderer) drawSkybox() {
	if !r.hasSkybox {
		return
	}
	rl.DisableBackfaceCulling()
	rl.DrawModel(r.skybox, rl.NewVector3(0, r.world.SkyboxY, 0), 1, rl.White)
	rl.EnableBackfaceCulling()
}

func (r *Renderer) drawGround() {
	mat := &r.ground.GetMaterials()[0]
	if r.Lighting != nil {
		r.Lighting.Bind(mat)
		r.Lighting.SetSurface(mgl32.Vec3{}, true)
	}
	m := mat.GetMap(rl.MapDiffuse)
	m.Texture = r.assets.White()
	m.Color = r.groundColor
	rl.DrawModel(r.ground, rl.Vector3{}, 1, rl.White)
}

// drawObjects draws the opaque parts, or the blended ones without depth writes.
func (r *Renderer) drawObjects(translucent bool) {
	if translucent {
		rl.DrawRenderBatchActive()
		rl.DisableDepthMask()
		defer func() {
			rl.DrawRenderBatchActive()
			rl.EnableDepthMask()
		}()
	}

	for i := range r.Objects {
		obj := &r.Objects[i]
		if !obj.Visible {
			continue
		}
		if !translucent {
			r.Stats.Objects++
		}
		for j := range obj.Parts {
			part := &obj.Parts[j]
			if part.Translucent != translucent {
				continue
			}
			r.drawPart(obj, part)
		}
	}
}

func (r *Renderer) drawPart(obj *RenderObject, part *RenderPart) {
	mats := part.Model.GetMaterials()
	for k := range mats {
		if r.Lighting != nil {
			r.Lighting.Bind(&mats[k])
		}
		m := mats[k].GetMap(rl.MapDiffuse)
		m.Texture = part.Texture
		m.Color = part.Color
	}
	if r.Lighting != nil {
		r.Lighting.SetSurface(part.Emissive, part.ReceiveShadow)
	}

	model := part.Model
	model.Transform = obj.Transform
	rl.DrawModel(model, rl.Vector3{}, 1, rl.White)
	r.Stats.Parts++
}

// snowScale makes a billboard of world size s cover as many pixels as a
// size-attenuated point sprite of size s.
func (r *Renderer) snowScale() float32 {
	return r.Snow.Config.Size * float32(math.Tan(float64(mgl32.DegToRad(r.Camera.Fovy))/2))
}

// drawSnow draws every flake additively over the scene.
func (r *Renderer) drawSnow() {
	if !r.hasSnow {
		return
	}

	size := r.snowScale()
	tint := rl.Fade(rl.White, r.Snow.Config.Opacity)

	rl.DrawRenderBatchActive()
	rl.DisableDepthTest()
	rl.BeginBlendMode(rl.BlendAdditive)
	for i := 0; i < r.Snow.Len(); i++ {
		x, y, z := r.Snow.Position(i)
		rl.DrawBillboard(r.Camera, r.snowTexture, rl.NewVector3(x, y, z), size, tint)
	}
	rl.EndBlendMode()
	rl.EnableDepthTest()
	r.Stats.Snowflakes = r.Snow.Len()
}

func (r *Renderer) drawAxes() {
	if !r.ShowAxes {
		return
	}
	s := r.world.AxesSize
	rl.DrawLine3D(rl.Vector3{}, rl.NewVector3(s, 0, 0), rl.Red)
	rl.DrawLine3D(rl.Vector3{}, rl.NewVector3(0, s, 0), rl.Green)
	rl.DrawLine3D(rl.Vector3{}, rl.NewVector3(0, 0, s), rl.Blue)
}

// Unload frees the generated geometry. Loaded assets belong to Assets.
func (r *Renderer) Unload() {
	if r.hasSkybox {
		rl.UnloadModel(r.skybox)
	}
	rl.UnloadModel(r.ground)
}
