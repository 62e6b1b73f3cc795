package engine3D

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"winterroom/internal/engine3D/shader"
	"winterroom/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// The light camera sits this far from the origin along the light direction.
// The depth range is kept short so 8-bit packed depth stays precise.
const (
	shadowDistance = 200
	shadowNear     = 1
	shadowFar      = 400
)

// Lighting owns the lit shader, the depth shader and the shadow map.
type Lighting struct {
	Config shader.Lighting
	// Half extent of the orthographic shadow frustum.
	Extent float32

	Lit       rl.Shader
	Depth     rl.Shader
	ShadowMap rl.RenderTexture2D

	locs    map[string]int32
	lightVP rl.Matrix
	shadows bool
}

func loadProgram(p shader.Program, required string) (rl.Shader, error) {
	vs, fs, err := shader.Load(p, nil)
	if err != nil {
		return rl.Shader{}, err
	}

	sh := rl.LoadShaderFromMemory(vs, fs)
	if !rl.IsShaderValid(sh) {
		return rl.Shader{}, fmt.Errorf("shader %s/%s failed to compile", p.Vertex, p.Fragment)
	}
	// raylib falls back to its default shader when compilation fails.
	if required != "" && rl.GetShaderLocation(sh, required) < 0 {
		rl.UnloadShader(sh)
		return rl.Shader{}, fmt.Errorf("shader %s/%s failed to compile", p.Vertex, p.Fragment)
	}
	return sh, nil
}

// NewLighting compiles the shaders and allocates the shadow map when the
// directional light casts shadows.
func NewLighting(cfg shader.Lighting, extent float32) (*Lighting, error) {
	lit, err := loadProgram(shader.LitProgram, shader.UniformLightDir)
	if err != nil {
		return nil, err
	}

	l := &Lighting{
		Config: cfg,
		Extent: extent,
		Lit:    lit,
		locs:   make(map[string]int32),
	}
	for _, name := range []string{
		shader.UniformAmbient, shader.UniformLightDir, shader.UniformLightColor,
		shader.UniformSky, shader.UniformGround, shader.UniformEmissive,
		shader.UniformReceiveShadow, shader.UniformLightVP, shader.UniformShadowMap,
		shader.UniformShadowTexel,
	} {
		l.locs[name] = rl.GetShaderLocation(lit, name)
	}
	// The shadow map rides in the BRDF material slot.
	lit.UpdateLocation(rl.ShaderLocMapBrdf, l.locs[shader.UniformShadowMap])

	if cfg.CastShadow && cfg.ShadowSize > 0 {
		depth, err := loadProgram(shader.DepthProgram, "")
		if err != nil {
			utils.Warn("Shadows disabled: %v", err)
		} else {
			l.Depth = depth
			l.ShadowMap = rl.LoadRenderTexture(int32(cfg.ShadowSize), int32(cfg.ShadowSize))
			l.shadows = rl.IsRenderTextureValid(l.ShadowMap)
			if !l.shadows {
				utils.Warn("Shadows disabled: could not allocate a %dpx shadow map", cfg.ShadowSize)
			}
		}
	}

	utils.Info("Lighting ready (shadows: %v)", l.shadows)
	return l, nil
}

func (l *Lighting) Shadows() bool {
	return l.shadows
}

// lightCamera looks at the origin from the light position. Up falls back to -Z
// when the light is close to vertical.
func (l *Lighting) lightCamera() rl.Camera3D {
	dir := l.Config.Direction()
	up := mgl32.Vec3{0, 1, 0}
	if math.Abs(float64(dir.Y())) > 0.99 {
		up = mgl32.Vec3{0, 0, -1}
	}
	return rl.Camera3D{
		Position:   Vec3(dir.Mul(shadowDistance)),
		Up:         Vec3(up),
		Fovy:       2 * l.Extent,
		Projection: rl.CameraOrthographic,
	}
}

// BeginShadowPass starts rendering depth from the light into the shadow map
// and captures the light view-projection for the lit pass.
func (l *Lighting) BeginShadowPass() {
	rl.BeginTextureMode(l.ShadowMap)
	rl.ClearBackground(rl.White)
	rl.SetClipPlanes(shadowNear, shadowFar)
	rl.BeginMode3D(l.lightCamera())
	l.lightVP = rl.MatrixMultiply(rl.GetMatrixModelview(), rl.GetMatrixProjection())
}

func (l *Lighting) EndShadowPass() {
	rl.EndMode3D()
	rl.EndTextureMode()
}

// Apply uploads the per-frame uniforms.
func (l *Lighting) Apply() {
	for name, v := range l.Config.Vec3Uniforms() {
		rl.SetShaderValue(l.Lit, l.locs[name], vec3Slice(v), rl.ShaderUniformVec3)
	}
	rl.SetShaderValueMatrix(l.Lit, l.locs[shader.UniformLightVP], l.lightVP)
	rl.SetShaderValue(l.Lit, l.locs[shader.UniformShadowTexel], []float32{l.Config.ShadowTexel()}, rl.ShaderUniformFloat)
}

// SetSurface uploads the per-draw uniforms.
func (l *Lighting) SetSurface(emissive mgl32.Vec3, receiveShadow bool) {
	receive := float32(0)
	if receiveShadow && l.shadows {
		receive = 1
	}
	rl.SetShaderValue(l.Lit, l.locs[shader.UniformEmissive], vec3Slice(emissive), rl.ShaderUniformVec3)
	rl.SetShaderValue(l.Lit, l.locs[shader.UniformReceiveShadow], []float32{receive}, rl.ShaderUniformFloat)
}

// Bind switches a material to the lit shader with the shadow map attached.
func (l *Lighting) Bind(mat *rl.Material) {
	mat.Shader = l.Lit
	if l.shadows {
		mat.GetMap(rl.MapBrdf).Texture = l.ShadowMap.Texture
	}
}

// BindDepth switches a material to the depth shader. The shadow map is
// detached so it is never sampled while being rendered to.
func (l *Lighting) BindDepth(mat *rl.Material) {
	mat.Shader = l.Depth
	mat.GetMap(rl.MapBrdf).Texture = rl.Texture2D{}
}

func (l *Lighting) Unload() {
	rl.UnloadShader(l.Lit)
	if l.Depth.ID != 0 {
		rl.UnloadShader(l.Depth)
	}
	if l.ShadowMap.ID != 0 {
		rl.UnloadRenderTexture(l.ShadowMap)
	}
}
