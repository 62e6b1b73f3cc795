package shader

import "github.com/go-gl/mathgl/mgl32"

// Uniform names of the lighting program.
const (
	UniformAmbient       = "ambientColor"
	UniformLightDir      = "lightDir"
	UniformLightColor    = "lightColor"
	UniformSky           = "skyColor"
	UniformGround        = "groundColor"
	UniformEmissive      = "emissiveColor"
	UniformReceiveShadow = "receiveShadow"
	UniformLightVP       = "lightVP"
	UniformShadowMap     = "shadowMap"
	UniformShadowTexel   = "shadowTexel"
)

// Light is a color scaled by an intensity.
type Light struct {
	Color     mgl32.Vec4
	Intensity float32
}

// Radiance is the light color premultiplied by its intensity.
func (l Light) Radiance() mgl32.Vec3 {
	return l.Color.Vec3().Mul(l.Intensity)
}

// Lighting is the fixed light rig of the scene: one ambient, one directional
// and one hemisphere light.
type Lighting struct {
	Ambient     Light
	Directional Light
	// Position of the directional light; it shines toward the origin.
	Position   mgl32.Vec3
	Sky        Light
	Ground     Light
	CastShadow bool
	ShadowSize int
}

// Direction is the unit vector from a surface toward the directional light.
func (l Lighting) Direction() mgl32.Vec3 {
	if l.Position.Len() < 1e-6 {
		return mgl32.Vec3{0, 1, 0}
	}
	return l.Position.Normalize()
}

// Vec3Uniforms returns the per-frame vec3 uniforms keyed by name.
func (l Lighting) Vec3Uniforms() map[string]mgl32.Vec3 {
	return map[string]mgl32.Vec3{
		UniformAmbient:    l.Ambient.Radiance(),
		UniformLightDir:   l.Direction(),
		UniformLightColor: l.Directional.Radiance(),
		UniformSky:        l.Sky.Radiance(),
		UniformGround:     l.Ground.Radiance(),
	}
}

// ShadowTexel is the UV size of one shadow map texel, the PCF tap spacing.
func (l Lighting) ShadowTexel() float32 {
	if l.ShadowSize <= 0 {
		return 0
	}
	return 1 / float32(l.ShadowSize)
}

// Emissive returns the additive emissive term of a material.
func Emissive(color mgl32.Vec4, intensity float32) mgl32.Vec3 {
	return color.Vec3().Mul(intensity)
}
