package shader

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessDefinesAndIncludes(t *testing.T) {
	includes := fstest.MapFS{
		"glsl/a.glsl": {Data: []byte("float a() { return 1.0; }\n#include \"b.glsl\"")},
		"glsl/b.glsl": {Data: []byte("float b() { return 2.0; }")},
	}
	src := "#version 100\n#include \"a.glsl\"\n#include \"b.glsl\"\n  #include \"a.glsl\"\nvoid main() {}"

	out, err := Preprocess(src, map[string]int{"ZED": 2, "PCF_RADIUS": 2, "ALPHA": 0}, includes)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "#version 330", lines[0])
	assert.Equal(t, []string{"#define ALPHA 0", "#define PCF_RADIUS 2", "#define ZED 2"}, lines[1:4])
	assert.Equal(t, 1, strings.Count(out, "float a()"))
	assert.Equal(t, 1, strings.Count(out, "float b()"))
	assert.Equal(t, 1, strings.Count(out, "#version"))
	assert.NotContains(t, out, "#include")
	assert.Less(t, strings.Index(out, "float b()"), strings.Index(out, "void main"))
}

func TestPreprocessMissingInclude(t *testing.T) {
	_, err := Preprocess("#include \"nope.glsl\"", nil, fstest.MapFS{})
	assert.ErrorContains(t, err, "nope.glsl")

	_, err = Preprocess("#include \"nope.glsl\"", nil, nil)
	assert.ErrorContains(t, err, "no include source")
}

func TestLoadEmbeddedPrograms(t *testing.T) {
	for _, p := range []Program{LitProgram, DepthProgram} {
		vs, fs, err := Load(p, nil)
		require.NoError(t, err, p.Vertex)
		assert.True(t, strings.HasPrefix(vs, "#version 330\n"))
		assert.Contains(t, vs, "void main()")
		assert.Contains(t, fs, "#define PCF_RADIUS 1")
		assert.Contains(t, fs, "vec4 packDepth(float depth)")
		assert.NotContains(t, fs, "#include")
	}

	_, fs, err := Load(LitProgram, nil)
	require.NoError(t, err)
	for _, name := range []string{UniformAmbient, UniformLightDir, UniformLightColor, UniformSky,
		UniformGround, UniformEmissive, UniformReceiveShadow, UniformLightVP, UniformShadowMap, UniformShadowTexel} {
		assert.Contains(t, fs, "uniform", name)
		assert.Contains(t, fs, " "+name+";", name)
	}

	_, err = Source("missing.fs", nil)
	assert.Error(t, err)
}

func TestLightingUniforms(t *testing.T) {
	white := mgl32.Vec4{1, 1, 1, 1}
	l := Lighting{
		Ambient:     Light{Color: white, Intensity: 0.5},
		Directional: Light{Color: white, Intensity: 0.5},
		Position:    mgl32.Vec3{1, 750, 1},
		Sky:         Light{Color: mgl32.Vec4{0, 0, 0, 1}, Intensity: 0.5},
		Ground:      Light{Color: mgl32.Vec4{0, 0, 0, 1}, Intensity: 0.5},
		ShadowSize:  2048,
	}

	u := l.Vec3Uniforms()
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, u[UniformAmbient])
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, u[UniformLightColor])
	assert.Equal(t, mgl32.Vec3{}, u[UniformSky])
	assert.InDelta(t, 1, u[UniformLightDir].Len(), 1e-6)
	assert.Greater(t, u[UniformLightDir].Y(), float32(0.99))
	assert.Equal(t, float32(1.0/2048), l.ShadowTexel())

	assert.Equal(t, mgl32.Vec3{0, 1, 0}, Lighting{}.Direction())
	assert.Zero(t, Lighting{}.ShadowTexel())
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0}, Emissive(mgl32.Vec4{1, 1, 0, 1}, 0.5))
}
