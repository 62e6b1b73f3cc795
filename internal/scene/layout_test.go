package scene

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLayoutIsValid(t *testing.T) {
	layout := DefaultLayout()
	require.NoError(t, layout.Validate())

	names := make([]string, 0, len(layout.Props))
	for _, p := range layout.Props {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"christmas-tree", "star", "chimney", "room", "roof", "glass"}, names)

	star := layout.Props[1]
	assert.Equal(t, mgl32.Vec3{0, 23.5, -0.25}, star.Transform.Position)
	require.NotNil(t, star.Parts[0].Material)
	assert.Equal(t, Hex(0xffff00), star.Parts[0].Material.Emissive)
	assert.Equal(t, float32(0.5), star.Parts[0].Material.EmissiveIntensity)
}

func TestInstantiateAppendsPresents(t *testing.T) {
	layout := DefaultLayout()
	props, err := layout.Instantiate(rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	require.Len(t, props, len(layout.Props)+layout.Presents.Count)

	for i, p := range props {
		assert.Equal(t, i >= len(layout.Props), p.Present, p.Name)
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	layout := Layout{
		Props: []Prop{{
			Name:  "lamp",
			Parts: []Part{{Name: "body", Model: "lamp.obj", Material: &Material{Color: White}}},
		}},
		Presents: PresentConfig{Count: 0, Inner: 1, Outer: 2, MinScale: 1, MaxScale: 1},
	}
	require.NoError(t, layout.Validate())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, layout.Props[0].Transform.Scale)
	assert.Equal(t, float32(1), layout.Props[0].Parts[0].Material.Opacity)
}

func TestValidateCollectsErrors(t *testing.T) {
	layout := DefaultLayout()
	layout.Props = append(layout.Props,
		Prop{Name: "star", Parts: []Part{{Model: "a.obj"}}},
		Prop{Name: "", Parts: []Part{{Model: "b.obj"}}},
		Prop{Name: "empty"},
		Prop{Name: "both", Parts: []Part{{Name: "x", Model: "c.obj", Texture: "t.png", Material: &Material{}}}},
		Prop{Name: "nomodel", Parts: []Part{{Name: "y"}}},
	)

	err := layout.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `prop "star": duplicate name`)
	assert.Contains(t, msg, "name is required")
	assert.Contains(t, msg, `prop "empty": at least one part`)
	assert.Contains(t, msg, "texture and material are exclusive")
	assert.Contains(t, msg, `prop "nomodel" part 0: model is required`)
}

func TestDecodeLayoutOverridesAndKeepsDefaults(t *testing.T) {
	src := `
presents:
  count: 3
  inner: 2
  outer: 6
  min_scale: 1
  max_scale: 2
  box_model: box.obj
  string_model: string.obj
  bow_model: bow.obj
  box_textures: [red.png]
  string_textures: [green.png]
  bow_textures: [gold.png]
`
	layout, err := DecodeLayout(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 3, layout.Presents.Count)
	assert.Equal(t, []string{"red.png"}, layout.Presents.BoxTextures)
	assert.Len(t, layout.Props, len(DefaultLayout().Props), "props default when omitted")
}

func TestDecodeLayoutProps(t *testing.T) {
	src := `
props:
  - name: lantern
    cast_shadow: true
    transform:
      position: [1, 2, 3]
      rotation_y: 1.5
    parts:
      - name: body
        model: lantern.obj
        material:
          color: "#ff8000"
          emissive: 0xffcc00
          emissive_intensity: 0.8
presents:
  count: 0
  inner: 1
  outer: 2
  min_scale: 1
  max_scale: 1
`
	layout, err := DecodeLayout(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, layout.Props, 1)

	p := layout.Props[0]
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, p.Transform.Position)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, p.Transform.Scale)
	assert.Equal(t, float32(1.5), p.Transform.RotationY)
	require.NotNil(t, p.Parts[0].Material)
	assert.Equal(t, Color{0xff, 0x80, 0x00, 0xff}, p.Parts[0].Material.Color)
	assert.Equal(t, Hex(0xffcc00), p.Parts[0].Material.Emissive)
	assert.Equal(t, float32(1), p.Parts[0].Material.Opacity)
}

func TestDecodeLayoutRejectsUnknownKeys(t *testing.T) {
	_, err := DecodeLayout(strings.NewReader("lights: []\n"))
	assert.Error(t, err)

	_, err = DecodeLayout(strings.NewReader("presents:\n  count: -2\n"))
	assert.ErrorContains(t, err, "invalid layout")
}

func TestDecodeLayoutEmptyDocument(t *testing.T) {
	layout, err := DecodeLayout(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, len(DefaultLayout().Props), len(layout.Props))
}

func TestLoadLayoutEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DefaultLayout().Encode(&buf))

	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	layout, err := LoadLayout(path)
	require.NoError(t, err)

	want := DefaultLayout()
	require.NoError(t, want.Validate())
	assert.Equal(t, want, layout)
}

func TestEncodeKeepsGeneratedPresents(t *testing.T) {
	layout := DefaultLayout()
	props, err := layout.Instantiate(rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	dumped := Layout{Props: props, Presents: layout.Presents}
	dumped.Presents.Count = 0

	var buf bytes.Buffer
	require.NoError(t, dumped.Encode(&buf))
	assert.Contains(t, buf.String(), "present: true")

	reloaded, err := DecodeLayout(&buf)
	require.NoError(t, err)
	again, err := reloaded.Instantiate(rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	require.Len(t, again, len(props))

	var presents int
	for i, p := range again {
		assert.Equal(t, props[i].Name, p.Name)
		assert.Equal(t, props[i].Present, p.Present, p.Name)
		if p.Present {
			presents++
		}
	}
	assert.Equal(t, layout.Presents.Count, presents)
}

func TestLoadLayoutMissingFile(t *testing.T) {
	_, err := LoadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
