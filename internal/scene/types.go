package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Color is an 8-bit RGBA color. In YAML it is written as "0xRRGGBB", "#RRGGBB"
// or "#RRGGBBAA".
type Color struct {
	R, G, B, A uint8
}

var White = Color{255, 255, 255, 255}

// Hex builds an opaque color from 0xRRGGBB.
func Hex(v uint32) Color {
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}

func ParseColor(s string) (Color, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "#")
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X")

	switch len(raw) {
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(raw) == 6 {
		return Hex(uint32(v)), nil
	}
	return Color{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Vec4 returns the color with channels in [0, 1].
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// Material is a flat, untextured surface. Emissive light is added on top of the
// lit color; Opacity below 1 draws the part blended.
type Material struct {
	Color             Color   `yaml:"color"`
	Emissive          Color   `yaml:"emissive,omitempty"`
	EmissiveIntensity float32 `yaml:"emissive_intensity,omitempty"`
	Opacity           float32 `yaml:"opacity,omitempty"`
}

// Part is one OBJ file of a prop with either a texture or a flat material.
type Part struct {
	Name     string    `yaml:"name"`
	Model    string    `yaml:"model"`
	Texture  string    `yaml:"texture,omitempty"`
	Material *Material `yaml:"material,omitempty"`
}

// Transform places a prop. Rotations are radians, applied X then Y.
type Transform struct {
	Position  mgl32.Vec3 `yaml:"position"`
	Scale     mgl32.Vec3 `yaml:"scale"`
	RotationX float32    `yaml:"rotation_x,omitempty"`
	RotationY float32    `yaml:"rotation_y,omitempty"`
}

// Uniform is a transform with the same scale on every axis.
func Uniform(s float32) Transform {
	return Transform{Scale: mgl32.Vec3{s, s, s}}
}

// Matrix composes translate * rotateY * rotateX * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(mgl32.HomogRotate3DY(t.RotationY)).
		Mul4(mgl32.HomogRotate3DX(t.RotationX)).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// Bounds returns the world-space axis-aligned box enclosing the local box
// [localMin, localMax] under t.
func (t Transform) Bounds(localMin, localMax mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	m := t.Matrix()
	var lo, hi mgl32.Vec3
	for i := 0; i < 8; i++ {
		corner := localMin
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				corner[axis] = localMax[axis]
			}
		}
		p := mgl32.TransformCoordinate(corner, m)
		if i == 0 {
			lo, hi = p, p
			continue
		}
		for axis := 0; axis < 3; axis++ {
			lo[axis] = min(lo[axis], p[axis])
			hi[axis] = max(hi[axis], p[axis])
		}
	}
	return lo, hi
}

// Prop is a group of parts sharing one transform.
type Prop struct {
	Name       string    `yaml:"name"`
	Parts      []Part    `yaml:"parts"`
	Transform  Transform `yaml:"transform"`
	CastShadow bool      `yaml:"cast_shadow"`
	// Present marks generated present boxes. It is written out so a dumped
	// layout keeps the marker when loaded back.
	Present bool `yaml:"present,omitempty"`
}
