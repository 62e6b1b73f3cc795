package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Layout is the declarative room: fixed props plus the present generator.
type Layout struct {
	Props    []Prop        `yaml:"props"`
	Presents PresentConfig `yaml:"presents"`
}

var roomScale = mgl32.Vec3{50, 30, 50}

// DefaultLayout is the winter holiday room.
func DefaultLayout() Layout {
	return Layout{
		Props: []Prop{
			{
				Name: "christmas-tree",
				Parts: []Part{
					{Name: "bark", Model: "model/Christmas Tree/obj/treeBark.obj", Texture: "model/texture/BarkBake.png"},
					{Name: "leaves", Model: "model/Christmas Tree/obj/leaves.obj", Texture: "model/texture/LeaveBake.png"},
				},
				Transform:  Uniform(5),
				CastShadow: true,
			},
			{
				Name: "star",
				Parts: []Part{{
					Name:  "star",
					Model: "model/GlowingStar/star.obj",
					Material: &Material{
						Color:             Hex(0xfcfe9a),
						Emissive:          Hex(0xffff00),
						EmissiveIntensity: 0.5,
						Opacity:           1,
					},
				}},
				Transform: Transform{
					Position: mgl32.Vec3{0, 23.5, -0.25},
					Scale:    mgl32.Vec3{1.5, 1.5, 1.5},
				},
				CastShadow: true,
			},
			{
				Name: "chimney",
				Parts: []Part{
					{Name: "chimney", Model: "model/Chimney/chimney.obj", Texture: "model/texture/Chimney.png"},
					{Name: "wood", Model: "model/Chimney/wood.obj", Texture: "model/texture/Wood.png"},
				},
				Transform: Transform{
					Position:  mgl32.Vec3{46, 0, 15},
					Scale:     mgl32.Vec3{1, 1, 1},
					RotationY: math.Pi / 2,
				},
				CastShadow: true,
			},
			{
				Name: "room",
				Parts: []Part{
					{Name: "wall", Model: "model/Room/wall.obj", Texture: "model/texture/Wall.png"},
					{Name: "ground", Model: "model/Room/ground.obj", Texture: "model/texture/Ground.png"},
				},
				Transform: Transform{Scale: roomScale},
			},
			{
				Name:      "roof",
				Parts:     []Part{{Name: "roof", Model: "model/Room/roof.obj", Texture: "model/texture/Roof.png"}},
				Transform: Transform{Position: mgl32.Vec3{0, 10, 0}, Scale: roomScale},
			},
			{
				Name: "glass",
				Parts: []Part{{
					Name:     "glass",
					Model:    "model/Room/glass.obj",
					Material: &Material{Color: Hex(0xdfefff), Opacity: 0.25},
				}},
				Transform: Transform{Scale: roomScale, RotationX: math.Pi * 2},
			},
		},
		Presents: DefaultPresentConfig(),
	}
}

// Validate checks structure and fills defaults: a zero scale becomes 1 and a
// flat material without opacity is opaque.
func (l *Layout) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(l.Props))

	for i := range l.Props {
		prop := &l.Props[i]
		if prop.Name == "" {
			errs = append(errs, fmt.Errorf("prop %d: name is required", i))
		} else if seen[prop.Name] {
			errs = append(errs, fmt.Errorf("prop %q: duplicate name", prop.Name))
		}
		seen[prop.Name] = true

		if len(prop.Parts) == 0 {
			errs = append(errs, fmt.Errorf("prop %q: at least one part is required", prop.Name))
		}
		if prop.Transform.Scale == (mgl32.Vec3{}) {
			prop.Transform.Scale = mgl32.Vec3{1, 1, 1}
		}

		for j := range prop.Parts {
			part := &prop.Parts[j]
			if part.Model == "" {
				errs = append(errs, fmt.Errorf("prop %q part %d: model is required", prop.Name, j))
			}
			if part.Texture != "" && part.Material != nil {
				errs = append(errs, fmt.Errorf("prop %q part %q: texture and material are exclusive", prop.Name, part.Name))
			}
			if part.Material != nil && part.Material.Opacity == 0 {
				part.Material.Opacity = 1
			}
		}
	}

	if err := l.Presents.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Instantiate returns the fixed props followed by freshly generated presents.
func (l Layout) Instantiate(rng *rand.Rand) ([]Prop, error) {
	presents, err := NewPresents(l.Presents, rng)
	if err != nil {
		return nil, err
	}
	props := make([]Prop, 0, len(l.Props)+len(presents))
	props = append(props, l.Props...)
	props = append(props, presents...)
	return props, nil
}

// DecodeLayout reads a YAML layout. Unknown keys are rejected; sections that
// are left out keep their default values.
func DecodeLayout(r io.Reader) (Layout, error) {
	layout := DefaultLayout()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&layout); err != nil && !errors.Is(err, io.EOF) {
		return Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return Layout{}, fmt.Errorf("invalid layout: %w", err)
	}
	return layout, nil
}

func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout %s: %w", path, err)
	}
	layout, err := DecodeLayout(bytes.NewReader(data))
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", path, err)
	}
	return layout, nil
}

// Encode writes the layout as YAML.
func (l Layout) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return enc.Close()
}
