package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// PresentConfig controls the randomized present boxes scattered around the tree.
// Each of x and z is drawn from [Inner, Outer) or [-Outer, Inner) with equal
// probability.
type PresentConfig struct {
	Count          int      `yaml:"count"`
	Inner          float32  `yaml:"inner"`
	Outer          float32  `yaml:"outer"`
	MinScale       float32  `yaml:"min_scale"`
	MaxScale       float32  `yaml:"max_scale"`
	BoxModel       string   `yaml:"box_model"`
	StringModel    string   `yaml:"string_model"`
	BowModel       string   `yaml:"bow_model"`
	BoxTextures    []string `yaml:"box_textures"`
	StringTextures []string `yaml:"string_textures"`
	BowTextures    []string `yaml:"bow_textures"`
}

func DefaultPresentConfig() PresentConfig {
	return PresentConfig{
		Count:       10,
		Inner:       1.25,
		Outer:       4,
		MinScale:    0.5,
		MaxScale:    1.5,
		BoxModel:    "model/Present Box/box.obj",
		StringModel: "model/Present Box/string.obj",
		BowModel:    "model/Present Box/bow.obj",
		BoxTextures: []string{
			"model/texture/BlueBoxBake.png",
			"model/texture/GrayBoxBake.png",
			"model/texture/OrangeBoxBake.png",
			"model/texture/RedBoxBake.png",
		},
		StringTextures: []string{
			"model/texture/GreenBowBake_String.png",
			"model/texture/RedBowBake_String.png",
			"model/texture/VioletBowBake_String.png",
			"model/texture/YellowBowBake_String.png",
		},
		BowTextures: []string{
			"model/texture/GreenBowBake_Bow.png",
			"model/texture/RedBowBake_Bow.png",
			"model/texture/VioletBowBake_Bow.png",
			"model/texture/YellowBowBake_Bow.png",
		},
	}
}

func (cfg PresentConfig) Validate() error {
	switch {
	case cfg.Count < 0:
		return fmt.Errorf("presents: count must not be negative, got %d", cfg.Count)
	case cfg.Inner < 0 || cfg.Outer <= cfg.Inner:
		return fmt.Errorf("presents: need 0 <= inner < outer, got %v and %v", cfg.Inner, cfg.Outer)
	case cfg.MinScale <= 0 || cfg.MaxScale < cfg.MinScale:
		return fmt.Errorf("presents: need 0 < min_scale <= max_scale, got %v and %v", cfg.MinScale, cfg.MaxScale)
	case cfg.Count > 0 && (len(cfg.BoxTextures) == 0 || len(cfg.StringTextures) == 0 || len(cfg.BowTextures) == 0):
		return fmt.Errorf("presents: every part needs at least one texture")
	case cfg.Count > 0 && (cfg.BoxModel == "" || cfg.StringModel == "" || cfg.BowModel == ""):
		return fmt.Errorf("presents: box, string and bow models are required")
	}
	return nil
}

// Shuffle permutes items in place (Fisher-Yates).
func Shuffle[T any](items []T, rng *rand.Rand) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// NewPresents generates cfg.Count present boxes. The texture lists are copied
// once and reshuffled before every pick, so cfg is never mutated.
func NewPresents(cfg PresentConfig, rng *rand.Rand) ([]Prop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	boxTextures := append([]string(nil), cfg.BoxTextures...)
	stringTextures := append([]string(nil), cfg.StringTextures...)
	bowTextures := append([]string(nil), cfg.BowTextures...)

	props := make([]Prop, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		position := mgl32.Vec3{
			ringCoordinate(cfg.Inner, cfg.Outer, rng),
			0,
			ringCoordinate(cfg.Inner, cfg.Outer, rng),
		}

		scale := mgl32.Vec3{
			uniform(cfg.MinScale, cfg.MaxScale, rng),
			uniform(cfg.MinScale, cfg.MaxScale, rng),
			uniform(cfg.MinScale, cfg.MaxScale, rng),
		}

		rotationY := float32(rng.Float64() * math.Pi * 2)

		Shuffle(boxTextures, rng)
		Shuffle(stringTextures, rng)
		Shuffle(bowTextures, rng)

		box := boxTextures[rng.Intn(len(boxTextures))]
		str := stringTextures[rng.Intn(len(stringTextures))]
		bow := bowTextures[rng.Intn(len(bowTextures))]

		props = append(props, Prop{
			Name: fmt.Sprintf("present-%02d", i+1),
			Parts: []Part{
				{Name: "box", Model: cfg.BoxModel, Texture: box},
				{Name: "string", Model: cfg.StringModel, Texture: str},
				{Name: "bow", Model: cfg.BowModel, Texture: bow},
			},
			Transform: Transform{
				Position:  position,
				Scale:     scale,
				RotationY: rotationY,
			},
			CastShadow: true,
			Present:    true,
		})
	}

	return props, nil
}

// ringCoordinate picks [inner, outer) or [-outer, inner) with equal
// probability. The second band crosses the origin, so some presents end up
// close to the trunk.
func ringCoordinate(inner, outer float32, rng *rand.Rand) float32 {
	if rng.Float64() < 0.5 {
		return uniform(inner, outer, rng)
	}
	return uniform(-outer, inner, rng)
}

func uniform(min, max float32, rng *rand.Rand) float32 {
	return min + float32(rng.Float64())*(max-min)
}
