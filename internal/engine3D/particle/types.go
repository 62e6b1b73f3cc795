package particle

import "math/rand"

const stride = 3

// FieldConfig describes the snow volume and how it is drawn.
type FieldConfig struct {
	Count            int     `yaml:"count"`
	MaxRange         float32 `yaml:"max_range"`
	MinHeight        float32 `yaml:"min_height"`
	Size             float32 `yaml:"size"`
	Opacity          float32 `yaml:"opacity"`
	PrimaryTexture   string  `yaml:"primary_texture"`
	SecondaryTexture string  `yaml:"secondary_texture"`
	PrimaryRatio     float64 `yaml:"primary_ratio"`
}

// DefaultFieldConfig is the snowfall of the holiday room.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Count:            15000,
		MaxRange:         1000,
		MinHeight:        150,
		Size:             4,
		Opacity:          0.7,
		PrimaryTexture:   "snowflake/snowflake_2.png",
		SecondaryTexture: "snowflake/snowflake_1.png",
		PrimaryRatio:     0.9,
	}
}

// Field is a flat point cloud: Positions and Velocities hold x, y, z per flake.
type Field struct {
	Config     FieldConfig
	Positions  []float32
	Velocities []float32
	Respawns   uint64

	rng *rand.Rand
}
