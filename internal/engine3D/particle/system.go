package particle

import (
	"fmt"
	"math"
	"math/rand"
)

// NewField allocates cfg.Count flakes scattered over the snow volume.
func NewField(cfg FieldConfig, rng *rand.Rand) (*Field, error) {
	if cfg.Count < 0 {
		return nil, fmt.Errorf("snow count must not be negative, got %d", cfg.Count)
	}
	if cfg.MaxRange <= 0 {
		return nil, fmt.Errorf("snow range must be positive, got %v", cfg.MaxRange)
	}
	// Respawned flakes must start above the ground plane.
	if cfg.MinHeight < 0 {
		return nil, fmt.Errorf("snow min height must not be negative, got %v", cfg.MinHeight)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	f := &Field{
		Config:     cfg,
		Positions:  make([]float32, cfg.Count*stride),
		Velocities: make([]float32, cfg.Count*stride),
		rng:        rng,
	}

	for i := 0; i < len(f.Positions); i += stride {
		f.spawnPosition(i)
		f.Velocities[i] = floor(rng.Float64()*6-3) * 0.1
		f.Velocities[i+1] = floor(rng.Float64()*5+0.12) * 0.18
		f.Velocities[i+2] = floor(rng.Float64()*6-3) * 0.1
	}

	return f, nil
}

// spawnPosition places flake i (buffer offset) inside the volume above MinHeight.
func (f *Field) spawnPosition(i int) {
	maxRange := float64(f.Config.MaxRange)
	half := maxRange / 2

	f.Positions[i] = floor(f.rng.Float64()*maxRange - half)
	f.Positions[i+1] = floor(f.rng.Float64()*half + float64(f.Config.MinHeight))
	f.Positions[i+2] = floor(f.rng.Float64()*maxRange - half)
}

// Update advances every flake by one tick. Flakes that fall below the ground
// plane are moved back to the top of the volume, keeping their velocity.
func (f *Field) Update() {
	for i := 0; i < len(f.Positions); i += stride {
		f.Positions[i] -= f.Velocities[i]
		f.Positions[i+1] -= f.Velocities[i+1]
		f.Positions[i+2] -= f.Velocities[i+2]

		if f.Positions[i+1] < 0 {
			f.spawnPosition(i)
			f.Respawns++
		}
	}
}

// Len is the number of flakes.
func (f *Field) Len() int {
	return len(f.Positions) / stride
}

// Position returns flake i.
func (f *Field) Position(i int) (x, y, z float32) {
	o := i * stride
	return f.Positions[o], f.Positions[o+1], f.Positions[o+2]
}

// Velocity returns the per-tick displacement of flake i (subtracted from its position).
func (f *Field) Velocity(i int) (x, y, z float32) {
	o := i * stride
	return f.Velocities[o], f.Velocities[o+1], f.Velocities[o+2]
}

// PickTexture chooses the flake sprite once for the whole field.
func PickTexture(cfg FieldConfig, rng *rand.Rand) string {
	if rng.Float64() < cfg.PrimaryRatio {
		return cfg.PrimaryTexture
	}
	return cfg.SecondaryTexture
}

func floor(v float64) float32 {
	return float32(math.Floor(v))
}
