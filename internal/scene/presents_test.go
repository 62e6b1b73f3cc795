package scene

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPresentsRanges(t *testing.T) {
	cfg := DefaultPresentConfig()
	cfg.Count = 500
	props, err := NewPresents(cfg, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.Len(t, props, 500)

	inBand := func(v float32) bool {
		return v >= -cfg.Outer && v < cfg.Outer
	}

	var negX, posX int
	for _, p := range props {
		pos := p.Transform.Position
		assert.True(t, inBand(pos.X()), "x=%v", pos.X())
		assert.True(t, inBand(pos.Z()), "z=%v", pos.Z())
		assert.Zero(t, pos.Y())
		if pos.X() < 0 {
			negX++
		} else {
			posX++
		}

		for axis := 0; axis < 3; axis++ {
			assert.GreaterOrEqual(t, p.Transform.Scale[axis], cfg.MinScale)
			assert.LessOrEqual(t, p.Transform.Scale[axis], cfg.MaxScale)
		}
		assert.GreaterOrEqual(t, p.Transform.RotationY, float32(0))
		assert.LessOrEqual(t, p.Transform.RotationY, float32(2*math.Pi))

		assert.True(t, p.Present)
		assert.True(t, p.CastShadow)
	}

	// Both sides of the tree get presents.
	assert.Greater(t, negX, 100)
	assert.Greater(t, posX, 100)
}

func TestNewPresentsNegativeBandReachesTrunk(t *testing.T) {
	cfg := DefaultPresentConfig()
	cfg.Count = 5000
	props, err := NewPresents(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	var nearTrunkX, nearTrunkZ, farNegX int
	for _, p := range props {
		x, z := p.Transform.Position.X(), p.Transform.Position.Z()
		if x > -cfg.Inner && x < cfg.Inner {
			nearTrunkX++
		}
		if z > -cfg.Inner && z < cfg.Inner {
			nearTrunkZ++
		}
		if x < -cfg.Inner {
			farNegX++
		}
	}

	// Half the draws use [-Outer, Inner), and 2.5 of its 5.25 units lie
	// within Inner of the trunk: about 24% per axis.
	want := 0.5 * float64(2*cfg.Inner) / float64(cfg.Outer+cfg.Inner)
	assert.InDelta(t, want, float64(nearTrunkX)/float64(cfg.Count), 0.03)
	assert.InDelta(t, want, float64(nearTrunkZ)/float64(cfg.Count), 0.03)
	assert.Greater(t, farNegX, cfg.Count/5)
}

func TestRingCoordinateBands(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 2000; i++ {
		v := ringCoordinate(1, 3, rng)
		assert.GreaterOrEqual(t, v, float32(-3))
		assert.Less(t, v, float32(3))
	}
}

func TestNewPresentsPartsAndTextures(t *testing.T) {
	cfg := DefaultPresentConfig()
	props, err := NewPresents(cfg, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	require.Len(t, props, 10)

	assert.Equal(t, "present-01", props[0].Name)
	assert.Equal(t, "present-10", props[9].Name)

	for _, p := range props {
		require.Len(t, p.Parts, 3)
		assert.Equal(t, cfg.BoxModel, p.Parts[0].Model)
		assert.Contains(t, cfg.BoxTextures, p.Parts[0].Texture)
		assert.Equal(t, cfg.StringModel, p.Parts[1].Model)
		assert.Contains(t, cfg.StringTextures, p.Parts[1].Texture)
		assert.Equal(t, cfg.BowModel, p.Parts[2].Model)
		assert.Contains(t, cfg.BowTextures, p.Parts[2].Texture)
		for _, part := range p.Parts {
			assert.Nil(t, part.Material)
		}
	}
}

func TestNewPresentsDoesNotMutateConfig(t *testing.T) {
	cfg := DefaultPresentConfig()
	want := DefaultPresentConfig()

	_, err := NewPresents(cfg, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	assert.Equal(t, want, cfg)
}

func TestNewPresentsDeterministic(t *testing.T) {
	a, err := NewPresents(DefaultPresentConfig(), rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := NewPresents(DefaultPresentConfig(), rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNewPresentsZeroCount(t *testing.T) {
	cfg := DefaultPresentConfig()
	cfg.Count = 0
	cfg.BoxTextures = nil

	props, err := NewPresents(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestPresentConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PresentConfig)
	}{
		{"negative count", func(c *PresentConfig) { c.Count = -1 }},
		{"inverted ring", func(c *PresentConfig) { c.Inner, c.Outer = 4, 1 }},
		{"zero scale", func(c *PresentConfig) { c.MinScale = 0 }},
		{"scale order", func(c *PresentConfig) { c.MinScale, c.MaxScale = 2, 1 }},
		{"missing textures", func(c *PresentConfig) { c.BowTextures = nil }},
		{"missing model", func(c *PresentConfig) { c.StringModel = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPresentConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
			_, err := NewPresents(cfg, rand.New(rand.NewSource(1)))
			assert.Error(t, err)
		})
	}
	assert.NoError(t, DefaultPresentConfig().Validate())
}

func TestShuffleIsPermutation(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	rng := rand.New(rand.NewSource(5))

	moved := false
	for round := 0; round < 20; round++ {
		Shuffle(items, rng)
		sorted := append([]int(nil), items...)
		sort.Ints(sorted)
		require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, sorted)
		if items[0] != 0 || items[9] != 9 {
			moved = true
		}
	}
	assert.True(t, moved)

	var empty []string
	Shuffle(empty, rng)
	single := []string{"a"}
	Shuffle(single, rng)
	assert.Equal(t, []string{"a"}, single)
}
