package engine3D

import (
	"fmt"
	"os"

	"winterroom/internal/convert"
	"winterroom/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Assets caches GPU resources by asset name. Presents share their box, string
// and bow models, so materials are rebound on every draw.
type Assets struct {
	models   map[string]rl.Model
	textures map[string]rl.Texture2D
	white    rl.Texture2D
}

func NewAssets() *Assets {
	img := rl.GenImageColor(1, 1, rl.White)
	white := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	return &Assets{
		models:   make(map[string]rl.Model),
		textures: make(map[string]rl.Texture2D),
		white:    white,
	}
}

// White is a 1x1 texture for flat materials.
func (a *Assets) White() rl.Texture2D {
	return a.white
}

// Texture loads a texture once, converting packed formats on the way.
func (a *Assets) Texture(name string) (rl.Texture2D, error) {
	if tex, ok := a.textures[name]; ok {
		return tex, nil
	}

	path, err := convert.ResolveTexture(name)
	if err != nil {
		return rl.Texture2D{}, err
	}

	tex := rl.LoadTexture(path)
	if !rl.IsTextureValid(tex) {
		return rl.Texture2D{}, fmt.Errorf("failed to load texture %s", path)
	}
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterTrilinear)

	utils.Debug("Loaded texture %s (%dx%d)", path, tex.Width, tex.Height)
	a.textures[name] = tex
	return tex, nil
}

// Model loads an OBJ model once.
func (a *Assets) Model(name string) (rl.Model, error) {
	if m, ok := a.models[name]; ok {
		return m, nil
	}

	path := utils.ResolveAssetPath(name)
	if _, err := os.Stat(path); err != nil {
		return rl.Model{}, fmt.Errorf("model not found: %s", name)
	}

	m := rl.LoadModel(path)
	if !rl.IsModelValid(m) || m.MeshCount == 0 {
		return rl.Model{}, fmt.Errorf("failed to load model %s", path)
	}

	utils.Debug("Loaded model %s (%d meshes, %d materials)", path, m.MeshCount, m.MaterialCount)
	a.models[name] = m
	return m, nil
}

func (a *Assets) Stats() (models, textures int) {
	return len(a.models), len(a.textures)
}

func (a *Assets) Unload() {
	for name, m := range a.models {
		rl.UnloadModel(m)
		delete(a.models, name)
	}
	for name, tex := range a.textures {
		rl.UnloadTexture(tex)
		delete(a.textures, name)
	}
	rl.UnloadTexture(a.white)
}
