package main

import (
	"winterroom/internal/engine3D"
	"winterroom/internal/scene"
	"winterroom/internal/utils"
)

// loadObjects resolves every prop. Props whose models or textures fail to
// load are logged and left out; the room keeps running without them.
func loadObjects(assets *engine3D.Assets, props []scene.Prop) []engine3D.RenderObject {
	objects := make([]engine3D.RenderObject, 0, len(props))
	for _, prop := range props {
		utils.Debug("Adding prop: %s (%d parts)", prop.Name, len(prop.Parts))

		obj, err := engine3D.NewRenderObject(assets, prop)
		if err != nil {
			utils.Error("Failed to load %v", err)
			continue
		}
		objects = append(objects, obj)
	}

	models, textures := assets.Stats()
	utils.Info("Scene loaded: %d/%d props (%d models, %d textures cached)", len(objects), len(props), models, textures)
	return objects
}

// loadProps instantiates layout with fresh presents and swaps it into the
// renderer. Cached models and textures are reused across reloads.
func (w *Window) loadProps(layout scene.Layout) {
	props, err := layout.Instantiate(w.rng)
	if err != nil {
		utils.Error("Failed to instantiate scene: %v", err)
		return
	}
	w.renderer.Objects = loadObjects(w.assets, props)
}
