package engine3D

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"winterroom/internal/engine3D/shader"
	"winterroom/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RenderPart is one model of a prop with the surface it is drawn with.
type RenderPart struct {
	Name          string
	Model         rl.Model
	Texture       rl.Texture2D
	Color         rl.Color
	Emissive      mgl32.Vec3
	Translucent   bool
	ReceiveShadow bool
}

type RenderObject struct {
	Prop      scene.Prop
	Transform rl.Matrix
	Parts     []RenderPart
	Visible   bool
}

// NewRenderObject resolves every part of prop. A part that fails to load
// fails the whole prop so a present never shows up without its bow.
func NewRenderObject(assets *Assets, prop scene.Prop) (RenderObject, error) {
	obj := RenderObject{
		Prop:      prop,
		Transform: Matrix(prop.Transform.Matrix()),
		Parts:     make([]RenderPart, 0, len(prop.Parts)),
		Visible:   true,
	}

	for _, p := range prop.Parts {
		model, err := assets.Model(p.Model)
		if err != nil {
			return RenderObject{}, fmt.Errorf("prop %s part %s: %w", prop.Name, p.Name, err)
		}

		part := RenderPart{
			Name:          p.Name,
			Model:         model,
			Texture:       assets.White(),
			Color:         rl.White,
			ReceiveShadow: true,
		}

		if p.Texture != "" {
			tex, err := assets.Texture(p.Texture)
			if err != nil {
				return RenderObject{}, fmt.Errorf("prop %s part %s: %w", prop.Name, p.Name, err)
			}
			part.Texture = tex
		}

		if m := p.Material; m != nil {
			c := m.Color
			c.A = uint8(mgl32.Clamp(m.Opacity, 0, 1) * 255)
			part.Color = Color(c)
			part.Emissive = shader.Emissive(m.Emissive.Vec4(), m.EmissiveIntensity)
			part.Translucent = m.Opacity < 1
			part.ReceiveShadow = !part.Translucent
		}

		obj.Parts = append(obj.Parts, part)
	}

	return obj, nil
}

// Translucent reports whether any part is blended.
func (o *RenderObject) Translucent() bool {
	for i := range o.Parts {
		if o.Parts[i].Translucent {
			return true
		}
	}
	return false
}
