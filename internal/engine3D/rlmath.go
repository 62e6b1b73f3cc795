package engine3D

import (
	"github.com/go-gl/mathgl/mgl32"

	"winterroom/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func Vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// Matrix converts a column-major mgl32 matrix. Both libraries number elements
// the same way, so M12..M14 hold the translation.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func Color(c scene.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func vec3Slice(v mgl32.Vec3) []float32 {
	return []float32{v.X(), v.Y(), v.Z()}
}
