package debug

import (
	"fmt"

	"winterroom/internal/engine3D/particle"
)

// sampledFlakes is how many flakes the snow tab lists individually.
const sampledFlakes = 5

func (d *DebugOverlay) drawSnow(field *particle.Field, startY int) {
	ui := d.newUI(10, startY)

	if field == nil {
		ui.Label("Snow disabled")
		return
	}
	cfg := field.Config

	ui.Header(fmt.Sprintf("Snowfall (%d flakes)", field.Len()))
	ui.Separator()

	ui.Row("Range", "%.0f", cfg.MaxRange)
	ui.Row("Min height", "%.0f", cfg.MinHeight)
	ui.Row("Size", "%.1f", cfg.Size)
	ui.Bar("Opacity", cfg.Opacity, int(120*d.uiScale))
	ui.Row("Respawns", "%d", field.Respawns)
	ui.Row("Sprites", "%s / %s", cfg.PrimaryTexture, cfg.SecondaryTexture)

	ui.Separator()
	ui.Header("Samples:")

	top := cfg.MinHeight + cfg.MaxRange/2
	for i := 0; i < min(sampledFlakes, field.Len()); i++ {
		x, y, z := field.Position(i)
		vx, vy, vz := field.Velocity(i)
		ui.IndentLabel(fmt.Sprintf("#%d (%.0f, %.0f, %.0f) v=(%.1f, %.2f, %.1f)", i, x, y, z, vx, vy, vz), 5)
		ui.Bar("Altitude", y/top, int(120*d.uiScale))
	}
}
