package easel

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// HUD is a small text panel showing FPS/TPS and the interaction state. The
// text is refreshed every ~0.5 seconds into a cached image.
type HUD struct {
	img        *ebiten.Image
	lastUpdate float64
	text       string
}

// NewHUD creates a HUD panel.
func NewHUD() *HUD {
	// 220x64 is enough for four DebugPrint lines.
	return &HUD{img: ebiten.NewImage(220, 64)}
}

// hudText formats the HUD lines for an overlay snapshot.
func hudText(fps, tps float64, o Overlay) string {
	s := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nmode: %s  zoom: %.0f%%\nselected: %d",
		fps, tps, o.Mode, o.Transform.Scale*100, len(o.Selected))
	if o.HandTool {
		s += "  [hand]"
	}
	return s
}

// Update refreshes the panel text when due.
func (h *HUD) Update(dt float64, o Overlay) {
	h.lastUpdate += dt
	if h.lastUpdate < 0.5 && h.text != "" {
		return
	}
	h.lastUpdate = 0
	h.text = hudText(ebiten.ActualFPS(), ebiten.ActualTPS(), o)

	h.img.Clear()
	// Semi-transparent background for readability
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(h.img, h.text)
}

// Draw blits the panel at the screen position (x, y).
func (h *HUD) Draw(dst *ebiten.Image, x, y float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	dst.DrawImage(h.img, op)
}
