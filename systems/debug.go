package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"

	"golang.org/x/image/font"

	"github.com/automoto/ember/components"
	cfg "github.com/automoto/ember/config"
	"github.com/automoto/ember/fonts"
)

var overlayFaceLoaded bool

func getOverlayFace() font.Face {
	if !overlayFaceLoaded {
		fonts.LoadDefaults()
		overlayFaceLoaded = true
	}
	return fonts.Overlay.Get()
}

const (
	overlayX       = 8
	overlayRowH    = 14
	overlayBarW    = 50
	overlayBarH    = 6
	overlayTextCol = 160
)

// DrawDebug renders the live action overlay: one row per registered
// action with its axis values, a magnitude bar and the activation flag.
func DrawDebug(ecs *ecs.ECS, screen *ebiten.Image) {
	if !cfg.Debug.ShowActionOverlay {
		return
	}
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		return
	}
	in := components.Input.Get(entry)

	face := getOverlayFace()
	y := 16
	for _, name := range in.Manager.ContextNames() {
		ctx, ok := in.Manager.ActionContext(name)
		if !ok {
			continue
		}

		header := name
		if !ctx.Enabled() {
			header += " (disabled)"
		}
		text.Draw(screen, header, face, overlayX, y, color.RGBA{255, 255, 0, 255})
		y += overlayRowH

		for _, action := range ctx.ActionNames() {
			data, ok := ctx.ActionValue(action)
			if !ok {
				continue
			}

			label := fmt.Sprintf("%s  [%.2f %.2f %.2f]", action, data.Axes[0], data.Axes[1], data.Axes[2])
			c := color.RGBA{180, 180, 180, 255}
			if data.Activated {
				c = color.RGBA{0, 255, 0, 255}
			}
			text.Draw(screen, label, face, overlayX+8, y, c)

			mag := data.Magnitude()
			if mag > 1 {
				mag = 1
			}
			bx := float32(overlayX + overlayTextCol)
			by := float32(y - overlayBarH)
			vector.FillRect(screen, bx, by, overlayBarW, overlayBarH, color.RGBA{60, 60, 60, 255}, false)
			vector.FillRect(screen, bx, by, float32(mag*overlayBarW), overlayBarH, color.RGBA{0, 200, 255, 255}, false)

			y += overlayRowH
		}
		y += overlayRowH / 2
	}
}
