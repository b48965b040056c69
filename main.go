package main

import (
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/ember/config"
	"github.com/automoto/ember/fonts"
	"github.com/automoto/ember/input"
	"github.com/automoto/ember/systems"
	"github.com/automoto/ember/ui"
)

// Game is a small demo driving the input pipeline: a square moved by the
// gameplay context, a cursor marker, and the live inspector overlay.
type Game struct {
	bounds    image.Rectangle
	ecs       *ecs.ECS
	inspector *ui.InspectorUI

	// demo state written by action handlers
	posX, posY    float64
	velX, velY    float64
	cursorX       float64
	cursorY       float64
	jumpFlash     int
	cornerTouched bool
	handlersWired bool
}

func NewGame() *Game {
	fonts.LoadDefaults()

	g := &Game{
		bounds: image.Rectangle{},
		ecs:    ecs.NewECS(donburi.NewWorld()),
		posX:   float64(config.C.Width) / 2,
		posY:   float64(config.C.Height) / 2,
	}
	return g
}

// wireHandlers registers the demo's action handlers. Runs after the first
// input tick so the pipeline singleton exists.
func (g *Game) wireHandlers() {
	in := systems.GetInput(g.ecs)
	systems.ApplySavedBindings(in.Manager)

	in.Dispatch.RegisterActionHandler("gameplay", "move", func(def input.ActionDefinition, data input.ActionData) bool {
		g.velX = data.Axes[0]
		g.velY = -data.Axes[1] // screen y grows downward
		return true
	})
	in.Dispatch.RegisterActionHandler("gameplay", "jump", func(def input.ActionDefinition, data input.ActionData) bool {
		if data.Activated {
			g.jumpFlash = 15
		}
		return true
	})
	in.Dispatch.RegisterActionHandler("gameplay", "cursor", func(def input.ActionDefinition, data input.ActionData) bool {
		g.cursorX = data.Axes[0] * float64(config.C.Width)
		g.cursorY = data.Axes[1] * float64(config.C.Height)
		return true
	})
	// Location actions only reach region handlers while inside the region.
	in.Dispatch.RegisterActionHandlerInRegion("gameplay", "cursor",
		0, 0, float64(config.C.Width)/4, float64(config.C.Height)/4,
		func(def input.ActionDefinition, data input.ActionData) bool {
			g.cornerTouched = true
			return true
		})

	g.inspector = ui.NewInspectorUI(in.Manager, func() {
		defaults := config.DefaultInput()
		if err := in.Manager.LoadConfiguration(defaults); err != nil {
			log.Printf("Warning: Could not reset bindings: %v", err)
			return
		}
		if err := systems.SaveBindings(defaults); err == nil {
			log.Println("Bindings reset to defaults")
		}
	})
}

func (g *Game) Update() error {
	g.cornerTouched = false
	systems.UpdateInput(g.ecs)

	if !g.handlersWired {
		g.handlersWired = true
		g.wireHandlers()
	}

	const speed = 3.0
	g.posX += g.velX * speed
	g.posY += g.velY * speed
	if g.jumpFlash > 0 {
		g.jumpFlash--
	}

	if config.Debug.ShowInspector && g.inspector != nil {
		g.inspector.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{24, 24, 32, 255})

	// corner region highlight
	if g.cornerTouched {
		vector.FillRect(screen, 0, 0, float32(config.C.Width)/4, float32(config.C.Height)/4,
			color.RGBA{40, 60, 40, 255}, false)
	}

	c := color.RGBA{0, 200, 255, 255}
	if g.jumpFlash > 0 {
		c = color.RGBA{255, 255, 255, 255}
	}
	vector.FillRect(screen, float32(g.posX)-8, float32(g.posY)-8, 16, 16, c, false)

	vector.FillRect(screen, float32(g.cursorX)-2, float32(g.cursorY)-2, 4, 4,
		color.RGBA{255, 100, 100, 255}, false)

	systems.DrawDebug(g.ecs, screen)
	if config.Debug.ShowInspector && g.inspector != nil {
		g.inspector.Draw(screen)
	}
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle("ember input demo")

	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}

	if err := ebiten.RunGame(NewGame()); err != nil {
		log.Fatal(err)
	}
}
