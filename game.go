package easel

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	Debug   bool
}

// Game hosts a Board on an ebiten window: it polls input into a Controller,
// mirrors board changes into the engine and draws widgets, overlay and HUD.
type Game struct {
	Board      *Board
	Controller *Controller
	Input      *EbitenInput
	Registry   *Registry
	Style      OverlayStyle

	// Background fills the canvas; GridColor draws the snap grid when its
	// alpha is positive.
	Background Color
	GridColor  Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// OnUpdate, when set, runs once per tick after input is processed.
	OnUpdate func()

	cfg             Config
	hud             *HUD
	runner          *TestRunner
	screenshotQueue []string
	synced          uint64
	width, height   int
}

// NewGame wires a controller and input source to board.
func NewGame(board *Board, cfg Config) *Game {
	ctrl := NewController(board, cfg)
	g := &Game{
		Board:         board,
		Controller:    ctrl,
		Input:         NewEbitenInput(ctrl, cfg),
		Registry:      NewRegistry(nil),
		Style:         DefaultOverlayStyle(),
		Background:    Color{0.97, 0.97, 0.98, 1},
		GridColor:     Color{0.85, 0.86, 0.9, 1},
		ScreenshotDir: "screenshots",
		cfg:           cfg,
	}
	ctrl.SetWidgets(board.Widgets())
	g.synced = board.Version()
	ctrl.Machine().OnCursorChange(func(c CursorHint) {
		ebiten.SetCursorShape(cursorShape(c))
	})
	return g
}

// SetTestRunner attaches a scripted input runner. Its steps run from Update
// before input is read.
func (g *Game) SetTestRunner(r *TestRunner) {
	g.runner = r
}

// ShowHUD toggles the FPS and state panel.
func (g *Game) ShowHUD(on bool) {
	if on && g.hud == nil {
		g.hud = NewHUD()
	}
	if !on {
		g.hud = nil
	}
}

func (g *Game) diag() *diagnostics {
	return g.Controller.Machine().diagnostics
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if g.runner != nil {
		g.runner.step(g.Input, g.Controller, g.Screenshot)
	}
	g.Input.HandleSize = g.Style.HandleSize
	g.Input.Update()
	g.Controller.Update(float32(dt))
	g.syncBoard()

	if g.OnUpdate != nil {
		g.OnUpdate()
	}
	if g.hud != nil {
		g.hud.Update(dt, g.Controller.Overlay())
	}
	g.diag().debugLog()
	return nil
}

// syncBoard pushes board writes made outside the engine into the widget
// snapshot.
func (g *Game) syncBoard() {
	if v := g.Board.Version(); v != g.synced {
		g.synced = v
		g.Controller.SetWidgets(g.Board.Widgets())
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.Background.toRGBA())

	o := g.Controller.Overlay()
	visible := g.Controller.Camera().VisibleBounds()
	if g.GridColor.A > 0 && g.cfg.GridSize > 0 {
		DrawGrid(screen, o.Transform, visible, g.cfg.GridSize, g.GridColor)
	}
	widgets := g.Board.Widgets()
	DrawWidgets(screen, widgets, g.Registry, o, visible)
	DrawOverlay(screen, widgets, o, g.Style)

	if g.hud != nil {
		g.hud.Draw(screen, 4, 4)
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The viewport follows the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.Controller.SetViewport(Rect{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	}
	return outsideWidth, outsideHeight
}

// cursorShape maps a cursor hint to the closest ebiten cursor.
func cursorShape(c CursorHint) ebiten.CursorShapeType {
	switch c {
	case CursorMove, CursorGrab, CursorGrabbing:
		return ebiten.CursorShapeMove
	case CursorCrosshair, CursorRotate:
		return ebiten.CursorShapeCrosshair
	case CursorResizeNWSE:
		return ebiten.CursorShapeNWSEResize
	case CursorResizeNESW:
		return ebiten.CursorShapeNESWResize
	case CursorResizeEW:
		return ebiten.CursorShapeEWResize
	case CursorResizeNS:
		return ebiten.CursorShapeNSResize
	case CursorText:
		return ebiten.CursorShapeText
	default:
		return ebiten.CursorShapeDefault
	}
}

// Run opens a window and runs g until the window closes.
func Run(g *Game, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "easel"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	g.ShowHUD(cfg.ShowFPS)
	g.Controller.Machine().SetDebugMode(cfg.Debug)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("easel: run: %w", err)
	}
	return nil
}

var _ ebiten.Game = (*Game)(nil)
