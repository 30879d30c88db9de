package easel

import (
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// wheelPixels converts one ebiten wheel notch into screen pixels of scroll.
const wheelPixels = 40.0

// inputFrame is the raw input state sampled for one tick.
type inputFrame struct {
	screen              Point
	left, right, middle bool
	wheelX, wheelY      float64 // screen pixels, positive = down/right
	focused             bool
	mods                KeyModifiers
	keysDown            []Key
	keysUp              []Key
}

// pressedButton returns the button of a press, preferring left, then right,
// then middle.
func (f inputFrame) pressedButton() (MouseButton, bool) {
	switch {
	case f.left:
		return MouseButtonLeft, true
	case f.right:
		return MouseButtonRight, true
	case f.middle:
		return MouseButtonMiddle, true
	}
	return 0, false
}

// setButton marks b as held in the frame.
func (f *inputFrame) setButton(b MouseButton, pressed bool) {
	switch b {
	case MouseButtonLeft:
		f.left = pressed
	case MouseButtonRight:
		f.right = pressed
	case MouseButtonMiddle:
		f.middle = pressed
	}
}

// EbitenInput polls ebiten once per tick and turns state changes into
// Controller events: button edges become PointerDown/PointerUp, cursor
// movement becomes PointerMove, key edges become KeyDown/KeyUp and focus loss
// becomes Blur. Synthetic input queued with the Inject methods replaces the
// pointer for the frame it is consumed in.
type EbitenInput struct {
	ctrl *Controller
	cfg  Config

	// HandleSize is the on-screen size of the selection handles a left
	// press can grab.
	HandleSize float64

	down    bool
	button  MouseButton
	last    Point
	hasLast bool
	focused bool

	frame          uint64
	clicks         int
	lastClickFrame uint64
	lastClickPos   Point

	injectQueue []syntheticEvent
	keyBuf      []ebiten.Key
}

// NewEbitenInput creates an input source feeding ctrl.
func NewEbitenInput(ctrl *Controller, cfg Config) *EbitenInput {
	return &EbitenInput{
		ctrl:       ctrl,
		cfg:        cfg,
		HandleSize: DefaultOverlayStyle().HandleSize,
		focused:    true,
	}
}

// Update samples one frame of input. Call it from ebiten.Game.Update.
func (in *EbitenInput) Update() {
	if f, ok := in.popInjected(); ok {
		in.apply(f)
		return
	}
	in.apply(in.readFrame())
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// readFrame samples ebiten's input state.
func (in *EbitenInput) readFrame() inputFrame {
	mx, my := ebiten.CursorPosition()
	wx, wy := ebiten.Wheel()
	f := inputFrame{
		screen:  Point{float64(mx), float64(my)},
		left:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		right:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		middle:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
		wheelX:  -wx * wheelPixels,
		wheelY:  -wy * wheelPixels,
		focused: ebiten.IsFocused(),
		mods:    readModifiers(),
	}
	in.keyBuf = inpututil.AppendJustPressedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		f.keysDown = append(f.keysDown, keyName(k))
	}
	in.keyBuf = inpututil.AppendJustReleasedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		f.keysUp = append(f.keysUp, keyName(k))
	}
	return f
}

// grabHandle starts a resize or rotate when p lands on a handle of the
// selection while idle.
func (in *EbitenInput) grabHandle(p Point) bool {
	c := in.ctrl
	m := c.Machine()
	if c.Mode() != ModeIdle || m.HandToolActive() || m.Keyboard().IsKeyPressed(KeySpace) {
		return false
	}
	h, ok := c.HandleAt(p, in.HandleSize)
	if !ok {
		return false
	}
	return c.StartTransform(h, p)
}

// apply turns the difference between the previous frame and f into
// controller events.
func (in *EbitenInput) apply(f inputFrame) {
	in.frame++
	c := in.ctrl

	if f.focused != in.focused {
		in.focused = f.focused
		if f.focused {
			c.Focus()
		} else {
			c.Blur()
		}
	}

	for _, k := range f.keysDown {
		c.KeyDown(string(k), f.mods, false)
	}
	for _, k := range f.keysUp {
		c.KeyUp(string(k), f.mods)
	}

	moved := !in.hasLast || f.screen != in.last
	button, pressed := f.pressedButton()
	switch {
	case pressed && !in.down:
		if moved && in.hasLast {
			c.PointerMove(f.screen, f.mods)
		}
		in.down = true
		in.button = button
		if button == MouseButtonLeft && in.grabHandle(f.screen) {
			break
		}
		clicks := 1
		if button == MouseButtonLeft {
			clicks = in.countClick(f.screen)
		}
		c.PointerDown(f.screen, button, f.mods, clicks)
		if button == MouseButtonRight {
			c.ContextMenu(f.screen)
		}
	case !pressed && in.down:
		if moved {
			c.PointerMove(f.screen, f.mods)
		}
		in.down = false
		c.PointerUp(f.screen, in.button, f.mods)
	case moved:
		c.PointerMove(f.screen, f.mods)
	}
	in.last = f.screen
	in.hasLast = true

	if f.wheelX != 0 || f.wheelY != 0 {
		c.Wheel(f.screen, f.wheelX, f.wheelY, f.mods)
	}
}

// countClick returns 2 (or more) when this press follows the previous left
// press closely in time and space.
func (in *EbitenInput) countClick(p Point) int {
	d := p.Sub(in.lastClickPos)
	if in.clicks > 0 &&
		in.frame-in.lastClickFrame <= uint64(in.cfg.DoubleClickFrames) &&
		math.Hypot(d.X, d.Y) <= in.cfg.DoubleClickDistance {
		in.clicks++
	} else {
		in.clicks = 1
	}
	in.lastClickFrame = in.frame
	in.lastClickPos = p
	return in.clicks
}

// keyName maps an ebiten key to the names used by shortcuts.
func keyName(k ebiten.Key) Key {
	s := k.String()
	switch s {
	case "Equal":
		return "="
	case "Minus":
		return "-"
	case "BracketLeft":
		return "["
	case "BracketRight":
		return "]"
	case "Period":
		return "."
	case "Comma":
		return ","
	case "Slash":
		return "/"
	}
	if d, ok := strings.CutPrefix(s, "Digit"); ok {
		return Key(d)
	}
	for _, side := range []string{"Left", "Right"} {
		if base, ok := strings.CutSuffix(s, side); ok {
			switch base {
			case "Shift", "Control", "Alt", "Meta":
				return NormalizeKey(base)
			}
		}
	}
	return NormalizeKey(s)
}
