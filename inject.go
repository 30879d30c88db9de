package easel

type syntheticKind uint8

const (
	synthPointer syntheticKind = iota
	synthKeyDown
	synthKeyUp
	synthWheel
)

// syntheticEvent represents a single injected input event. Screen
// coordinates are used (matching what a script sees in screenshots) and go
// through the same conversion as real mouse input.
type syntheticEvent struct {
	kind    syntheticKind
	screen  Point
	pressed bool
	button  MouseButton
	mods    KeyModifiers
	key     Key
	wheel   Point
}

// InjectPress queues a left-button press at the given screen coordinates.
// The event is consumed on the next Update.
func (in *EbitenInput) InjectPress(x, y float64) {
	in.InjectButton(x, y, MouseButtonLeft, true, 0)
}

// InjectMove queues a pointer move with the left button held. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (in *EbitenInput) InjectMove(x, y float64) {
	in.InjectButton(x, y, MouseButtonLeft, true, 0)
}

// InjectHover queues a pointer move with no button held.
func (in *EbitenInput) InjectHover(x, y float64) {
	in.InjectButton(x, y, MouseButtonLeft, false, 0)
}

// InjectRelease queues a left-button release at the given screen coordinates.
func (in *EbitenInput) InjectRelease(x, y float64) {
	in.InjectButton(x, y, MouseButtonLeft, false, 0)
}

// InjectButton queues a pointer event with an explicit button state and
// modifiers.
func (in *EbitenInput) InjectButton(x, y float64, button MouseButton, pressed bool, mods KeyModifiers) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{
		kind:    synthPointer,
		screen:  Point{x, y},
		pressed: pressed,
		button:  button,
		mods:    mods,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (in *EbitenInput) InjectClick(x, y float64) {
	in.InjectPress(x, y)
	in.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The total sequence consumes frames frames; the minimum is 2.
func (in *EbitenInput) InjectDrag(fromX, fromY, toX, toY float64, frames int, mods KeyModifiers) {
	if frames < 2 {
		frames = 2
	}
	in.InjectButton(fromX, fromY, MouseButtonLeft, true, mods)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		in.InjectButton(x, y, MouseButtonLeft, true, mods)
	}
	in.InjectButton(toX, toY, MouseButtonLeft, false, mods)
}

// InjectKey queues a key press and its release. Consumes two frames.
func (in *EbitenInput) InjectKey(name string, mods KeyModifiers) {
	k := NormalizeKey(name)
	in.injectQueue = append(in.injectQueue,
		syntheticEvent{kind: synthKeyDown, key: k, mods: mods},
		syntheticEvent{kind: synthKeyUp, key: k, mods: mods},
	)
}

// InjectWheel queues a wheel event of (dx, dy) screen pixels at the given
// screen coordinates.
func (in *EbitenInput) InjectWheel(x, y, dx, dy float64, mods KeyModifiers) {
	in.injectQueue = append(in.injectQueue, syntheticEvent{
		kind:   synthWheel,
		screen: Point{x, y},
		wheel:  Point{dx, dy},
		mods:   mods,
	})
}

// Pending returns the number of queued synthetic events.
func (in *EbitenInput) Pending() int { return len(in.injectQueue) }

// popInjected pops one event from the inject queue as a full input frame.
// Returns false when the queue is empty so real input is read instead.
func (in *EbitenInput) popInjected() (inputFrame, bool) {
	if len(in.injectQueue) == 0 {
		return inputFrame{}, false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	f := inputFrame{screen: in.last, focused: in.focused, mods: evt.mods}
	switch evt.kind {
	case synthPointer:
		f.screen = evt.screen
		f.setButton(evt.button, evt.pressed)
	case synthKeyDown:
		f.setButton(in.button, in.down)
		f.keysDown = []Key{evt.key}
	case synthKeyUp:
		f.setButton(in.button, in.down)
		f.keysUp = []Key{evt.key}
	case synthWheel:
		f.screen = evt.screen
		f.setButton(in.button, in.down)
		f.wheelX, f.wheelY = evt.wheel.X, evt.wheel.Y
	}
	return f, true
}
