package easel

import "strings"

// Key is a normalized key name: lowercase letters and digits ("a", "1"),
// punctuation as typed ("=", "-", "[", "]"), and lowercase names for the
// rest ("delete", "backspace", "escape", "space", "arrowleft", "shift").
type Key string

// Named keys used by the default shortcuts and the state machine.
const (
	KeyEscape     Key = "escape"
	KeyDelete     Key = "delete"
	KeyBackspace  Key = "backspace"
	KeySpace      Key = "space"
	KeyEnter      Key = "enter"
	KeyArrowLeft  Key = "arrowleft"
	KeyArrowRight Key = "arrowright"
	KeyArrowUp    Key = "arrowup"
	KeyArrowDown  Key = "arrowdown"
	KeyShift      Key = "shift"
	KeyControl    Key = "control"
	KeyAlt        Key = "alt"
	KeyMeta       Key = "meta"
)

// NormalizeKey lowercases a key name and maps common aliases ("Esc", "Del",
// " ", "Left", "Cmd", ...) onto the names above.
func NormalizeKey(name string) Key {
	k := strings.ToLower(strings.TrimSpace(name))
	if name == " " {
		return KeySpace
	}
	switch k {
	case "esc":
		return KeyEscape
	case "del":
		return KeyDelete
	case "return":
		return KeyEnter
	case "left":
		return KeyArrowLeft
	case "right":
		return KeyArrowRight
	case "up":
		return KeyArrowUp
	case "down":
		return KeyArrowDown
	case "ctrl":
		return KeyControl
	case "cmd", "command", "super", "os":
		return KeyMeta
	case "option":
		return KeyAlt
	}
	return Key(k)
}

// modifierForKey returns the modifier a modifier key produces.
func modifierForKey(k Key) KeyModifiers {
	switch k {
	case KeyShift:
		return ModShift
	case KeyControl:
		return ModCtrl
	case KeyAlt:
		return ModAlt
	case KeyMeta:
		return ModMeta
	}
	return 0
}

// Command names an action the keyboard can trigger.
type Command string

// Built-in commands.
const (
	CommandSelectAll       Command = "selectAll"
	CommandDelete          Command = "delete"
	CommandZoomToFit       Command = "zoomToFit"
	CommandZoomToSelection Command = "zoomToSelection"
	CommandZoomIn          Command = "zoomIn"
	CommandZoomOut         Command = "zoomOut"
	CommandResetZoom       Command = "resetZoom"
	CommandCancel          Command = "cancel"
	CommandNudgeLeft       Command = "nudgeLeft"
	CommandNudgeRight      Command = "nudgeRight"
	CommandNudgeUp         Command = "nudgeUp"
	CommandNudgeDown       Command = "nudgeDown"
	CommandNudgeLeftLarge  Command = "nudgeLeftLarge"
	CommandNudgeRightLarge Command = "nudgeRightLarge"
	CommandNudgeUpLarge    Command = "nudgeUpLarge"
	CommandNudgeDownLarge  Command = "nudgeDownLarge"
	CommandDuplicate       Command = "duplicate"
	CommandBringToFront    Command = "bringToFront"
	CommandSendToBack      Command = "sendToBack"
	CommandHandTool        Command = "handTool"
)

// Shortcut binds a key plus an exact modifier set to a command.
type Shortcut struct {
	Key       Key
	Modifiers KeyModifiers
	Command   Command
}

// DefaultShortcuts returns the built-in shortcut table. Both Ctrl and Meta
// variants are listed for command-style shortcuts.
func DefaultShortcuts() []Shortcut {
	return []Shortcut{
		{Key: "a", Modifiers: ModMeta, Command: CommandSelectAll},
		{Key: "a", Modifiers: ModCtrl, Command: CommandSelectAll},
		{Key: KeyDelete, Command: CommandDelete},
		{Key: KeyBackspace, Command: CommandDelete},
		{Key: "1", Command: CommandZoomToFit},
		{Key: "2", Command: CommandZoomToSelection},
		{Key: "=", Modifiers: ModMeta, Command: CommandZoomIn},
		{Key: "=", Modifiers: ModCtrl, Command: CommandZoomIn},
		{Key: "-", Modifiers: ModMeta, Command: CommandZoomOut},
		{Key: "-", Modifiers: ModCtrl, Command: CommandZoomOut},
		{Key: "0", Modifiers: ModMeta, Command: CommandResetZoom},
		{Key: "0", Modifiers: ModCtrl, Command: CommandResetZoom},
		{Key: KeyEscape, Command: CommandCancel},
		{Key: KeyArrowLeft, Command: CommandNudgeLeft},
		{Key: KeyArrowRight, Command: CommandNudgeRight},
		{Key: KeyArrowUp, Command: CommandNudgeUp},
		{Key: KeyArrowDown, Command: CommandNudgeDown},
		{Key: KeyArrowLeft, Modifiers: ModShift, Command: CommandNudgeLeftLarge},
		{Key: KeyArrowRight, Modifiers: ModShift, Command: CommandNudgeRightLarge},
		{Key: KeyArrowUp, Modifiers: ModShift, Command: CommandNudgeUpLarge},
		{Key: KeyArrowDown, Modifiers: ModShift, Command: CommandNudgeDownLarge},
		{Key: "d", Modifiers: ModMeta, Command: CommandDuplicate},
		{Key: "d", Modifiers: ModCtrl, Command: CommandDuplicate},
		{Key: "]", Command: CommandBringToFront},
		{Key: "[", Command: CommandSendToBack},
		{Key: "h", Command: CommandHandTool},
	}
}

// KeyEvent is a key press or release.
type KeyEvent struct {
	Key       Key
	Modifiers KeyModifiers
	Target    EventTarget
	Repeat    bool
}

// KeyboardDispatcher maps key presses to commands through a fixed shortcut
// table and tracks which keys are held.
type KeyboardDispatcher struct {
	shortcuts []Shortcut
	handlers  map[Command]func(KeyEvent)
	pressed   map[Key]struct{}
}

// NewKeyboardDispatcher creates a dispatcher over the given table. A nil
// table uses DefaultShortcuts.
func NewKeyboardDispatcher(shortcuts []Shortcut) *KeyboardDispatcher {
	if shortcuts == nil {
		shortcuts = DefaultShortcuts()
	}
	table := make([]Shortcut, len(shortcuts))
	for i, sc := range shortcuts {
		sc.Key = NormalizeKey(string(sc.Key))
		table[i] = sc
	}
	return &KeyboardDispatcher{
		shortcuts: table,
		handlers:  make(map[Command]func(KeyEvent)),
		pressed:   make(map[Key]struct{}),
	}
}

// Bind registers fn as the handler for cmd, replacing any previous handler.
// A nil fn unbinds the command.
func (d *KeyboardDispatcher) Bind(cmd Command, fn func(KeyEvent)) {
	if fn == nil {
		delete(d.handlers, cmd)
		return
	}
	d.handlers[cmd] = fn
}

// Lookup returns the command of the first shortcut whose key matches and
// whose modifier set equals mods exactly.
func (d *KeyboardDispatcher) Lookup(k Key, mods KeyModifiers) (Command, bool) {
	k = NormalizeKey(string(k))
	for _, sc := range d.shortcuts {
		if sc.Key == k && sc.Modifiers == mods {
			return sc.Command, true
		}
	}
	return "", false
}

// Observe records a key press in the pressed-key set without dispatching.
// Presses aimed at editable targets are not recorded.
func (d *KeyboardDispatcher) Observe(ev KeyEvent) {
	if isEditable(ev.Target) {
		return
	}
	d.pressed[NormalizeKey(string(ev.Key))] = struct{}{}
}

// Dispatch runs the handler bound to the shortcut matching ev. It reports
// whether the event was consumed. Events aimed at editable targets are never
// intercepted.
func (d *KeyboardDispatcher) Dispatch(ev KeyEvent) bool {
	if isEditable(ev.Target) {
		return false
	}
	cmd, ok := d.Lookup(ev.Key, ev.Modifiers)
	if !ok {
		return false
	}
	fn, ok := d.handlers[cmd]
	if !ok {
		return false
	}
	fn(ev)
	return true
}

// KeyDown observes and dispatches a key press.
func (d *KeyboardDispatcher) KeyDown(ev KeyEvent) bool {
	d.Observe(ev)
	return d.Dispatch(ev)
}

// KeyUp removes the key from the pressed set.
func (d *KeyboardDispatcher) KeyUp(ev KeyEvent) {
	delete(d.pressed, NormalizeKey(string(ev.Key)))
}

// IsKeyPressed reports whether k is currently held.
func (d *KeyboardDispatcher) IsKeyPressed(k Key) bool {
	_, ok := d.pressed[NormalizeKey(string(k))]
	return ok
}

// CurrentModifiers derives the modifier set from the held modifier keys.
func (d *KeyboardDispatcher) CurrentModifiers() KeyModifiers {
	var mods KeyModifiers
	for k := range d.pressed {
		mods |= modifierForKey(k)
	}
	return mods
}

// Reset forgets every held key. Call it when the window loses or regains
// focus; key releases that happen while unfocused are never delivered.
func (d *KeyboardDispatcher) Reset() {
	clear(d.pressed)
}
