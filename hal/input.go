package hal

import "strings"

// KeyCode is a host-independent key identifier.
type KeyCode uint16

const (
	KeyNone KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeySpace
	KeyBackspace
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
	KeyF1
	KeyF2
	KeyF3
	KeyF11
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	keyCount
)

var keyNames = [keyCount]string{
	KeyNone:      "NONE",
	KeyUp:        "UP",
	KeyDown:      "DOWN",
	KeyLeft:      "LEFT",
	KeyRight:     "RIGHT",
	KeyEnter:     "ENTER",
	KeyEscape:    "ESCAPE",
	KeySpace:     "SPACE",
	KeyBackspace: "BACKSPACE",
	KeyTab:       "TAB",
	KeyDelete:    "DELETE",
	KeyHome:      "HOME",
	KeyEnd:       "END",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF11:       "F11",
}

func init() {
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune('A' + int(k-KeyA)))
	}
	for k := Key0; k <= Key9; k++ {
		keyNames[k] = string(rune('0' + int(k-Key0)))
	}
}

func (k KeyCode) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "UNKNOWN"
}

// ParseKey resolves a key name as produced by KeyCode.String.
func ParseKey(name string) (KeyCode, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for k := KeyNone; k < keyCount; k++ {
		if keyNames[k] == name {
			return k, true
		}
	}
	return KeyNone, false
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle

	mouseCount
)

var mouseNames = [mouseCount]string{"LEFT", "RIGHT", "MIDDLE"}

func (b MouseButton) String() string {
	if b < mouseCount {
		return mouseNames[b]
	}
	return "UNKNOWN"
}

// ParseMouseButton resolves a button name as produced by MouseButton.String.
func ParseMouseButton(name string) (MouseButton, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for b := MouseLeft; b < mouseCount; b++ {
		if mouseNames[b] == name {
			return b, true
		}
	}
	return 0, false
}

// InputState is an immutable snapshot of the input devices for one frame.
type InputState struct {
	Frame uint64

	keyDown     [keyCount]bool
	keyPressed  [keyCount]bool
	keyReleased [keyCount]bool

	mouseDown     [mouseCount]bool
	mousePressed  [mouseCount]bool
	mouseReleased [mouseCount]bool

	mouseX, mouseY int
	wheel          float64
	chars          []rune
	closeRequested bool
}

func (s InputState) IsKeyDown(k KeyCode) bool     { return k < keyCount && s.keyDown[k] }
func (s InputState) IsKeyPressed(k KeyCode) bool  { return k < keyCount && s.keyPressed[k] }
func (s InputState) IsKeyReleased(k KeyCode) bool { return k < keyCount && s.keyReleased[k] }
func (s InputState) IsKeyUp(k KeyCode) bool       { return !s.IsKeyDown(k) }

func (s InputState) IsMouseButtonDown(b MouseButton) bool {
	return b < mouseCount && s.mouseDown[b]
}

func (s InputState) IsMouseButtonPressed(b MouseButton) bool {
	return b < mouseCount && s.mousePressed[b]
}

func (s InputState) IsMouseButtonReleased(b MouseButton) bool {
	return b < mouseCount && s.mouseReleased[b]
}

func (s InputState) MousePosition() (x, y int) { return s.mouseX, s.mouseY }
func (s InputState) WheelMove() float64        { return s.wheel }

// CloseRequested reports a click on the window close button during this frame.
func (s InputState) CloseRequested() bool { return s.closeRequested }

// Chars returns the characters typed during this frame.
func (s InputState) Chars() []rune { return append([]rune(nil), s.chars...) }

// PressedKeys returns the keys pressed during this frame in key order.
func (s InputState) PressedKeys() []KeyCode {
	var out []KeyCode
	for k := KeyNone + 1; k < keyCount; k++ {
		if s.keyPressed[k] {
			out = append(out, k)
		}
	}
	return out
}

// rawInput is the level state sampled from a device.
type rawInput struct {
	keys           [keyCount]bool
	mouse          [mouseCount]bool
	mouseX, mouseY int
	wheel          float64
	chars          []rune
	closeRequested bool
}

// inputTracker turns level samples into snapshots with edge information.
type inputTracker struct {
	frame uint64
	prev  rawInput
}

func (t *inputTracker) next(cur rawInput) InputState {
	t.frame++
	s := InputState{
		Frame:          t.frame,
		keyDown:        cur.keys,
		mouseDown:      cur.mouse,
		mouseX:         cur.mouseX,
		mouseY:         cur.mouseY,
		wheel:          cur.wheel,
		chars:          append([]rune(nil), cur.chars...),
		closeRequested: cur.closeRequested,
	}
	for k := range cur.keys {
		s.keyPressed[k] = cur.keys[k] && !t.prev.keys[k]
		s.keyReleased[k] = !cur.keys[k] && t.prev.keys[k]
	}
	for b := range cur.mouse {
		s.mousePressed[b] = cur.mouse[b] && !t.prev.mouse[b]
		s.mouseReleased[b] = !cur.mouse[b] && t.prev.mouse[b]
	}
	t.prev = cur
	t.prev.chars = nil
	return s
}
