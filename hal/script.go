package hal

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Script event types.
const (
	EventKeyDown   = "key_down"
	EventKeyUp     = "key_up"
	EventKeyTap    = "key_tap"
	EventMouseDown = "mouse_down"
	EventMouseUp   = "mouse_up"
	EventMouseTap  = "mouse_tap"
	EventMouseMove = "mouse_move"
	EventWheel     = "wheel"
	EventChar      = "char"
	EventClose     = "close"
)

// ScriptEvent is one input change applied at the start of a frame.
// Frames are counted from 1, matching InputState.Frame.
type ScriptEvent struct {
	Frame  uint64  `json:"frame"`
	Type   string  `json:"type"`
	Key    string  `json:"key,omitempty"`
	Button string  `json:"button,omitempty"`
	X      int     `json:"x,omitempty"`
	Y      int     `json:"y,omitempty"`
	Wheel  float64 `json:"wheel,omitempty"`
	Char   string  `json:"char,omitempty"`
}

// Script is a recorded or hand-written input sequence.
type Script struct {
	Events []ScriptEvent `json:"events"`
}

// LoadScript reads a JSON script file.
func LoadScript(path string) (*Script, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Script
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return &s, nil
}

// Save writes the script as indented JSON.
func (s *Script) Save(path string) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// Validate checks event types and key/button names.
func (s *Script) Validate() error {
	for i, ev := range s.Events {
		if ev.Frame == 0 {
			return fmt.Errorf("event %d: frame must be >= 1", i)
		}
		switch ev.Type {
		case EventKeyDown, EventKeyUp, EventKeyTap:
			if _, ok := ParseKey(ev.Key); !ok {
				return fmt.Errorf("event %d: unknown key %q", i, ev.Key)
			}
		case EventMouseDown, EventMouseUp, EventMouseTap:
			if _, ok := ParseMouseButton(ev.Button); !ok {
				return fmt.Errorf("event %d: unknown button %q", i, ev.Button)
			}
		case EventMouseMove, EventWheel, EventClose:
		case EventChar:
			if ev.Char == "" {
				return fmt.Errorf("event %d: empty char", i)
			}
		default:
			return fmt.Errorf("event %d: unknown type %q", i, ev.Type)
		}
	}
	return nil
}

// Frames returns the last frame referenced by the script.
func (s *Script) Frames() uint64 {
	var n uint64
	for _, ev := range s.Events {
		if ev.Frame > n {
			n = ev.Frame
		}
	}
	return n
}

func (s *Script) add(ev ScriptEvent) *Script {
	s.Events = append(s.Events, ev)
	return s
}

func (s *Script) KeyDown(frame uint64, k KeyCode) *Script {
	return s.add(ScriptEvent{Frame: frame, Type: EventKeyDown, Key: k.String()})
}

func (s *Script) KeyUp(frame uint64, k KeyCode) *Script {
	return s.add(ScriptEvent{Frame: frame, Type: EventKeyUp, Key: k.String()})
}

// KeyTap holds k down for exactly one frame.
func (s *Script) KeyTap(frame uint64, k KeyCode) *Script {
	return s.add(ScriptEvent{Frame: frame, Type: EventKeyTap, Key: k.String()})
}

func (s *Script) MouseTap(frame uint64, b MouseButton) *Script {
	return s.add(ScriptEvent{Frame: frame, Type: EventMouseTap, Button: b.String()})
}

func (s *Script) MouseMove(frame uint64, x, y int) *Script {
	return s.add(ScriptEvent{Frame: frame, Type: EventMouseMove, X: x, Y: y})
}

// Wheel scrolls by delta notches; positive is away from the user.
func (s *Script) Wheel(frame uint64, delta float64) *Script {
	return s.add(ScriptEvent{Frame: frame, Type: EventWheel, Wheel: delta})
}

func (s *Script) Close(frame uint64) *Script {
	return s.add(ScriptEvent{Frame: frame, Type: EventClose})
}

// scriptInput replays a script as a level-state device.
type scriptInput struct {
	events []ScriptEvent
	next   int
	cur    rawInput

	keyTaps   []KeyCode
	mouseTaps []MouseButton
}

func newScriptInput(s *Script) *scriptInput {
	in := &scriptInput{}
	if s != nil {
		in.events = append([]ScriptEvent(nil), s.Events...)
		sort.SliceStable(in.events, func(i, j int) bool { return in.events[i].Frame < in.events[j].Frame })
	}
	return in
}

func (in *scriptInput) sample(frame uint64) rawInput {
	for _, k := range in.keyTaps {
		in.cur.keys[k] = false
	}
	for _, b := range in.mouseTaps {
		in.cur.mouse[b] = false
	}
	in.keyTaps = in.keyTaps[:0]
	in.mouseTaps = in.mouseTaps[:0]
	in.cur.wheel = 0
	in.cur.chars = nil
	in.cur.closeRequested = false

	for in.next < len(in.events) && in.events[in.next].Frame <= frame {
		ev := in.events[in.next]
		in.next++
		switch ev.Type {
		case EventKeyDown, EventKeyUp, EventKeyTap:
			k, _ := ParseKey(ev.Key)
			in.cur.keys[k] = ev.Type != EventKeyUp
			if ev.Type == EventKeyTap {
				in.keyTaps = append(in.keyTaps, k)
			}
		case EventMouseDown, EventMouseUp, EventMouseTap:
			b, _ := ParseMouseButton(ev.Button)
			in.cur.mouse[b] = ev.Type != EventMouseUp
			if ev.Type == EventMouseTap {
				in.mouseTaps = append(in.mouseTaps, b)
			}
		case EventMouseMove:
			in.cur.mouseX, in.cur.mouseY = ev.X, ev.Y
		case EventWheel:
			in.cur.wheel += ev.Wheel
		case EventChar:
			in.cur.chars = append(in.cur.chars, []rune(ev.Char)...)
		case EventClose:
			in.cur.closeRequested = true
		}
	}
	return in.cur
}

// scriptRecorder records level-state changes as script events.
type scriptRecorder struct {
	prev   rawInput
	script Script
}

func (r *scriptRecorder) observe(frame uint64, cur rawInput) {
	for k := range cur.keys {
		if cur.keys[k] == r.prev.keys[k] {
			continue
		}
		if cur.keys[k] {
			r.script.KeyDown(frame, KeyCode(k))
		} else {
			r.script.KeyUp(frame, KeyCode(k))
		}
	}
	for b := range cur.mouse {
		if cur.mouse[b] == r.prev.mouse[b] {
			continue
		}
		typ := EventMouseUp
		if cur.mouse[b] {
			typ = EventMouseDown
		}
		r.script.add(ScriptEvent{Frame: frame, Type: typ, Button: MouseButton(b).String()})
	}
	if cur.mouseX != r.prev.mouseX || cur.mouseY != r.prev.mouseY {
		r.script.MouseMove(frame, cur.mouseX, cur.mouseY)
	}
	if cur.wheel != 0 {
		r.script.add(ScriptEvent{Frame: frame, Type: EventWheel, Wheel: cur.wheel})
	}
	if len(cur.chars) > 0 {
		r.script.add(ScriptEvent{Frame: frame, Type: EventChar, Char: string(cur.chars)})
	}
	if cur.closeRequested {
		r.script.Close(frame)
	}
	r.prev = cur
}
