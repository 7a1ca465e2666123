// Package core holds the window, input and timing demos.
package core

import (
	"showcase/demos"
	"showcase/hal"
	"showcase/loop"
)

func Register(c *demos.Catalog) {
	c.Register(demos.Entry{Name: "core/basic_window", New: func() loop.Demo { return &basicWindow{} }})
	c.Register(demos.Entry{
		Name:  "core/window_should_close",
		New:   func() loop.Demo { return &windowShouldClose{} },
		Smoke: confirmExitScript,
	})
	c.Register(demos.Entry{
		Name: "core/input_keys",
		New:  func() loop.Demo { return &inputKeys{} },
		Smoke: func() *hal.Script {
			return (&hal.Script{}).KeyDown(2, hal.KeyRight).KeyDown(4, hal.KeyUp).KeyUp(20, hal.KeyRight).KeyUp(20, hal.KeyUp)
		},
	})
	c.Register(demos.Entry{
		Name: "core/input_mouse",
		New:  func() loop.Demo { return &inputMouse{} },
		Smoke: func() *hal.Script {
			return (&hal.Script{}).MouseMove(2, 100, 120).MouseTap(3, hal.MouseLeft).
				MouseTap(5, hal.MouseMiddle).MouseTap(7, hal.MouseRight)
		},
	})
	c.Register(demos.Entry{
		Name: "core/random_sequence",
		New:  func() loop.Demo { return &randomSequence{} },
		Smoke: func() *hal.Script {
			return (&hal.Script{}).KeyTap(2, hal.KeySpace).KeyTap(4, hal.KeyUp).
				KeyTap(6, hal.KeyDown).KeyTap(7, hal.KeyDown)
		},
	})
	c.Register(demos.Entry{
		Name: "core/custom_frame_control",
		New:  func() loop.Demo { return &customFrameControl{} },
		Smoke: func() *hal.Script {
			return (&hal.Script{}).KeyTap(2, hal.KeyUp).KeyTap(5, hal.KeySpace).KeyTap(8, hal.KeySpace).KeyTap(9, hal.KeyDown)
		},
	})
}

// confirmExitScript asks to close, declines, asks again and accepts.
func confirmExitScript() *hal.Script {
	return (&hal.Script{}).
		KeyTap(2, hal.KeyEscape).
		KeyTap(4, hal.KeyN).
		Close(6).
		KeyTap(8, hal.KeyY)
}
