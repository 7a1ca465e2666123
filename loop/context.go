package loop

import (
	"time"

	"github.com/rs/zerolog"

	"showcase/assets"
	"showcase/gfx"
	"showcase/hal"
)

// Context is what a demo sees of the running application. The input
// snapshot it exposes is taken once per frame and does not change until
// the next frame.
type Context struct {
	Assets *assets.Loader
	Log    zerolog.Logger

	win    hal.Window
	in     hal.InputState
	width  int
	height int

	now       time.Duration
	frameTime time.Duration
	fps       int
	frame     uint64

	exitKey      hal.KeyCode
	closeHandled bool
	quit         bool
}

// Input returns the snapshot for the current frame.
func (c *Context) Input() hal.InputState { return c.in }

func (c *Context) IsKeyPressed(k hal.KeyCode) bool  { return c.in.IsKeyPressed(k) }
func (c *Context) IsKeyDown(k hal.KeyCode) bool     { return c.in.IsKeyDown(k) }
func (c *Context) IsKeyReleased(k hal.KeyCode) bool { return c.in.IsKeyReleased(k) }

func (c *Context) IsMouseButtonPressed(b hal.MouseButton) bool  { return c.in.IsMouseButtonPressed(b) }
func (c *Context) IsMouseButtonDown(b hal.MouseButton) bool     { return c.in.IsMouseButtonDown(b) }
func (c *Context) IsMouseButtonReleased(b hal.MouseButton) bool { return c.in.IsMouseButtonReleased(b) }

func (c *Context) MousePosition() gfx.Vector2 {
	x, y := c.in.MousePosition()
	return gfx.Vector2{X: float32(x), Y: float32(y)}
}

func (c *Context) MouseWheelMove() float32 { return float32(c.in.WheelMove()) }

func (c *Context) ScreenWidth() int  { return c.width }
func (c *Context) ScreenHeight() int { return c.height }

// FrameTime returns the seconds elapsed since the previous frame.
func (c *Context) FrameTime() float32 { return float32(c.frameTime.Seconds()) }

// Time returns the seconds elapsed since the application started.
func (c *Context) Time() float64 { return c.now.Seconds() }

// FPS returns the frame rate averaged over the last frames.
func (c *Context) FPS() int { return c.fps }

// Frame returns the number of the current frame, starting at 1.
func (c *Context) Frame() uint64 { return c.frame }

func (c *Context) SetTargetFPS(fps int) { c.win.SetTargetRate(fps) }
func (c *Context) TargetFPS() int       { return c.win.TargetRate() }

func (c *Context) SetWindowTitle(title string) { c.win.SetTitle(title) }

// SetExitKey changes the key that closes the application;
// hal.KeyNone disables it.
func (c *Context) SetExitKey(k hal.KeyCode) { c.exitKey = k }

// SetCloseHandled makes the demo responsible for close requests: the loop
// no longer stops on them and the demo ends the run with Quit.
func (c *Context) SetCloseHandled(handled bool) {
	c.closeHandled = handled
	c.win.SetCloseHandled(handled)
}

// WindowShouldClose reports a close request during this frame: the window
// close button or the exit key.
func (c *Context) WindowShouldClose() bool {
	if c.in.CloseRequested() {
		return true
	}
	return c.exitKey != hal.KeyNone && c.in.IsKeyPressed(c.exitKey)
}

// Quit stops the loop after the current update.
func (c *Context) Quit() { c.quit = true }

// shouldClose is the loop termination condition.
func (c *Context) shouldClose() bool {
	return c.quit || (!c.closeHandled && c.WindowShouldClose())
}

func (c *Context) RandomValue(lo, hi int) int { return c.Assets.GetRandomValue(lo, hi) }
