package core

import (
	"image/color"

	"showcase/gfx"
	"showcase/hal"
	"showcase/loop"
)

type inputKeys struct {
	ball gfx.Vector2
}

func (d *inputKeys) Load(ctx *loop.Context) error {
	d.ball = gfx.Vector2{X: float32(ctx.ScreenWidth()) / 2, Y: float32(ctx.ScreenHeight()) / 2}
	ctx.SetTargetFPS(60)
	return nil
}

func (d *inputKeys) Update(ctx *loop.Context) {
	if ctx.IsKeyDown(hal.KeyRight) {
		d.ball.X += 2
	}
	if ctx.IsKeyDown(hal.KeyLeft) {
		d.ball.X -= 2
	}
	if ctx.IsKeyDown(hal.KeyUp) {
		d.ball.Y -= 2
	}
	if ctx.IsKeyDown(hal.KeyDown) {
		d.ball.Y += 2
	}
}

func (d *inputKeys) Draw(_ *loop.Context, c *gfx.Canvas) {
	c.ClearBackground(gfx.RayWhite)
	c.DrawText("move the ball with arrow keys", 10, 10, 20, gfx.DarkGray)
	c.DrawCircleV(d.ball, 50, gfx.Maroon)
}

type inputMouse struct {
	ball  gfx.Vector2
	color color.RGBA
}

func (d *inputMouse) Load(ctx *loop.Context) error {
	d.ball = gfx.Vector2{X: -100, Y: -100}
	d.color = gfx.DarkBlue
	ctx.SetTargetFPS(60)
	return nil
}

func (d *inputMouse) Update(ctx *loop.Context) {
	d.ball = ctx.MousePosition()
	switch {
	case ctx.IsMouseButtonPressed(hal.MouseLeft):
		d.color = gfx.Maroon
	case ctx.IsMouseButtonPressed(hal.MouseMiddle):
		d.color = gfx.Lime
	case ctx.IsMouseButtonPressed(hal.MouseRight):
		d.color = gfx.DarkBlue
	}
}

func (d *inputMouse) Draw(_ *loop.Context, c *gfx.Canvas) {
	c.ClearBackground(gfx.RayWhite)
	c.DrawCircleV(d.ball, 40, d.color)
	c.DrawText("move ball with mouse and click mouse button to change color", 10, 10, 20, gfx.DarkGray)
}
