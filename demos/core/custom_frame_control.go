package core

import (
	"fmt"

	"showcase/gfx"
	"showcase/hal"
	"showcase/loop"
)

// customFrameControl moves a circle at a fixed speed whatever the frame
// rate. The host paces frames; the demo only picks the target rate.
type customFrameControl struct {
	position    float32
	timeCounter float32
	pause       bool
	targetFPS   int
}

const minTargetFPS = 20

func (d *customFrameControl) Load(ctx *loop.Context) error {
	d.targetFPS = 60
	ctx.SetTargetFPS(d.targetFPS)
	return nil
}

func (d *customFrameControl) Update(ctx *loop.Context) {
	if ctx.IsKeyPressed(hal.KeySpace) {
		d.pause = !d.pause
	}
	switch {
	case ctx.IsKeyPressed(hal.KeyUp):
		d.targetFPS += 20
		ctx.SetTargetFPS(d.targetFPS)
	case ctx.IsKeyPressed(hal.KeyDown):
		d.targetFPS = max(d.targetFPS-20, minTargetFPS)
		ctx.SetTargetFPS(d.targetFPS)
	}

	if !d.pause {
		dt := ctx.FrameTime()
		d.position += 200 * dt
		if d.position >= float32(ctx.ScreenWidth()) {
			d.position = 0
		}
		d.timeCounter += dt
	}
}

func (d *customFrameControl) Draw(ctx *loop.Context, c *gfx.Canvas) {
	w, h := ctx.ScreenWidth(), ctx.ScreenHeight()
	pos := int(d.position)

	c.ClearBackground(gfx.RayWhite)
	for i := 0; i < w/200; i++ {
		c.DrawRectangle(200*i, 0, 1, h, gfx.SkyBlue)
	}
	c.DrawCircle(pos, h/2-25, 50, gfx.Red)
	c.DrawText(fmt.Sprintf("%03.0f ms", d.timeCounter*1000), pos-40, h/2-100, 20, gfx.Maroon)
	c.DrawText(fmt.Sprintf("PosX: %03.0f", d.position), pos-50, h/2+40, 20, gfx.Black)

	c.DrawText("Circle is moving at a constant 200 pixels/sec,\nindependently of the frame rate.", 10, 10, 20, gfx.DarkGray)
	c.DrawText("PRESS SPACE to PAUSE MOVEMENT", 10, h-60, 20, gfx.Gray)
	c.DrawText("PRESS UP | DOWN to CHANGE TARGET FPS", 10, h-30, 20, gfx.Gray)
	c.DrawText(fmt.Sprintf("TARGET FPS: %d", d.targetFPS), w-220, 10, 20, gfx.Lime)
	current := 0
	if dt := ctx.FrameTime(); dt > 0 {
		current = int(1 / dt)
	}
	c.DrawText(fmt.Sprintf("CURRENT FPS: %d", current), w-220, 40, 20, gfx.Green)
}
