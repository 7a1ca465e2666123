package core

import (
	"showcase/gfx"
	"showcase/hal"
	"showcase/loop"
)

// windowShouldClose takes over close requests and asks before quitting.
type windowShouldClose struct {
	prompt loop.ExitPrompt
}

func (d *windowShouldClose) Load(ctx *loop.Context) error {
	ctx.SetExitKey(hal.KeyNone)
	ctx.SetCloseHandled(true)
	ctx.SetTargetFPS(60)
	return nil
}

func (d *windowShouldClose) Update(ctx *loop.Context) {
	requested := ctx.WindowShouldClose() || ctx.IsKeyPressed(hal.KeyEscape)
	if d.prompt.Update(requested, ctx.IsKeyPressed(hal.KeyY), ctx.IsKeyPressed(hal.KeyN)) == loop.ExitClose {
		ctx.Quit()
	}
}

func (d *windowShouldClose) Draw(ctx *loop.Context, c *gfx.Canvas) {
	c.ClearBackground(gfx.RayWhite)
	if d.prompt.State() == loop.ExitConfirm {
		c.DrawRectangle(0, 100, ctx.ScreenWidth(), 200, gfx.Black)
		c.DrawText("Are you sure you want to exit program? [Y/N]", 40, 180, 30, gfx.White)
		return
	}
	c.DrawText("Try to close the window to get confirmation message!", 120, 200, 20, gfx.LightGray)
}
