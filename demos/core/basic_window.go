package core

import (
	"showcase/gfx"
	"showcase/loop"
)

type basicWindow struct{}

func (d *basicWindow) Load(ctx *loop.Context) error {
	ctx.SetTargetFPS(60)
	return nil
}

func (d *basicWindow) Update(*loop.Context) {}

func (d *basicWindow) Draw(_ *loop.Context, c *gfx.Canvas) {
	c.ClearBackground(gfx.RayWhite)
	c.DrawText("Congrats! You created your first window!", 190, 200, 20, gfx.LightGray)
}
