package textures

import (
	"fmt"
	"image/color"

	"showcase/gfx"
	"showcase/hal"
	"showcase/loop"
)

const (
	gameWidth  = 320
	gameHeight = 180
	numBars    = 10
)

// renderTexture draws a low resolution scene into a render texture and
// scales it to fit the window, keeping the aspect ratio.
type renderTexture struct {
	target gfx.RenderTexture
	colors [numBars]color.RGBA
	mouse  gfx.Vector2
	virt   gfx.Vector2
}

func (d *renderTexture) Load(ctx *loop.Context) error {
	d.target = ctx.Assets.LoadRenderTexture(gameWidth, gameHeight)
	d.randomize(ctx)
	ctx.SetTargetFPS(60)
	return nil
}

func (d *renderTexture) Unload(ctx *loop.Context) error {
	ctx.Assets.UnloadRenderTexture(d.target)
	return nil
}

func (d *renderTexture) randomize(ctx *loop.Context) {
	for i := range d.colors {
		d.colors[i] = color.RGBA{
			R: uint8(ctx.RandomValue(100, 250)),
			G: uint8(ctx.RandomValue(50, 150)),
			B: uint8(ctx.RandomValue(10, 100)),
			A: 255,
		}
	}
}

func (d *renderTexture) scale(ctx *loop.Context) float32 {
	return min(float32(ctx.ScreenWidth())/gameWidth, float32(ctx.ScreenHeight())/gameHeight)
}

func (d *renderTexture) Update(ctx *loop.Context) {
	if ctx.IsKeyPressed(hal.KeySpace) {
		d.randomize(ctx)
	}
	s := d.scale(ctx)
	d.mouse = ctx.MousePosition()
	d.virt = gfx.Vector2{
		X: (d.mouse.X - (float32(ctx.ScreenWidth())-gameWidth*s)/2) / s,
		Y: (d.mouse.Y - (float32(ctx.ScreenHeight())-gameHeight*s)/2) / s,
	}
	d.virt.X = max(0, min(d.virt.X, gameWidth))
	d.virt.Y = max(0, min(d.virt.Y, gameHeight))
}

func (d *renderTexture) Draw(ctx *loop.Context, c *gfx.Canvas) {
	c.BeginTextureMode(d.target)
	c.ClearBackground(gfx.RayWhite)
	for i, col := range d.colors {
		c.DrawRectangle(0, gameHeight/numBars*i, gameWidth, gameHeight/numBars, col)
	}
	c.DrawText("If executed inside a window,\nyou can resize the window,\nand see the screen scaling!", 10, 25, 20, gfx.White)
	c.DrawText(fmt.Sprintf("Default Mouse: [%d , %d]", int(d.mouse.X), int(d.mouse.Y)), 10, 130, 10, gfx.Green)
	c.DrawText(fmt.Sprintf("Virtual Mouse: [%d , %d]", int(d.virt.X), int(d.virt.Y)), 10, 145, 10, gfx.Yellow)
	c.EndTextureMode()

	s := d.scale(ctx)
	w, h := float32(ctx.ScreenWidth()), float32(ctx.ScreenHeight())
	c.ClearBackground(gfx.Black)
	c.DrawTexturePro(d.target.Texture,
		gfx.Rectangle{Width: gameWidth, Height: gameHeight},
		gfx.Rectangle{X: (w - gameWidth*s) / 2, Y: (h - gameHeight*s) / 2, Width: gameWidth * s, Height: gameHeight * s},
		gfx.Vector2{}, 0, gfx.White)
}
