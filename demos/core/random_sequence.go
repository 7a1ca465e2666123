package core

import (
	"fmt"
	"image/color"

	"showcase/gfx"
	"showcase/hal"
	"showcase/loop"
)

type colorRect struct {
	c color.RGBA
	r gfx.Rectangle
}

// randomSequence draws bars whose heights are a random permutation.
type randomSequence struct {
	count int
	rects []colorRect
}

func (d *randomSequence) Load(ctx *loop.Context) error {
	d.count = 20
	d.generate(ctx)
	ctx.SetTargetFPS(60)
	return nil
}

func (d *randomSequence) generate(ctx *loop.Context) {
	w := float32(ctx.ScreenWidth())
	h := 0.75 * float32(ctx.ScreenHeight())
	size := w / float32(d.count)
	seq := ctx.Assets.LoadRandomSequence(d.count, 0, d.count-1)
	startX := (w - float32(d.count)*size) / 2

	d.rects = d.rects[:0]
	for i, v := range seq {
		rh := float32(int(float32(v) / float32(d.count-1) * h))
		d.rects = append(d.rects, colorRect{
			c: randomColor(ctx),
			r: gfx.Rectangle{X: startX + float32(i)*size, Y: h - rh, Width: size, Height: rh},
		})
	}
}

func randomColor(ctx *loop.Context) color.RGBA {
	return color.RGBA{
		R: uint8(ctx.RandomValue(0, 255)),
		G: uint8(ctx.RandomValue(0, 255)),
		B: uint8(ctx.RandomValue(0, 255)),
		A: 255,
	}
}

// shuffle swaps colors and heights along a random permutation, keeping
// every bar in its column.
func (d *randomSequence) shuffle(ctx *loop.Context) {
	seq := ctx.Assets.LoadRandomSequence(len(d.rects), 0, len(d.rects)-1)
	for i, j := range seq {
		a, b := &d.rects[i], &d.rects[j]
		a.c, b.c = b.c, a.c
		a.r.Y, b.r.Y = b.r.Y, a.r.Y
		a.r.Height, b.r.Height = b.r.Height, a.r.Height
	}
}

func (d *randomSequence) Update(ctx *loop.Context) {
	if ctx.IsKeyPressed(hal.KeySpace) {
		d.shuffle(ctx)
	}
	if ctx.IsKeyPressed(hal.KeyUp) {
		d.count++
		d.generate(ctx)
	}
	if ctx.IsKeyPressed(hal.KeyDown) && d.count >= 4 {
		d.count--
		d.generate(ctx)
	}
}

func (d *randomSequence) Draw(ctx *loop.Context, c *gfx.Canvas) {
	const fontSize = 20
	c.ClearBackground(gfx.RayWhite)
	for _, r := range d.rects {
		c.DrawRectangleRec(r.r, r.c)
	}
	h := ctx.ScreenHeight()
	drawKeyHelp(c, "SPACE", "to shuffle the sequence.", 10, h-96, fontSize, gfx.Black)
	drawKeyHelp(c, "UP", "to add a rectangle and generate a new sequence.", 10, h-64, fontSize, gfx.Black)
	drawKeyHelp(c, "DOWN", "to remove a rectangle and generate a new sequence.", 10, h-32, fontSize, gfx.Black)

	text := fmt.Sprintf("%d rectangles", d.count)
	c.DrawText(text, ctx.ScreenWidth()-gfx.MeasureText(text, fontSize)-10, 10, fontSize, gfx.Black)
	c.DrawFPS(10, 10)
}

// drawKeyHelp draws "Press KEY text" with the key underlined in red.
func drawKeyHelp(c *gfx.Canvas, key, text string, x, y, size int, col color.RGBA) {
	space := gfx.MeasureText(" ", size)
	keyW := gfx.MeasureText(key, size)

	c.DrawText("Press", x, y, size, col)
	x += gfx.MeasureText("Press", size) + 2*space
	c.DrawText(key, x, y, size, gfx.Red)
	c.DrawRectangle(x, y+size, keyW, 3, gfx.Red)
	x += keyW + 2*space
	c.DrawText(text, x, y, size, col)
}
