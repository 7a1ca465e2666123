// Package text holds the font and text formatting demos.
package text

import (
	"fmt"

	"showcase/demos"
	"showcase/gfx"
	"showcase/hal"
	"showcase/loop"
)

func Register(c *demos.Catalog) {
	c.Register(demos.Entry{
		Name: "text/font_loading",
		New:  func() loop.Demo { return &fontLoading{} },
		Smoke: func() *hal.Script {
			return (&hal.Script{}).KeyDown(3, hal.KeySpace).KeyUp(6, hal.KeySpace)
		},
	})
	c.Register(demos.Entry{Name: "text/format_text", New: func() loop.Demo { return &formatText{} }})
}

const glyphSample = "!\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHI\n" +
	"JKLMNOPQRSTUVWXYZ[]^_`abcdefghijklmn\n" +
	"opqrstuvwxyz{|}~"

// fontLoading shows the same text in two faces; SPACE selects the second.
type fontLoading struct {
	mono, sans gfx.Font
	useSans    bool
}

func (d *fontLoading) Load(ctx *loop.Context) error {
	d.mono = ctx.Assets.LoadFont("resources/fonts/freemono12.fnt")
	d.sans = ctx.Assets.LoadFont("freesans18")
	ctx.SetTargetFPS(60)
	return nil
}

func (d *fontLoading) Unload(ctx *loop.Context) error {
	ctx.Assets.UnloadFont(d.mono)
	ctx.Assets.UnloadFont(d.sans)
	return nil
}

func (d *fontLoading) Update(ctx *loop.Context) {
	d.useSans = ctx.IsKeyDown(hal.KeySpace)
}

func (d *fontLoading) Draw(ctx *loop.Context, c *gfx.Canvas) {
	h := ctx.ScreenHeight()
	pos := gfx.Vector2{X: 20, Y: 100}

	c.ClearBackground(gfx.RayWhite)
	c.DrawText("Hold SPACE to use the proportional font", 20, 20, 20, gfx.LightGray)
	if !d.useSans {
		c.DrawTextEx(d.mono, glyphSample, pos, float32(d.mono.BaseSize), 2, gfx.Maroon)
		c.DrawText("Using monospaced font "+d.mono.Name, 20, h-30, 20, gfx.Gray)
		return
	}
	c.DrawTextEx(d.sans, glyphSample, pos, float32(d.sans.BaseSize), 2, gfx.Lime)
	c.DrawText("Using proportional font "+d.sans.Name, 20, h-30, 20, gfx.Gray)
}

type formatText struct {
	score, hiscore, lives int
}

func (d *formatText) Load(ctx *loop.Context) error {
	d.score, d.hiscore, d.lives = 100020, 200450, 5
	ctx.SetTargetFPS(60)
	return nil
}

func (d *formatText) Update(*loop.Context) {}

func (d *formatText) Draw(ctx *loop.Context, c *gfx.Canvas) {
	c.ClearBackground(gfx.RayWhite)
	c.DrawText(fmt.Sprintf("Score: %08d", d.score), 200, 80, 20, gfx.Red)
	c.DrawText(fmt.Sprintf("HiScore: %08d", d.hiscore), 200, 120, 20, gfx.Green)
	c.DrawText(fmt.Sprintf("Lives: %02d", d.lives), 200, 160, 40, gfx.Blue)
	c.DrawText(fmt.Sprintf("Elapsed Time: %02.02f ms", ctx.FrameTime()*1000), 200, 220, 20, gfx.Black)
}
