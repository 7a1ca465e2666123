// Package textures holds the image, texture and render texture demos.
package textures

import (
	"image/color"

	"showcase/assets"
	"showcase/demos"
	"showcase/gfx"
	"showcase/hal"
	"showcase/loop"
)

func Register(c *demos.Catalog) {
	c.Register(demos.Entry{
		Name:  "textures/image_generation",
		Title: "showcase [textures] example - procedural images generation",
		New:   func() loop.Demo { return &imageGeneration{} },
		Smoke: func() *hal.Script {
			s := &hal.Script{}
			for i := uint64(0); i < 9; i++ {
				if i%2 == 0 {
					s.MouseTap(2+2*i, hal.MouseLeft)
				} else {
					s.KeyTap(2+2*i, hal.KeyRight)
				}
			}
			return s
		},
	})
	c.Register(demos.Entry{Name: "textures/image_loading", New: func() loop.Demo { return &imageLoading{} }})
	c.Register(demos.Entry{
		Name: "textures/render_texture",
		New:  func() loop.Demo { return &renderTexture{} },
		Smoke: func() *hal.Script {
			return (&hal.Script{}).MouseMove(2, 400, 225).KeyTap(4, hal.KeySpace)
		},
	})
}

type generated struct {
	label string
	x     int
	col   color.RGBA
}

var generatedLabels = [...]generated{
	{"VERTICAL GRADIENT", 560, gfx.RayWhite},
	{"HORIZONTAL GRADIENT", 540, gfx.RayWhite},
	{"DIAGONAL GRADIENT", 540, gfx.RayWhite},
	{"RADIAL GRADIENT", 580, gfx.LightGray},
	{"SQUARE GRADIENT", 580, gfx.LightGray},
	{"CHECKED", 680, gfx.RayWhite},
	{"WHITE NOISE", 640, gfx.Red},
	{"PERLIN NOISE", 640, gfx.Red},
	{"CELLULAR", 670, gfx.RayWhite},
}

// imageGeneration converts nine generated images to textures and cycles
// through them. The CPU images are released right after upload.
type imageGeneration struct {
	textures [len(generatedLabels)]gfx.Texture
	current  int
}

func (d *imageGeneration) Load(ctx *loop.Context) error {
	a := ctx.Assets
	w, h := ctx.ScreenWidth(), ctx.ScreenHeight()
	images := [len(generatedLabels)]assets.Image{
		a.GenImageGradientLinear(w, h, 0, gfx.Red, gfx.Blue),
		a.GenImageGradientLinear(w, h, 90, gfx.Red, gfx.Blue),
		a.GenImageGradientLinear(w, h, 45, gfx.Red, gfx.Blue),
		a.GenImageGradientRadial(w, h, 0, gfx.White, gfx.Black),
		a.GenImageGradientSquare(w, h, 0, gfx.White, gfx.Black),
		a.GenImageChecked(w, h, 32, 32, gfx.Red, gfx.Blue),
		a.GenImageWhiteNoise(w, h, 0.5),
		a.GenImagePerlinNoise(w, h, 50, 50, 4),
		a.GenImageCellular(w, h, 32),
	}
	for i, img := range images {
		d.textures[i] = a.LoadTextureFromImage(img)
		a.UnloadImage(img)
	}
	ctx.SetTargetFPS(60)
	return nil
}

func (d *imageGeneration) Unload(ctx *loop.Context) error {
	for _, t := range d.textures {
		ctx.Assets.UnloadTexture(t)
	}
	return nil
}

func (d *imageGeneration) Update(ctx *loop.Context) {
	if ctx.IsMouseButtonPressed(hal.MouseLeft) || ctx.IsKeyPressed(hal.KeyRight) {
		d.current = (d.current + 1) % len(d.textures)
	}
}

func (d *imageGeneration) Draw(_ *loop.Context, c *gfx.Canvas) {
	c.ClearBackground(gfx.RayWhite)
	c.DrawTexture(d.textures[d.current], 0, 0, gfx.White)
	c.DrawRectangle(30, 400, 325, 30, gfx.Fade(gfx.SkyBlue, 0.5))
	c.DrawRectangleLines(30, 400, 325, 30, gfx.Fade(gfx.White, 0.5))
	c.DrawText("MOUSE LEFT BUTTON to CYCLE PROCEDURAL TEXTURES", 40, 410, 10, gfx.White)
	l := generatedLabels[d.current]
	c.DrawText(l.label, l.x, 10, 20, l.col)
}

type imageLoading struct {
	texture gfx.Texture
}

func (d *imageLoading) Load(ctx *loop.Context) error {
	img := ctx.Assets.LoadImage("resources/raylib_logo.png")
	d.texture = ctx.Assets.LoadTextureFromImage(img)
	ctx.Assets.UnloadImage(img)
	ctx.SetTargetFPS(60)
	return nil
}

func (d *imageLoading) Unload(ctx *loop.Context) error {
	ctx.Assets.UnloadTexture(d.texture)
	return nil
}

func (d *imageLoading) Update(*loop.Context) {}

func (d *imageLoading) Draw(ctx *loop.Context, c *gfx.Canvas) {
	c.ClearBackground(gfx.RayWhite)
	x := ctx.ScreenWidth()/2 - d.texture.Width/2
	y := ctx.ScreenHeight()/2 - d.texture.Height/2
	c.DrawTexture(d.texture, x, y, gfx.White)
	c.DrawText("this IS a texture loaded from an image!", 300, 370, 10, gfx.Gray)
}
