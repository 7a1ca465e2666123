package gfx

import (
	"image"
	"image/color"
	"testing"

	"showcase/gfx/render3d"
	"showcase/hal"
)

func newTestCanvas(t *testing.T, w, h int) (*Canvas, hal.Framebuffer) {
	t.Helper()
	host := hal.NewHeadless(hal.Config{Width: w, Height: h}, nil)
	fb := host.Display().Framebuffer()
	return NewCanvas(fb), fb
}

func TestDrawOutsideFrameIsViolation(t *testing.T) {
	c, fb := newTestCanvas(t, 8, 8)
	c.DrawPixel(1, 1, Red)
	c.ClearBackground(White)
	if err := c.End(); err != nil {
		t.Fatalf("End() err = %v", err)
	}
	if got := c.Violations(); got != 3 {
		t.Fatalf("Violations() = %d, want 3", got)
	}
	if fb.Presented() != 0 {
		t.Fatalf("Presented() = %d, want 0", fb.Presented())
	}
	if got := c.Screen().At(1, 1); got != Blank {
		t.Fatalf("pixel drawn outside frame: %v", got)
	}
}

func TestEndPresentsOnce(t *testing.T) {
	c, fb := newTestCanvas(t, 8, 8)
	c.Begin()
	c.ClearBackground(Red)
	c.DrawPixel(2, 3, Blue)
	if fb.Presented() != 0 {
		t.Fatalf("presented before End")
	}
	if err := c.End(); err != nil {
		t.Fatalf("End() err = %v", err)
	}
	if fb.Presented() != 1 || c.Frames() != 1 {
		t.Fatalf("Presented() = %d Frames() = %d, want 1 1", fb.Presented(), c.Frames())
	}
	buf := fb.Buffer()
	if got := buf[0:4]; got[0] != Red.R || got[1] != Red.G || got[2] != Red.B || got[3] != 0xFF {
		t.Fatalf("pixel 0,0 = %v, want %v", got, Red)
	}
	off := 3*fb.StrideBytes() + 2*4
	if got := buf[off : off+3]; got[0] != Blue.R || got[1] != Blue.G || got[2] != Blue.B {
		t.Fatalf("pixel 2,3 = %v, want %v", got, Blue)
	}
	if c.Violations() != 0 {
		t.Fatalf("Violations() = %d, want 0", c.Violations())
	}
}

type formatFramebuffer struct {
	hal.Framebuffer
	format hal.PixelFormat
}

func (f formatFramebuffer) Format() hal.PixelFormat { return f.format }

func TestUnknownFormatLeavesBuffer(t *testing.T) {
	host := hal.NewHeadless(hal.Config{Width: 4, Height: 4}, nil)
	fb := host.Display().Framebuffer()
	c := NewCanvas(formatFramebuffer{fb, 0})
	c.Begin()
	c.ClearBackground(Red)
	if err := c.End(); err != nil {
		t.Fatalf("End() err = %v", err)
	}
	if got := fb.Buffer()[0]; got == Red.R {
		t.Fatalf("buffer[0] = %d, want untouched", got)
	}
}

func TestRectangleFill(t *testing.T) {
	c, _ := newTestCanvas(t, 16, 16)
	c.Begin()
	c.ClearBackground(White)
	c.DrawRectangle(4, 4, 8, 8, Blue)
	_ = c.End()

	if got := c.Screen().At(8, 8); got != Blue {
		t.Fatalf("inside = %v, want %v", got, Blue)
	}
	if got := c.Screen().At(1, 1); got != White {
		t.Fatalf("outside = %v, want %v", got, White)
	}
}

func TestBlendTranslucent(t *testing.T) {
	s := NewSurface(2, 2)
	s.Clear(Black)
	s.Blend(0, 0, Fade(White, 0.5))
	got := s.At(0, 0)
	if got.A != 255 || got.R < 126 || got.R > 128 {
		t.Fatalf("blend = %v, want ~127 gray", got)
	}
}

func TestTextureModeRoutesDrawing(t *testing.T) {
	c, _ := newTestCanvas(t, 8, 8)
	rt := NewRenderTexture(4, 4)

	c.Begin()
	c.ClearBackground(Black)
	c.BeginTextureMode(rt)
	c.ClearBackground(Green)
	c.EndTextureMode()
	if got := c.Screen().At(1, 1); got != Black {
		t.Fatalf("texture mode drew on screen: %v", got)
	}
	c.DrawTexture(rt.Texture, 2, 2, White)
	_ = c.End()

	if got := c.Screen().At(3, 3); got != Green {
		t.Fatalf("texture pixel = %v, want %v", got, Green)
	}
	if got := c.Screen().At(7, 7); got != Black {
		t.Fatalf("outside texture = %v, want %v", got, Black)
	}
}

func TestTextureTintAndFlip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{255, 255, 255, 255})
	img.Set(1, 0, color.NRGBA{0, 0, 0, 255})
	tex := NewTexture(img)

	c, _ := newTestCanvas(t, 4, 4)
	c.Begin()
	c.ClearBackground(Blank)
	c.DrawTextureRec(tex, Rectangle{0, 0, -2, 1}, Vector2{0, 0}, Red)
	_ = c.End()

	if got := c.Screen().At(0, 0); got != Black {
		t.Fatalf("flipped left = %v, want %v", got, Black)
	}
	if got := c.Screen().At(1, 0); got != Red {
		t.Fatalf("flipped right = %v, want tinted %v", got, Red)
	}
}

func TestReleasedResourcesDoNotDraw(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	tex := NewTexture(img)
	rt := NewRenderTexture(4, 4)
	font, _ := BuiltinFont("freesans9")
	model := NewModel(render3d.GenCube(1, 1, 1))

	copies := []interface{ Release() error }{tex, rt, font, model}
	for _, r := range copies {
		if err := r.Release(); err != nil {
			t.Fatalf("Release() = %v, want nil", err)
		}
	}
	if tex.Valid() || rt.Valid() || rt.Texture.Valid() || font.Valid() || model.Valid() {
		t.Fatalf("Valid() = true after Release on a copy")
	}

	c, _ := newTestCanvas(t, 32, 32)
	cam := render3d.Camera{Position: render3d.V3(0, 0, 5), FovY: 45}
	c.Begin()
	c.ClearBackground(Blue)
	c.DrawTexture(tex, 0, 0, White)
	c.DrawTexture(rt.Texture, 4, 0, White)
	c.DrawTextEx(font, "MMMM", Vector2{0, 8}, 12, 1, White)
	c.Begin3D(cam)
	c.DrawModel(model, render3d.Vec3{}, 1, White)
	c.End3D()
	_ = c.End()

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if got := c.Screen().At(x, y); got != Blue {
				t.Fatalf("Screen().At(%d, %d) = %v, want %v", x, y, got, Blue)
			}
		}
	}
	if c.Triangles() != 0 {
		t.Fatalf("Triangles() = %d, want 0 for a released model", c.Triangles())
	}
}

func TestReleasedShaderDrawsUnmodified(t *testing.T) {
	sh, _ := BuiltinShader("invert")
	alias := sh
	_ = alias.Release()
	if sh.Valid() {
		t.Fatalf("Valid() = true after Release on a copy")
	}

	c, _ := newTestCanvas(t, 4, 4)
	c.Begin()
	c.ClearBackground(White)
	c.BeginShaderMode(sh)
	c.DrawRectangle(0, 0, 2, 2, Red)
	c.EndShaderMode()
	_ = c.End()
	if got := c.Screen().At(1, 1); got != Red {
		t.Fatalf("Screen().At(1, 1) = %v, want %v", got, Red)
	}
}

func TestShaderModeAppliesProgram(t *testing.T) {
	sh, ok := BuiltinShader("invert")
	if !ok {
		t.Fatalf("BuiltinShader(invert) missing")
	}
	c, _ := newTestCanvas(t, 4, 4)
	c.Begin()
	c.ClearBackground(White)
	c.BeginShaderMode(sh)
	c.DrawPixel(1, 1, Red)
	c.EndShaderMode()
	_ = c.End()

	want := color.RGBA{255 - Red.R, 255 - Red.G, 255 - Red.B, 255}
	if got := c.Screen().At(1, 1); got != want {
		t.Fatalf("shaded = %v, want %v", got, want)
	}
	if got := c.Screen().At(3, 3); got != White {
		t.Fatalf("untouched = %v, want %v", got, White)
	}
}

func TestShaderUniforms(t *testing.T) {
	sh, _ := BuiltinShader("posterization")
	if got := sh.Float("levels", 8); got != 8 {
		t.Fatalf("Float(levels) = %v, want default 8", got)
	}
	cp := sh
	cp.SetValue("levels", 4)
	if got := sh.Float("levels", 8); got != 4 {
		t.Fatalf("Float(levels) = %v after SetValue on copy, want 4", got)
	}
	for _, name := range BuiltinShaderNames() {
		if _, ok := BuiltinShader(name); !ok {
			t.Fatalf("BuiltinShader(%q) missing", name)
		}
	}
}

func TestDrawTextMarksPixels(t *testing.T) {
	c, _ := newTestCanvas(t, 64, 32)
	c.Begin()
	c.ClearBackground(White)
	c.DrawText("HI", 0, 0, 20, Black)
	_ = c.End()

	n := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if c.Screen().At(x, y) != White {
				n++
			}
		}
	}
	if n == 0 {
		t.Fatalf("DrawText left the screen blank")
	}
}

func TestMeasureText(t *testing.T) {
	if got := MeasureText("", 20); got != 0 {
		t.Fatalf("MeasureText(\"\") = %d, want 0", got)
	}
	small, big := MeasureText("raylib", 10), MeasureText("raylib", 40)
	if small <= 0 || big <= small {
		t.Fatalf("MeasureText sizes = %d, %d, want 0 < small < big", small, big)
	}
	two := MeasureTextEx(DefaultFont(), "a\nb", 10, 1)
	one := MeasureTextEx(DefaultFont(), "a", 10, 1)
	if two.Y != 2*one.Y {
		t.Fatalf("two lines height = %v, want %v", two.Y, 2*one.Y)
	}
}

func TestBuiltinFonts(t *testing.T) {
	for _, name := range BuiltinFontNames() {
		f, ok := BuiltinFont(name)
		if !ok || !f.Valid() || f.BaseSize <= 0 {
			t.Fatalf("BuiltinFont(%q) = %+v, %v", name, f, ok)
		}
	}
	if _, ok := BuiltinFont("comic"); ok {
		t.Fatalf("BuiltinFont(comic) ok = true, want false")
	}
}

func TestMode3D(t *testing.T) {
	c, _ := newTestCanvas(t, 64, 64)
	cam := render3d.Camera{Position: render3d.V3(0, 0, 5), FovY: 45}

	c.Begin()
	c.ClearBackground(White)
	c.DrawCube(render3d.Vec3{}, 1, 1, 1, Red)
	if c.Violations() != 1 {
		t.Fatalf("Violations() = %d, want 1 for DrawCube outside Begin3D", c.Violations())
	}
	c.Begin3D(cam)
	c.DrawCube(render3d.Vec3{}, 1, 1, 1, Red)
	c.End3D()
	_ = c.End()

	if c.Triangles() == 0 {
		t.Fatalf("Triangles() = 0, want cube faces")
	}
	if got := c.Screen().At(32, 32); got == White {
		t.Fatalf("cube center not drawn")
	}
}

func TestEndClosesOpenModes(t *testing.T) {
	c, fb := newTestCanvas(t, 8, 8)
	rt := NewRenderTexture(8, 8)
	c.Begin()
	c.BeginTextureMode(rt)
	c.Begin3D(render3d.Camera{Position: render3d.V3(0, 0, 5)})
	if err := c.End(); err != nil {
		t.Fatalf("End() err = %v", err)
	}
	if c.InFrame() || fb.Presented() != 1 {
		t.Fatalf("frame not closed")
	}
	c.Begin()
	c.Begin3D(render3d.Camera{Position: render3d.V3(0, 0, 5)})
	c.End3D()
	_ = c.End()
	if c.Violations() != 0 {
		t.Fatalf("Violations() = %d, want 0", c.Violations())
	}
}

func TestCollisionRecs(t *testing.T) {
	a := Rectangle{0, 0, 10, 10}
	b := Rectangle{5, 5, 10, 10}
	if !CheckCollisionRecs(a, b) {
		t.Fatalf("CheckCollisionRecs() = false, want true")
	}
	if got, want := GetCollisionRec(a, b), (Rectangle{5, 5, 5, 5}); got != want {
		t.Fatalf("GetCollisionRec() = %v, want %v", got, want)
	}
	if got := GetCollisionRec(a, Rectangle{20, 20, 1, 1}); got != (Rectangle{}) {
		t.Fatalf("GetCollisionRec() apart = %v, want zero", got)
	}
}

func TestFade(t *testing.T) {
	if got := Fade(Red, 0.5).A; got != 127 {
		t.Fatalf("Fade().A = %d, want 127", got)
	}
	if got := Fade(Red, 2).A; got != 255 {
		t.Fatalf("Fade(2).A = %d, want 255", got)
	}
}
