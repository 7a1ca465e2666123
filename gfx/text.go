package gfx

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"tinygo.org/x/tinyfont"
)

// glyphDisplay places unscaled glyph pixels as k*k blocks at an origin.
type glyphDisplay struct {
	s      *Surface
	ox, oy int
	k      int
}

func (d *glyphDisplay) Size() (x, y int16) { return math.MaxInt16, math.MaxInt16 }

func (d *glyphDisplay) SetPixel(x, y int16, c color.RGBA) {
	px, py := d.ox+int(x)*d.k, d.oy+int(y)*d.k
	for j := 0; j < d.k; j++ {
		for i := 0; i < d.k; i++ {
			d.s.Blend(px+i, py+j, c)
		}
	}
}

func (d *glyphDisplay) Display() error { return nil }

// fontScale is the integer magnification that brings f closest to size.
func fontScale(f Font, size float32) int {
	base := f.BaseSize
	if base <= 0 {
		base = int(f.Face.GetYAdvance())
	}
	if base <= 0 {
		return 1
	}
	return max(int(math.Round(float64(size)/float64(base))), 1)
}

// DrawText draws text with the default font; x,y is the top-left corner.
func (c *Canvas) DrawText(text string, x, y, fontSize int, col color.RGBA) {
	if !c.drawing("DrawText") {
		return
	}
	k := fontScale(c.font, float32(fontSize))
	c.drawText(c.font, text, x, y, k, k, col)
}

// DrawTextEx draws text with f at pos; spacing is added between glyphs.
func (c *Canvas) DrawTextEx(f Font, text string, pos Vector2, fontSize, spacing float32, col color.RGBA) {
	if !c.drawing("DrawTextEx") {
		return
	}
	if f.life.ended() {
		c.log.Debug().Str("font", f.Name).Msg("DrawTextEx: released font ignored")
		return
	}
	if !f.Valid() {
		f = c.font
	}
	c.drawText(f, text, int(pos.X), int(pos.Y), fontScale(f, fontSize), int(spacing), col)
}

func (c *Canvas) drawText(f Font, text string, x, y, k, spacing int, col color.RGBA) {
	d := &glyphDisplay{s: c.target, k: k}
	asc := int16(ascent(f.Face))
	lineH := int(f.Face.GetYAdvance()) * k
	for i, line := range strings.Split(text, "\n") {
		d.ox, d.oy = x, y+i*lineH
		for _, r := range line {
			tinyfont.DrawChar(d, f.Face, 0, asc, r, col)
			d.ox += int(f.Face.GetGlyph(r).Info().XAdvance)*k + spacing
		}
	}
}

// MeasureText returns the width of text drawn by DrawText.
func MeasureText(text string, fontSize int) int {
	f := DefaultFont()
	k := fontScale(f, float32(fontSize))
	return int(measure(f, text, k, k).X)
}

// MeasureTextEx returns the size of text drawn by DrawTextEx.
func MeasureTextEx(f Font, text string, fontSize, spacing float32) Vector2 {
	if !f.Valid() {
		f = DefaultFont()
	}
	return measure(f, text, fontScale(f, fontSize), int(spacing))
}

func measure(f Font, text string, k, spacing int) Vector2 {
	lines := strings.Split(text, "\n")
	width := 0
	for _, line := range lines {
		w, n := 0, 0
		for _, r := range line {
			w += int(f.Face.GetGlyph(r).Info().XAdvance)*k + spacing
			n++
		}
		if n > 0 {
			w -= spacing
		}
		width = max(width, w)
	}
	return Vector2{X: float32(width), Y: float32(len(lines) * int(f.Face.GetYAdvance()) * k)}
}

// DrawFPS draws the frame rate set with SetFPS.
func (c *Canvas) DrawFPS(x, y int) {
	col := Lime
	switch {
	case c.fps < 15:
		col = Red
	case c.fps < 30:
		col = Orange
	}
	c.DrawText(fmt.Sprintf("%2d FPS", c.fps), x, y, 20, col)
}
