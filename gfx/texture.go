package gfx

import (
	"image/color"
	"math"
)

func (c *Canvas) DrawTexture(t Texture, x, y int, tint color.RGBA) {
	c.DrawTextureV(t, Vector2{float32(x), float32(y)}, tint)
}

func (c *Canvas) DrawTextureV(t Texture, pos Vector2, tint color.RGBA) {
	c.DrawTextureEx(t, pos, 0, 1, tint)
}

// DrawTextureEx draws t scaled and rotated (degrees) around its top-left corner.
func (c *Canvas) DrawTextureEx(t Texture, pos Vector2, rotation, scale float32, tint color.RGBA) {
	src := Rectangle{0, 0, float32(t.Width), float32(t.Height)}
	dst := Rectangle{pos.X, pos.Y, float32(t.Width) * scale, float32(t.Height) * scale}
	c.DrawTexturePro(t, src, dst, Vector2{}, rotation, tint)
}

// DrawTextureRec draws the src part of t at pos.
func (c *Canvas) DrawTextureRec(t Texture, src Rectangle, pos Vector2, tint color.RGBA) {
	dst := Rectangle{pos.X, pos.Y, float32(math.Abs(float64(src.Width))), float32(math.Abs(float64(src.Height)))}
	c.DrawTexturePro(t, src, dst, Vector2{}, 0, tint)
}

// DrawTexturePro maps src of t onto dst, rotated by rotation degrees around
// origin (relative to dst's top-left corner). Sampling is nearest neighbour.
func (c *Canvas) DrawTexturePro(t Texture, src, dst Rectangle, origin Vector2, rotation float32, tint color.RGBA) {
	if !c.drawing("DrawTexture") {
		return
	}
	if t.life.ended() {
		c.log.Debug().Msg("DrawTexture: released texture ignored")
		return
	}
	if !t.Valid() || dst.Width <= 0 || dst.Height <= 0 || src.Width == 0 || src.Height == 0 {
		return
	}
	flipX, flipY := src.Width < 0, src.Height < 0
	sw, sh := float64(math.Abs(float64(src.Width))), float64(math.Abs(float64(src.Height)))
	sin, cos := math.Sincos(deg(rotation))

	// Screen bounds of the rotated destination quad.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{0, 0}, {float64(dst.Width), 0}, {0, float64(dst.Height)}, {float64(dst.Width), float64(dst.Height)}} {
		lx, ly := p[0]-float64(origin.X), p[1]-float64(origin.Y)
		x := float64(dst.X) + lx*cos - ly*sin
		y := float64(dst.Y) + lx*sin + ly*cos
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
	}
	x0, y0 := max(int(math.Floor(minX)), 0), max(int(math.Floor(minY)), 0)
	x1, y1 := min(int(math.Ceil(maxX)), c.target.Width()), min(int(math.Ceil(maxY)), c.target.Height())

	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			dx, dy := float64(px)+0.5-float64(dst.X), float64(py)+0.5-float64(dst.Y)
			lx := dx*cos + dy*sin + float64(origin.X)
			ly := -dx*sin + dy*cos + float64(origin.Y)
			if lx < 0 || ly < 0 || lx >= float64(dst.Width) || ly >= float64(dst.Height) {
				continue
			}
			u := lx / float64(dst.Width) * sw
			v := ly / float64(dst.Height) * sh
			if flipX {
				u = sw - u - 1e-6
			}
			if flipY {
				v = sh - v - 1e-6
			}
			s := t.at(int(float64(src.X)+u), int(float64(src.Y)+v))
			c.target.Blend(px, py, modulate(s, tint))
		}
	}
}
