package gfx

import (
	"image/color"
	"math"
)

// Named colors.
var (
	LightGray  = color.RGBA{200, 200, 200, 255}
	Gray       = color.RGBA{130, 130, 130, 255}
	DarkGray   = color.RGBA{80, 80, 80, 255}
	Yellow     = color.RGBA{253, 249, 0, 255}
	Gold       = color.RGBA{255, 203, 0, 255}
	Orange     = color.RGBA{255, 161, 0, 255}
	Pink       = color.RGBA{255, 109, 194, 255}
	Red        = color.RGBA{230, 41, 55, 255}
	Maroon     = color.RGBA{190, 33, 55, 255}
	Green      = color.RGBA{0, 228, 48, 255}
	Lime       = color.RGBA{0, 158, 47, 255}
	DarkGreen  = color.RGBA{0, 117, 44, 255}
	SkyBlue    = color.RGBA{102, 191, 255, 255}
	Blue       = color.RGBA{0, 121, 241, 255}
	DarkBlue   = color.RGBA{0, 82, 172, 255}
	Purple     = color.RGBA{200, 122, 255, 255}
	Violet     = color.RGBA{135, 60, 190, 255}
	DarkPurple = color.RGBA{112, 31, 126, 255}
	Beige      = color.RGBA{211, 176, 131, 255}
	Brown      = color.RGBA{127, 106, 79, 255}
	DarkBrown  = color.RGBA{76, 63, 47, 255}
	White      = color.RGBA{255, 255, 255, 255}
	Black      = color.RGBA{0, 0, 0, 255}
	Blank      = color.RGBA{0, 0, 0, 0}
	Magenta    = color.RGBA{255, 0, 255, 255}
	RayWhite   = color.RGBA{245, 245, 245, 255}
)

// Palette lists the named colors in a stable order.
func Palette() []color.RGBA {
	return []color.RGBA{
		DarkGray, Maroon, Orange, DarkGreen, DarkBlue, DarkPurple, DarkBrown,
		Gray, Red, Gold, Lime, Blue, Violet, Brown, LightGray, Pink, Yellow,
		Green, SkyBlue, Purple, Beige, White, Black, Magenta, RayWhite,
	}
}

// Fade returns c with its alpha scaled to alpha (0..1).
func Fade(c color.RGBA, alpha float32) color.RGBA {
	c.A = uint8(255 * clamp01(alpha))
	return c
}

// ColorLerp interpolates between a and b.
func ColorLerp(a, b color.RGBA, t float32) color.RGBA {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 { return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5) }
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

// ColorFromHSV converts hue (degrees), saturation and value (0..1).
func ColorFromHSV(hue, sat, val float32) color.RGBA {
	k := func(n float64) uint8 {
		m := math.Mod(n+float64(hue)/60, 6)
		t := math.Max(0, math.Min(math.Min(m, 4-m), 1))
		return uint8((float64(val) - float64(val)*float64(sat)*t) * 255)
	}
	return color.RGBA{k(5), k(3), k(1), 255}
}

// modulate multiplies two colors channel by channel.
func modulate(c, t color.RGBA) color.RGBA {
	if t == White {
		return c
	}
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(t.R) / 255),
		G: uint8(uint16(c.G) * uint16(t.G) / 255),
		B: uint8(uint16(c.B) * uint16(t.B) / 255),
		A: uint8(uint16(c.A) * uint16(t.A) / 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
