package gfx

import (
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Surface)(nil)

// Surface is a premultiplied RGBA pixel target: the screen back buffer or a
// render texture. Vector shapes go through a gg context bound to the same
// pixmap; everything else blends pixels directly.
type Surface struct {
	pm *gg.Pixmap
	dc *gg.Context
}

// NewSurface returns a transparent w*h surface.
func NewSurface(w, h int) *Surface {
	w, h = max(w, 1), max(h, 1)
	pm := gg.NewPixmap(w, h)
	return &Surface{pm: pm, dc: gg.NewContextForPixmap(pm)}
}

func (s *Surface) Width() int  { return s.pm.Width() }
func (s *Surface) Height() int { return s.pm.Height() }

// Size implements drivers.Displayer.
func (s *Surface) Size() (x, y int16) { return int16(s.pm.Width()), int16(s.pm.Height()) }

// SetPixel implements drivers.Displayer with source-over blending.
func (s *Surface) SetPixel(x, y int16, c color.RGBA) { s.Blend(int(x), int(y), c) }

// Display implements drivers.Displayer; surfaces are published by the canvas.
func (s *Surface) Display() error { return nil }

// Clear fills the surface with c, replacing its content.
func (s *Surface) Clear(c color.RGBA) {
	r, g, b, a := premul(c)
	s.pm.FillRect(image.Rect(0, 0, s.pm.Width(), s.pm.Height()), r, g, b, a)
}

// Blend composites c over the pixel at x,y. Out-of-bounds writes are dropped.
func (s *Surface) Blend(x, y int, c color.RGBA) {
	if c.A == 0 || x < 0 || y < 0 || x >= s.pm.Width() || y >= s.pm.Height() {
		return
	}
	sr, sg, sb, sa := premul(c)
	if sa == 255 {
		s.pm.SetPixelPremul(x, y, sr, sg, sb, sa)
		return
	}
	i := (y*s.pm.Width() + x) * 4
	d := s.pm.Data()
	inv := 255 - uint16(sa)
	s.pm.SetPixelPremul(x, y,
		sr+uint8(uint16(d[i])*inv/255),
		sg+uint8(uint16(d[i+1])*inv/255),
		sb+uint8(uint16(d[i+2])*inv/255),
		sa+uint8(uint16(d[i+3])*inv/255),
	)
}

// Replace writes c at x,y without blending.
func (s *Surface) Replace(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= s.pm.Width() || y >= s.pm.Height() {
		return
	}
	r, g, b, a := premul(c)
	s.pm.SetPixelPremul(x, y, r, g, b, a)
}

// At returns the straight-alpha color at x,y; outside the surface it is Blank.
func (s *Surface) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= s.pm.Width() || y >= s.pm.Height() {
		return Blank
	}
	i := (y*s.pm.Width() + x) * 4
	d := s.pm.Data()
	return unpremul(d[i], d[i+1], d[i+2], d[i+3])
}

// Snapshot copies the surface into a straight-alpha image.
func (s *Surface) Snapshot() *image.NRGBA {
	w, h := s.pm.Width(), s.pm.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := s.pm.Data()
	for i := 0; i+3 < len(d); i += 4 {
		c := unpremul(d[i], d[i+1], d[i+2], d[i+3])
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// Composite blends src over s at the same coordinates.
func (s *Surface) Composite(src *Surface) {
	w, h := min(s.Width(), src.Width()), min(s.Height(), src.Height())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.Blend(x, y, src.At(x, y))
		}
	}
}

// target3D adapts a surface to the software 3D renderer.
type target3D struct{ s *Surface }

func (t target3D) Size() (int, int)                { return t.s.Width(), t.s.Height() }
func (t target3D) SetPixel(x, y int, c color.RGBA) { t.s.Blend(x, y, c) }

func premul(c color.RGBA) (r, g, b, a uint8) {
	if c.A == 255 {
		return c.R, c.G, c.B, 255
	}
	a16 := uint16(c.A)
	return uint8(uint16(c.R) * a16 / 255), uint8(uint16(c.G) * a16 / 255), uint8(uint16(c.B) * a16 / 255), c.A
}

func unpremul(r, g, b, a uint8) color.RGBA {
	switch a {
	case 0:
		return Blank
	case 255:
		return color.RGBA{r, g, b, 255}
	}
	a16 := uint16(a)
	return color.RGBA{
		R: uint8(min(uint16(r)*255/a16, 255)),
		G: uint8(min(uint16(g)*255/a16, 255)),
		B: uint8(min(uint16(b)*255/a16, 255)),
		A: a,
	}
}
