package gfx

import (
	"image/color"
	"math"
	"sort"
	"sync"

	"showcase/resource"
)

// Program computes one output pixel from a source surface. Programs run in
// BeginShaderMode/EndShaderMode over everything drawn in between.
type Program func(src *Surface, x, y int, u Uniforms) color.RGBA

// Uniforms are the named float parameters of a shader.
type Uniforms interface {
	Float(name string, def float32) float32
}

// Shader is a built-in per-pixel program with its uniform values.
type Shader struct {
	Handle resource.Handle
	Name   string

	prog Program
	vals *uniformSet
	life *lifetime
}

func (s Shader) Valid() bool { return s.prog != nil && s.life.live() }

// Release invalidates s; shader mode with any copy then draws unmodified.
func (s Shader) Release() error { return s.life.release() }

// SetValue updates a uniform; every copy of the shader sees the change.
func (s Shader) SetValue(name string, v float32) {
	if s.vals == nil {
		return
	}
	s.vals.mu.Lock()
	s.vals.m[name] = v
	s.vals.mu.Unlock()
}

func (s Shader) Float(name string, def float32) float32 {
	if s.vals == nil {
		return def
	}
	s.vals.mu.Lock()
	defer s.vals.mu.Unlock()
	if v, ok := s.vals.m[name]; ok {
		return v
	}
	return def
}

type uniformSet struct {
	mu sync.Mutex
	m  map[string]float32
}

// BuiltinShader returns a shader from the built-in program table.
func BuiltinShader(name string) (Shader, bool) {
	p, ok := programs[name]
	if !ok {
		return Shader{}, false
	}
	return Shader{Name: name, prog: p, vals: &uniformSet{m: map[string]float32{}}, life: newLifetime()}, true
}

// BuiltinShaderNames lists the built-in programs in sorted order.
func BuiltinShaderNames() []string {
	names := make([]string, 0, len(programs))
	for n := range programs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var programs = map[string]Program{
	"grayscale":       grayscale,
	"invert":          invert,
	"sepia":           sepia,
	"posterization":   posterization,
	"dream_vision":    dreamVision,
	"pixelizer":       pixelizer,
	"cross_hatching":  crossHatching,
	"cross_stitching": crossStitching,
	"predator":        predator,
	"scanlines":       scanlines,
	"fisheye":         fisheye,
	"sobel":           sobel,
	"bloom":           bloom,
	"blur":            blur,
	"wave":            wave,
}

func luma(c color.RGBA) float32 {
	return 0.299*float32(c.R) + 0.587*float32(c.G) + 0.114*float32(c.B)
}

func u8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func grayscale(src *Surface, x, y int, _ Uniforms) color.RGBA {
	c := src.At(x, y)
	g := u8(luma(c))
	return color.RGBA{g, g, g, c.A}
}

func invert(src *Surface, x, y int, _ Uniforms) color.RGBA {
	c := src.At(x, y)
	return color.RGBA{255 - c.R, 255 - c.G, 255 - c.B, c.A}
}

func sepia(src *Surface, x, y int, _ Uniforms) color.RGBA {
	c := src.At(x, y)
	r, g, b := float32(c.R), float32(c.G), float32(c.B)
	return color.RGBA{
		u8(0.393*r + 0.769*g + 0.189*b),
		u8(0.349*r + 0.686*g + 0.168*b),
		u8(0.272*r + 0.534*g + 0.131*b),
		c.A,
	}
}

func posterization(src *Surface, x, y int, u Uniforms) color.RGBA {
	c := src.At(x, y)
	levels := max(u.Float("levels", 8), 2)
	q := func(v uint8) uint8 {
		f := float32(v) / 255
		return u8(float32(math.Floor(float64(f*levels))) / (levels - 1) * 255)
	}
	return color.RGBA{q(c.R), q(c.G), q(c.B), c.A}
}

func dreamVision(src *Surface, x, y int, _ Uniforms) color.RGBA {
	var r, g, b, a float32
	n := float32(0)
	for _, d := range []int{-3, -2, -1, 1, 2, 3} {
		for _, p := range [...][2]int{{x + d, y + d}, {x - d, y + d}} {
			c := src.At(p[0], p[1])
			r, g, b, a = r+float32(c.R), g+float32(c.G), b+float32(c.B), a+float32(c.A)
			n++
		}
	}
	c := src.At(x, y)
	r, g, b = (r/n+float32(c.R))/2, (g/n+float32(c.G))/2, (b/n+float32(c.B))/2
	gr := (r + g + b) / 3
	return color.RGBA{u8(gr*0.6 + r*0.4), u8(gr * 0.9), u8(gr*0.6 + b*0.5), c.A}
}

func pixelizer(src *Surface, x, y int, u Uniforms) color.RGBA {
	size := int(max(u.Float("pixel_size", 5), 1))
	return src.At(x/size*size+size/2, y/size*size+size/2)
}

func crossHatching(src *Surface, x, y int, _ Uniforms) color.RGBA {
	c := src.At(x, y)
	l := luma(c) / 255
	ink := false
	if l < 1 && (x+y)%10 == 0 {
		ink = true
	}
	if l < 0.75 && (x-y)%10 == 0 {
		ink = true
	}
	if l < 0.5 && (x+y-5)%10 == 0 {
		ink = true
	}
	if l < 0.3 && (x-y-5)%10 == 0 {
		ink = true
	}
	if ink {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBA{255, 255, 255, 255}
}

func crossStitching(src *Surface, x, y int, _ Uniforms) color.RGBA {
	const size = 6
	cx, cy := x/size*size, y/size*size
	c := src.At(cx+size/2, cy+size/2)
	lx, ly := x-cx, y-cy
	if lx == ly || lx == size-1-ly {
		return c
	}
	return color.RGBA{0, 0, 0, 255}
}

func predator(src *Surface, x, y int, _ Uniforms) color.RGBA {
	c := src.At(x, y)
	l := luma(c) / 255
	heat := []color.RGBA{{0, 0, 255, 255}, {255, 255, 0, 255}, {255, 0, 0, 255}}
	if l < 0.5 {
		return ColorLerp(heat[0], heat[1], l*2)
	}
	return ColorLerp(heat[1], heat[2], (l-0.5)*2)
}

func scanlines(src *Surface, x, y int, u Uniforms) color.RGBA {
	c := src.At(x, y)
	offset := int(u.Float("offset", 0))
	if (y+offset)%3 == 0 {
		return color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A}
	}
	return c
}

func fisheye(src *Surface, x, y int, _ Uniforms) color.RGBA {
	w, h := float64(src.Width()), float64(src.Height())
	nx, ny := 2*float64(x)/w-1, 2*float64(y)/h-1
	d := math.Hypot(nx, ny)
	if d >= 1 {
		return src.At(x, y)
	}
	const aperture = 178.0
	apertureHalf := 0.5 * aperture * (math.Pi / 180)
	maxFactor := math.Sin(apertureHalf)
	z := math.Sqrt(1 - d*d)
	r := math.Atan2(d, z) / math.Pi
	phi := math.Atan2(ny, nx)
	ux := r*math.Cos(phi)/maxFactor + 0.5
	uy := r*math.Sin(phi)/maxFactor + 0.5
	return src.At(int(ux*w), int(uy*h))
}

func sobel(src *Surface, x, y int, _ Uniforms) color.RGBA {
	l := func(dx, dy int) float32 { return luma(src.At(x+dx, y+dy)) }
	gx := -l(-1, -1) - 2*l(-1, 0) - l(-1, 1) + l(1, -1) + 2*l(1, 0) + l(1, 1)
	gy := -l(-1, -1) - 2*l(0, -1) - l(1, -1) + l(-1, 1) + 2*l(0, 1) + l(1, 1)
	v := u8(float32(math.Sqrt(float64(gx*gx + gy*gy))))
	return color.RGBA{v, v, v, src.At(x, y).A}
}

func bloom(src *Surface, x, y int, _ Uniforms) color.RGBA {
	c := src.At(x, y)
	var r, g, b float32
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			s := src.At(x+dx*2, y+dy*2)
			r, g, b = r+float32(s.R), g+float32(s.G), b+float32(s.B)
		}
	}
	const n, quality = 25, 0.25
	return color.RGBA{
		u8(float32(c.R) + r/n*quality),
		u8(float32(c.G) + g/n*quality),
		u8(float32(c.B) + b/n*quality),
		c.A,
	}
}

func blur(src *Surface, x, y int, _ Uniforms) color.RGBA {
	offsets := [3]int{0, 1, 3}
	weights := [3]float32{0.2270270270, 0.3162162162, 0.0702702703}
	c := src.At(x, y)
	r, g, b := float32(c.R)*weights[0], float32(c.G)*weights[0], float32(c.B)*weights[0]
	for i := 1; i < 3; i++ {
		for _, s := range []color.RGBA{src.At(x+offsets[i], y), src.At(x-offsets[i], y)} {
			r, g, b = r+float32(s.R)*weights[i], g+float32(s.G)*weights[i], b+float32(s.B)*weights[i]
		}
	}
	return color.RGBA{u8(r), u8(g), u8(b), c.A}
}

func wave(src *Surface, x, y int, u Uniforms) color.RGBA {
	t := float64(u.Float("seconds", 0))
	freqX, freqY := float64(u.Float("freq_x", 25)), float64(u.Float("freq_y", 25))
	ampX, ampY := float64(u.Float("amp_x", 5)), float64(u.Float("amp_y", 5))
	speedX, speedY := float64(u.Float("speed_x", 8)), float64(u.Float("speed_y", 8))
	w, h := float64(src.Width()), float64(src.Height())
	fx := float64(x) / w
	fy := float64(y) / h
	dx := ampX * math.Sin(fy*freqX+t*speedX)
	dy := ampY * math.Sin(fx*freqY+t*speedY)
	return src.At(x+int(dx), y+int(dy))
}
