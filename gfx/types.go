package gfx

import (
	"image"
	"image/color"
	"image/draw"

	"showcase/gfx/render3d"
	"showcase/resource"
)

// Vector2 is a 2D point or size.
type Vector2 struct {
	X, Y float32
}

// Rectangle is an axis-aligned rectangle; a negative Width or Height on a
// texture source rectangle flips the sampled region.
type Rectangle struct {
	X, Y, Width, Height float32
}

// CheckCollisionRecs reports whether a and b overlap.
func CheckCollisionRecs(a, b Rectangle) bool {
	return a.X < b.X+b.Width && a.X+a.Width > b.X && a.Y < b.Y+b.Height && a.Y+a.Height > b.Y
}

// GetCollisionRec returns the overlap of a and b, zero when they are apart.
func GetCollisionRec(a, b Rectangle) Rectangle {
	if !CheckCollisionRecs(a, b) {
		return Rectangle{}
	}
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.X+a.Width, b.X+b.Width), min(a.Y+a.Height, b.Y+b.Height)
	return Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// CheckCollisionPointRec reports whether p lies inside r.
func CheckCollisionPointRec(p Vector2, r Rectangle) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Texture is pixel data ready to be drawn. The zero Texture draws nothing.
type Texture struct {
	Handle resource.Handle
	Width  int
	Height int

	pix  *image.NRGBA
	life *lifetime
}

// NewTexture copies img into a texture.
func NewTexture(img image.Image) Texture {
	if img == nil {
		return Texture{}
	}
	b := img.Bounds()
	pix := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(pix, pix.Bounds(), img, b.Min, draw.Src)
	return Texture{Width: b.Dx(), Height: b.Dy(), pix: pix, life: newLifetime()}
}

func (t Texture) Valid() bool {
	return t.pix != nil && t.Width > 0 && t.Height > 0 && t.life.live()
}

// Release invalidates t and every copy of it.
func (t Texture) Release() error { return t.life.release() }

// Image returns the texture pixels. Callers must not modify them.
func (t Texture) Image() *image.NRGBA { return t.pix }

func (t Texture) at(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return Blank
	}
	i := t.pix.PixOffset(x, y)
	p := t.pix.Pix[i : i+4 : i+4]
	return color.RGBA{p[0], p[1], p[2], p[3]}
}

// RenderTexture is an offscreen surface that can be drawn as a texture.
type RenderTexture struct {
	Handle  resource.Handle
	Texture Texture

	surf *Surface
	life *lifetime
}

// NewRenderTexture returns a transparent w*h render texture.
func NewRenderTexture(w, h int) RenderTexture {
	s := NewSurface(w, h)
	life := newLifetime()
	return RenderTexture{
		Texture: Texture{Width: s.Width(), Height: s.Height(), pix: s.Snapshot(), life: life},
		surf:    s,
		life:    life,
	}
}

func (rt RenderTexture) Valid() bool { return rt.surf != nil && rt.life.live() }

// Release invalidates rt and its texture, including copies of both.
func (rt RenderTexture) Release() error { return rt.life.release() }

// sync publishes the surface into the texture pixels shared by all copies.
func (rt RenderTexture) sync() {
	if rt.surf == nil || rt.Texture.pix == nil {
		return
	}
	copy(rt.Texture.pix.Pix, rt.surf.Snapshot().Pix)
}

// Model is a mesh plus a local transform and a base color.
type Model struct {
	Handle    resource.Handle
	Mesh      render3d.Mesh
	Transform render3d.Mat4
	// Color is multiplied with the draw tint; zero means white.
	Color color.RGBA

	life *lifetime
}

// NewModel wraps a mesh with an identity transform.
func NewModel(m render3d.Mesh) Model {
	return Model{Mesh: m, Transform: render3d.Mat4Identity(), Color: White, life: newLifetime()}
}

func (m Model) Valid() bool { return len(m.Mesh.Indices) > 0 && m.life.live() }

func (m Model) Release() error { return m.life.release() }

func (m Model) color() color.RGBA {
	if m.Color == (color.RGBA{}) {
		return White
	}
	return m.Color
}
