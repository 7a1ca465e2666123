package assets

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"showcase/resource"
)

// Image is CPU-side pixel data. A zero Pix means loading failed.
type Image struct {
	Handle resource.Handle
	Pix    *image.NRGBA
}

func (img Image) Width() int {
	if img.Pix == nil {
		return 0
	}
	return img.Pix.Rect.Dx()
}

func (img Image) Height() int {
	if img.Pix == nil {
		return 0
	}
	return img.Pix.Rect.Dy()
}

func (img Image) Valid() bool { return img.Pix != nil }

func (l *Loader) newImage(name string, pix *image.NRGBA) Image {
	return Image{Handle: l.acquire(resource.KindImage, name, nil), Pix: pix}
}

// decodeImage decodes any registered format into NRGBA.
func (l *Loader) decodeImage(name string) *image.NRGBA {
	data := l.readFile(name)
	if data == nil {
		return nil
	}
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		l.log.Warn().Err(err).Msgf("IMAGE: [%s] Failed to load image data", name)
		return nil
	}
	pix := toNRGBA(src)
	l.log.Info().Msgf("IMAGE: [%s] Data loaded successfully (%dx%d | %s)", name, pix.Rect.Dx(), pix.Rect.Dy(), format)
	return pix
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// LoadImage decodes a PNG, JPEG, GIF, BMP or WebP file.
func (l *Loader) LoadImage(name string) Image {
	return l.newImage(name, l.decodeImage(name))
}

func (l *Loader) UnloadImage(img Image) {
	l.release(img.Handle, "IMAGE")
}

// ImageResize scales img in place with a Catmull-Rom filter.
func (l *Loader) ImageResize(img *Image, w, h int) {
	l.resize(img, w, h, xdraw.CatmullRom)
}

// ImageResizeNN scales img in place with nearest-neighbor sampling.
func (l *Loader) ImageResizeNN(img *Image, w, h int) {
	l.resize(img, w, h, xdraw.NearestNeighbor)
}

func (l *Loader) resize(img *Image, w, h int, s xdraw.Scaler) {
	if !l.live(img.Handle, "IMAGE") || img.Pix == nil || w <= 0 || h <= 0 {
		return
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	s.Scale(dst, dst.Bounds(), img.Pix, img.Pix.Bounds(), draw.Src, nil)
	img.Pix = dst
}

func genImage(w, h int, fn func(x, y int) color.NRGBA) *image.NRGBA {
	if w <= 0 || h <= 0 {
		return nil
	}
	pix := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix.SetNRGBA(x, y, fn(x, y))
		}
	}
	return pix
}

func nrgba(c color.RGBA) color.NRGBA { return color.NRGBA{c.R, c.G, c.B, c.A} }

func lerpNRGBA(a, b color.RGBA, t float64) color.NRGBA {
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 { return uint8(float64(x)*(1-t) + float64(y)*t) }
	return color.NRGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), mix(a.A, b.A)}
}

// GenImageColor fills a w*h image with c.
func (l *Loader) GenImageColor(w, h int, c color.RGBA) Image {
	return l.newImage("gen:color", genImage(w, h, func(int, int) color.NRGBA { return nrgba(c) }))
}

// GenImageGradientLinear blends start into end along direction degrees;
// 0 runs top to bottom, 90 left to right.
func (l *Loader) GenImageGradientLinear(w, h, direction int, start, end color.RGBA) Image {
	rad := float64(90-direction) / 180 * math.Pi
	cos, sin := math.Cos(rad), math.Sin(rad)
	span := float64(w)*cos + float64(h)*sin
	return l.newImage("gen:gradient_linear", genImage(w, h, func(x, y int) color.NRGBA {
		return lerpNRGBA(start, end, (float64(x)*cos+float64(y)*sin)/span)
	}))
}

// GenImageGradientRadial blends inner into outer from the center; density
// is the fraction of the radius that stays solid inner.
func (l *Loader) GenImageGradientRadial(w, h int, density float32, inner, outer color.RGBA) Image {
	radius := float64(min(w, h)) / 2
	cx, cy := float64(w)/2, float64(h)/2
	d := float64(density)
	return l.newImage("gen:gradient_radial", genImage(w, h, func(x, y int) color.NRGBA {
		dist := math.Hypot(float64(x)-cx, float64(y)-cy)
		return lerpNRGBA(inner, outer, (dist-radius*d)/(radius*(1-d)))
	}))
}

// GenImageGradientSquare blends inner into outer by the larger axis distance
// from the center.
func (l *Loader) GenImageGradientSquare(w, h int, density float32, inner, outer color.RGBA) Image {
	cx, cy := float64(w)/2, float64(h)/2
	d := float64(density)
	return l.newImage("gen:gradient_square", genImage(w, h, func(x, y int) color.NRGBA {
		dx := math.Abs(float64(x)-cx) / cx
		dy := math.Abs(float64(y)-cy) / cy
		return lerpNRGBA(inner, outer, (math.Max(dx, dy)-d)/(1-d))
	}))
}

// GenImageChecked alternates c1 and c2 in checksX*checksY cells.
func (l *Loader) GenImageChecked(w, h, checksX, checksY int, c1, c2 color.RGBA) Image {
	checksX, checksY = max(checksX, 1), max(checksY, 1)
	return l.newImage("gen:checked", genImage(w, h, func(x, y int) color.NRGBA {
		if (x/checksX+y/checksY)%2 == 0 {
			return nrgba(c1)
		}
		return nrgba(c2)
	}))
}

// GenImageWhiteNoise sets a pixel white with probability factor.
func (l *Loader) GenImageWhiteNoise(w, h int, factor float32) Image {
	limit := int(factor * 100)
	return l.newImage("gen:white_noise", genImage(w, h, func(int, int) color.NRGBA {
		if l.rng.IntN(100) < limit {
			return color.NRGBA{255, 255, 255, 255}
		}
		return color.NRGBA{0, 0, 0, 255}
	}))
}

// GenImagePerlinNoise renders six octaves of gradient noise; scale is the
// number of noise periods across the image.
func (l *Loader) GenImagePerlinNoise(w, h, offsetX, offsetY int, scale float32) Image {
	p := newPerlin(l.rng)
	return l.newImage("gen:perlin_noise", genImage(w, h, func(x, y int) color.NRGBA {
		nx := float64(x+offsetX) * float64(scale) / float64(w)
		ny := float64(y+offsetY) * float64(scale) / float64(h)
		v := (p.fbm(nx, ny, 1, 2, 0.5, 6) + 1) / 2
		g := uint8(math.Max(0, math.Min(1, v)) * 255)
		return color.NRGBA{g, g, g, 255}
	}))
}

// GenImageCellular shades each pixel by its distance to the nearest of one
// random seed point per tileSize cell.
func (l *Loader) GenImageCellular(w, h, tileSize int) Image {
	if tileSize <= 0 || w <= 0 || h <= 0 {
		return l.newImage("gen:cellular", nil)
	}
	tx, ty := (w+tileSize-1)/tileSize, (h+tileSize-1)/tileSize
	seeds := make([][2]float64, tx*ty)
	for i := range seeds {
		x, y := i%tx, i/tx
		seeds[i] = [2]float64{
			float64(x*tileSize + l.rng.IntN(tileSize)),
			float64(y*tileSize + l.rng.IntN(tileSize)),
		}
	}
	return l.newImage("gen:cellular", genImage(w, h, func(x, y int) color.NRGBA {
		cx, cy := x/tileSize, y/tileSize
		best := math.Inf(1)
		for j := cy - 1; j <= cy+1; j++ {
			for i := cx - 1; i <= cx+1; i++ {
				if i < 0 || j < 0 || i >= tx || j >= ty {
					continue
				}
				s := seeds[j*tx+i]
				best = math.Min(best, math.Hypot(float64(x)-s[0], float64(y)-s[1]))
			}
		}
		g := uint8(math.Min(best*256/float64(tileSize), 255))
		return color.NRGBA{g, g, g, 255}
	}))
}
