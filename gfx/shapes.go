package gfx

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

// pen selects col on the current target's vector context.
func (c *Canvas) pen(col color.RGBA) *gg.Context {
	dc := c.target.dc
	dc.ClearPath()
	dc.Identity()
	dc.SetRGBA(float64(col.R)/255, float64(col.G)/255, float64(col.B)/255, float64(col.A)/255)
	return dc
}

func (c *Canvas) fill(op string, dc *gg.Context) {
	if err := dc.Fill(); err != nil {
		c.log.Debug().Err(err).Str("op", op).Msg("fill")
	}
}

func (c *Canvas) stroke(op string, dc *gg.Context, width float64) {
	dc.SetLineWidth(width)
	if err := dc.Stroke(); err != nil {
		c.log.Debug().Err(err).Str("op", op).Msg("stroke")
	}
}

// DrawPixel sets one pixel.
func (c *Canvas) DrawPixel(x, y int, col color.RGBA) {
	if !c.drawing("DrawPixel") {
		return
	}
	c.target.Blend(x, y, col)
}

// DrawLine draws a one pixel wide line.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col color.RGBA) {
	if !c.drawing("DrawLine") {
		return
	}
	dc := c.pen(col)
	dc.MoveTo(float64(x0)+0.5, float64(y0)+0.5)
	dc.LineTo(float64(x1)+0.5, float64(y1)+0.5)
	c.stroke("DrawLine", dc, 1)
}

// DrawLineEx draws a line of the given thickness.
func (c *Canvas) DrawLineEx(start, end Vector2, thick float32, col color.RGBA) {
	if !c.drawing("DrawLineEx") {
		return
	}
	dc := c.pen(col)
	dc.MoveTo(float64(start.X), float64(start.Y))
	dc.LineTo(float64(end.X), float64(end.Y))
	c.stroke("DrawLineEx", dc, float64(thick))
}

func (c *Canvas) DrawCircle(cx, cy int, radius float32, col color.RGBA) {
	c.DrawCircleV(Vector2{float32(cx), float32(cy)}, radius, col)
}

func (c *Canvas) DrawCircleV(center Vector2, radius float32, col color.RGBA) {
	if !c.drawing("DrawCircle") {
		return
	}
	dc := c.pen(col)
	dc.DrawCircle(float64(center.X), float64(center.Y), float64(radius))
	c.fill("DrawCircle", dc)
}

// DrawCircleLines outlines a circle.
func (c *Canvas) DrawCircleLines(cx, cy int, radius float32, col color.RGBA) {
	if !c.drawing("DrawCircleLines") {
		return
	}
	dc := c.pen(col)
	dc.DrawCircle(float64(cx), float64(cy), float64(radius))
	c.stroke("DrawCircleLines", dc, 1)
}

// DrawCircleGradient fills a circle blending inner at the center to outer at the rim.
func (c *Canvas) DrawCircleGradient(cx, cy int, radius float32, inner, outer color.RGBA) {
	if !c.drawing("DrawCircleGradient") {
		return
	}
	r := int(math.Ceil(float64(radius)))
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			d := float32(math.Sqrt(float64(x*x + y*y)))
			if d > radius {
				continue
			}
			c.target.Blend(cx+x, cy+y, ColorLerp(inner, outer, d/radius))
		}
	}
}

// DrawCircleSector fills a pie slice; angles are in degrees, clockwise from +X.
func (c *Canvas) DrawCircleSector(center Vector2, radius, startAngle, endAngle float32, col color.RGBA) {
	if !c.drawing("DrawCircleSector") {
		return
	}
	dc := c.pen(col)
	cx, cy, a0 := float64(center.X), float64(center.Y), deg(startAngle)
	dc.MoveTo(cx, cy)
	dc.LineTo(cx+math.Cos(a0)*float64(radius), cy+math.Sin(a0)*float64(radius))
	dc.DrawArc(cx, cy, float64(radius), a0, deg(endAngle))
	dc.ClosePath()
	c.fill("DrawCircleSector", dc)
}

func (c *Canvas) DrawEllipse(cx, cy int, rx, ry float32, col color.RGBA) {
	if !c.drawing("DrawEllipse") {
		return
	}
	dc := c.pen(col)
	dc.DrawEllipse(float64(cx), float64(cy), float64(rx), float64(ry))
	c.fill("DrawEllipse", dc)
}

func (c *Canvas) DrawEllipseLines(cx, cy int, rx, ry float32, col color.RGBA) {
	if !c.drawing("DrawEllipseLines") {
		return
	}
	dc := c.pen(col)
	dc.DrawEllipse(float64(cx), float64(cy), float64(rx), float64(ry))
	c.stroke("DrawEllipseLines", dc, 1)
}

// DrawRing fills the band between two radii over an angle range in degrees.
func (c *Canvas) DrawRing(center Vector2, inner, outer, startAngle, endAngle float32, col color.RGBA) {
	if !c.drawing("DrawRing") {
		return
	}
	if inner > outer {
		inner, outer = outer, inner
	}
	dc := c.pen(col)
	ringPath(dc, center, inner, outer, startAngle, endAngle)
	c.fill("DrawRing", dc)
}

func (c *Canvas) DrawRingLines(center Vector2, inner, outer, startAngle, endAngle float32, col color.RGBA) {
	if !c.drawing("DrawRingLines") {
		return
	}
	dc := c.pen(col)
	ringPath(dc, center, inner, outer, startAngle, endAngle)
	c.stroke("DrawRingLines", dc, 1)
}

func ringPath(dc *gg.Context, center Vector2, inner, outer, startAngle, endAngle float32) {
	cx, cy := float64(center.X), float64(center.Y)
	a0, a1 := deg(startAngle), deg(endAngle)
	const steps = 64
	for i := 0; i <= steps; i++ {
		a := a0 + (a1-a0)*float64(i)/steps
		x, y := cx+math.Cos(a)*float64(outer), cy+math.Sin(a)*float64(outer)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	for i := steps; i >= 0; i-- {
		a := a0 + (a1-a0)*float64(i)/steps
		dc.LineTo(cx+math.Cos(a)*float64(inner), cy+math.Sin(a)*float64(inner))
	}
	dc.ClosePath()
}

func (c *Canvas) DrawRectangle(x, y, w, h int, col color.RGBA) {
	c.DrawRectangleRec(Rectangle{float32(x), float32(y), float32(w), float32(h)}, col)
}

func (c *Canvas) DrawRectangleV(pos, size Vector2, col color.RGBA) {
	c.DrawRectangleRec(Rectangle{pos.X, pos.Y, size.X, size.Y}, col)
}

func (c *Canvas) DrawRectangleRec(r Rectangle, col color.RGBA) {
	if !c.drawing("DrawRectangle") {
		return
	}
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	dc := c.pen(col)
	dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height))
	c.fill("DrawRectangle", dc)
}

// DrawRectanglePro draws r rotated by rotation degrees around origin, which
// is relative to r's top-left corner.
func (c *Canvas) DrawRectanglePro(r Rectangle, origin Vector2, rotation float32, col color.RGBA) {
	if !c.drawing("DrawRectanglePro") {
		return
	}
	dc := c.pen(col)
	dc.Translate(float64(r.X), float64(r.Y))
	dc.Rotate(deg(rotation))
	dc.DrawRectangle(-float64(origin.X), -float64(origin.Y), float64(r.Width), float64(r.Height))
	c.fill("DrawRectanglePro", dc)
}

func (c *Canvas) DrawRectangleLines(x, y, w, h int, col color.RGBA) {
	c.DrawRectangleLinesEx(Rectangle{float32(x), float32(y), float32(w), float32(h)}, 1, col)
}

// DrawRectangleLinesEx outlines r with the border inside the rectangle.
func (c *Canvas) DrawRectangleLinesEx(r Rectangle, thick float32, col color.RGBA) {
	if !c.drawing("DrawRectangleLines") {
		return
	}
	t := float64(thick)
	dc := c.pen(col)
	dc.DrawRectangle(float64(r.X)+t/2, float64(r.Y)+t/2, float64(r.Width)-t, float64(r.Height)-t)
	c.stroke("DrawRectangleLines", dc, t)
}

// DrawRectangleGradientV blends top to bottom.
func (c *Canvas) DrawRectangleGradientV(x, y, w, h int, top, bottom color.RGBA) {
	c.DrawRectangleGradientEx(Rectangle{float32(x), float32(y), float32(w), float32(h)}, top, bottom, bottom, top)
}

// DrawRectangleGradientH blends left to right.
func (c *Canvas) DrawRectangleGradientH(x, y, w, h int, left, right color.RGBA) {
	c.DrawRectangleGradientEx(Rectangle{float32(x), float32(y), float32(w), float32(h)}, left, left, right, right)
}

// DrawRectangleGradientEx blends four corner colors: top-left, bottom-left,
// bottom-right, top-right.
func (c *Canvas) DrawRectangleGradientEx(r Rectangle, tl, bl, br, tr color.RGBA) {
	if !c.drawing("DrawRectangleGradient") {
		return
	}
	x0, y0 := int(r.X), int(r.Y)
	w, h := int(r.Width), int(r.Height)
	if w <= 0 || h <= 0 {
		return
	}
	for y := 0; y < h; y++ {
		fy := float32(y) / float32(max(h-1, 1))
		left := ColorLerp(tl, bl, fy)
		right := ColorLerp(tr, br, fy)
		for x := 0; x < w; x++ {
			fx := float32(x) / float32(max(w-1, 1))
			c.target.Blend(x0+x, y0+y, ColorLerp(left, right, fx))
		}
	}
}

// DrawRectangleRounded fills r with corners of radius roundness*min(w,h)/2.
func (c *Canvas) DrawRectangleRounded(r Rectangle, roundness float32, col color.RGBA) {
	if !c.drawing("DrawRectangleRounded") {
		return
	}
	dc := c.pen(col)
	dc.DrawRoundedRectangle(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height), cornerRadius(r, roundness))
	c.fill("DrawRectangleRounded", dc)
}

func (c *Canvas) DrawRectangleRoundedLines(r Rectangle, roundness, thick float32, col color.RGBA) {
	if !c.drawing("DrawRectangleRoundedLines") {
		return
	}
	dc := c.pen(col)
	dc.DrawRoundedRectangle(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height), cornerRadius(r, roundness))
	c.stroke("DrawRectangleRoundedLines", dc, float64(max(thick, 1)))
}

func cornerRadius(r Rectangle, roundness float32) float64 {
	return float64(clamp01(roundness) * min(r.Width, r.Height) / 2)
}

func (c *Canvas) DrawTriangle(v1, v2, v3 Vector2, col color.RGBA) {
	if !c.drawing("DrawTriangle") {
		return
	}
	dc := c.pen(col)
	trianglePath(dc, v1, v2, v3)
	c.fill("DrawTriangle", dc)
}

func (c *Canvas) DrawTriangleLines(v1, v2, v3 Vector2, col color.RGBA) {
	if !c.drawing("DrawTriangleLines") {
		return
	}
	dc := c.pen(col)
	trianglePath(dc, v1, v2, v3)
	c.stroke("DrawTriangleLines", dc, 1)
}

func trianglePath(dc *gg.Context, v1, v2, v3 Vector2) {
	dc.MoveTo(float64(v1.X), float64(v1.Y))
	dc.LineTo(float64(v2.X), float64(v2.Y))
	dc.LineTo(float64(v3.X), float64(v3.Y))
	dc.ClosePath()
}

// DrawPoly fills a regular polygon; rotation is in degrees.
func (c *Canvas) DrawPoly(center Vector2, sides int, radius, rotation float32, col color.RGBA) {
	if !c.drawing("DrawPoly") {
		return
	}
	dc := c.pen(col)
	polyPath(dc, center, sides, radius, rotation)
	c.fill("DrawPoly", dc)
}

func (c *Canvas) DrawPolyLines(center Vector2, sides int, radius, rotation float32, col color.RGBA) {
	c.DrawPolyLinesEx(center, sides, radius, rotation, 1, col)
}

func (c *Canvas) DrawPolyLinesEx(center Vector2, sides int, radius, rotation, thick float32, col color.RGBA) {
	if !c.drawing("DrawPolyLines") {
		return
	}
	dc := c.pen(col)
	polyPath(dc, center, sides, radius, rotation)
	c.stroke("DrawPolyLines", dc, float64(thick))
}

func polyPath(dc *gg.Context, center Vector2, sides int, radius, rotation float32) {
	sides = max(sides, 3)
	for i := 0; i < sides; i++ {
		a := deg(rotation) + 2*math.Pi*float64(i)/float64(sides)
		x := float64(center.X) + math.Cos(a)*float64(radius)
		y := float64(center.Y) + math.Sin(a)*float64(radius)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

func deg(d float32) float64 { return float64(d) * math.Pi / 180 }
